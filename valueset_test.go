package vsa

import "testing"

func TestMergeSIGrowsRegionStride(t *testing.T) {
	si1 := Singleton(32, 10)
	si3 := Singleton(32, 28)
	vs := SingleRegion(32, "global", si1)
	vs = vs.MergeSI("global", si3, DefaultPolicy)

	got := vs.GetSI("global")
	want := mustSI(t, 32, 18, 10, 28)
	if !got.Identical(want) {
		t.Fatalf("merged region: got=%s, want=%s", got, want)
	}
}

func TestValueSetIdenticalRegionSets(t *testing.T) {
	si := Singleton(32, 0x1000)
	vs1 := SingleRegion(32, "global", si)
	vs2 := SingleRegion(32, "global", si)
	if vs1.Eq(vs2) != BoolTrue {
		t.Fatalf("Eq on identical ValueSets: got=%s, want=True", vs1.Eq(vs2))
	}
	if vs1.Len() != 32 {
		t.Fatalf("Len(): got=%d, want=32", vs1.Len())
	}
}

func TestValueSetDiffersOnRegionSet(t *testing.T) {
	si := Singleton(32, 1)
	vs1 := SingleRegion(32, "global", si)
	vs2 := SingleRegion(32, "stack", si)
	if vs1.Eq(vs2) != BoolFalse {
		t.Fatalf("Eq on disjoint region sets: got=%s, want=False", vs1.Eq(vs2))
	}
}

func TestRegionOpNoneBroadcasts(t *testing.T) {
	none := NewValueSet(32).MergeSI("none", Singleton(32, 4), DefaultPolicy)
	global := SingleRegion(32, "global", Singleton(32, 0x2000))

	got, err := global.Add(none)
	if err != nil {
		t.Fatalf("Add: unexpected error: %v", err)
	}
	want := Singleton(32, 0x2004)
	if !got.GetSI("global").Identical(want) {
		t.Fatalf("global+none: got=%s, want=%s", got.GetSI("global"), want)
	}
}

func TestRegionOpMismatchedNamedRegionsErrors(t *testing.T) {
	global := SingleRegion(32, "global", Singleton(32, 1))
	stack := SingleRegion(32, "stack", Singleton(32, 1))
	if _, err := global.Add(stack); err == nil {
		t.Fatalf("Add across distinct named regions: got nil error, want region mismatch")
	}
}

func TestCollapseSIUnionsAllRegions(t *testing.T) {
	vs := SingleRegion(32, "global", Singleton(32, 10))
	vs = vs.MergeSI("stack", Singleton(32, 20), DefaultPolicy)
	collapsed, err := vs.CollapseSI(DefaultPolicy)
	if err != nil {
		t.Fatalf("CollapseSI: unexpected error: %v", err)
	}
	if !collapsed.Contains(10) || !collapsed.Contains(20) {
		t.Fatalf("collapsed SI %s should contain both 10 and 20", collapsed)
	}
}
