package vsa

import "testing"

func TestKleeneAnd(t *testing.T) {
	cases := []struct {
		a, b, want BoolResult
	}{
		{BoolTrue, BoolTrue, BoolTrue},
		{BoolTrue, BoolFalse, BoolFalse},
		{BoolFalse, BoolMaybe, BoolFalse},
		{BoolTrue, BoolMaybe, BoolMaybe},
		{BoolMaybe, BoolMaybe, BoolMaybe},
	}
	for _, c := range cases {
		if got := c.a.And(c.b); got != c.want {
			t.Fatalf("%s.And(%s): got=%s, want=%s", c.a, c.b, got, c.want)
		}
	}
}

func TestKleeneOr(t *testing.T) {
	cases := []struct {
		a, b, want BoolResult
	}{
		{BoolFalse, BoolFalse, BoolFalse},
		{BoolTrue, BoolFalse, BoolTrue},
		{BoolFalse, BoolMaybe, BoolMaybe},
		{BoolTrue, BoolMaybe, BoolTrue},
	}
	for _, c := range cases {
		if got := c.a.Or(c.b); got != c.want {
			t.Fatalf("%s.Or(%s): got=%s, want=%s", c.a, c.b, got, c.want)
		}
	}
}

func TestKleeneNot(t *testing.T) {
	if BoolTrue.Not() != BoolFalse {
		t.Fatalf("True.Not(): got=%s, want=False", BoolTrue.Not())
	}
	if BoolFalse.Not() != BoolTrue {
		t.Fatalf("False.Not(): got=%s, want=True", BoolFalse.Not())
	}
	if BoolMaybe.Not() != BoolMaybe {
		t.Fatalf("Maybe.Not(): got=%s, want=Maybe", BoolMaybe.Not())
	}
}
