package vsa

// Policy is the explicit replacement for the two process-wide knobs
// described in spec.md §3/§9 (allow_dsis, DSIS_LIMIT). Rather than mutable
// package globals, every operation that might form or collapse a
// DiscreteStridedIntervalSet takes a Policy, per Design Notes §9 ("Global
// configuration → explicit context").
type Policy struct {
	// AllowDSIS mirrors the source's allow_dsis flag.
	AllowDSIS bool
	// DSISLimit mirrors DSIS_LIMIT; the default is 10 per spec.md §3.
	DSISLimit int
}

// DefaultPolicy matches the documented default: DSIS enabled, limited to 10
// members, the same way CPUFrequency is a package-level constant in the
// teacher's nes package.
var DefaultPolicy = Policy{AllowDSIS: true, DSISLimit: 10}

// Disabled returns a copy of the policy with DSIS formation turned off,
// matching the test fixtures' "claripy.vsa.strided_interval.allow_dsis =
// False" setup.
func (p Policy) Disabled() Policy {
	p.AllowDSIS = false
	return p
}
