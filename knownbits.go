package vsa

import "github.com/bits-and-blooms/bitset"

// knownBitsEnumLimit bounds how many concrete elements KnownBits will
// enumerate before falling back to the stride-only approximation.
const knownBitsEnumLimit = 4096

// KnownBits derives, per bit position, whether si's concrete values agree
// on that bit: ones holds positions that are 1 in every element, zeros
// holds positions that are 0 in every element, and a position absent from
// both is unknown. This is the complementary "bitwise domain" angr's VSA
// backend tracks alongside a StridedInterval: a stride tells you nothing
// about which individual bits are pinned, which matters for callers
// building a bitmask (e.g. And with a known-bits-derived constant) out of
// a register's abstract value.
func (si StridedInterval) KnownBits() (ones, zeros *bitset.BitSet) {
	ones = bitset.New(uint(si.W))
	zeros = bitset.New(uint(si.W))
	if si.IsEmpty() {
		return ones, zeros
	}
	card := si.cardinality()
	if card.IsUint64() && card.Uint64() <= knownBitsEnumLimit {
		values := si.Eval(int(card.Uint64()))
		for bit := uint8(0); bit < si.W; bit++ {
			allOne, allZero := true, true
			m := uint64(1) << bit
			for _, v := range values {
				if v&m != 0 {
					allZero = false
				} else {
					allOne = false
				}
			}
			switch {
			case allOne:
				ones.Set(uint(bit))
			case allZero:
				zeros.Set(uint(bit))
			}
		}
		return ones, zeros
	}
	// Too many elements to enumerate: the only bits the interval pins
	// down without enumeration are the low trailingZeros(stride) bits,
	// which every element shares with Lower.
	tz := trailingZerosOrWidth(si.W, si.Stride)
	for bit := uint8(0); bit < tz; bit++ {
		if si.Lower&(uint64(1)<<bit) != 0 {
			ones.Set(uint(bit))
		} else {
			zeros.Set(uint(bit))
		}
	}
	return ones, zeros
}

// KnownBitsString renders KnownBits as a width-W string of '0'/'1'/'?'
// from MSB to LSB, the conventional debug format for a bitmask domain.
func (si StridedInterval) KnownBitsString() string {
	ones, zeros := si.KnownBits()
	out := make([]byte, si.W)
	for bit := uint8(0); bit < si.W; bit++ {
		pos := uint(si.W - 1 - bit)
		switch {
		case ones.Test(pos):
			out[bit] = '1'
		case zeros.Test(pos):
			out[bit] = '0'
		default:
			out[bit] = '?'
		}
	}
	return string(out)
}
