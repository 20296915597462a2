package lportal

// Bitset is a packed dedup bitmap, one bit per static object index. It is
// reused across traces (cleared, not reallocated) the way the source's
// m_BF_caster_SOBs bitfield is reused across Light_Trace / shadow-caster
// calls, rather than re-allocating a fresh set for every light and room.
type Bitset struct {
	bits []uint64
	n    int
}

// NewBitset returns a Bitset sized to hold n bits, all initially clear.
func NewBitset(n int) *Bitset {
	return &Bitset{bits: make([]uint64, (n+63)/64), n: n}
}

// Resize grows the bitset to hold at least n bits, preserving existing
// bits and clearing any newly added ones.
func (b *Bitset) Resize(n int) {
	if n <= b.n {
		b.n = n
		return
	}
	need := (n + 63) / 64
	if need > len(b.bits) {
		grown := make([]uint64, need)
		copy(grown, b.bits)
		b.bits = grown
	}
	for i := b.n; i < n; i++ {
		b.bits[i/64] &^= 1 << uint(i%64)
	}
	b.n = n
}

// Clear resets every bit to 0 without reallocating.
func (b *Bitset) Clear() {
	for i := range b.bits {
		b.bits[i] = 0
	}
}

// Test reports whether bit i is set.
func (b *Bitset) Test(i int) bool {
	return b.bits[i/64]&(1<<uint(i%64)) != 0
}

// Set sets bit i.
func (b *Bitset) Set(i int) {
	b.bits[i/64] |= 1 << uint(i%64)
}

// TestAndSet reports whether bit i was already set, then sets it. This is
// the dedup check-then-insert the tracer and shadow resolver both need:
// "have we already recorded this object as a caster this trace".
func (b *Bitset) TestAndSet(i int) bool {
	was := b.Test(i)
	b.Set(i)
	return was
}
