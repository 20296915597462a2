package lportal

import "github.com/lawnjelly/lportal/geom"

// poolExhausted is the sentinel handle returned by Request when the pool
// has no free slots.
const poolExhausted = -1

// PlanePool is a fixed-capacity arena of reusable plane lists, scoped to
// one light trace or one (light, room) shadow-caster resolution. Each
// portal crossing during a recursive traversal borrows a slot, copies the
// caller's planes into it, appends new planes, recurses, and frees the
// slot before unwinding, bounding recursion memory at Capacity slots
// regardless of how deep the portal chain goes.
type PlanePool struct {
	slots [][]geom.Plane
	used  []bool
}

// NewPlanePool returns a pool with the given fixed number of slots.
func NewPlanePool(capacity int) *PlanePool {
	return &PlanePool{
		slots: make([][]geom.Plane, capacity),
		used:  make([]bool, capacity),
	}
}

// Capacity returns the number of slots the pool was created with.
func (p *PlanePool) Capacity() int { return len(p.slots) }

// Reset clears all allocations and marks every slot free, at the start of
// a new light trace or shadow-caster resolution.
func (p *PlanePool) Reset() {
	for i := range p.slots {
		p.slots[i] = p.slots[i][:0]
		p.used[i] = false
	}
}

// Request borrows a free slot and returns its handle, or poolExhausted if
// none remain. The slot's plane list is truncated to empty.
func (p *PlanePool) Request() int {
	for i, used := range p.used {
		if !used {
			p.used[i] = true
			p.slots[i] = p.slots[i][:0]
			return i
		}
	}
	return poolExhausted
}

// Get returns the plane list held in slot h.
func (p *PlanePool) Get(h int) []geom.Plane {
	return p.slots[h]
}

// Set replaces the plane list held in slot h.
func (p *PlanePool) Set(h int, planes []geom.Plane) {
	p.slots[h] = planes
}

// Free returns slot h to the pool.
func (p *PlanePool) Free(h int) {
	p.used[h] = false
}
