package geom

import "math"

// AABB is an axis aligned bounding box described by its min and max corners.
type AABB struct {
	Min, Max V3
}

// EmptyAABB returns a degenerate box suitable as the starting point for
// repeated calls to ExpandToPoint/ExpandToAABB.
func EmptyAABB() AABB {
	inf := math.MaxFloat64
	return AABB{
		Min: V3{inf, inf, inf},
		Max: V3{-inf, -inf, -inf},
	}
}

// ExpandToPoint grows the box, if necessary, to contain p.
func (b AABB) ExpandToPoint(p V3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// ExpandToAABB grows the box, if necessary, to contain o.
func (b AABB) ExpandToAABB(o AABB) AABB {
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Center returns the midpoint of the box.
func (b AABB) Center() V3 { return b.Min.Lerp(b.Max, 0.5) }

// Corners returns all 8 corners of the box.
func (b AABB) Corners() [8]V3 {
	return [8]V3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
}

// Overlaps reports whether b and o intersect or touch.
func (b AABB) Overlaps(o AABB) bool {
	if b.Max.X < o.Min.X || b.Min.X > o.Max.X {
		return false
	}
	if b.Max.Y < o.Min.Y || b.Min.Y > o.Max.Y {
		return false
	}
	if b.Max.Z < o.Min.Z || b.Min.Z > o.Max.Z {
		return false
	}
	return true
}

// ProjectRangeInPlane projects the 8 corners of the box onto the plane's
// normal axis and returns the signed min/max range. A caller culls the box
// against the plane's half-space when rMin > 0: every corner lies on the
// outward side and nothing behind the plane can be visible.
func (b AABB) ProjectRangeInPlane(p Plane) (rMin, rMax float64) {
	corners := b.Corners()
	rMin = p.Distance(corners[0])
	rMax = rMin
	for _, c := range corners[1:] {
		d := p.Distance(c)
		if d < rMin {
			rMin = d
		}
		if d > rMax {
			rMax = d
		}
	}
	return rMin, rMax
}
