package lportal

import "github.com/lawnjelly/lportal/geom"

// buildBound converts a bound_ mesh into the owning room's convex
// interior: every vertex is transformed to world space, the room AABB is
// expanded to cover them, the hull builder is invoked, and each hull
// face's plane is inserted via addPlaneIfUnique. Fewer than four points or
// hull failure drops the bound with a warning.
func (m *Manager) buildBound(c *convertCtx, h Host, room *Room, boundNode NodeID, hull geom.HullBuilder) {
	verts := h.MeshVertices(boundNode)
	xf := h.Transform(boundNode)

	world := make([]geom.V3, len(verts))
	for i, v := range verts {
		world[i] = xf.Xform(v)
		room.AABB = room.AABB.ExpandToPoint(world[i])
		room.Bound.AABB = room.Bound.AABB.ExpandToPoint(world[i])
	}

	if len(world) < 4 {
		c.warnf("room %q: bound mesh has fewer than 4 vertices, dropping bound", room.Name)
		return
	}

	built, ok := hull.Build(world)
	if !ok {
		c.warnf("room %q: convex hull construction failed, dropping bound", room.Name)
		return
	}

	for _, f := range built.Faces {
		addPlaneIfUnique(&room.Bound.Planes, f.Plane, c.distTol, c.normTol)
	}
	room.Bound.Built = true
}

// addPlaneIfUnique inserts p into planes unless an almost-equal plane is
// already present (|d-d'| <= distTol and n.n' >= normTol means
// duplicate; defaults 0.08/0.98).
func addPlaneIfUnique(planes *[]geom.Plane, p geom.Plane, distTol, normTol float64) {
	for _, existing := range *planes {
		if existing.AlmostEqualTol(p, distTol, normTol) {
			return
		}
	}
	*planes = append(*planes, p)
}
