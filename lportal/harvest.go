package lportal

import "github.com/lawnjelly/lportal/geom"

// countRooms counts the immediate children of root classified as rooms,
// so Manager.Rooms can be preallocated up front the way the source sizes
// its arrays before populating them.
func countRooms(h Host, root NodeID) int {
	n := 0
	for _, c := range h.Children(root) {
		if IsRoom(h, c) {
			n++
		}
	}
	return n
}

// harvestRooms walks the manager-level root once, creating one Room per
// room_ child and recursively collecting its static objects and lights.
func (m *Manager) harvestRooms(c *convertCtx, h Host, root NodeID) {
	idx := 0
	for _, child := range h.Children(root) {
		if !IsRoom(h, child) {
			continue
		}
		c.assertf(h.Kind(child) == KindSpatial, "node %q classified as room is not a Spatial", h.Name(child))

		room := Room{
			Name:  FindNameAfter(h.Name(child), prefixRoom),
			Node:  child,
			Index: idx,
			AABB:  geom.EmptyAABB(),
		}
		room.Bound.AABB = geom.EmptyAABB()
		m.Rooms = append(m.Rooms, room)
		idx++
	}

	for ri := range m.Rooms {
		m.harvestRoom(c, h, &m.Rooms[ri])
	}
}

// harvestRoom recursively walks one room's subtree, skipping portal,
// bound and ignored children, collecting static objects and dispatching
// lights, then finalises the room's AABB and centroid.
func (m *Manager) harvestRoom(c *convertCtx, h Host, room *Room) {
	first := len(m.Objects)
	m.harvestRecursive(c, h, room, room.Node)
	room.Objects = Range{First: first, Count: len(m.Objects) - first}

	if room.AABB.Min.X > room.AABB.Max.X {
		// No static object expanded the room's AABB (the bound builder
		// may still do so later); fall back to a degenerate box at the
		// room node's own position so the centroid used for portal
		// orientation is well-defined rather than derived from an
		// unbounded empty box.
		origin := h.Transform(room.Node).Origin
		room.AABB = geom.AABB{Min: origin, Max: origin}
	}
	room.Centroid = room.AABB.Center()
}

func (m *Manager) harvestRecursive(c *convertCtx, h Host, room *Room, node NodeID) {
	for _, child := range h.Children(node) {
		switch {
		case IsPortal(h, child), IsBound(h, child):
			// Left in place for later passes (portal/bound builders);
			// not indexed as objects here.
			continue
		case IsIgnore(h, child):
			// Kept visible with its parent room but not indexed; still
			// descend in case useful descendants hang off it.
			m.harvestRecursive(c, h, room, child)
		case IsLight(h, child):
			m.ingestLight(c, h, room, child)
			m.harvestRecursive(c, h, room, child)
		case IsRoom(h, child):
			// A nested room_ node starts a new room elsewhere; do not
			// absorb its contents into this one.
			continue
		default:
			if h.Kind(child) == KindSpatial || h.Kind(child) == KindMesh {
				m.harvestObject(h, room, child)
			}
			m.harvestRecursive(c, h, room, child)
		}
	}
}

// harvestObject registers child as a static object of room: its world
// AABB is folded into the room's AABB, its render-layer mask is zeroed so
// the runtime culler has exclusive control, and it is appended to the
// manager's global object array under the room's growing slice.
func (m *Manager) harvestObject(h Host, room *Room, child NodeID) {
	aabb := h.WorldAABB(child)
	room.AABB = room.AABB.ExpandToAABB(aabb)
	h.SetLayerMask(child, 0)

	m.Objects = append(m.Objects, StaticObject{
		Node:               child,
		AABB:               aabb,
		IsGeometryInstance: h.IsGeometryInstance(child),
	})
}

// harvestGlobalLights finds lights authored outside any room subtree
// (global lights, assumed to reach every room without tracing) and
// ingests them with HomeRoom == -1.
func (m *Manager) harvestGlobalLights(c *convertCtx, h Host, root NodeID) {
	m.harvestGlobalRecursive(c, h, root)
}

func (m *Manager) harvestGlobalRecursive(c *convertCtx, h Host, node NodeID) {
	for _, child := range h.Children(node) {
		switch {
		case IsRoom(h, child):
			continue // rooms' lights are ingested by harvestRoom.
		case IsLight(h, child):
			m.ingestGlobalLight(c, h, child)
			m.harvestGlobalRecursive(c, h, child)
		default:
			m.harvestGlobalRecursive(c, h, child)
		}
	}
}

func (m *Manager) ingestGlobalLight(c *convertCtx, h Host, node NodeID) {
	info, ok := h.LightInfo(node)
	if !ok {
		c.warnf("global light %q has an unrecognised subtype, dropping", h.Name(node))
		return
	}
	xf := h.Transform(node)
	h.Show(node, false)

	m.Lights = append(m.Lights, Light{
		Node:       node,
		Type:       info.Type,
		Position:   xf.Origin,
		Direction:  xf.Forward(),
		SpotSpread: info.SpotSpread,
		MaxDist:    info.MaxDist,
		HomeRoom:   -1,
	})
}

// ingestLight creates a Light from a light node: world position, world
// direction (the negative Z axis of the node's basis), the engine's
// shadow-max-distance, light subtype, spot spread where applicable, and
// home room. Unrecognised subtypes are dropped with a warning. Newly
// ingested lights are hidden; visibility is the runtime culler's job.
func (m *Manager) ingestLight(c *convertCtx, h Host, room *Room, node NodeID) {
	info, ok := h.LightInfo(node)
	if !ok {
		c.warnf("room %q: light %q has an unrecognised subtype, dropping", room.Name, h.Name(node))
		return
	}
	xf := h.Transform(node)
	h.Show(node, false)

	m.Lights = append(m.Lights, Light{
		Node:       node,
		Type:       info.Type,
		Position:   xf.Origin,
		Direction:  xf.Forward(),
		SpotSpread: info.SpotSpread,
		MaxDist:    info.MaxDist,
		HomeRoom:   room.Index,
	})
}
