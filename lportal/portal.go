package lportal

import "github.com/lawnjelly/lportal/geom"

// tempRoom is the transient per-room portal list used during the 3-pass
// portal build (Detect -> Mirror -> Pack). It exists only for the
// duration of one Convert call.
type tempRoom struct {
	portals []Portal
}

// detectPortals is pass 0: for each room, walk one level of children,
// turn every portal_ mesh into a temp portal owned by that room, resolve
// its target room by name, then strip the portal meshes from the live
// scene tree (they are authoring data, not renderable).
func (m *Manager) detectPortals(c *convertCtx, h Host, temps []tempRoom) {
	for ri := range m.Rooms {
		room := &m.Rooms[ri]
		var portalNodes []NodeID
		for _, child := range h.Children(room.Node) {
			if !IsPortal(h, child) {
				continue
			}
			portalNodes = append(portalNodes, child)

			targetName := FindNameAfter(h.Name(child), prefixPortal)
			targetIdx, ok := m.RoomByName(targetName)
			if !ok {
				c.warnf("room %q: portal targets unknown room %q, dropping portal", room.Name, targetName)
				continue
			}

			verts := h.MeshVertices(child)
			if len(verts) < 3 {
				c.warnf("room %q: portal mesh has fewer than 3 vertices, dropping portal", room.Name)
				continue
			}
			xf := h.Transform(child)
			world := make([]geom.V3, len(verts))
			for i, v := range verts {
				world[i] = xf.Xform(v)
			}

			plane := geom.PlaneFromPoints(world[0], world[1], world[2])
			if plane.Distance(room.Centroid) > 0 {
				// Reorient so the polygon's winding, and hence its plane,
				// faces away from the source room and toward the target.
				world = reversePoly(world)
				plane = geom.PlaneFromPoints(world[0], world[1], world[2])
			}

			temps[ri].portals = append(temps[ri].portals, Portal{
				Name:       h.Name(child),
				Room:       ri,
				LinkedRoom: targetIdx,
				Plane:      plane,
				Polygon:    world,
				Centroid:   polygonCentroid(world),
				Mirror:     false,
			})
		}

		for _, pn := range portalNodes {
			h.RemoveChild(room.Node, pn)
		}
	}
}

// mirrorPortals is pass 1: every non-mirror portal gets an auto-synthesised
// opposite-facing twin in its linked room, so designers author one side
// only. Mirrors are never themselves mirrored.
func (m *Manager) mirrorPortals(temps []tempRoom) {
	for ri := range temps {
		for _, p := range temps[ri].portals {
			if p.Mirror {
				continue
			}
			mirrored := Portal{
				Name:       m.Rooms[ri].Name,
				Room:       p.LinkedRoom,
				LinkedRoom: ri,
				Plane:      p.Plane.Flip(),
				Polygon:    reversePoly(p.Polygon),
				Centroid:   p.Centroid,
				Mirror:     true,
			}
			temps[p.LinkedRoom].portals = append(temps[p.LinkedRoom].portals, mirrored)
		}
	}
}

// packPortals is pass 2: copy each room's temp portals into the manager's
// contiguous global portal array and record the room's [first, count].
func (m *Manager) packPortals(temps []tempRoom) {
	for ri := range m.Rooms {
		first := len(m.Portals)
		m.Portals = append(m.Portals, temps[ri].portals...)
		m.Rooms[ri].Portals = Range{First: first, Count: len(temps[ri].portals)}
	}
}

func reversePoly(poly []geom.V3) []geom.V3 {
	out := make([]geom.V3, len(poly))
	for i, v := range poly {
		out[len(poly)-1-i] = v
	}
	return out
}

func polygonCentroid(poly []geom.V3) geom.V3 {
	c := geom.V3{}
	for _, v := range poly {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(poly)))
}
