package lportal

import "github.com/lawnjelly/lportal/geom"

// resolveShadowCasters runs the shadow-caster resolver for every (light,
// room) pair where the light affects the room: it
// recursively traverses portals from the affected room, culling with
// light-type-specific plane normals, and registers visible shadow-casting
// objects under the source room's (the affected room's) caster slice.
func (m *Manager) resolveShadowCasters(c *convertCtx, h Host, dedup *Bitset) {
	for ri := range m.Rooms {
		room := &m.Rooms[ri]
		first := len(m.ShadowCasters)

		for li := range m.Lights {
			light := &m.Lights[li]
			if !lightAffectsRoom(light, li, room) {
				continue
			}

			dedup.Clear()
			m.Pool.Reset()
			slot := m.Pool.Request()
			c.assertf(slot != poolExhausted, "plane pool exhausted resetting for shadow-caster resolution")
			m.Pool.Set(slot, nil)

			m.shadowTraceRecursive(c, h, dedup, ri, 1, ri, li, slot)

			m.Pool.Free(slot)
		}

		room.Casters = Range{First: first, Count: len(m.ShadowCasters) - first}
	}
}

// lightAffectsRoom reports whether light (at index li) reaches room: a
// global light reaches every room; a local light reaches exactly the
// rooms the light tracer recorded in their LocalLights list.
func lightAffectsRoom(light *Light, li int, room *Room) bool {
	if light.HomeRoom < 0 {
		return true
	}
	for _, l := range room.LocalLights {
		if l == li {
			return true
		}
	}
	return false
}

// shadowTraceRecursive walks portals from currentRoom outward, registering
// shadow casters under sourceRoom (the room this whole resolution is for),
// not under currentRoom.
func (m *Manager) shadowTraceRecursive(c *convertCtx, h Host, dedup *Bitset, sourceRoom, depth, currentRoom, lightIdx, slot int) {
	if depth > MaxPortalDepth {
		return
	}
	room := &m.Rooms[currentRoom]
	light := &m.Lights[lightIdx]
	planes := m.Pool.Get(slot)

	for oi := room.Objects.First; oi < room.Objects.First+room.Objects.Count; oi++ {
		obj := &m.Objects[oi]
		if !h.IsShadowCaster(obj.Node) {
			continue
		}
		if !aabbVisible(obj.AABB, planes) {
			continue
		}
		if dedup.TestAndSet(oi) {
			continue
		}
		m.ShadowCasters = append(m.ShadowCasters, oi)
	}

	for pi := room.Portals.First; pi < room.Portals.First+room.Portals.Count; pi++ {
		p := &m.Portals[pi]

		var dot float64
		switch light.Type {
		case LightDirectional:
			dot = p.Plane.N.Dot(light.Direction)
		default: // omni/spot
			v := p.Centroid.Sub(light.Position)
			dot = p.Plane.N.Dot(v)
		}
		if dot >= 0 {
			continue // sign convention inverted relative to the light tracer.
		}

		if _, res := clipPolygonAgainstPlanes(p.Polygon, planes); res == geom.ClipOutside {
			continue
		}

		child := m.Pool.Request()
		if child == poolExhausted {
			c.warnOnce("shadow-pool-exhausted", "plane pool exhausted resolving shadow casters for light %q, pruning branch", light.Node)
			continue
		}
		newPlanes := append([]geom.Plane(nil), planes...)
		newPlanes = addLightPlanes(newPlanes, p, light, true)
		m.Pool.Set(child, newPlanes)

		m.shadowTraceRecursive(c, h, dedup, sourceRoom, depth+1, p.LinkedRoom, lightIdx, child)

		m.Pool.Free(child)
	}
}
