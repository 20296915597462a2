package lportal

import "github.com/lawnjelly/lportal/geom"

// MaxPortalDepth bounds recursive portal traversal for both the light
// tracer and the shadow-caster resolver. Exceeding it prunes the branch;
// it is not a fatal error.
const MaxPortalDepth = 8

// traceLights runs the light tracer for every non-global light: it recursively traverses portals from the light's home room,
// expanding the frustum at every crossing, registering each room reached
// as affected by the light and each visible object as one of its casters.
// Global lights are not traced; they are assumed to reach every room and
// are handled en-bloc by the shadow-caster resolver.
func (m *Manager) traceLights(c *convertCtx, dedup *Bitset) {
	for li := range m.Lights {
		light := &m.Lights[li]
		if light.HomeRoom < 0 {
			continue
		}

		m.Pool.Reset()
		dedup.Clear()
		slot := m.Pool.Request()
		c.assertf(slot != poolExhausted, "plane pool exhausted resetting for light trace")
		m.Pool.Set(slot, nil)

		first := len(m.LightCasters)
		m.lightTraceRecursive(c, dedup, 0, light.HomeRoom, li, slot)
		light.Casters = Range{First: first, Count: len(m.LightCasters) - first}

		m.Pool.Free(slot)
	}
}

func (m *Manager) lightTraceRecursive(c *convertCtx, dedup *Bitset, depth, roomIdx, lightIdx, slot int) {
	if depth > MaxPortalDepth {
		return
	}
	room := &m.Rooms[roomIdx]
	light := &m.Lights[lightIdx]
	planes := m.Pool.Get(slot)

	addLocalLight(&room.LocalLights, lightIdx)

	for oi := room.Objects.First; oi < room.Objects.First+room.Objects.Count; oi++ {
		obj := &m.Objects[oi]
		if !aabbVisible(obj.AABB, planes) {
			continue
		}
		if dedup.TestAndSet(oi) {
			continue
		}
		m.LightCasters = append(m.LightCasters, oi)
	}

	for pi := room.Portals.First; pi < room.Portals.First+room.Portals.Count; pi++ {
		p := &m.Portals[pi]

		if p.Plane.N.Dot(light.Direction) <= 0 {
			continue // portal faces away from the light.
		}

		if _, res := clipPolygonAgainstPlanes(p.Polygon, planes); res == geom.ClipOutside {
			continue
		}

		child := m.Pool.Request()
		if child == poolExhausted {
			c.warnOnce("light-pool-exhausted", "plane pool exhausted tracing light %q, pruning branch", light.Node)
			continue
		}
		newPlanes := append([]geom.Plane(nil), planes...)
		newPlanes = addLightPlanes(newPlanes, p, light, false)
		m.Pool.Set(child, newPlanes)

		m.lightTraceRecursive(c, dedup, depth+1, p.LinkedRoom, lightIdx, child)

		m.Pool.Free(child)
	}
}

func addLocalLight(lights *[]int, lightIdx int) {
	for _, l := range *lights {
		if l == lightIdx {
			return
		}
	}
	*lights = append(*lights, lightIdx)
}
