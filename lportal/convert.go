package lportal

import "github.com/lawnjelly/lportal/geom"

// DefaultPoolCapacity is the plane pool's default slot count, equal to
// MaxPortalDepth. A trace holds one slot for its starting room plus one
// per portal hop, so at this capacity the pool, not the depth check, ends
// the longest paths: the shadow-caster resolver (starting at depth 1)
// still reaches depth MaxPortalDepth, the light tracer (starting at depth
// 0) stops one hop short of it, and each such prune raises the
// pool-exhaustion warning.
const DefaultPoolCapacity = MaxPortalDepth

// Options configures one Convert call. The zero value is usable and
// matches the source's hard-coded behaviour.
type Options struct {
	PoolCapacity int              // 0 uses DefaultPoolCapacity.
	Hull         geom.HullBuilder // nil uses geom.QuickHull{}.

	// PlaneDistTol and PlaneNormTol override the bound builder's plane
	// dedup thresholds (the hard-coded 0.08/0.98 defaults). Zero means
	// use those defaults; exposed for testing unusually-scaled scenes,
	// never for changing the algorithm's ordinary behaviour.
	PlaneDistTol float64
	PlaneNormTol float64

	// WarnSink, if non-nil, receives every warning instead of the
	// default process log. Tests use this to assert on warning
	// behaviour without scraping stderr.
	WarnSink func(string)
}

// Convert runs the full conversion pipeline over the scene rooted at
// root: classify and harvest rooms and their static objects/lights,
// build room bounds, build the portal graph (detect, mirror, pack),
// trace lights, resolve shadow casters, and hide every static object.
// It is a one-shot, single-threaded pass; nothing is retried.
func Convert(h Host, root NodeID, opts Options) *Manager {
	c := newConvertCtx()
	c.sink = opts.WarnSink

	poolCap := opts.PoolCapacity
	if poolCap == 0 {
		poolCap = DefaultPoolCapacity
	}
	hull := opts.Hull
	if hull == nil {
		hull = geom.QuickHull{}
	}
	c.distTol, c.normTol = opts.PlaneDistTol, opts.PlaneNormTol
	if c.distTol == 0 {
		c.distTol = geom.DefaultPlaneDistTol
	}
	if c.normTol == 0 {
		c.normTol = geom.DefaultPlaneNormTol
	}

	m := &Manager{Pool: NewPlanePool(poolCap)}

	n := countRooms(h, root)
	m.Rooms = make([]Room, 0, n)

	m.harvestRooms(c, h, root)
	m.harvestGlobalLights(c, h, root)

	temps := make([]tempRoom, len(m.Rooms))
	m.detectPortals(c, h, temps)
	m.mirrorPortals(temps)
	m.packPortals(temps)

	m.buildBounds(c, h, hull)

	dedup := NewBitset(len(m.Objects))
	m.traceLights(c, dedup)
	m.resolveShadowCasters(c, h, dedup)

	m.hideAll(h)

	return m
}

// buildBounds finds each room's bound_ mesh child (if any), builds its
// convex interior, and removes the bound mesh from the live scene tree,
// it is authoring data, not renderable.
func (m *Manager) buildBounds(c *convertCtx, h Host, hull geom.HullBuilder) {
	for ri := range m.Rooms {
		room := &m.Rooms[ri]
		var boundNode NodeID
		found := false
		for _, child := range h.Children(room.Node) {
			if IsBound(h, child) {
				boundNode = child
				found = true
				break
			}
		}
		if !found {
			continue
		}
		m.buildBound(c, h, room, boundNode, hull)
		h.RemoveChild(room.Node, boundNode)
	}
}

// hideAll sets every static object hidden after conversion; the runtime
// culler turns objects on per frame. Geometry-instance objects also have
// their extra-cull-margin reset to zero, defeating a host visibility
// caching quirk.
func (m *Manager) hideAll(h Host) {
	for i := range m.Objects {
		obj := &m.Objects[i]
		h.Show(obj.Node, false)
		if obj.IsGeometryInstance {
			h.SetExtraCullMargin(obj.Node, 0)
		}
	}
}
