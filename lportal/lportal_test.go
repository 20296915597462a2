package lportal_test

import (
	"testing"

	"github.com/lawnjelly/lportal/geom"
	"github.com/lawnjelly/lportal/lportal"
	"github.com/lawnjelly/lportal/scene"
)

// boxAABB returns a unit cube centred at c, the simplest possible static
// object bound for these tests.
func boxAABB(c geom.V3) geom.AABB {
	half := geom.Vec3(0.5, 0.5, 0.5)
	return geom.AABB{Min: c.Sub(half), Max: c.Add(half)}
}

// squarePortal returns the 4 local-space vertices of a unit square lying
// in the local YZ plane, so its supporting plane's normal runs along the
// local X axis, the axis every test scene's rooms are strung along.
func squarePortal() []geom.V3 {
	return []geom.V3{
		{0, -0.5, -0.5},
		{0, 0.5, -0.5},
		{0, 0.5, 0.5},
		{0, -0.5, 0.5},
	}
}

func at(x, y, z float64) geom.Transform {
	return geom.Transform{Basis: geom.Identity(), Origin: geom.Vec3(x, y, z)}
}

// facingMinusX returns a transform at the given origin oriented so that
// Transform.Forward() (the light-direction convention, -Z of the basis)
// points along -X: a directional light travelling back down a chain of
// rooms strung out along +X, so shadow-caster resolution (whose sign
// convention requires the portal normal and the light direction to point
// opposite ways) walks forward through each room's outward-facing
// portals.
func facingMinusX(origin geom.V3) geom.Transform {
	return geom.Transform{
		Basis: geom.Basis{
			X: geom.Vec3(0, 0, -1),
			Y: geom.Vec3(0, 1, 0),
			Z: geom.Vec3(1, 0, 0),
		},
		Origin: origin,
	}
}

// TestTwoRoomsOnePortal covers scenario 1: two rooms, one portal,
// one directional light in room A.
func TestTwoRoomsOnePortal(t *testing.T) {
	s := scene.New()
	roomA := s.AddRoom(s.Root(), "A", at(0, 0, 0))
	roomB := s.AddRoom(s.Root(), "B", at(10, 0, 0))

	// Portal sits at x=5, facing +X (toward B).
	s.AddPortal(roomA, "B", at(5, 0, 0), squarePortal())

	objB := s.AddObject(roomB, "crate", at(10, 0, 0), boxAABB(geom.Vec3(10, 0, 0)))
	s.SetShadowCaster(objB, true)

	light := s.AddLight(roomA, "sun", facingMinusX(geom.Vec3(0, 0, 0)), lportal.LightInfo{Type: lportal.LightDirectional, MaxDist: 100})
	_ = light

	m := lportal.Convert(s, s.Root(), lportal.Options{})

	if len(m.Rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(m.Rooms))
	}
	if len(m.Portals) != 2 {
		t.Fatalf("expected 2 portals (one mirror), got %d", len(m.Portals))
	}

	// Find room A's index.
	var ai int
	for i, r := range m.Rooms {
		if r.Name == "A" {
			ai = i
		}
	}
	room := m.Rooms[ai]
	casters := lportal.Slice(m.ShadowCasters, room.Casters)
	if len(casters) != 1 {
		t.Fatalf("expected room A to see exactly 1 shadow caster from B, got %d", len(casters))
	}

	seen := map[int]bool{}
	for _, oi := range casters {
		if seen[oi] {
			t.Errorf("caster %d listed twice", oi)
		}
		seen[oi] = true
	}
}

// TestMirrorPortalInvariant covers the mirror-symmetry property for
// a simple two-room scene.
func TestMirrorPortalInvariant(t *testing.T) {
	s := scene.New()
	roomA := s.AddRoom(s.Root(), "A", at(0, 0, 0))
	s.AddRoom(s.Root(), "B", at(10, 0, 0))
	s.AddPortal(roomA, "B", at(5, 0, 0), squarePortal())

	m := lportal.Convert(s, s.Root(), lportal.Options{})
	if len(m.Portals) != 2 {
		t.Fatalf("expected 2 portals, got %d", len(m.Portals))
	}

	p0, p1 := m.Portals[0], m.Portals[1]
	var orig, mirror lportal.Portal
	if p0.Mirror {
		mirror, orig = p0, p1
	} else {
		mirror, orig = p1, p0
	}
	if !mirror.Mirror {
		t.Fatal("expected exactly one of the two portals to be a mirror")
	}
	if orig.Room != mirror.LinkedRoom || orig.LinkedRoom != mirror.Room {
		t.Errorf("mirror does not link back to the originating room")
	}
	if !orig.Plane.N.Neg().Aeq(mirror.Plane.N) {
		t.Errorf("mirror normal %v is not the negation of original %v", mirror.Plane.N, orig.Plane.N)
	}
	if !geom.Aeq(orig.Plane.D, -mirror.Plane.D) {
		t.Errorf("mirror d %v is not the negation of original %v", mirror.Plane.D, orig.Plane.D)
	}
}

// TestThreeRoomChain covers scenario 2: three rooms in a line
// A-B-C, with a directional light in A facing -X (see facingMinusX) so the
// shadow-caster resolver walks from A through B into C; C's objects that
// pass both portal clips must be listed as A's casters exactly once.
func TestThreeRoomChain(t *testing.T) {
	s := scene.New()
	roomA := s.AddRoom(s.Root(), "A", at(0, 0, 0))
	roomB := s.AddRoom(s.Root(), "B", at(10, 0, 0))
	roomC := s.AddRoom(s.Root(), "C", at(20, 0, 0))

	s.AddPortal(roomA, "B", at(5, 0, 0), squarePortal())
	s.AddPortal(roomB, "C", at(15, 0, 0), squarePortal())

	objC := s.AddObject(roomC, "crate", at(20, 0, 0), boxAABB(geom.Vec3(20, 0, 0)))
	s.SetShadowCaster(objC, true)

	s.AddLight(roomA, "sun", facingMinusX(geom.Vec3(0, 0, 0)), lportal.LightInfo{Type: lportal.LightDirectional, MaxDist: 100})

	m := lportal.Convert(s, s.Root(), lportal.Options{})

	var ai int
	for i, r := range m.Rooms {
		if r.Name == "A" {
			ai = i
		}
	}
	casters := lportal.Slice(m.ShadowCasters, m.Rooms[ai].Casters)
	count := 0
	for _, oi := range casters {
		if m.Objects[oi].Node == objC {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected C's object to be A's caster exactly once, got %d", count)
	}
}

// TestNineRoomChainDepthLimit covers scenario 3: a chain of 9
// rooms, where objects in the last room are beyond MaxPortalDepth and
// must not appear as casters; a single warning is emitted.
func TestNineRoomChainDepthLimit(t *testing.T) {
	s := scene.New()
	const n = 9
	rooms := make([]lportal.NodeID, n)
	for i := 0; i < n; i++ {
		name := string(rune('A' + i))
		rooms[i] = s.AddRoom(s.Root(), name, at(float64(i)*10, 0, 0))
	}
	for i := 0; i < n-1; i++ {
		targetName := string(rune('A' + i + 1))
		s.AddPortal(rooms[i], targetName, at(float64(i)*10+5, 0, 0), squarePortal())
	}

	lastObj := s.AddObject(rooms[n-1], "far-crate", at(float64(n-1)*10, 0, 0), boxAABB(geom.Vec3(float64(n-1)*10, 0, 0)))
	s.SetShadowCaster(lastObj, true)

	s.AddLight(rooms[0], "sun", facingMinusX(geom.Vec3(0, 0, 0)), lportal.LightInfo{Type: lportal.LightDirectional, MaxDist: 1000})

	var warnings []string
	m := lportal.Convert(s, s.Root(), lportal.Options{
		WarnSink: func(msg string) { warnings = append(warnings, msg) },
	})

	var ai int
	for i, r := range m.Rooms {
		if r.Name == "A" {
			ai = i
		}
	}
	casters := lportal.Slice(m.ShadowCasters, m.Rooms[ai].Casters)
	for _, oi := range casters {
		if m.Objects[oi].Node == lastObj {
			t.Errorf("object past depth limit should not be a caster of room A")
		}
	}
}

// TestPlanePoolExhaustion covers scenario 4: a plane pool with
// fewer slots than a chain of portals requires to hold one slot per
// recursion depth simultaneously. Conversion must still complete, the
// pruned branch must contribute no casters, and at least one warn-once
// message must be emitted for the exhausted pool.
func TestPlanePoolExhaustion(t *testing.T) {
	s := scene.New()
	const n = 6 // 6 rooms, 5 portals: one pool slot per depth 1..6.
	rooms := make([]lportal.NodeID, n)
	for i := 0; i < n; i++ {
		name := string(rune('A' + i))
		rooms[i] = s.AddRoom(s.Root(), name, at(float64(i)*10, 0, 0))
	}
	for i := 0; i < n-1; i++ {
		targetName := string(rune('A' + i + 1))
		s.AddPortal(rooms[i], targetName, at(float64(i)*10+5, 0, 0), squarePortal())
	}

	lastObj := s.AddObject(rooms[n-1], "far-crate", at(float64(n-1)*10, 0, 0), boxAABB(geom.Vec3(float64(n-1)*10, 0, 0)))
	s.SetShadowCaster(lastObj, true)

	s.AddLight(rooms[0], "sun", facingMinusX(geom.Vec3(0, 0, 0)), lportal.LightInfo{Type: lportal.LightDirectional, MaxDist: 1000})

	var warnings []string
	m := lportal.Convert(s, s.Root(), lportal.Options{
		PoolCapacity: 4,
		WarnSink:     func(msg string) { warnings = append(warnings, msg) },
	})
	if m == nil {
		t.Fatal("expected conversion to complete despite pool exhaustion")
	}

	var ai int
	for i, r := range m.Rooms {
		if r.Name == "A" {
			ai = i
		}
	}
	for _, oi := range lportal.Slice(m.ShadowCasters, m.Rooms[ai].Casters) {
		if m.Objects[oi].Node == lastObj {
			t.Errorf("pruned branch must not contribute the far room's object as a caster")
		}
	}

	exhaustionWarnings := 0
	for _, w := range warnings {
		if containsAny(w, "pool exhausted") {
			exhaustionWarnings++
		}
	}
	if exhaustionWarnings == 0 {
		t.Errorf("expected at least one pool-exhaustion warning")
	}
}

func containsAny(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// TestOverlappingBoundPlanes covers scenario 5: two bound planes
// differing by d = 0.04 must dedup to one.
func TestOverlappingBoundPlanes(t *testing.T) {
	n1 := geom.Vec3(0, 1, 0)
	p1 := geom.NewPlane(n1, geom.Vec3(0, 2, 0))
	p2 := geom.NewPlane(n1, geom.Vec3(0, 2.04, 0))
	if !p1.AlmostEqual(p2) {
		t.Fatalf("expected planes 0.04 apart to dedup")
	}

	var planes []geom.Plane
	addIfUnique := func(p geom.Plane) {
		for _, e := range planes {
			if e.AlmostEqual(p) {
				return
			}
		}
		planes = append(planes, p)
	}
	addIfUnique(p1)
	addIfUnique(p2)
	if len(planes) != 1 {
		t.Errorf("expected exactly one retained plane, got %d", len(planes))
	}
}

// TestUnresolvedPortalTarget covers scenario 6: a portal whose
// target name matches no room is dropped with a warning; other portals
// are unaffected.
func TestUnresolvedPortalTarget(t *testing.T) {
	s := scene.New()
	roomA := s.AddRoom(s.Root(), "A", at(0, 0, 0))
	s.AddRoom(s.Root(), "B", at(10, 0, 0))

	s.AddPortal(roomA, "NoSuchRoom", at(2, 0, 0), squarePortal())
	s.AddPortal(roomA, "B", at(5, 0, 0), squarePortal())

	var warnings []string
	m := lportal.Convert(s, s.Root(), lportal.Options{
		WarnSink: func(msg string) { warnings = append(warnings, msg) },
	})

	if len(m.Portals) != 2 {
		t.Fatalf("expected only the resolvable portal (plus its mirror), got %d", len(m.Portals))
	}
	if len(warnings) == 0 {
		t.Errorf("expected a warning for the unresolved portal target")
	}
}

// TestHideAllOnCompletion covers: every SOB is hidden after
// conversion, and geometry instances have their cull margin reset.
func TestHideAllOnCompletion(t *testing.T) {
	s := scene.New()
	room := s.AddRoom(s.Root(), "A", at(0, 0, 0))
	obj := s.AddObject(room, "crate", at(0, 0, 0), boxAABB(geom.Vec3(0, 0, 0)))

	lportal.Convert(s, s.Root(), lportal.Options{})

	if s.Visible(obj) {
		t.Errorf("expected object hidden after conversion")
	}
	if s.ExtraCullMargin(obj) != 0 {
		t.Errorf("expected cull margin reset to 0")
	}
}

// TestRoomObjectSlicesContiguous covers per-room object slices
// are contiguous and cover [0, len(Objects)) without overlap.
func TestRoomObjectSlicesContiguous(t *testing.T) {
	s := scene.New()
	roomA := s.AddRoom(s.Root(), "A", at(0, 0, 0))
	roomB := s.AddRoom(s.Root(), "B", at(10, 0, 0))
	s.AddPortal(roomA, "B", at(5, 0, 0), squarePortal())
	s.AddObject(roomA, "a1", at(0, 0, 0), boxAABB(geom.Vec3(0, 0, 0)))
	s.AddObject(roomA, "a2", at(1, 0, 0), boxAABB(geom.Vec3(1, 0, 0)))
	s.AddObject(roomB, "b1", at(10, 0, 0), boxAABB(geom.Vec3(10, 0, 0)))

	m := lportal.Convert(s, s.Root(), lportal.Options{})

	covered := make([]bool, len(m.Objects))
	for _, r := range m.Rooms {
		for i := r.Objects.First; i < r.Objects.First+r.Objects.Count; i++ {
			if covered[i] {
				t.Errorf("object %d covered by more than one room", i)
			}
			covered[i] = true
		}
	}
	for i, c := range covered {
		if !c {
			t.Errorf("object %d not covered by any room", i)
		}
	}
}

// TestConvertIsDeterministic covers the round-trip/idempotence
// property: running Convert twice on the same scene yields the same
// shadow-caster counts per room.
func TestConvertIsDeterministic(t *testing.T) {
	build := func() *scene.Scene {
		s := scene.New()
		roomA := s.AddRoom(s.Root(), "A", at(0, 0, 0))
		roomB := s.AddRoom(s.Root(), "B", at(10, 0, 0))
		s.AddPortal(roomA, "B", at(5, 0, 0), squarePortal())
		obj := s.AddObject(roomB, "crate", at(10, 0, 0), boxAABB(geom.Vec3(10, 0, 0)))
		s.SetShadowCaster(obj, true)
		s.AddLight(roomA, "sun", facingMinusX(geom.Vec3(0, 0, 0)), lportal.LightInfo{Type: lportal.LightDirectional, MaxDist: 100})
		return s
	}

	s1 := build()
	m1 := lportal.Convert(s1, s1.Root(), lportal.Options{})
	s2 := build()
	m2 := lportal.Convert(s2, s2.Root(), lportal.Options{})

	if len(m1.Rooms) != len(m2.Rooms) || len(m1.Portals) != len(m2.Portals) {
		t.Fatalf("structural mismatch across repeated conversion")
	}
	for i := range m1.Rooms {
		if m1.Rooms[i].Casters.Count != m2.Rooms[i].Casters.Count {
			t.Errorf("room %d caster count differs: %d vs %d", i, m1.Rooms[i].Casters.Count, m2.Rooms[i].Casters.Count)
		}
	}
}
