package lportal_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/lawnjelly/lportal/geom"
	"github.com/lawnjelly/lportal/lportal"
	"github.com/lawnjelly/lportal/scene"
)

// buildChain constructs a linear chain of n rooms, each 10 units apart
// along +X and joined by one portal to the next, each room holding
// objCounts[i] static objects scattered around its centre. It returns the
// scene, each room's NodeID (indexed 0..n-1), and every object's NodeID
// in harvest order.
func buildChain(n int, objCounts []int) (s *scene.Scene, rooms []lportal.NodeID, objects []lportal.NodeID) {
	s = scene.New()
	rooms = make([]lportal.NodeID, n)
	for i := 0; i < n; i++ {
		name := "r" + string(rune('0'+i))
		rooms[i] = s.AddRoom(s.Root(), name, at(float64(i)*10, 0, 0))
		for o := 0; o < objCounts[i]; o++ {
			obj := s.AddObject(rooms[i], "obj",
				at(float64(i)*10+float64(o)*0.01, 0, 0),
				boxAABB(geom.Vec3(float64(i)*10, 0, 0)))
			objects = append(objects, obj)
		}
	}
	for i := 0; i < n-1; i++ {
		target := "r" + string(rune('0'+i+1))
		s.AddPortal(rooms[i], target, at(float64(i)*10+5, 0, 0), squarePortal())
	}
	return s, rooms, objects
}

// TestPropertyMirrorInvariant checks the invariant for randomly
// sized room chains: every authored portal gets exactly one mirror, with
// reversed winding (flipped plane) and linked_room equal to the portal's
// own home room.
func TestPropertyMirrorInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 6).Draw(rt, "n")
		objCounts := make([]int, n)
		for i := range objCounts {
			objCounts[i] = rapid.IntRange(0, 3).Draw(rt, "objs")
		}
		s, _, _ := buildChain(n, objCounts)
		m := lportal.Convert(s, s.Root(), lportal.Options{})

		for _, p := range m.Portals {
			if p.Mirror {
				continue
			}
			found := 0
			for _, q := range m.Portals {
				if !q.Mirror || q.LinkedRoom != p.Room || q.Room != p.LinkedRoom {
					continue
				}
				found++
				if !geom.Aeq(q.Plane.N.Dot(p.Plane.N), -1) {
					rt.Fatalf("mirror normal not reversed: %v vs %v", p.Plane.N, q.Plane.N)
				}
				if !geom.Aeq(q.Plane.D, -p.Plane.D) {
					rt.Fatalf("mirror d not flipped: %v vs %v", p.Plane.D, q.Plane.D)
				}
			}
			if found != 1 {
				rt.Fatalf("portal %q has %d mirrors, want 1", p.Name, found)
			}
		}
	})
}

// TestPropertyObjectSlicesCoverArray checks the invariant: every
// room's Objects range is contiguous and non-overlapping, and the union
// covers the full Objects array in room-index order, for any room count
// and object distribution.
func TestPropertyObjectSlicesCoverArray(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "n")
		objCounts := make([]int, n)
		total := 0
		for i := range objCounts {
			objCounts[i] = rapid.IntRange(0, 4).Draw(rt, "objs")
			total += objCounts[i]
		}
		s, _, _ := buildChain(n, objCounts)
		m := lportal.Convert(s, s.Root(), lportal.Options{})

		if len(m.Objects) != total {
			rt.Fatalf("object count %d, want %d", len(m.Objects), total)
		}
		want := 0
		for i, room := range m.Rooms {
			if room.Objects.First != want {
				rt.Fatalf("room %d first=%d, want %d", i, room.Objects.First, want)
			}
			want += room.Objects.Count
		}
		if want != len(m.Objects) {
			rt.Fatalf("slices cover %d objects, want %d", want, len(m.Objects))
		}
	})
}

// TestPropertyCasterSlicesDedup checks the invariant: no object
// appears twice in any room's shadow-caster slice, across random chain
// shapes with every object flagged a shadow caster (so dedup is actually
// exercised, not just the absence of casters).
func TestPropertyCasterSlicesDedup(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 5).Draw(rt, "n")
		objCounts := make([]int, n)
		for i := range objCounts {
			objCounts[i] = rapid.IntRange(0, 3).Draw(rt, "objs")
		}
		s, _, objects := buildChain(n, objCounts)
		for _, obj := range objects {
			s.SetShadowCaster(obj, true)
		}
		s.AddLight(s.Root(), "sun", facingMinusX(geom.Vec3(0, 0, 0)), lportal.LightInfo{
			Type: lportal.LightDirectional, MaxDist: 1000,
		})
		m := lportal.Convert(s, s.Root(), lportal.Options{})

		for _, room := range m.Rooms {
			seen := map[int]bool{}
			for _, ci := range lportal.Slice(m.ShadowCasters, room.Casters) {
				if seen[ci] {
					rt.Fatalf("room %q: duplicate caster id %d", room.Name, ci)
				}
				seen[ci] = true
			}
		}
	})
}

// TestPropertyDepthLimitBounds checks the depth-limit property:
// for a chain long enough that the last room sits more than
// MaxPortalDepth portal hops from room 0, the last room's object never
// appears in room 0's shadow-caster slice, regardless of how long the
// chain is beyond that.
func TestPropertyDepthLimitBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		extra := rapid.IntRange(1, 5).Draw(rt, "extra")
		n := lportal.MaxPortalDepth + 1 + extra // last room unreachable within the limit.

		objCounts := make([]int, n)
		s, rooms, _ := buildChain(n, objCounts)
		lastObj := s.AddObject(rooms[n-1], "far", at(float64(n-1)*10, 0, 0), boxAABB(geom.Vec3(float64(n-1)*10, 0, 0)))
		s.SetShadowCaster(lastObj, true)
		// A global light reaches every room without tracing, so
		// resolveShadowCasters walks outward from room 0 regardless
		// of any local light's reach, exactly what this property
		// wants to stress.
		s.AddLight(s.Root(), "sun", facingMinusX(geom.Vec3(0, 0, 0)), lportal.LightInfo{
			Type: lportal.LightDirectional, MaxDist: 1000,
		})

		m := lportal.Convert(s, s.Root(), lportal.Options{})

		room0 := m.Rooms[0]
		for _, oi := range lportal.Slice(m.ShadowCasters, room0.Casters) {
			if m.Objects[oi].Node == lastObj {
				rt.Fatalf("object %d hops away appeared as a caster of room 0 past the depth limit", n-1)
			}
		}
	})
}
