package lportal

import "github.com/lawnjelly/lportal/geom"

// Range is a [first, count) tuple into one of the Manager's dense global
// arrays: a contiguous, non-overlapping slice owned by one room or light.
type Range struct {
	First, Count int
}

// Slice returns the elements of s that fall within r.
func Slice[T any](s []T, r Range) []T {
	return s[r.First : r.First+r.Count]
}

// Room is a convex-ish spatial region explicitly authored in the scene;
// the unit of per-frame visibility.
type Room struct {
	Name     string // short name, after room_.
	Node     NodeID
	Index    int
	Centroid geom.V3
	AABB     geom.AABB

	LocalLights []int // indices into Manager.Lights.

	Objects Range // into Manager.Objects.
	Portals Range // into Manager.Portals.
	Casters Range // into Manager.ShadowCasters (object indices).

	Bound RoomBound
}

// RoomBound is a room's convex interior: a set of inward-facing planes
// plus the AABB the bound mesh expanded. Planes point inward under the
// project_range_in_plane convention: n.x + d <= 0 inside the room.
type RoomBound struct {
	Planes []geom.Plane
	AABB   geom.AABB
	Built  bool
}

// Portal is a convex planar polygon connecting exactly two rooms.
type Portal struct {
	Name       string
	Room       int // index of the room this portal belongs to (the source room).
	LinkedRoom int // index of the room this portal leads to.
	Plane      geom.Plane
	Polygon    []geom.V3 // ordered vertices, world space.
	Centroid   geom.V3
	Mirror     bool
}

// StaticObject is a visual instance registered with a room: the unit of
// culling and shadow-casting.
type StaticObject struct {
	Node               NodeID
	AABB               geom.AABB
	IsGeometryInstance bool
}

// Light is a local or global light affecting some set of rooms.
type Light struct {
	Node       NodeID
	Type       LightType
	Position   geom.V3
	Direction  geom.V3 // unit; meaningful for directional/spot.
	SpotSpread float64
	MaxDist    float64
	HomeRoom   int // -1 for global lights.

	Casters Range // into Manager.LightCasters (object indices).
}

// Manager holds every dense global array the converter produces. It is
// the single owner of all cross-references between rooms, portals,
// objects and lights, always by index, never by pointer, the layout a
// runtime culler reads directly, and the thing a host implementation's
// NodeID values are ultimately resolved against during conversion.
type Manager struct {
	Rooms   []Room
	Portals []Portal
	Objects []StaticObject
	Lights  []Light

	// LightCasters and ShadowCasters are the global dense arrays that
	// per-light and per-room Casters ranges slice into.
	LightCasters  []int
	ShadowCasters []int

	Pool *PlanePool
}

// RoomByName finds a room by its short name, the linear name-search used
// to resolve a portal's target room.
func (m *Manager) RoomByName(name string) (int, bool) {
	for i := range m.Rooms {
		if m.Rooms[i].Name == name {
			return i, true
		}
	}
	return 0, false
}
