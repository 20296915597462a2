// Package lportal is the conversion core: it ingests a scene graph in
// which rooms, portals, bounds and lights are identified by node-name
// convention, and produces the packed room/portal/object/light graph a
// runtime culler needs to do per-frame portal-traversal visibility and
// shadow-caster selection.
//
// The package never touches a concrete engine. Everything it reads from
// the scene comes through the Host interface, resolved by opaque NodeID
// values the host hands out; everything it writes is plain data held in
// a *Manager.
package lportal

import "github.com/lawnjelly/lportal/geom"

// NodeID is an opaque handle to a node in the host's scene graph. The
// core never interprets it beyond passing it back to Host methods and
// using it as a map/comparison key.
type NodeID int64

// NodeKind is the closed classification a node reduces to once a Host
// reports its underlying engine type. It collapses the host's dynamic
// node-type dispatch to a small enum the converter can switch on.
type NodeKind int

const (
	KindOther NodeKind = iota
	KindSpatial
	KindMesh
	KindLight
)

// LightType mirrors the three light subtypes the converter understands.
// Any other subtype is reported by LightInfo's ok=false and the light is
// dropped with a warning.
type LightType int

const (
	LightDirectional LightType = iota
	LightOmni
	LightSpot
)

// LightInfo is the subset of a light node's parameters the converter
// needs beyond its transform (already available via Host.Transform).
type LightInfo struct {
	Type       LightType
	MaxDist    float64 // shadow-max-distance, 0 if not applicable.
	SpotSpread float64 // spot light cone half-angle in radians, 0 otherwise.
}

// Host is every operation the converter needs from the engine-specific
// scene graph. A host implementation owns node identity and transforms;
// the converter owns nothing about the nodes themselves.
type Host interface {
	// Children returns n's immediate child nodes, in scene-graph order.
	Children(n NodeID) []NodeID
	// Name returns n's authored name, used for room_/portal_/bound_/
	// ignore_ prefix classification.
	Name(n NodeID) string
	// Kind reports the closed classification of n's underlying type.
	Kind(n NodeID) NodeKind
	// Transform returns n's global (world) transform.
	Transform(n NodeID) geom.Transform
	// WorldAABB returns n's world-space bounding box, as already
	// computed by the host (get_transformed_aabb in the source engine).
	WorldAABB(n NodeID) geom.AABB
	// MeshVertices returns every vertex position of n's mesh surfaces,
	// in n's local space.
	MeshVertices(n NodeID) []geom.V3
	// LightInfo returns n's light parameters. ok is false for light
	// subtypes the converter does not recognise.
	LightInfo(n NodeID) (info LightInfo, ok bool)
	// Show sets n's visibility.
	Show(n NodeID, visible bool)
	// SetExtraCullMargin resets a geometry instance's cull margin, used
	// only by the hide-all pass to defeat a visibility-caching quirk.
	SetExtraCullMargin(n NodeID, margin float64)
	// SetLayerMask zeroes a static object's render-layer bits so the
	// runtime culler has exclusive control of its visibility.
	SetLayerMask(n NodeID, mask uint32)
	// IsGeometryInstance reports whether n supports cull-margin and
	// shadow-casting queries (as opposed to a generic VisualInstance).
	IsGeometryInstance(n NodeID) bool
	// IsShadowCaster reports n's current shadow-casting setting. Queried
	// live at resolve time, never cached.
	IsShadowCaster(n NodeID) bool
	// RemoveChild detaches child from parent; used to strip authoring-only
	// nodes (bound meshes, portal meshes) from the live scene tree.
	RemoveChild(parent, child NodeID)
}
