// Package scene is the simplest lportal.Host implementation: an in-memory
// node tree built directly by Go code, with no authoring file format.
// It exists so the conversion core can be exercised end-to-end without a
// real game engine attached, and is what sceneyaml/scenegltf build on top
// of once they have parsed their respective formats into the same tree.
package scene

import (
	"github.com/lawnjelly/lportal/geom"
	"github.com/lawnjelly/lportal/lportal"
)

// Node is one entry in the in-memory scene graph.
type Node struct {
	id       lportal.NodeID
	name     string
	kind     lportal.NodeKind
	children []lportal.NodeID

	transform geom.Transform
	worldAABB geom.AABB
	vertices  []geom.V3

	light   lportal.LightInfo
	hasLight bool

	visible            bool
	layerMask          uint32
	extraCullMargin    float64
	isGeometryInstance bool
	isShadowCaster     bool
}

// Scene is an in-memory scene graph satisfying lportal.Host.
type Scene struct {
	nodes []Node // indexed by lportal.NodeID.
	root  lportal.NodeID
}

// New returns an empty scene with a single root spatial node.
func New() *Scene {
	s := &Scene{}
	s.root = s.newNode("root", lportal.KindSpatial, geom.IdentityTransform())
	return s
}

// Root returns the scene's root node id.
func (s *Scene) Root() lportal.NodeID { return s.root }

func (s *Scene) newNode(name string, kind lportal.NodeKind, xf geom.Transform) lportal.NodeID {
	id := lportal.NodeID(len(s.nodes))
	s.nodes = append(s.nodes, Node{
		id:        id,
		name:      name,
		kind:      kind,
		transform: xf,
		visible:   true,
	})
	return id
}

func (s *Scene) node(id lportal.NodeID) *Node { return &s.nodes[id] }

// AddChild creates a plain spatial child node under parent.
func (s *Scene) AddChild(parent lportal.NodeID, name string, xf geom.Transform) lportal.NodeID {
	id := s.newNode(name, lportal.KindSpatial, xf)
	s.attach(parent, id)
	return id
}

// AddRoom creates a room_<name> spatial child of parent (typically the root).
func (s *Scene) AddRoom(parent lportal.NodeID, name string, xf geom.Transform) lportal.NodeID {
	return s.AddChild(parent, "room_"+name, xf)
}

// AddObject creates a mesh child representing a static object, with the
// given world-space AABB (as a host's get_transformed_aabb would report).
func (s *Scene) AddObject(parent lportal.NodeID, name string, xf geom.Transform, worldAABB geom.AABB) lportal.NodeID {
	id := s.newNode(name, lportal.KindMesh, xf)
	n := s.node(id)
	n.worldAABB = worldAABB
	n.isGeometryInstance = true
	s.attach(parent, id)
	return id
}

// SetShadowCaster sets whether a static object currently casts shadows,
// queried live by the converter, exactly the way a real host re-reads a
// GeometryInstance's cast_shadows_setting rather than caching it.
func (s *Scene) SetShadowCaster(id lportal.NodeID, casts bool) {
	s.node(id).isShadowCaster = casts
}

// AddPortal creates a portal_<target> mesh child of room, with vertices
// given in the mesh's local space.
func (s *Scene) AddPortal(room lportal.NodeID, target string, xf geom.Transform, localVerts []geom.V3) lportal.NodeID {
	id := s.newNode("portal_"+target, lportal.KindMesh, xf)
	s.node(id).vertices = localVerts
	s.attach(room, id)
	return id
}

// AddBound creates a bound_<name> mesh child of room, with vertices given
// in the mesh's local space.
func (s *Scene) AddBound(room lportal.NodeID, name string, xf geom.Transform, localVerts []geom.V3) lportal.NodeID {
	id := s.newNode("bound_"+name, lportal.KindMesh, xf)
	s.node(id).vertices = localVerts
	s.attach(room, id)
	return id
}

// AddIgnore creates an ignore_<name> node under parent: kept with its
// room but never indexed as an object.
func (s *Scene) AddIgnore(parent lportal.NodeID, name string, xf geom.Transform) lportal.NodeID {
	return s.AddChild(parent, "ignore_"+name, xf)
}

// AddLight creates a light child of parent (typically a room, or the
// scene root for a global light).
func (s *Scene) AddLight(parent lportal.NodeID, name string, xf geom.Transform, info lportal.LightInfo) lportal.NodeID {
	id := s.newNode(name, lportal.KindLight, xf)
	n := s.node(id)
	n.light = info
	n.hasLight = true
	s.attach(parent, id)
	return id
}

func (s *Scene) attach(parent, child lportal.NodeID) {
	p := s.node(parent)
	p.children = append(p.children, child)
}

// lportal.Host implementation.

func (s *Scene) Children(n lportal.NodeID) []lportal.NodeID { return s.node(n).children }
func (s *Scene) Name(n lportal.NodeID) string                { return s.node(n).name }
func (s *Scene) Kind(n lportal.NodeID) lportal.NodeKind       { return s.node(n).kind }
func (s *Scene) Transform(n lportal.NodeID) geom.Transform    { return s.node(n).transform }
func (s *Scene) WorldAABB(n lportal.NodeID) geom.AABB         { return s.node(n).worldAABB }
func (s *Scene) MeshVertices(n lportal.NodeID) []geom.V3      { return s.node(n).vertices }

func (s *Scene) LightInfo(n lportal.NodeID) (lportal.LightInfo, bool) {
	node := s.node(n)
	return node.light, node.hasLight
}

func (s *Scene) Show(n lportal.NodeID, visible bool)               { s.node(n).visible = visible }
func (s *Scene) SetExtraCullMargin(n lportal.NodeID, margin float64) { s.node(n).extraCullMargin = margin }
func (s *Scene) SetLayerMask(n lportal.NodeID, mask uint32)          { s.node(n).layerMask = mask }
func (s *Scene) IsGeometryInstance(n lportal.NodeID) bool            { return s.node(n).isGeometryInstance }
func (s *Scene) IsShadowCaster(n lportal.NodeID) bool                { return s.node(n).isShadowCaster }

func (s *Scene) RemoveChild(parent, child lportal.NodeID) {
	p := s.node(parent)
	for i, c := range p.children {
		if c == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return
		}
	}
}

// Visible reports a node's current visibility, for tests asserting on
// the hide-all pass.
func (s *Scene) Visible(n lportal.NodeID) bool { return s.node(n).visible }

// ExtraCullMargin reports a node's current cull margin, for tests.
func (s *Scene) ExtraCullMargin(n lportal.NodeID) float64 { return s.node(n).extraCullMargin }
