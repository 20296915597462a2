// Package scenegltf loads an in-memory scene.Scene from a glTF 2.0
// document (.gltf or .glb), walking its node hierarchy and applying the
// same room_/portal_/bound_/ignore_ name-prefix contract an artist would
// use authoring directly in a DCC tool, and reading KHR_lights_punctual
// for light type, range and spot angle.
package scenegltf

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspuntual"
	"github.com/qmuntal/gltf/modeler"

	"github.com/lawnjelly/lportal/geom"
	"github.com/lawnjelly/lportal/lportal"
	"github.com/lawnjelly/lportal/scene"
)

const lightsExtension = "KHR_lights_punctual"

// Load opens path (.gltf or .glb) and returns the equivalent scene.Scene
// and its root id.
func Load(path string) (*scene.Scene, lportal.NodeID, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("scenegltf: open %q: %w", path, err)
	}
	return build(doc)
}

func build(doc *gltf.Document) (*scene.Scene, lportal.NodeID, error) {
	lights, err := readLightDefs(doc)
	if err != nil {
		return nil, 0, fmt.Errorf("scenegltf: %w", err)
	}

	s := scene.New()
	roots := sceneRootIndices(doc)
	for _, ri := range roots {
		if err := addNodeTree(s, doc, s.Root(), int(ri), lights); err != nil {
			return nil, 0, fmt.Errorf("scenegltf: %w", err)
		}
	}
	return s, s.Root(), nil
}

// addNodeTree creates the scene node for doc.Nodes[idx] under parent, then
// recurses into its glTF children with the freshly created node as their
// parent, every node is created parented in one pass, since a glTF
// document's node graph is a tree (or forest) rooted at the scene's node
// list, never a forward reference to a not-yet-created node.
func addNodeTree(s *scene.Scene, doc *gltf.Document, parent lportal.NodeID, idx int, lights lightspuntual.Lights) error {
	n := doc.Nodes[idx]
	id, err := addNode(s, doc, parent, idx, n, lights)
	if err != nil {
		return fmt.Errorf("node %d (%s): %w", idx, n.Name, err)
	}
	for _, c := range n.Children {
		if err := addNodeTree(s, doc, id, int(c), lights); err != nil {
			return err
		}
	}
	return nil
}

func addNode(s *scene.Scene, doc *gltf.Document, parent lportal.NodeID, idx int, n *gltf.Node, lights lightspuntual.Lights) (lportal.NodeID, error) {
	xf := nodeTransform(n)
	name := n.Name
	if name == "" {
		name = fmt.Sprintf("node_%d", idx)
	}

	if li, ok := nodeLightIndex(n); ok {
		if int(li) < 0 || int(li) >= len(lights) {
			return 0, fmt.Errorf("light index %d out of range", li)
		}
		return s.AddLight(parent, name, xf, toLightInfo(lights[li])), nil
	}

	if n.Mesh != nil {
		verts, err := meshVertices(doc, *n.Mesh)
		if err != nil {
			return 0, err
		}
		switch {
		case lportal.NameStartsWith(name, "portal_"):
			target := lportal.FindNameAfter(name, "portal_")
			return s.AddPortal(parent, target, xf, verts), nil
		case lportal.NameStartsWith(name, "bound_"):
			return s.AddBound(parent, name, xf, verts), nil
		default:
			aabb := verticesAABB(xf, verts)
			return s.AddObject(parent, name, xf, aabb), nil
		}
	}

	if lportal.NameStartsWith(name, "room_") {
		return s.AddRoom(parent, lportal.FindNameAfter(name, "room_"), xf), nil
	}
	if lportal.NameStartsWith(name, "ignore_") {
		return s.AddIgnore(parent, lportal.FindNameAfter(name, "ignore_"), xf), nil
	}
	return s.AddChild(parent, name, xf), nil
}

func sceneRootIndices(doc *gltf.Document) []uint32 {
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if int(c) < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []uint32
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, uint32(i))
		}
	}
	return roots
}

func nodeTransform(n *gltf.Node) geom.Transform {
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault() // [x, y, z, w]
	return geom.Transform{
		Basis:  quatToBasis(r[0], r[1], r[2], r[3]),
		Origin: geom.Vec3(t[0], t[1], t[2]),
	}
}

// quatToBasis converts a unit quaternion to an orthonormal basis; scale
// is intentionally dropped, since only orientation and position matter
// to portal/caster geometry.
func quatToBasis(x, y, z, w float64) geom.Basis {
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	return geom.Basis{
		X: geom.Vec3(1-2*(yy+zz), 2*(xy+wz), 2*(xz-wy)),
		Y: geom.Vec3(2*(xy-wz), 1-2*(xx+zz), 2*(yz+wx)),
		Z: geom.Vec3(2*(xz+wy), 2*(yz-wx), 1-2*(xx+yy)),
	}
}

func meshVertices(doc *gltf.Document, meshIdx uint32) ([]geom.V3, error) {
	mesh := doc.Meshes[meshIdx]
	var verts []geom.V3
	for pi, prim := range mesh.Primitives {
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			return nil, fmt.Errorf("mesh %q primitive %d: no POSITION attribute", mesh.Name, pi)
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, pi, err)
		}
		for _, p := range positions {
			verts = append(verts, geom.Vec3(float64(p[0]), float64(p[1]), float64(p[2])))
		}
	}
	return verts, nil
}

func verticesAABB(xf geom.Transform, localVerts []geom.V3) geom.AABB {
	aabb := geom.EmptyAABB()
	for _, v := range localVerts {
		aabb = aabb.ExpandToPoint(xf.Xform(v))
	}
	return aabb
}

// nodeLightIndex reads a node's KHR_lights_punctual extension, if present.
// The gltf package's extension unmarshaler decodes a node's reference as a
// lightspuntual.LightIndex directly (not raw JSON), the same assertion
// SolarLune-tetra3d's glTF importer relies on.
func nodeLightIndex(n *gltf.Node) (lightspuntual.LightIndex, bool) {
	raw, ok := n.Extensions[lightsExtension]
	if !ok {
		return 0, false
	}
	li, ok := raw.(lightspuntual.LightIndex)
	return li, ok
}

var gltfLightTypes = map[lightspuntual.Type]lportal.LightType{
	lightspuntual.TypeDirectional: lportal.LightDirectional,
	lightspuntual.TypePoint:       lportal.LightOmni,
	lightspuntual.TypeSpot:        lportal.LightSpot,
}

func toLightInfo(d lightspuntual.Light) lportal.LightInfo {
	info := lportal.LightInfo{Type: gltfLightTypes[d.Type]}
	if d.Range != nil {
		info.MaxDist = float64(*d.Range)
	}
	if d.Spot != nil {
		info.SpotSpread = float64(d.Spot.OuterConeAngle)
	}
	return info
}

// readLightDefs returns the document-level KHR_lights_punctual.lights
// array, or nil if the document declares no lights.
func readLightDefs(doc *gltf.Document) (lightspuntual.Lights, error) {
	raw, ok := doc.Extensions[lightsExtension]
	if !ok {
		return nil, nil
	}
	lights, ok := raw.(lightspuntual.Lights)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected extension payload type %T", lightsExtension, raw)
	}
	for _, l := range lights {
		if _, ok := gltfLightTypes[l.Type]; !ok {
			return nil, fmt.Errorf("%s: unsupported light type %q", lightsExtension, l.Type)
		}
	}
	return lights, nil
}
