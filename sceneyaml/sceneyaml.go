// Package sceneyaml loads an in-memory scene.Scene from a direct,
// human-authorable YAML mapping of the room_/portal_/bound_/ignore_/light
// naming contract: an artist writes rooms, portals, bounds and lights by
// name instead of by placing prefixed nodes in a DCC tool.
package sceneyaml

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lawnjelly/lportal/geom"
	"github.com/lawnjelly/lportal/lportal"
	"github.com/lawnjelly/lportal/scene"
)

// Load parses data as a scene document and builds the equivalent
// scene.Scene. It returns the scene and the host-agnostic root id that
// lportal.Convert should be run against.
func Load(data []byte) (*scene.Scene, lportal.NodeID, error) {
	var doc sceneDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("sceneyaml: %w", err)
	}

	s := scene.New()
	for _, r := range doc.Rooms {
		if err := addRoom(s, r); err != nil {
			return nil, 0, fmt.Errorf("sceneyaml: room %q: %w", r.Name, err)
		}
	}
	for _, l := range doc.GlobalLights {
		if err := addLight(s, s.Root(), l); err != nil {
			return nil, 0, fmt.Errorf("sceneyaml: global light %q: %w", l.Name, err)
		}
	}
	return s, s.Root(), nil
}

func addRoom(s *scene.Scene, r roomDoc) error {
	room := s.AddRoom(s.Root(), r.Name, r.Transform.toGeom())

	for _, o := range r.Objects {
		obj := s.AddObject(room, o.Name, o.Transform.toGeom(), o.AABB.toGeom())
		if o.ShadowCaster {
			s.SetShadowCaster(obj, true)
		}
	}
	for _, p := range r.Portals {
		if len(p.Verts) < 3 {
			return fmt.Errorf("portal %q: fewer than 3 vertices", p.Target)
		}
		s.AddPortal(room, p.Target, p.Transform.toGeom(), toV3s(p.Verts))
	}
	if r.Bound != nil {
		if len(r.Bound.Verts) < 4 {
			return fmt.Errorf("bound: fewer than 4 vertices")
		}
		s.AddBound(room, r.Name, r.Bound.Transform.toGeom(), toV3s(r.Bound.Verts))
	}
	for _, ig := range r.Ignore {
		s.AddIgnore(room, ig.Name, ig.Transform.toGeom())
	}
	for _, l := range r.Lights {
		if err := addLight(s, room, l); err != nil {
			return err
		}
	}
	return nil
}

func addLight(s *scene.Scene, parent lportal.NodeID, l lightDoc) error {
	lt, ok := lightTypes[l.Type]
	if !ok {
		return fmt.Errorf("light %q: unsupported type %q", l.Name, l.Type)
	}
	s.AddLight(parent, l.Name, l.Transform.toGeom(), lportal.LightInfo{
		Type:       lt,
		MaxDist:    l.MaxDist,
		SpotSpread: l.SpotSpread,
	})
	return nil
}

var lightTypes = map[string]lportal.LightType{
	"directional": lportal.LightDirectional,
	"omni":        lportal.LightOmni,
	"spot":        lportal.LightSpot,
}

// sceneDoc is the root of a scene YAML document.
type sceneDoc struct {
	Name         string      `yaml:"name"`
	Rooms        []roomDoc   `yaml:"rooms"`
	GlobalLights []lightDoc  `yaml:"global_lights"`
}

type roomDoc struct {
	Name      string      `yaml:"name"`
	Transform transformDoc `yaml:"transform"`
	Objects   []objectDoc `yaml:"objects"`
	Portals   []portalDoc `yaml:"portals"`
	Bound     *boundDoc   `yaml:"bound"`
	Ignore    []ignoreDoc `yaml:"ignore"`
	Lights    []lightDoc  `yaml:"lights"`
}

type objectDoc struct {
	Name         string       `yaml:"name"`
	Transform    transformDoc `yaml:"transform"`
	AABB         aabbDoc      `yaml:"aabb"`
	ShadowCaster bool         `yaml:"shadow_caster"`
}

type portalDoc struct {
	Target    string       `yaml:"target"`
	Transform transformDoc `yaml:"transform"`
	Verts     [][3]float64 `yaml:"verts"`
}

type boundDoc struct {
	Transform transformDoc `yaml:"transform"`
	Verts     [][3]float64 `yaml:"verts"`
}

type ignoreDoc struct {
	Name      string       `yaml:"name"`
	Transform transformDoc `yaml:"transform"`
}

type lightDoc struct {
	Name       string       `yaml:"name"`
	Transform  transformDoc `yaml:"transform"`
	Type       string       `yaml:"type"`
	MaxDist    float64      `yaml:"max_dist"`
	SpotSpread float64      `yaml:"spot_spread"`
}

type transformDoc struct {
	Pos     [3]float64 `yaml:"pos"`
	Forward [3]float64 `yaml:"forward"` // defaults to -Z if all zero.
	Up      [3]float64 `yaml:"up"`      // defaults to +Y if all zero.
}

func (t transformDoc) toGeom() geom.Transform {
	fwd := geom.Vec3(t.Forward[0], t.Forward[1], t.Forward[2])
	up := geom.Vec3(t.Up[0], t.Up[1], t.Up[2])
	if fwd == (geom.V3{}) {
		fwd = geom.Vec3(0, 0, -1)
	}
	if up == (geom.V3{}) {
		up = geom.Vec3(0, 1, 0)
	}
	z := fwd.Neg().Unit()
	x := up.Cross(z).Unit()
	y := z.Cross(x)
	return geom.Transform{
		Basis:  geom.Basis{X: x, Y: y, Z: z},
		Origin: geom.Vec3(t.Pos[0], t.Pos[1], t.Pos[2]),
	}
}

type aabbDoc struct {
	Min [3]float64 `yaml:"min"`
	Max [3]float64 `yaml:"max"`
}

func (a aabbDoc) toGeom() geom.AABB {
	return geom.AABB{
		Min: geom.Vec3(a.Min[0], a.Min[1], a.Min[2]),
		Max: geom.Vec3(a.Max[0], a.Max[1], a.Max[2]),
	}
}

func toV3s(pts [][3]float64) []geom.V3 {
	out := make([]geom.V3, len(pts))
	for i, p := range pts {
		out[i] = geom.Vec3(p[0], p[1], p[2])
	}
	return out
}
