package sceneyaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnjelly/lportal/lportal"
	"github.com/lawnjelly/lportal/sceneyaml"
)

const twoRoomDoc = `
rooms:
  - name: A
    transform: {pos: [0, 0, 0]}
    portals:
      - target: B
        transform: {pos: [5, 0, 0]}
        verts:
          - [0, -0.5, -0.5]
          - [0, 0.5, -0.5]
          - [0, 0.5, 0.5]
          - [0, -0.5, 0.5]
    lights:
      - name: sun
        type: directional
        max_dist: 100
        transform: {pos: [0, 0, 0], forward: [1, 0, 0]}
  - name: B
    transform: {pos: [10, 0, 0]}
    objects:
      - name: crate
        transform: {pos: [10, 0, 0]}
        aabb: {min: [9.5, -0.5, -0.5], max: [10.5, 0.5, 0.5]}
        shadow_caster: true
`

func TestLoadTwoRoomScene(t *testing.T) {
	s, root, err := sceneyaml.Load([]byte(twoRoomDoc))
	require.NoError(t, err)

	m := lportal.Convert(s, root, lportal.Options{})
	assert.Len(t, m.Rooms, 2)
	assert.Len(t, m.Portals, 2, "a declared portal plus its synthesized mirror")
	assert.Len(t, m.Objects, 1)
}

func TestLoadRejectsUnsupportedLightType(t *testing.T) {
	const doc = `
rooms:
  - name: A
    lights:
      - name: weird
        type: bogus
`
	_, _, err := sceneyaml.Load([]byte(doc))
	assert.Error(t, err)
}

func TestLoadRejectsShortPortalPolygon(t *testing.T) {
	const doc = `
rooms:
  - name: A
    portals:
      - target: B
        verts:
          - [0, 0, 0]
          - [0, 1, 0]
`
	_, _, err := sceneyaml.Load([]byte(doc))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, _, err := sceneyaml.Load([]byte("rooms: [this is not a room list"))
	assert.Error(t, err)
}
