package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnjelly/lportal/lportal"
	"github.com/lawnjelly/lportal/scene"
	"github.com/lawnjelly/lportal/sceneyaml"
)

func convertFixture(t *testing.T, s *scene.Scene, root lportal.NodeID) *lportal.Manager {
	t.Helper()
	return lportal.Convert(s, root, lportal.Options{})
}

const sampleScene = `
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
  - name: B
    transform: {pos: [10, 0, 0]}
    objects:
      - name: crate
        transform: {pos: [10, 0, 0]}
        aabb: {min: [9.5, -0.5, -0.5], max: [10.5, 0.5, 0.5]}
`

func TestBuildReport(t *testing.T) {
	s, root, err := sceneyaml.Load([]byte(sampleScene))
	require.NoError(t, err)

	m := convertFixture(t, s, root)
	r := buildReport(m)

	require.Len(t, r.Rooms, 2)
	assert.Equal(t, 2, r.Portals, "a declared portal plus its synthesized mirror")
	assert.Equal(t, 1, r.Objects)
	for _, room := range r.Rooms {
		assert.NotEmpty(t, room.UUID)
	}
}

func TestWriteReportToFile(t *testing.T) {
	s, root, err := sceneyaml.Load([]byte(sampleScene))
	require.NoError(t, err)
	m := convertFixture(t, s, root)

	dir := t.TempDir()
	out := filepath.Join(dir, "report.json")
	require.NoError(t, writeReport(out, buildReport(m)))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"object_count"`)
}

func TestLoadSceneDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScene), 0o644))

	s, root, err := loadScene(path)
	require.NoError(t, err)
	assert.NotNil(t, s)
	assert.GreaterOrEqual(t, int(root), 0)
}
