package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/lawnjelly/lportal/lportal"
	"github.com/lawnjelly/lportal/scene"
	"github.com/lawnjelly/lportal/scenegltf"
	"github.com/lawnjelly/lportal/sceneyaml"
)

// loadScene dispatches on path's extension to the matching scene host
// adapter, the two independent authoring paths this module ships: hand
// yaml for tests/tools, glTF for artist-exported content.
func loadScene(path string) (*scene.Scene, lportal.NodeID, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return scenegltf.Load(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, err
		}
		return sceneyaml.Load(data)
	}
}

// report is the CLI's JSON summary of one Convert call: room/portal/caster
// counts plus a uuid per room, generated here since the in-memory scene
// package's NodeIDs are synthetic positional ids. The uuids are random and
// freshly generated on every call, so they differ between runs.
type report struct {
	Rooms   []roomReport `json:"rooms"`
	Portals int          `json:"portal_count"`
	Objects int          `json:"object_count"`
	Lights  int          `json:"light_count"`
}

type roomReport struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Objects  int    `json:"object_count"`
	Portals  int    `json:"portal_count"`
	Casters  int    `json:"caster_count"`
	HasBound bool   `json:"has_bound"`
}

func buildReport(m *lportal.Manager) report {
	r := report{
		Portals: len(m.Portals),
		Objects: len(m.Objects),
		Lights:  len(m.Lights),
	}
	for i := range m.Rooms {
		room := &m.Rooms[i]
		r.Rooms = append(r.Rooms, roomReport{
			UUID:     uuid.NewString(),
			Name:     room.Name,
			Objects:  room.Objects.Count,
			Portals:  room.Portals.Count,
			Casters:  room.Casters.Count,
			HasBound: room.Bound.Built,
		})
	}
	return r
}

func writeReport(path string, r report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
