package main

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// config is the optional lportal.toml (read from the working directory
// unless --config names another path) that overrides the conversion core's tunable constants: plane-pool
// capacity and the plane dedup thresholds. Nothing here changes the
// core's algorithm, only its parameters.
type config struct {
	PoolCapacity  int     `toml:"pool_capacity"`
	PlaneDistTol  float64 `toml:"plane_dist_tolerance"`
	PlaneNormTol  float64 `toml:"plane_normal_tolerance"`
	MetricsListen string  `toml:"metrics_listen"`
}

// defaultConfig matches the conversion core's own hard-coded defaults
// (DefaultPoolCapacity, and the 0.08/0.98 plane dedup thresholds) so
// that omitting lportal.toml entirely reproduces the core's behaviour.
func defaultConfig() config {
	return config{
		PoolCapacity: 0, // 0 asks Convert for its own default.
		PlaneDistTol: 0.08,
		PlaneNormTol: 0.98,
	}
}

// loadConfig reads path if it exists, overlaying onto defaultConfig; a
// missing file is not an error, matching a CLI tool's usual "config is
// optional" convention.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
