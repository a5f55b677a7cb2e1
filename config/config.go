// Package config loads the optional, YAML-backed tuning knobs for the
// routing core: lattice density, connection threshold, expansion cap, and
// threat thresholds. Shaped after vanderheijden86/beadwork's pkg/config:
// a flat struct, a DefaultConfig() constructor, and a Load that falls back
// to defaults when no file is present.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GraphConfig controls BuildGraph's lattice and connectivity.
type GraphConfig struct {
	LatticeDensity int     `yaml:"lattice_density,omitempty"`
	ConnectKm      float64 `yaml:"connect_km,omitempty"`
}

// SearchConfig controls the A* search's exploration cap. Callers thread
// MaxExpansions into a saferoute.RouteOptions (see cmd/saferoute/main.go).
type SearchConfig struct {
	MaxExpansions int `yaml:"max_expansions,omitempty"`
}

// ThreatConfig controls the UTI thresholds route analysis flags as threats.
// Callers thread these into saferoute.RouteOptions and saferoute.AnalyseOptions
// respectively (see cmd/saferoute/main.go).
type ThreatConfig struct {
	GraphEdgeThreshold       float64 `yaml:"graph_edge_threshold,omitempty"`
	PolylineSegmentThreshold float64 `yaml:"polyline_segment_threshold,omitempty"`
}

// Config is the top-level saferoute configuration.
type Config struct {
	Graph  GraphConfig  `yaml:"graph,omitempty"`
	Search SearchConfig `yaml:"search,omitempty"`
	Threat ThreatConfig `yaml:"threat,omitempty"`

	// OSRMBaseURL, when set, points the provider package at an
	// OSRM-compatible walking-routes endpoint.
	OSRMBaseURL string `yaml:"osrm_base_url,omitempty"`
}

// DefaultConfig returns a Config matching spec.md's named defaults: a 25x25
// lattice, 0.2km connection threshold, and a 15000-expansion search cap.
func DefaultConfig() Config {
	return Config{
		Graph: GraphConfig{
			LatticeDensity: 25,
			ConnectKm:      0.2,
		},
		Search: SearchConfig{
			MaxExpansions: 15000,
		},
		Threat: ThreatConfig{
			GraphEdgeThreshold:       0.5,
			PolylineSegmentThreshold: 0.4,
		},
		OSRMBaseURL: "https://router.project-osrm.org",
	}
}

// Load reads a YAML config file at path, overlaying it onto DefaultConfig.
// A missing file is not an error — it yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
