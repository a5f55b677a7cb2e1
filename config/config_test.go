package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_MatchesSpecDefaults(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 25, cfg.Graph.LatticeDensity)
	require.Equal(t, 0.2, cfg.Graph.ConnectKm)
	require.Equal(t, 15000, cfg.Search.MaxExpansions)
	require.Equal(t, 0.5, cfg.Threat.GraphEdgeThreshold)
	require.Equal(t, 0.4, cfg.Threat.PolylineSegmentThreshold)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_OverlaysOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saferoute.yaml")
	body := []byte("graph:\n  lattice_density: 40\nthreat:\n  graph_edge_threshold: 0.6\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 40, cfg.Graph.LatticeDensity)
	require.Equal(t, 0.6, cfg.Threat.GraphEdgeThreshold)
	// Fields absent from the overlay keep their defaults.
	require.Equal(t, 0.2, cfg.Graph.ConnectKm)
	require.Equal(t, 15000, cfg.Search.MaxExpansions)
}

func TestLoad_MalformedFileErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saferoute.yaml")
	require.NoError(t, os.WriteFile(path, []byte(": not valid yaml: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
