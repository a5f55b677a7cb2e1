package saferoute

import (
	"strings"
	"testing"
	"time"

	"github.com/gotidy/ptr"
	"github.com/stretchr/testify/require"
)

// S5: polyline analysis at 03:00 UTC over waterfront points should flag at
// least one threat segment citing both waterfront and late-night reasons.
func TestAnalysePolyline_S5WaterfrontNight(t *testing.T) {
	points := []Coord{
		{Lat: 40.7589, Lng: -73.9851},
		{Lat: 40.7600, Lng: -74.0100},
		{Lat: 40.7620, Lng: -74.0200},
	}
	now := time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC)

	result := AnalysePolyline(points, now, nil)

	require.GreaterOrEqual(t, len(result.ThreatSegments), 1)
	found := false
	for _, seg := range result.ThreatSegments {
		if strings.Contains(seg.Reason, "Waterfront") && strings.Contains(seg.Reason, "Late night") {
			found = true
		}
	}
	require.True(t, found, "expected a segment citing both waterfront and late-night reasons, got %+v", result.ThreatSegments)
}

func TestAnalysePolyline_ThreatSegmentIndices(t *testing.T) {
	points := make([]Coord, 37)
	for i := range points {
		points[i] = Coord{Lat: 40.70 + float64(i)*0.001, Lng: -74.02 + float64(i)*0.0005}
	}

	result := AnalysePolyline(points, pinnedTimestamp, nil)

	lastEnd := -1
	for _, seg := range result.ThreatSegments {
		require.GreaterOrEqual(t, seg.StartIdx, 0)
		require.Less(t, seg.StartIdx, seg.EndIdx)
		require.Less(t, seg.EndIdx, len(result.Path))
		require.Greater(t, seg.StartIdx, lastEnd-1)
		lastEnd = seg.EndIdx
	}
}

func TestAnalysePolyline_Empty(t *testing.T) {
	result := AnalysePolyline(nil, pinnedTimestamp, nil)
	require.Empty(t, result.Path)
	require.Empty(t, result.ThreatSegments)
}

// Polyline round-trip (spec.md §8 invariant 7): analysing the path of a
// graph-based RouteResult reproduces distance and safety-relevant shape,
// up to route_type/algorithm_config.
func TestAnalysePolyline_RoundTrip(t *testing.T) {
	g := newS1Graph(t)
	route, err := g.Route(Coord{Lat: 40.7500, Lng: -73.9800}, Coord{Lat: 40.7700, Lng: -73.9600}, 0.5, nil)
	require.NoError(t, err)

	reanalysed := AnalysePolyline(route.Path, pinnedTimestamp, nil)

	require.Equal(t, route.Path, reanalysed.Path)
	require.InDelta(t, route.DistanceKm, reanalysed.DistanceKm, 0.05)
}

// AnalyseOptions.SegmentThreshold lets a caller widen or narrow which
// windows get reported as ThreatSegments without touching the windowing
// algorithm itself.
func TestAnalysePolyline_SegmentThresholdOverride(t *testing.T) {
	points := []Coord{
		{Lat: 40.7589, Lng: -73.9851},
		{Lat: 40.7600, Lng: -74.0100},
		{Lat: 40.7620, Lng: -74.0200},
	}
	now := time.Date(2024, 6, 15, 3, 0, 0, 0, time.UTC)

	lenient := AnalysePolyline(points, now, &AnalyseOptions{SegmentThreshold: ptr.Float64(0.99)})
	require.Empty(t, lenient.ThreatSegments, "a near-1.0 threshold should suppress every window")

	strict := AnalysePolyline(points, now, &AnalyseOptions{SegmentThreshold: ptr.Float64(0.0)})
	require.NotEmpty(t, strict.ThreatSegments, "a threshold of 0 should flag every window")
}
