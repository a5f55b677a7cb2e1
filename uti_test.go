package saferoute

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var pinnedTimestamp = time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)

func TestUTI_Purity(t *testing.T) {
	a := UTI(40.758, -73.985, pinnedTimestamp)
	b := UTI(40.758, -73.985, pinnedTimestamp)
	require.Equal(t, a, b, "UTI must return the same value for identical inputs")
}

func TestUTI_Bounds(t *testing.T) {
	cases := []struct {
		lat, lng float64
		t        time.Time
	}{
		{40.7589, -73.9851, pinnedTimestamp},
		{40.70, -74.02, time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)},
		{40.80, -73.93, time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)},
	}

	for _, c := range cases {
		score := UTI(c.lat, c.lng, c.t)
		require.GreaterOrEqual(t, score, 0.0)
		require.LessOrEqual(t, score, 1.0)
	}
}

func TestComputeUTIFeatures_FixedOrder(t *testing.T) {
	features := ComputeUTIFeatures(40.76, -73.98, pinnedTimestamp)
	slice := features.slice()
	require.Len(t, slice, 10)

	for i, v := range slice {
		require.GreaterOrEqual(t, v, 0.0, "feature %d below 0", i)
		require.LessOrEqual(t, v, 1.01, "feature %d above 1 (allowing tiny float slack)", i)
	}
}

func TestTemporalMultiplier_NightExceedsMidday(t *testing.T) {
	require.Greater(t, temporalMultiplier(2), temporalMultiplier(12))
}

func TestCoordHash_Deterministic(t *testing.T) {
	h1 := coordHash(40.75890, -73.98510, 4)
	h2 := coordHash(40.75890, -73.98510, 4)
	require.Equal(t, h1, h2)
	require.GreaterOrEqual(t, h1, 0.0)
	require.Less(t, h1, 100.0)
}
