package saferoute

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildGraph_InvalidBounds(t *testing.T) {
	_, err := BuildGraph(BoundingBox{
		SW: Coord{Lat: 40.78, Lng: -73.94},
		NE: Coord{Lat: 40.74, Lng: -74.01}, // NE south-west of SW
	}, 10, 0.2, pinnedTimestamp)
	require.Error(t, err)

	_, err = BuildGraph(BoundingBox{
		SW: Coord{Lat: 40.74, Lng: -74.01},
		NE: Coord{Lat: 40.78, Lng: -73.94},
	}, 1, 0.2, pinnedTimestamp) // lattice < 2
	require.Error(t, err)
}

func TestBuildGraph_EdgeSymmetry(t *testing.T) {
	g, err := BuildGraph(BoundingBox{
		SW: Coord{Lat: 40.7489, Lng: -73.9851},
		NE: Coord{Lat: 40.7829, Lng: -73.9441},
	}, 8, 0.3, pinnedTimestamp)
	require.NoError(t, err)

	for id, edges := range g.adj {
		for _, e := range edges {
			require.Equal(t, id, e.From)
			require.NotEqual(t, e.From, e.To, "no self-edges")

			mirrored := false
			for _, back := range g.adj[e.To] {
				if back.To == e.From {
					mirrored = true
					require.InDelta(t, e.DistanceKm, back.DistanceKm, 1e-9)
					require.InDelta(t, e.AvgUTIScore, back.AvgUTIScore, 1e-9)
					require.Equal(t, e.RoadType, back.RoadType)
					require.InDelta(t, e.LightingScore, back.LightingScore, 1e-9)
					require.InDelta(t, e.FootTrafficScore, back.FootTrafficScore, 1e-9)
					break
				}
			}
			require.True(t, mirrored, "edge %s->%s must have a mirror", e.From, e.To)
		}
	}
}

func TestBuildGraph_WaterExclusion(t *testing.T) {
	// S3: a bounding box that spans both rivers with a generous connection
	// threshold should still never connect two nodes straddling a river band.
	g, err := BuildGraph(BoundingBox{
		SW: Coord{Lat: 40.7000, Lng: -74.0200},
		NE: Coord{Lat: 40.7800, Lng: -73.9300},
	}, 10, 2.0, pinnedTimestamp)
	require.NoError(t, err)

	for _, edges := range g.adj {
		for _, e := range edges {
			a := g.nodes[e.From]
			b := g.nodes[e.To]
			require.False(t, crossesWater(a, b), "edge %s->%s crosses a river band", e.From, e.To)
		}
	}
}

func TestUpdateUTI_ClampsAndPropagates(t *testing.T) {
	g, err := BuildGraph(BoundingBox{
		SW: Coord{Lat: 40.7489, Lng: -73.9851},
		NE: Coord{Lat: 40.7829, Lng: -73.9441},
	}, 6, 0.4, pinnedTimestamp)
	require.NoError(t, err)

	var anyID string
	for id := range g.nodes {
		anyID = id
		break
	}

	clamped := g.UpdateUTI(map[string]float64{
		anyID:        1.7,  // out of range, should clamp to 1
		"unknown-id": 0.5, // must be silently ignored
	})
	require.Equal(t, 1, clamped)
	require.Equal(t, 1.0, g.nodes[anyID].UTIScore)

	for _, edges := range g.adj {
		for _, e := range edges {
			require.GreaterOrEqual(t, e.AvgUTIScore, 0.0)
			require.LessOrEqual(t, e.AvgUTIScore, 1.0)
		}
	}
	for _, n := range g.nodes {
		require.GreaterOrEqual(t, n.UTIScore, 0.0)
		require.LessOrEqual(t, n.UTIScore, 1.0)
	}
}

func TestClassifyNodeType(t *testing.T) {
	require.Equal(t, NodeTypeUrbanCenter, classifyNodeType(40.76, -73.99))
	require.Equal(t, NodeTypeWaterfront, classifyNodeType(40.75, -74.02))
	require.Equal(t, NodeTypeResidential, classifyNodeType(40.72, -73.98))
}

func TestNearestNode(t *testing.T) {
	g, err := BuildGraph(BoundingBox{
		SW: Coord{Lat: 40.7489, Lng: -73.9851},
		NE: Coord{Lat: 40.7829, Lng: -73.9441},
	}, 6, 0.4, pinnedTimestamp)
	require.NoError(t, err)

	g.Mu.RLock()
	n, d := g.nearestNode(Coord{Lat: 40.7489, Lng: -73.9851})
	g.Mu.RUnlock()

	require.NotNil(t, n)
	require.Less(t, d, 0.5)
}
