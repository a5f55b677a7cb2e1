package saferoute

import (
	"testing"

	"github.com/gotidy/ptr"
	"github.com/stretchr/testify/require"
)

// S6: alternatives ordering.
func TestAlternatives_S6Ordering(t *testing.T) {
	g := newS1Graph(t)

	results, err := g.Alternatives(Coord{Lat: 40.7500, Lng: -73.9800}, Coord{Lat: 40.7700, Lng: -73.9600}, 3, nil)
	require.NoError(t, err)
	require.LessOrEqual(t, len(results), 3)
	require.NotEmpty(t, results)

	for _, r := range results {
		switch r.RouteType {
		case RouteTypeFastestRoute, RouteTypeBalancedRoute, RouteTypeSafestRoute:
		default:
			t.Fatalf("unexpected route type %q", r.RouteType)
		}
		require.NotEmpty(t, r.OptimizationFocus)
	}

	for i := 1; i < len(results); i++ {
		require.GreaterOrEqual(t, alternativeScore(results[i-1]), alternativeScore(results[i]))
	}
}

func TestAlternatives_KZero(t *testing.T) {
	g := newS1Graph(t)
	results, err := g.Alternatives(Coord{Lat: 40.75, Lng: -73.98}, Coord{Lat: 40.76, Lng: -73.97}, 0, nil)
	require.NoError(t, err)
	require.Empty(t, results)
}

// AlternativesOptions.RouteOptions applies to every independent search the
// sweep runs, the same way a single Route call's opts would.
func TestAlternatives_RouteOptionsApplied(t *testing.T) {
	g := newS1Graph(t)

	results, err := g.Alternatives(Coord{Lat: 40.7500, Lng: -73.9800}, Coord{Lat: 40.7700, Lng: -73.9600}, 3,
		&AlternativesOptions{RouteOptions: &RouteOptions{MaxExpansions: ptr.Int(1)}})
	require.NoError(t, err)
	require.Empty(t, results, "a 1-expansion cap should starve every search in the sweep")
}

// AlternativesOptions.LatticeOverride reruns the sweep over a freshly built
// graph instead of the receiver's own, reusing its bounds/connectivity/UTI
// snapshot so the rebuild stays deterministic.
func TestAlternatives_LatticeOverride(t *testing.T) {
	g := newS1Graph(t)
	start := Coord{Lat: 40.7500, Lng: -73.9800}
	end := Coord{Lat: 40.7700, Lng: -73.9600}

	// Both overrides stay dense enough, relative to the receiver's own
	// ConnectKm, for the rebuilt lattice to remain connected.
	denser, err := g.Alternatives(start, end, 3, &AlternativesOptions{LatticeOverride: ptr.Int(35)})
	require.NoError(t, err)
	require.NotEmpty(t, denser)

	sparser, err := g.Alternatives(start, end, 3, &AlternativesOptions{LatticeOverride: ptr.Int(22)})
	require.NoError(t, err)
	require.NotEmpty(t, sparser)

	// The override must not mutate the receiver's own graph.
	require.Equal(t, 25, g.Lattice)
}

func TestEvenlySpaced(t *testing.T) {
	require.Equal(t, []float64{0.1, 0.5, 0.9}, evenlySpaced(0.1, 0.9, 3))
	require.Equal(t, []float64{0.1}, evenlySpaced(0.1, 0.9, 1))
}
