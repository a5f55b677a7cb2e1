package saferoute

import (
	"sort"

	"golang.org/x/sync/errgroup"
)

// optimizationFocusFastest/Balanced/Safest are the fixed per-bucket phrases
// recovered from original_source's _get_optimization_focus; spec.md's
// distillation drops them but no Non-goal excludes them.
const (
	optimizationFocusFastest  = "Optimized for speed and efficiency"
	optimizationFocusBalanced = "Balanced optimization for safety and efficiency"
	optimizationFocusSafest   = "Optimized for maximum safety"
)

// Alternatives runs k independent safety-weight searches evenly spaced over
// [0.1, 0.9] (spec.md §4.5), each as its own goroutine holding the graph's
// read lock for the duration of its own search — the concurrent-readers
// discipline spec.md §5 calls for. Results are tagged with a route type and
// optimization focus, then ranked by 0.6*safety_score + 0.4/(distance_km+1)
// descending. Searches that fail to find a path are simply omitted; an
// empty slice is returned if none succeed. opts may be nil; when
// opts.LatticeOverride is set the sweep runs over a freshly built graph of
// that lattice density instead of the receiver's own.
func (g *UrbanGraph) Alternatives(start, end Coord, k int, opts *AlternativesOptions) ([]*RouteResult, error) {
	if k < 1 {
		return nil, nil
	}

	searchGraph := g
	var routeOpts *RouteOptions
	if opts != nil {
		routeOpts = opts.RouteOptions
		if opts.LatticeOverride != nil {
			rebuilt, err := BuildGraph(g.Bounds, *opts.LatticeOverride, g.ConnectKm, g.builtAt)
			if err != nil {
				return nil, err
			}
			searchGraph = rebuilt
		}
	}

	weights := evenlySpaced(0.1, 0.9, k)
	results := make([]*RouteResult, k)

	var eg errgroup.Group
	for i, w := range weights {
		i, w := i, w
		eg.Go(func() error {
			result, err := searchGraph.Route(start, end, w, routeOpts)
			if err != nil {
				return nil // omitted, not fatal to the group
			}
			result.RouteType = classifyRouteType(w)
			result.OptimizationFocus = optimizationFocusFor(w)
			results[i] = result
			return nil
		})
	}
	_ = eg.Wait() // errors are per-search omissions, never propagated

	ranked := make([]*RouteResult, 0, k)
	for _, r := range results {
		if r != nil {
			ranked = append(ranked, r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return alternativeScore(ranked[i]) > alternativeScore(ranked[j])
	})

	return ranked, nil
}

func alternativeScore(r *RouteResult) float64 {
	return 0.6*r.SafetyScore + 0.4*(1/(r.DistanceKm+1))
}

func classifyRouteType(safetyWeight float64) RouteType {
	switch {
	case safetyWeight < 0.3:
		return RouteTypeFastestRoute
	case safetyWeight > 0.7:
		return RouteTypeSafestRoute
	default:
		return RouteTypeBalancedRoute
	}
}

func optimizationFocusFor(safetyWeight float64) string {
	switch {
	case safetyWeight < 0.3:
		return optimizationFocusFastest
	case safetyWeight > 0.7:
		return optimizationFocusSafest
	default:
		return optimizationFocusBalanced
	}
}

// evenlySpaced returns k values evenly spaced over [lo, hi] inclusive
// (k=1 returns just lo), matching numpy.linspace's endpoints.
func evenlySpaced(lo, hi float64, k int) []float64 {
	if k == 1 {
		return []float64{lo}
	}
	step := (hi - lo) / float64(k-1)
	out := make([]float64, k)
	for i := 0; i < k; i++ {
		out[i] = lo + step*float64(i)
	}
	return out
}
