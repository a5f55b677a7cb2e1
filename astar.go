package saferoute

import (
	"container/heap"
	"context"
	"math"

	"github.com/mferris/saferoute/rferr"
)

// walkingSpeedKmh is the fixed walking speed used for estimatedTimeMinutes.
const walkingSpeedKmh = 5.0

// searchState is the transient per-node bookkeeping of a single A* search
// (spec.md §3's SearchState). It lives only for the duration of one call to
// aStarSearch and is never referenced by the returned RouteResult.
type searchState struct {
	node    *Node
	g       float64
	h       float64
	f       float64
	parent  *searchState
	seq     int // insertion order, the deterministic tie-break spec.md §4.3 requires
}

// openHeap is a container/heap priority queue ordered by f, breaking ties by
// insertion order so that identical inputs always explore in the same
// order (spec.md §8 invariant 3, determinism).
type openHeap []*searchState

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h openHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *openHeap) Push(x any)   { *h = append(*h, x.(*searchState)) }
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// edgeCost is the blended cost function of spec.md §4.3.
func edgeCost(e *Edge, safetyWeight float64) float64 {
	distanceWeight := 1 - safetyWeight
	blended := distanceWeight*e.DistanceKm + safetyWeight*e.safetyCost()
	return blended * roadModifiers[e.RoadType]
}

// heuristic is the (intentionally non-admissible) mix of distance-to-goal
// and the goal's static UTI score, per spec.md §4.3.
func heuristic(n, goal *Node, safetyWeight float64) float64 {
	distanceWeight := 1 - safetyWeight
	return distanceWeight*geodesicKm(n.coord(), goal.coord()) + safetyWeight*goal.UTIScore
}

// Route finds a path from the node nearest startCoord to the node nearest
// endCoord, minimizing the blended cost parameterised by safetyWeight. It
// returns rferr.ErrNoPath (Kind NoPath) when the expansion cap is hit or the
// open set empties before the goal is reached. opts may be nil, in which
// case the package defaults (DefaultMaxExpansions, DefaultGraphEdgeThreshold)
// apply.
func (g *UrbanGraph) Route(startCoord, endCoord Coord, safetyWeight float64, opts *RouteOptions) (*RouteResult, error) {
	return g.RouteContext(context.Background(), startCoord, endCoord, safetyWeight, opts)
}

// RouteContext is Route with an externally supplied cancellation signal
// (spec.md §5): on cancellation, or once opts.Deadline passes, the search
// returns rferr.ErrNoPath without any partial output, exactly as hitting the
// expansion cap does.
func (g *UrbanGraph) RouteContext(ctx context.Context, startCoord, endCoord Coord, safetyWeight float64, opts *RouteOptions) (*RouteResult, error) {
	if safetyWeight < 0 || safetyWeight > 1 {
		return nil, rferr.New(rferr.KindInvalidWeight, "safety_weight %v outside [0,1]", safetyWeight)
	}
	if !validCoordRange(startCoord) || !validCoordRange(endCoord) {
		return nil, rferr.New(rferr.KindInvalidCoord, "start/end outside [-90,90]x[-180,180]")
	}

	ctx, cancel := opts.withDeadline(ctx)
	defer cancel()

	g.Mu.RLock()
	defer g.Mu.RUnlock()

	if len(g.nodes) == 0 {
		return nil, rferr.ErrGraphNotInitialised
	}

	start, startDist := g.nearestNode(startCoord)
	end, endDist := g.nearestNode(endCoord)
	snapped := startDist > snapThresholdKm || endDist > snapThresholdKm

	result, err := g.aStarSearch(ctx, start, end, safetyWeight, opts.maxExpansions(), opts.graphEdgeThreshold())
	if err != nil {
		return nil, err
	}
	result.Snapped = snapped
	return result, nil
}

func (g *UrbanGraph) aStarSearch(ctx context.Context, start, end *Node, safetyWeight float64, maxExpansions int, edgeThreshold float64) (*RouteResult, error) {
	states := make(map[string]*searchState, len(g.nodes))
	closed := make(map[string]bool, len(g.nodes))

	seqCounter := 0
	startState := &searchState{node: start, g: 0, h: heuristic(start, end, safetyWeight), seq: seqCounter}
	startState.f = startState.g + startState.h
	states[start.ID] = startState

	open := &openHeap{startState}
	heap.Init(open)

	expansions := 0
	for open.Len() > 0 {
		if expansions >= maxExpansions {
			return nil, rferr.ErrNoPath
		}
		select {
		case <-ctx.Done():
			return nil, rferr.ErrNoPath
		default:
		}

		current := heap.Pop(open).(*searchState)
		expansions++

		if current.node.ID == end.ID {
			return reconstructPath(g, current, safetyWeight, edgeThreshold), nil
		}

		closed[current.node.ID] = true

		for _, edge := range g.adj[current.node.ID] {
			if closed[edge.To] {
				continue
			}
			neighbor := g.nodes[edge.To]
			tentativeG := current.g + edgeCost(edge, safetyWeight)

			neighborState, exists := states[neighbor.ID]
			if !exists {
				seqCounter++
				neighborState = &searchState{node: neighbor, g: math.Inf(1), seq: seqCounter}
				states[neighbor.ID] = neighborState
			}

			if tentativeG < neighborState.g {
				neighborState.parent = current
				neighborState.g = tentativeG
				neighborState.h = heuristic(neighbor, end, safetyWeight)
				neighborState.f = neighborState.g + neighborState.h
				heap.Push(open, neighborState)
			}
		}
	}

	return nil, rferr.ErrNoPath
}

// reconstructPath walks parent pointers from the goal back to the start,
// reverses them, and accumulates the traversed edges' actual distance and
// safety cost (spec.md §4.3, "Path reconstruction"). edgeThreshold is the
// AvgUTIScore above which a traversed edge is reported as a ThreatSegment.
func reconstructPath(g *UrbanGraph, goalState *searchState, safetyWeight, edgeThreshold float64) *RouteResult {
	var chain []*searchState
	for s := goalState; s != nil; s = s.parent {
		chain = append(chain, s)
	}
	// reverse
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	path := make([]Coord, 0, len(chain))
	var threatSegments []ThreatSegment
	var totalDistance, totalSafetyCost float64

	for i := 0; i < len(chain); i++ {
		path = append(path, chain[i].node.coord())

		if i == len(chain)-1 {
			break
		}
		fromID := chain[i].node.ID
		toID := chain[i+1].node.ID

		var edge *Edge
		for _, e := range g.adj[fromID] {
			if e.To == toID {
				edge = e
				break
			}
		}
		if edge == nil {
			continue
		}

		totalDistance += edge.DistanceKm
		totalSafetyCost += edge.safetyCost()

		if edge.AvgUTIScore > edgeThreshold {
			threatSegments = append(threatSegments, ThreatSegment{
				StartIdx:   i,
				EndIdx:     i + 1,
				UTIScore:   edge.AvgUTIScore,
				Reason:     edgeThreatReason(edge),
				Mitigation: edgeMitigation(edge),
			})
		}
	}

	safetyScore := 0.0
	if len(chain) > 0 {
		safetyScore = math.Max(0, 1-totalSafetyCost/float64(len(chain)))
	}

	return &RouteResult{
		Path:                 path,
		SafetyScore:          safetyScore,
		DistanceKm:           round2(totalDistance),
		EstimatedTimeMinutes: estimatedTimeMinutes(totalDistance),
		ThreatSegments:       threatSegments,
		RouteType:            RouteTypeGraphBased,
		AlgorithmConfig: AlgorithmConfig{
			SafetyWeight:   safetyWeight,
			DistanceWeight: 1 - safetyWeight,
		},
	}
}

func edgeThreatReason(e *Edge) string {
	if e.AvgUTIScore > 0.7 {
		return "High crime prediction area"
	}
	return "Moderate risk area"
}

func edgeMitigation(e *Edge) string {
	if e.AvgUTIScore > 0.7 {
		return "Consider alternative route; travel with others"
	}
	return "Stay alert; avoid distractions"
}

func estimatedTimeMinutes(distanceKm float64) int {
	return int(math.Round(distanceKm / walkingSpeedKmh * 60))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
