package saferoute

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mferris/saferoute/rferr"
)

// nodeNamespace roots the content-addressed node ids the graph builder
// derives from lattice position, so ids stay stable and deterministic
// (spec.md §8 invariant 3) instead of drawing from crypto/rand the way a
// plain uuid.New() would.
var nodeNamespace = uuid.NewSHA1(uuid.Nil, []byte("saferoute.node"))

// DefaultLatticeDensity and DefaultConnectKm are the production defaults
// named in spec.md §4.2.
const (
	DefaultLatticeDensity = 25
	DefaultConnectKm      = 0.2
)

// UrbanGraph is a lattice of Coords with classified node types, bidirectional
// edges within a connection radius, and water-body exclusion. The graph is
// the only resource shared across searches; Mu guards UpdateUTI against
// concurrent readers the way spec.md §5 requires (writer-exclusive /
// reader-shared).
type UrbanGraph struct {
	Mu      sync.RWMutex
	Bounds  BoundingBox
	Lattice int
	// ConnectKm is the connection radius BuildGraph used, kept so
	// Alternatives can rebuild a lattice-overridden graph over the same
	// bounds/connectivity without the caller having to remember it.
	ConnectKm float64

	nodes   map[string]*Node
	adj     map[string][]*Edge
	order   []string // insertion order, for deterministic iteration
	builtAt time.Time
}

// BuildGraph constructs an UrbanGraph over the rectangle [area.SW, area.NE]
// as a lattice×lattice grid, connecting every pair of nodes within
// connectKm (after the water-crossing check) with a bidirectional edge.
// Initial UTI scores are read once, at `now` — the single wall-clock read
// the core is allowed (spec.md §4.2 step 2, §9 "Hidden clocks").
func BuildGraph(area BoundingBox, lattice int, connectKm float64, now time.Time) (*UrbanGraph, error) {
	if lattice < 2 {
		return nil, rferr.New(rferr.KindInvalidBounds, "lattice must be >= 2, got %d", lattice)
	}
	if area.NE.Lat <= area.SW.Lat || area.NE.Lng <= area.SW.Lng {
		return nil, rferr.New(rferr.KindInvalidBounds, "NE (%v) must be strictly north-east of SW (%v)", area.NE, area.SW)
	}
	if !validCoordRange(area.SW) || !validCoordRange(area.NE) {
		return nil, rferr.New(rferr.KindInvalidCoord, "bounds outside [-90,90]x[-180,180]")
	}

	g := &UrbanGraph{
		Bounds:    area,
		Lattice:   lattice,
		ConnectKm: connectKm,
		nodes:     make(map[string]*Node, lattice*lattice),
		adj:       make(map[string][]*Edge, lattice*lattice),
		builtAt:   now,
	}

	latStep := (area.NE.Lat - area.SW.Lat) / float64(lattice-1)
	lngStep := (area.NE.Lng - area.SW.Lng) / float64(lattice-1)

	for row := 0; row < lattice; row++ {
		for col := 0; col < lattice; col++ {
			lat := area.SW.Lat + float64(row)*latStep
			lng := area.SW.Lng + float64(col)*lngStep

			id := nodeID(row, col)
			node := &Node{
				ID:       id,
				Lat:      lat,
				Lng:      lng,
				UTIScore: UTI(lat, lng, now),
				NodeType: classifyNodeType(lat, lng),
			}
			g.nodes[id] = node
			g.adj[id] = nil
			g.order = append(g.order, id)
		}
	}

	for i, aID := range g.order {
		a := g.nodes[aID]
		for j, bID := range g.order {
			if i == j {
				continue
			}
			b := g.nodes[bID]

			dist := geodesicKm(a.coord(), b.coord())
			if dist > connectKm {
				continue
			}
			if crossesWater(a, b) {
				continue
			}

			edge := buildEdge(a, b, dist)
			g.adj[aID] = append(g.adj[aID], edge)
		}
	}

	return g, nil
}

func nodeID(row, col int) string {
	return uuid.NewSHA1(nodeNamespace, []byte(fmt.Sprintf("%d,%d", row, col))).String()
}

func validCoordRange(c Coord) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// classifyNodeType implements spec.md §4.2 step 2's cascade.
func classifyNodeType(lat, lng float64) NodeType {
	switch {
	case lat >= 40.74 && lat <= 40.78 && lng >= -74.01 && lng <= -73.97:
		return NodeTypeUrbanCenter
	case lng < -74.005 || lng > -73.94:
		return NodeTypeWaterfront
	default:
		return NodeTypeResidential
	}
}

// crossesWater implements spec.md §4.2 step 4's East River / Hudson River
// exclusion bands.
func crossesWater(a, b *Node) bool {
	minLat := a.Lat
	if b.Lat < minLat {
		minLat = b.Lat
	}
	inBand := minLat >= 40.70 && minLat <= 40.80

	eastRiver := (a.Lng < -73.96 && b.Lng > -73.95) || (b.Lng < -73.96 && a.Lng > -73.95)
	hudson := (a.Lng < -74.01 && b.Lng > -74.00) || (b.Lng < -74.01 && a.Lng > -74.00)

	return inBand && (eastRiver || hudson)
}

// buildEdge implements spec.md §4.2 step 5's attribute cascade.
func buildEdge(a, b *Node, distanceKm float64) *Edge {
	return &Edge{
		From:             a.ID,
		To:               b.ID,
		DistanceKm:       distanceKm,
		AvgUTIScore:      (a.UTIScore + b.UTIScore) / 2,
		RoadType:         roadTypeFor(a, b),
		LightingScore:    lightingScoreFor(a, b),
		FootTrafficScore: footTrafficScoreFor(a, b),
	}
}

func isType(n *Node, t NodeType) bool { return n.NodeType == t }

func roadTypeFor(a, b *Node) RoadType {
	switch {
	case isType(a, NodeTypeUrbanCenter) || isType(b, NodeTypeUrbanCenter):
		return RoadTypeArterial
	case isType(a, NodeTypeWaterfront) || isType(b, NodeTypeWaterfront):
		return RoadTypeHighway
	default:
		return RoadTypeResidential
	}
}

func lightingScoreFor(a, b *Node) float64 {
	switch {
	case isType(a, NodeTypeUrbanCenter) || isType(b, NodeTypeUrbanCenter):
		return 0.9
	case isType(a, NodeTypeWaterfront) || isType(b, NodeTypeWaterfront):
		return 0.4
	default:
		return 0.6
	}
}

func footTrafficScoreFor(a, b *Node) float64 {
	switch {
	case isType(a, NodeTypeUrbanCenter) || isType(b, NodeTypeUrbanCenter):
		return 0.8
	case isType(a, NodeTypeWaterfront) || isType(b, NodeTypeWaterfront):
		return 0.3
	default:
		return 0.5
	}
}

// NodeCount returns the number of nodes currently in the graph.
func (g *UrbanGraph) NodeCount() int {
	g.Mu.RLock()
	defer g.Mu.RUnlock()
	return len(g.nodes)
}

// UpdateUTI applies uti_score overrides to nodes by id (unknown ids are
// ignored), clamps out-of-range scores into [0,1], and recomputes every
// edge's AvgUTIScore from its endpoints. It returns the number of scores
// that had to be clamped, the soft-warning channel spec.md §6 calls for.
// This is the only sanctioned mutation after BuildGraph, and it excludes
// concurrent searches via Mu for its duration.
func (g *UrbanGraph) UpdateUTI(scores map[string]float64) (clamped int) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	for id, score := range scores {
		node, ok := g.nodes[id]
		if !ok {
			continue
		}
		clampedScore := clamp01(score)
		if clampedScore != score {
			clamped++
		}
		node.UTIScore = clampedScore
	}

	for _, id := range g.order {
		for _, e := range g.adj[id] {
			from := g.nodes[e.From]
			to := g.nodes[e.To]
			e.AvgUTIScore = (from.UTIScore + to.UTIScore) / 2
		}
	}

	return clamped
}

// nearestNode scans every node for the minimum geodesic distance to coord,
// per spec.md §4.3's "nearest-node snapping" — a brute-force scan, not an
// accelerated spatial index, matching the spec's explicit wording. Returns
// the node and its distance in kilometres. Caller must hold at least Mu.RLock.
func (g *UrbanGraph) nearestNode(coord Coord) (*Node, float64) {
	var best *Node
	bestDist := -1.0

	for _, id := range g.order {
		n := g.nodes[id]
		d := geodesicKm(coord, n.coord())
		if bestDist < 0 || d < bestDist {
			best = n
			bestDist = d
		}
	}

	return best, bestDist
}

// snapThresholdKm is the distance beyond which a query coordinate's
// nearest-node snap is reported as a warning (spec.md §7, Kind Snapped).
const snapThresholdKm = 1.0
