// Package wire is the bit-exact-for-compatibility external representation of
// a RouteResult described in spec.md §6: the GeoJSON LineString path plus
// the flat summary fields, marshalled with the teacher's JSON encoder.
package wire

import (
	"github.com/goccy/go-json"
	geojson "github.com/paulmach/go.geojson"

	"github.com/mferris/saferoute"
)

// ThreatSegment is the wire shape of a saferoute.ThreatSegment.
type ThreatSegment struct {
	StartIdx   int     `json:"start_idx"`
	EndIdx     int     `json:"end_idx"`
	UTIScore   float64 `json:"uti_score"`
	Reason     string  `json:"reason"`
	Mitigation string  `json:"mitigation,omitempty"`
}

// AlgorithmConfig is the wire shape of a saferoute.AlgorithmConfig.
type AlgorithmConfig struct {
	SafetyWeight   float64 `json:"safety_weight"`
	DistanceWeight float64 `json:"distance_weight"`
	RoutingService string  `json:"routing_service,omitempty"`
}

// RouteResult is the wire shape of a saferoute.RouteResult: path is a
// GeoJSON LineString in [lng,lat] order, distance_km is rounded to 2
// decimals (already done by the core), and route_type is one of
// graph_based | osrm_enhanced | fastest_route | balanced_route | safest_route.
type RouteResult struct {
	Path                 *geojson.Geometry `json:"path"`
	SafetyScore          float64           `json:"safety_score"`
	DistanceKm           float64           `json:"distance_km"`
	EstimatedTimeMinutes int               `json:"estimated_time_minutes"`
	ThreatSegments       []ThreatSegment   `json:"threat_segments"`
	RouteType            string            `json:"route_type"`
	AlgorithmConfig      AlgorithmConfig   `json:"algorithm_config"`
	OptimizationFocus    string            `json:"optimization_focus,omitempty"`
	Snapped              bool              `json:"snapped,omitempty"`
}

// FromResult converts a core RouteResult into its wire representation.
func FromResult(r *saferoute.RouteResult) *RouteResult {
	coords := make([][]float64, len(r.Path))
	for i, c := range r.Path {
		coords[i] = []float64{c.Lng, c.Lat}
	}

	segments := make([]ThreatSegment, len(r.ThreatSegments))
	for i, s := range r.ThreatSegments {
		segments[i] = ThreatSegment{
			StartIdx:   s.StartIdx,
			EndIdx:     s.EndIdx,
			UTIScore:   s.UTIScore,
			Reason:     s.Reason,
			Mitigation: s.Mitigation,
		}
	}

	return &RouteResult{
		Path:                 geojson.NewLineStringGeometry(coords),
		SafetyScore:          r.SafetyScore,
		DistanceKm:           r.DistanceKm,
		EstimatedTimeMinutes: r.EstimatedTimeMinutes,
		ThreatSegments:       segments,
		RouteType:            string(r.RouteType),
		AlgorithmConfig: AlgorithmConfig{
			SafetyWeight:   r.AlgorithmConfig.SafetyWeight,
			DistanceWeight: r.AlgorithmConfig.DistanceWeight,
			RoutingService: r.AlgorithmConfig.RoutingService,
		},
		OptimizationFocus: r.OptimizationFocus,
		Snapped:           r.Snapped,
	}
}

// Marshal encodes a core RouteResult to its wire JSON form.
func Marshal(r *saferoute.RouteResult) ([]byte, error) {
	return json.Marshal(FromResult(r))
}
