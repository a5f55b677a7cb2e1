package saferoute

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// isNightHour reports the hours treated as "late night/early morning" by both
// the threat-reason composer and the per-point UTI bonus below.
func isNightHour(hour int) bool {
	return hour == 22 || hour == 23 || (hour >= 0 && hour <= 5)
}

// AnalysePolyline partitions an arbitrary, already-materialised polyline
// into ~10 contiguous windows, scores each window's UTI, and emits a
// RouteResult-compatible summary — spec.md §4.4's second entry point. It
// needs no UrbanGraph and performs no I/O; if the polyline originated from
// an external provider (package provider), that I/O has already completed
// by the time this is called. opts may be nil, in which case
// DefaultPolylineSegmentThreshold applies.
func AnalysePolyline(points []Coord, now time.Time, opts *AnalyseOptions) *RouteResult {
	if len(points) == 0 {
		return &RouteResult{RouteType: RouteTypeGraphBased}
	}

	distanceKm := 0.0
	for i := 0; i < len(points)-1; i++ {
		distanceKm += geodesicKm(points[i], points[i+1])
	}

	segmentSize := len(points) / 10
	if segmentSize < 1 {
		segmentSize = 1
	}

	threshold := opts.segmentThreshold()
	var threatSegments []ThreatSegment
	hour := now.Hour()

	for start := 0; start < len(points)-1; start += segmentSize {
		end := start + segmentSize
		if end > len(points)-1 {
			end = len(points) - 1
		}
		if end <= start {
			break
		}

		segmentUTI := meanSegmentUTI(points[start:end+1], hour)
		if segmentUTI > threshold {
			threatSegments = append(threatSegments, ThreatSegment{
				StartIdx:   start,
				EndIdx:     end,
				UTIScore:   segmentUTI,
				Reason:     polylineThreatReason(segmentUTI, points[start], hour),
				Mitigation: polylineMitigation(segmentUTI, points[start], hour),
			})
		}

		if end >= len(points)-1 {
			break
		}
	}

	safetyScore := 0.8
	if len(threatSegments) > 0 {
		sum := 0.0
		for _, s := range threatSegments {
			sum += s.UTIScore
		}
		safetyScore = math.Max(0.1, 1-sum/float64(len(threatSegments)))
	}

	return &RouteResult{
		Path:                 points,
		SafetyScore:          safetyScore,
		DistanceKm:           round2(distanceKm),
		EstimatedTimeMinutes: estimatedTimeMinutes(distanceKm),
		ThreatSegments:       threatSegments,
		RouteType:            RouteTypeGraphBased,
		AlgorithmConfig:      AlgorithmConfig{},
	}
}

// meanSegmentUTI computes the mean, over a window's points, of the
// per-point UTI base used by polyline analysis (spec.md §4.4 step 3). It
// uses gonum/stat.Mean rather than a hand-rolled accumulator.
func meanSegmentUTI(window []Coord, hour int) float64 {
	if len(window) == 0 {
		return 0
	}

	values := make([]float64, len(window))
	for i, p := range window {
		values[i] = perPointUTIBase(p, hour)
	}
	return stat.Mean(values, nil)
}

func perPointUTIBase(p Coord, hour int) float64 {
	dToCenter := planarDistance(p, manhattanCenter)
	base := math.Min(0.7, 0.15*dToCenter)

	waterBonus := 0.0
	switch {
	case p.Lng < -74.005:
		waterBonus = 0.2
	case p.Lng > -73.94:
		waterBonus = 0.15
	}

	nightBonus := 0.0
	if isNightHour(hour) {
		nightBonus = 0.2
	}

	return math.Min(0.9, base+waterBonus+nightBonus)
}

func polylineThreatReason(uti float64, p Coord, hour int) string {
	reasons := make([]string, 0, 3)

	switch {
	case uti > 0.7:
		reasons = append(reasons, "High crime prediction area")
	case uti > 0.5:
		reasons = append(reasons, "Moderate risk area")
	}

	switch {
	case p.Lng < -74.005:
		reasons = append(reasons, "Waterfront area with limited visibility")
	case p.Lng > -73.94:
		reasons = append(reasons, "Industrial area with reduced foot traffic")
	}

	if isNightHour(hour) {
		reasons = append(reasons, "Late night/early morning hours")
	}

	return joinSemicolon(reasons, "Elevated risk area")
}

func polylineMitigation(uti float64, p Coord, hour int) string {
	advice := make([]string, 0, 4)

	switch {
	case uti > 0.7:
		advice = append(advice, "Consider alternative route", "Travel with others")
	case uti > 0.5:
		advice = append(advice, "Stay alert", "Avoid distractions")
	}

	if p.Lng < -74.005 || p.Lng > -73.94 {
		advice = append(advice, "Use well-lit main roads")
	}

	if isNightHour(hour) {
		advice = append(advice, "Consider daytime travel")
	}

	return joinSemicolon(advice, "Exercise normal caution")
}

func joinSemicolon(parts []string, fallback string) string {
	if len(parts) == 0 {
		return fallback
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "; " + p
	}
	return out
}
