package saferoute

import (
	"context"
	"time"
)

// DefaultMaxExpansions is the node-expansion cap a search uses when no
// RouteOptions.MaxExpansions override is supplied (spec.md §4.3).
const DefaultMaxExpansions = 15000

// DefaultGraphEdgeThreshold is the AvgUTIScore above which a traversed edge
// is reported as a ThreatSegment when no RouteOptions.GraphEdgeThreshold
// override is supplied (spec.md §4.3).
const DefaultGraphEdgeThreshold = 0.5

// DefaultPolylineSegmentThreshold is the mean window UTI above which
// AnalysePolyline reports a ThreatSegment when no
// AnalyseOptions.SegmentThreshold override is supplied (spec.md §4.4).
const DefaultPolylineSegmentThreshold = 0.4

// RouteOptions carries optional per-call overrides to Route/RouteContext. A
// nil *RouteOptions, or a nil field within one, falls back to the package
// defaults above — the same values config.DefaultConfig() ships, so a
// caller can thread a loaded config straight through.
type RouteOptions struct {
	// Deadline bounds how long a search may run; once passed, the search
	// aborts exactly as hitting MaxExpansions does (rferr.ErrNoPath).
	Deadline *time.Time

	// MaxExpansions overrides DefaultMaxExpansions for this call.
	MaxExpansions *int

	// GraphEdgeThreshold overrides DefaultGraphEdgeThreshold for this call.
	GraphEdgeThreshold *float64
}

func (o *RouteOptions) maxExpansions() int {
	if o != nil && o.MaxExpansions != nil {
		return *o.MaxExpansions
	}
	return DefaultMaxExpansions
}

func (o *RouteOptions) graphEdgeThreshold() float64 {
	if o != nil && o.GraphEdgeThreshold != nil {
		return *o.GraphEdgeThreshold
	}
	return DefaultGraphEdgeThreshold
}

// withDeadline wraps ctx with the option's deadline, if any. The returned
// cancel func is always non-nil and safe to defer.
func (o *RouteOptions) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if o != nil && o.Deadline != nil {
		return context.WithDeadline(ctx, *o.Deadline)
	}
	return ctx, func() {}
}

// AlternativesOptions carries optional per-call overrides to Alternatives.
type AlternativesOptions struct {
	// RouteOptions applies to every one of the k independent searches
	// Alternatives runs.
	RouteOptions *RouteOptions

	// LatticeOverride, when set, reruns the k-way sweep over a freshly
	// built graph of this lattice density instead of the receiver's own
	// graph, covering the case where a caller wants a coarser or finer
	// sweep for a single Alternatives call without rebuilding or mutating
	// the shared graph. The rebuilt graph reuses the receiver's bounds and
	// connection threshold, and is seeded from the receiver's own UTI
	// snapshot timestamp rather than a fresh wall-clock read, so repeated
	// calls with the same override stay deterministic.
	LatticeOverride *int
}

// AnalyseOptions carries optional per-call overrides to AnalysePolyline.
type AnalyseOptions struct {
	// SegmentThreshold overrides DefaultPolylineSegmentThreshold for this call.
	SegmentThreshold *float64
}

func (o *AnalyseOptions) segmentThreshold() float64 {
	if o != nil && o.SegmentThreshold != nil {
		return *o.SegmentThreshold
	}
	return DefaultPolylineSegmentThreshold
}
