// Package saferoute computes safety-aware walking routes over a bounded
// geographic area. It blends geometric path cost with a predicted
// per-location risk score (the Urban Threat Index, UTI) to produce a
// polyline, a summary safety score, a walking-time estimate, and a list of
// threat segments.
//
// The package is split into a small number of flat files mirroring the
// pipeline described by the routing core: uti.go (the UTI field), graph.go
// (grid graph construction), astar.go (blended-cost search), analysis.go
// (post-hoc polyline segmentation) and alternatives.go (weight sweeps).
// Everything here is synchronous and side-effect free except for the
// explicit, narrow mutation path through (*UrbanGraph).UpdateUTI.
package saferoute
