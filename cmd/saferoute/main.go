// Command saferoute is a minimal CLI harness over the routing core: it
// builds a graph from flags, runs a route, and prints the wire JSON. It is
// the only place in the repository that logs — the core packages stay
// silent and return explicit errors, matching the pack's convention of
// reserving structured logging for cmd/ entry points.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/mferris/saferoute"
	"github.com/mferris/saferoute/config"
	"github.com/mferris/saferoute/provider"
	"github.com/mferris/saferoute/wire"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var (
		swLat, swLng   float64
		neLat, neLng   float64
		startLat, startLng float64
		endLat, endLng float64
		safetyWeight   float64
		configPath     string
		useOSRM        bool
	)

	flag.Float64Var(&swLat, "sw-lat", 40.7489, "south-west latitude")
	flag.Float64Var(&swLng, "sw-lng", -73.9851, "south-west longitude")
	flag.Float64Var(&neLat, "ne-lat", 40.7829, "north-east latitude")
	flag.Float64Var(&neLng, "ne-lng", -73.9441, "north-east longitude")
	flag.Float64Var(&startLat, "start-lat", 40.7500, "start latitude")
	flag.Float64Var(&startLng, "start-lng", -73.9800, "start longitude")
	flag.Float64Var(&endLat, "end-lat", 40.7700, "end latitude")
	flag.Float64Var(&endLng, "end-lng", -73.9600, "end longitude")
	flag.Float64Var(&safetyWeight, "safety-weight", 0.5, "safety weight in [0,1]")
	flag.StringVar(&configPath, "config", "", "optional YAML config path")
	flag.BoolVar(&useOSRM, "osrm", false, "fetch the path from an OSRM provider instead of the graph")
	flag.Parse()

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	ctx := context.Background()

	if useOSRM {
		runOSRM(ctx, logger, cfg, saferoute.Coord{Lat: startLat, Lng: startLng}, saferoute.Coord{Lat: endLat, Lng: endLng})
		return
	}

	runGraph(ctx, logger, cfg, swLat, swLng, neLat, neLng, startLat, startLng, endLat, endLng, safetyWeight)
}

func runGraph(ctx context.Context, logger *slog.Logger, cfg config.Config, swLat, swLng, neLat, neLng, startLat, startLng, endLat, endLng, safetyWeight float64) {
	area := saferoute.BoundingBox{
		SW: saferoute.Coord{Lat: swLat, Lng: swLng},
		NE: saferoute.Coord{Lat: neLat, Lng: neLng},
	}

	logger.Info("building graph", "lattice", cfg.Graph.LatticeDensity, "connect_km", cfg.Graph.ConnectKm)
	graph, err := saferoute.BuildGraph(area, cfg.Graph.LatticeDensity, cfg.Graph.ConnectKm, time.Now())
	if err != nil {
		logger.Error("build_graph failed", "error", err)
		os.Exit(1)
	}
	logger.Info("graph built", "nodes", graph.NodeCount())

	routeOpts := &saferoute.RouteOptions{
		MaxExpansions:      &cfg.Search.MaxExpansions,
		GraphEdgeThreshold: &cfg.Threat.GraphEdgeThreshold,
	}
	result, err := graph.RouteContext(ctx,
		saferoute.Coord{Lat: startLat, Lng: startLng},
		saferoute.Coord{Lat: endLat, Lng: endLng},
		safetyWeight,
		routeOpts,
	)
	if err != nil {
		logger.Error("route failed", "error", err)
		os.Exit(1)
	}

	printResult(logger, result)
}

func runOSRM(ctx context.Context, logger *slog.Logger, cfg config.Config, start, end saferoute.Coord) {
	p := provider.NewOSRMProvider(cfg.OSRMBaseURL)

	logger.Info("fetching route from provider", "base_url", cfg.OSRMBaseURL)
	points, err := p.FetchRoute(ctx, start, end, nil)
	if err != nil {
		logger.Error("provider fetch failed", "error", err)
		os.Exit(1)
	}

	analyseOpts := &saferoute.AnalyseOptions{SegmentThreshold: &cfg.Threat.PolylineSegmentThreshold}
	result := saferoute.AnalysePolyline(points, time.Now(), analyseOpts)
	result.RouteType = saferoute.RouteTypeOSRMEnhanced
	result.AlgorithmConfig.RoutingService = "OSRM"

	printResult(logger, result)
}

func printResult(logger *slog.Logger, result *saferoute.RouteResult) {
	body, err := wire.Marshal(result)
	if err != nil {
		logger.Error("failed to marshal result", "error", err)
		os.Exit(1)
	}
	os.Stdout.Write(body)
	os.Stdout.Write([]byte("\n"))
}
