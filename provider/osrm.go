// Package provider implements the out-of-core "external walking-route
// provider" collaborator named in spec.md §1/§6/§9. The core never imports
// this package; callers fetch a polyline here and hand it to
// saferoute.AnalysePolyline, keeping the core synchronous while the I/O to
// reach an external service happens above it.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/mferris/saferoute"
)

// RouteProvider is the interface spec.md's "optional external walking-route
// provider" is reduced to: given two coordinates, return a polyline or an
// error. The core must not depend on any particular implementation, or on
// one being available at all.
type RouteProvider interface {
	FetchRoute(ctx context.Context, start, end saferoute.Coord, opts *FetchOptions) ([]saferoute.Coord, error)
}

// FetchOptions carries optional request tuning, mirroring the teacher's
// pattern of optional pointer fields on request structs (e.g. ElevationInput).
type FetchOptions struct {
	// Alternates asks the upstream service to compute this many alternate
	// geometries; nil omits the parameter and the provider's default applies.
	Alternates *int
}

// OSRMProvider fetches a walking polyline from an OSRM-compatible HTTP API,
// reusing the teacher client's fasthttp.Client + acquire/release request
// pattern. This reproduces the original implementation's OSRM fallback
// (route_type "osrm_enhanced") as a first-class, explicitly wired collaborator
// instead of a hidden event-loop-inside-sync call.
type OSRMProvider struct {
	BaseURL string
	Client  *fasthttp.Client
}

// NewOSRMProvider builds a provider against baseURL, e.g.
// "https://router.project-osrm.org".
func NewOSRMProvider(baseURL string) *OSRMProvider {
	return &OSRMProvider{
		BaseURL: baseURL,
		Client: &fasthttp.Client{
			Name: "saferoute-osrm-provider",
		},
	}
}

type osrmRouteResponse struct {
	Routes []struct {
		Geometry struct {
			Coordinates [][2]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// FetchRoute implements RouteProvider against the OSRM walking profile,
// requesting full-overview GeoJSON geometry the same way the original
// implementation did.
func (p *OSRMProvider) FetchRoute(ctx context.Context, start, end saferoute.Coord, opts *FetchOptions) ([]saferoute.Coord, error) {
	url := fmt.Sprintf("%s/route/v1/walking/%f,%f;%f,%f?overview=full&geometries=geojson",
		p.BaseURL, start.Lng, start.Lat, end.Lng, end.Lat)

	if opts != nil && opts.Alternates != nil {
		url = fmt.Sprintf("%s&alternatives=%d", url, *opts.Alternates)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := p.Client.DoDeadline(req, resp, deadline(ctx)); err != nil {
		return nil, fmt.Errorf("osrm request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("osrm returned status %d", resp.StatusCode())
	}

	var parsed osrmRouteResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("osrm response decode: %w", err)
	}
	if len(parsed.Routes) == 0 {
		return nil, fmt.Errorf("osrm returned no routes")
	}

	coords := parsed.Routes[0].Geometry.Coordinates
	points := make([]saferoute.Coord, len(coords))
	for i, c := range coords {
		points[i] = saferoute.Coord{Lng: c[0], Lat: c[1]}
	}
	return points, nil
}

func deadline(ctx context.Context) time.Time {
	if dl, ok := ctx.Deadline(); ok {
		return dl
	}
	return time.Now().Add(5 * time.Second)
}
