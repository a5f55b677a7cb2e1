// Package rferr defines the error kinds returned across the saferoute
// external interface, modeled on the valhalla client's ErrorResponse type:
// a small struct implementing error plus sentinel values so callers can
// use errors.Is instead of string matching.
package rferr

import "fmt"

// Kind distinguishes the error conditions named by the routing core's
// external interface.
type Kind string

const (
	KindInvalidBounds         Kind = "invalid_bounds"
	KindInvalidCoord          Kind = "invalid_coord"
	KindInvalidWeight         Kind = "invalid_weight"
	KindGraphNotInitialised   Kind = "graph_not_initialised"
	KindNoPath                Kind = "no_path"
	KindSnapped               Kind = "snapped"
)

// RouterError is the error type returned by every saferoute operation that
// can fail. Kind plays the role of the teacher's ErrorResponse.Status field.
type RouterError struct {
	Kind    Kind
	Message string
}

// Error renders "kind: message", matching ErrorResponse's "Status: ErrorMessage" shape.
func (e *RouterError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is(err, rferr.ErrNoPath) match any RouterError of the same
// Kind regardless of Message, the way the sentinel errors in lvlath's
// dijkstra package are matched.
func (e *RouterError) Is(target error) bool {
	other, ok := target.(*RouterError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New builds a RouterError of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *RouterError {
	return &RouterError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sentinel values for errors.Is comparisons where no extra context is needed.
var (
	ErrInvalidBounds       = &RouterError{Kind: KindInvalidBounds, Message: "NE must be strictly north-east of SW and lattice must be >= 2"}
	ErrInvalidCoord        = &RouterError{Kind: KindInvalidCoord, Message: "coordinate outside valid lat/lng range"}
	ErrInvalidWeight       = &RouterError{Kind: KindInvalidWeight, Message: "safety weight must be in [0,1]"}
	ErrGraphNotInitialised = &RouterError{Kind: KindGraphNotInitialised, Message: "route called before build_graph"}
	ErrNoPath              = &RouterError{Kind: KindNoPath, Message: "search cap reached or open set exhausted"}
)
