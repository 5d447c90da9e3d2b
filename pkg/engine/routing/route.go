package routing

import (
	"math"

	da "github.com/lintang-b-s/sheltr/pkg/datastructure"
)

type FailureReason string

const (
	NONE               FailureReason = ""
	NO_PATH_FOUND      FailureReason = "no_path_found"
	INSUFFICIENT_GRAPH FailureReason = "insufficient_graph"
)

// SnapInfo. how a query point was mapped onto the graph
type SnapInfo struct {
	Query    da.Node `json:"query"`
	Node     da.Node `json:"node"`
	Snapped  bool    `json:"snapped"`
	Distance float64 `json:"distance"`
}

// Route. outcome of one shortest path query. an unreachable target is not an error,
// callers check Success.
type Route struct {
	Success       bool           `json:"success"`
	FailureReason FailureReason  `json:"failure_reason,omitempty"`
	Path          []da.Node      `json:"path"`
	TotalCost     float64        `json:"total_cost"`
	Detail        *da.PathDetail `json:"path_detail"`
	StartSnap     SnapInfo       `json:"start_snap"`
	EndSnap       SnapInfo       `json:"end_snap"`
}

func NewFailedRoute(reason FailureReason, startSnap, endSnap SnapInfo) *Route {
	return &Route{
		Success:       false,
		FailureReason: reason,
		Path:          make([]da.Node, 0),
		TotalCost:     math.Inf(1),
		Detail:        da.NewEmptyPathDetail(),
		StartSnap:     startSnap,
		EndSnap:       endSnap,
	}
}
