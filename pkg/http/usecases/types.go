package usecases

import (
	"github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/lintang-b-s/sheltr/pkg/engine"
	"github.com/lintang-b-s/sheltr/pkg/guidance"
)

type LatLon struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SnapResponse. where a query point landed on the road graph
type SnapResponse struct {
	Snapped   bool    `json:"snapped"`
	Distance  float64 `json:"distance"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RouteResponse struct {
	Route             [][2]float64                  `json:"route"`
	Polyline          string                        `json:"polyline"`
	TotalDistance     float64                       `json:"totalDistance"`
	SafetyScore       float64                       `json:"safetyScore"`
	FloodRisk         float64                       `json:"floodRisk"`
	NumSegments       int                           `json:"numSegments"`
	CostFunction      string                        `json:"costFunction"`
	Segments          []datastructure.SegmentDetail `json:"segments"`
	Directions        []guidance.Direction          `json:"directions"`
	DirectionsSummary *guidance.Summary             `json:"directionsSummary"`
	StartSnap         SnapResponse                  `json:"startSnap"`
	EndSnap           SnapResponse                  `json:"endSnap"`
	Destination       *EvacuationCenter             `json:"destination,omitempty"`
}

type ComparisonResponse struct {
	Routes   map[string]*RouteResponse `json:"routes"`
	Failures map[string]string         `json:"failures,omitempty"`
	Summary  []engine.StrategySummary  `json:"summary"`
}

type PredictionResponse struct {
	Safe              int     `json:"safe"`
	SafetyProbability float64 `json:"safety_probability"`
	RiskLevel         string  `json:"risk_level"`
	SegmentID         string  `json:"segment_id"`
	Distance          float64 `json:"distance"`
}

type EvacuationCenter struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Capacity    int     `json:"capacity"`
	SafetyScore float64 `json:"safety_score"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	RouterReady      bool   `json:"router_ready"`
	SegmentsLoaded   bool   `json:"segments_loaded"`
	SafePointsLoaded bool   `json:"safepoints_loaded"`
	GeometryLoaded   bool   `json:"geometry_loaded"`
}
