package controllers

import (
	"github.com/lintang-b-s/sheltr/pkg/engine"
	"github.com/lintang-b-s/sheltr/pkg/http/usecases"
	geojson "github.com/paulmach/go.geojson"
)

type RoutingService interface {
	CalculateRoute(start usecases.LatLon, end *usecases.LatLon, costFunction string) (*usecases.RouteResponse, error)
	NearestSafeRoute(p usecases.LatLon, costFunction string) (*usecases.RouteResponse, error)
	CompareRoutes(start, end usecases.LatLon) (*usecases.ComparisonResponse, error)
	Predict(p usecases.LatLon) (*usecases.PredictionResponse, error)
	Segments() *geojson.FeatureCollection
	EvacuationCenters() []usecases.EvacuationCenter
	Network() engine.NetworkSummary
	Health() usecases.HealthResponse
}
