package geometry

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/lintang-b-s/sheltr/pkg"
	"github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/lintang-b-s/sheltr/pkg/engine/routing"
	geojson "github.com/paulmach/go.geojson"
)

var (
	ErrRouteNotFound = errors.New("route was not found, nothing to export")
)

type RouteInfo struct {
	Success       bool    `json:"success"`
	CostFunction  string  `json:"cost_function"`
	TotalCost     float64 `json:"total_cost"`
	TotalDistance float64 `json:"total_distance"`
	NumSegments   int     `json:"num_segments"`
	AvgSafety     float64 `json:"avg_safety"`
	MinSafety     float64 `json:"min_safety"`
	MaxSafety     float64 `json:"max_safety"`
	SafetyStd     float64 `json:"safety_std"`
}

type RouteExport struct {
	RouteInfo RouteInfo                     `json:"route_info"`
	Path      []datastructure.Node          `json:"path"`
	Segments  []datastructure.SegmentDetail `json:"segments"`
}

func NewRouteExport(costFunction string, route *routing.Route) (RouteExport, error) {
	if route == nil || !route.Success {
		return RouteExport{}, ErrRouteNotFound
	}
	d := route.Detail
	return RouteExport{
		RouteInfo: RouteInfo{
			Success:       route.Success,
			CostFunction:  costFunction,
			TotalCost:     route.TotalCost,
			TotalDistance: d.TotalDistance,
			NumSegments:   d.NumSegments(),
			AvgSafety:     d.AvgSafety,
			MinSafety:     d.MinSafety,
			MaxSafety:     d.MaxSafety,
			SafetyStd:     d.SafetyStd,
		},
		Path:     route.Path,
		Segments: d.Segments,
	}, nil
}

// ExportRouteJSON writes route info, path and segments as indented json.
func ExportRouteJSON(w io.Writer, costFunction string, route *routing.Route) error {
	exp, err := NewRouteExport(costFunction, route)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exp)
}

// ExportRouteGeoJSON writes one LineString feature per traversed segment, colored by risk class,
// plus start & end points. coordinates are lon/lat.
func ExportRouteGeoJSON(w io.Writer, costFunction string, route *routing.Route, proj GeographicProjector) error {
	if route == nil || !route.Success || len(route.Path) == 0 {
		return ErrRouteNotFound
	}

	lonLat := func(n datastructure.Node) []float64 {
		lat, lon := proj.ToGeographic(n.GetX(), n.GetY())
		return []float64{lon, lat}
	}

	fc := geojson.NewFeatureCollection()
	for i, seg := range route.Detail.Segments {
		f := geojson.NewLineStringFeature([][]float64{lonLat(seg.From), lonLat(seg.To)})
		risk := pkg.GetRiskClass(seg.SafetyProb)
		f.SetProperty("index", i)
		f.SetProperty("segment_id", seg.SegmentID)
		f.SetProperty("distance", seg.Distance)
		f.SetProperty("safety_prob", seg.SafetyProb)
		f.SetProperty("risk_level", risk.String())
		f.SetProperty("color", risk.Color())
		fc.AddFeature(f)
	}

	start := geojson.NewPointFeature(lonLat(route.Path[0]))
	start.SetProperty("role", "start")
	fc.AddFeature(start)

	end := geojson.NewPointFeature(lonLat(route.Path[len(route.Path)-1]))
	end.SetProperty("role", "end")
	end.SetProperty("cost_function", costFunction)
	end.SetProperty("total_distance", route.Detail.TotalDistance)
	end.SetProperty("avg_safety", route.Detail.AvgSafety)
	fc.AddFeature(end)

	b, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
