package usecases

import (
	geojson "github.com/paulmach/go.geojson"
)

// Segments returns every scored road segment as a GeoJSON feature. segments with a known shape carry
// its lon/lat LineString, the rest have a null geometry.
func (rs *RoutingService) Segments() *geojson.FeatureCollection {
	registry := rs.engine.GetRegistry()
	fc := geojson.NewFeatureCollection()
	for _, rec := range registry.Records() {
		var f *geojson.Feature
		if shape, ok := rs.shapeOf(rec.GetSegmentID()); ok {
			line := make([][]float64, len(shape))
			for i, p := range shape {
				lat, lon := rs.proj.ToGeographic(p.GetX(), p.GetY())
				line[i] = []float64{lon, lat}
			}
			f = geojson.NewLineStringFeature(line)
		} else {
			f = geojson.NewFeature(nil)
		}

		safe := registry.PredSafeOf(rec.GetSegmentID())
		f.SetProperty("id", rec.GetSegmentID())
		f.SetProperty("safe", safe)
		f.SetProperty("safety_prob", rec.GetSafetyProb())
		f.SetProperty("risk_level", riskLevel(safe))
		fc.AddFeature(f)
	}
	return fc
}
