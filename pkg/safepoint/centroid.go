package safepoint

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var errDegeneratePolygon = errors.New("degenerate polygon")

// polygonCentroid. area weighted centroid of the polygons, computed in the projected plane.
// holes are subtracted; a zero area shape falls back to the mean of its vertices.
func polygonCentroid(polygons [][][][]float64, proj Projector) (float64, float64, error) {
	mp := make(orb.MultiPolygon, 0, len(polygons))
	vertices := make(orb.MultiPoint, 0)
	for _, poly := range polygons {
		projected := make(orb.Polygon, 0, len(poly))
		for _, ring := range poly {
			r := make(orb.Ring, 0, len(ring))
			for _, c := range ring {
				if len(c) < 2 {
					continue
				}
				x, y, err := proj.ToPlanar(c[1], c[0])
				if err != nil {
					return 0, 0, err
				}
				r = append(r, orb.Point{x, y})
			}
			if len(r) == 0 {
				continue
			}
			if len(projected) == 0 {
				vertices = append(vertices, r...)
			}
			projected = append(projected, r)
		}
		if len(projected) > 0 {
			mp = append(mp, projected)
		}
	}
	if len(vertices) == 0 {
		return 0, 0, errDegeneratePolygon
	}

	centroid, area := planar.CentroidArea(mp)
	if area == 0 {
		centroid, _ = planar.CentroidArea(vertices)
	}
	lat, lon := proj.ToGeographic(centroid.X(), centroid.Y())
	return lat, lon, nil
}
