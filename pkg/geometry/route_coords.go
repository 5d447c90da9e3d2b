package geometry

import (
	"github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/lintang-b-s/sheltr/pkg/util"
)

type GeographicProjector interface {
	ToGeographic(x, y float64) (float64, float64)
}

// RouteCoordinates assembles the drawn route in lat/lon. each traversed segment contributes its shape,
// oriented to start at the segment's from node, or its straight endpoints when it has no shape.
// without a shape source the path nodes are used.
func RouteCoordinates(detail *datastructure.PathDetail, path []datastructure.Node, shapes ShapeSource,
	proj GeographicProjector) []datastructure.Coordinate {
	coords := make([]datastructure.Coordinate, 0)
	appendPoint := func(x, y float64) {
		lat, lon := proj.ToGeographic(x, y)
		c := datastructure.NewCoordinate(lat, lon)
		if n := len(coords); n > 0 && coords[n-1] == c {
			return
		}
		coords = append(coords, c)
	}

	if shapes == nil || detail == nil || detail.NumSegments() == 0 {
		for _, n := range path {
			appendPoint(n.GetX(), n.GetY())
		}
		return coords
	}

	for _, seg := range detail.Segments {
		shape, ok := shapes.GetShape(seg.SegmentID)
		if !ok || len(shape) == 0 {
			appendPoint(seg.From.GetX(), seg.From.GetY())
			appendPoint(seg.To.GetX(), seg.To.GetY())
			continue
		}

		from := datastructure.NewPoint(seg.From.GetX(), seg.From.GetY())
		if shape[len(shape)-1].DistanceTo(from) < shape[0].DistanceTo(from) {
			shape = util.ReverseG(shape)
		}
		for _, p := range shape {
			appendPoint(p.GetX(), p.GetY())
		}
	}
	return coords
}

// LatLonPairs. [[lat, lon], ...] as the map frontend draws it
func LatLonPairs(coords []datastructure.Coordinate) [][2]float64 {
	pairs := make([][2]float64, len(coords))
	for i, c := range coords {
		pairs[i] = c.LatLonPair()
	}
	return pairs
}
