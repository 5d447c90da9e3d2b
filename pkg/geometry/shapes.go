package geometry

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/lintang-b-s/sheltr/pkg/loader"
	"github.com/lintang-b-s/sheltr/pkg/util"
	geojson "github.com/paulmach/go.geojson"
)

const (
	HUB_NAME_PROPERTY = "HubName"
)

var (
	ErrUnsupportedGeometry = errors.New("unsupported geometry type")
)

// ShapeSource. drawn shape of a segment in planar coordinates
type ShapeSource interface {
	GetShape(segmentID string) ([]datastructure.Point, bool)
}

// ShapeIndex. segment shapes keyed by segment id, read-only after load
type ShapeIndex struct {
	shapes map[string][]datastructure.Point
}

func NewShapeIndex() *ShapeIndex {
	return &ShapeIndex{shapes: make(map[string][]datastructure.Point)}
}

// LoadShapes reads a GeoJSON FeatureCollection of LineString / MultiLineString segments in planar coordinates.
func LoadShapes(path string) (*ShapeIndex, error) {
	data, err := loader.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read segment geometry file: %w", err)
	}
	return ReadShapes(data)
}

func ReadShapes(data []byte) (*ShapeIndex, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse segment geometry: %w", err)
	}

	si := NewShapeIndex()
	for _, f := range fc.Features {
		id := featureID(f)
		if id == "" || f.Geometry == nil {
			continue
		}
		if _, ok := si.shapes[id]; ok {
			// first shape of a segment wins
			continue
		}

		var lines [][][]float64
		switch f.Geometry.Type {
		case geojson.GeometryLineString:
			lines = [][][]float64{f.Geometry.LineString}
		case geojson.GeometryMultiLineString:
			lines = f.Geometry.MultiLineString
		default:
			continue
		}

		pts := make([]datastructure.Point, 0)
		for _, line := range lines {
			for _, c := range line {
				if len(c) < 2 {
					continue
				}
				pts = append(pts, datastructure.NewPoint(c[0], c[1]))
			}
		}
		if len(pts) > 0 {
			si.shapes[id] = pts
		}
	}
	return si, nil
}

// featureID. HubName property, numeric values normalized like the safety records
func featureID(f *geojson.Feature) string {
	v, ok := f.Properties[HUB_NAME_PROPERTY]
	if !ok || v == nil {
		return ""
	}
	switch id := v.(type) {
	case string:
		return util.NormalizeID(id)
	case float64:
		return util.NormalizeID(strconv.FormatFloat(id, 'f', -1, 64))
	default:
		return util.NormalizeID(fmt.Sprint(id))
	}
}

func (si *ShapeIndex) GetShape(segmentID string) ([]datastructure.Point, bool) {
	pts, ok := si.shapes[util.NormalizeID(segmentID)]
	return pts, ok
}

func (si *ShapeIndex) Add(segmentID string, pts []datastructure.Point) {
	si.shapes[util.NormalizeID(segmentID)] = pts
}

func (si *ShapeIndex) Len() int {
	return len(si.shapes)
}
