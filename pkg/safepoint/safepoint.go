package safepoint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/lintang-b-s/sheltr/pkg/loader"
	"github.com/lintang-b-s/sheltr/pkg/spatialindex"
	geojson "github.com/paulmach/go.geojson"
	"golang.org/x/exp/rand"
)

const (
	DEFAULT_CAPACITY     = 500
	DEFAULT_SAFETY_SCORE = 0.8
	SAMPLE_SEED          = 42
)

var (
	ErrNoSafePoints      = errors.New("no safe points configured")
	ErrUnsupportedFormat = errors.New("unsupported safe point file format")
	ErrMissingLatLon     = errors.New("safe point csv needs latitude and longitude columns")
)

// facility classes suitable as evacuation centres
var suitableClasses = map[string]struct{}{
	"school":           {},
	"town_hall":        {},
	"community_centre": {},
	"hospital":         {},
	"sports_centre":    {},
	"stadium":          {},
	"university":       {},
	"college":          {},
}

// DefaultCandidates. files tried in order when no explicit path is configured
var DefaultCandidates = []string{
	"safepoints.geojson",
	"safepoints.csv",
	filepath.Join("data", "safepoints.geojson"),
	filepath.Join("data", "safepoints.csv"),
}

type SafePoint struct {
	ID          string
	Name        string
	FClass      string
	Coordinate  datastructure.Coordinate
	Node        datastructure.Node
	Capacity    int
	SafetyScore float64
}

// Store. safe points projected to the routing plane, indexed for nearest lookups.
type Store struct {
	points    []SafePoint
	hasFClass bool
	index     *spatialindex.Rtree
}

type Projector interface {
	ToPlanar(lat, lon float64) (float64, float64, error)
	ToGeographic(x, y float64) (float64, float64)
}

func NewStore(points []SafePoint, hasFClass bool) *Store {
	nodes := make([]datastructure.Node, len(points))
	for i, p := range points {
		nodes[i] = p.Node
	}
	rt := spatialindex.NewRtree()
	rt.Build(nodes)
	return &Store{points: points, hasFClass: hasFClass, index: rt}
}

func (s *Store) Len() int {
	return len(s.points)
}

func (s *Store) GetPoints() []SafePoint {
	return s.points
}

// Nearest returns the safe point closest to planar (x, y).
func (s *Store) Nearest(x, y float64) (SafePoint, float64, error) {
	cands := s.index.NearestK(x, y, 1)
	if len(cands) == 0 {
		return SafePoint{}, 0, ErrNoSafePoints
	}
	return s.points[cands[0].GetIndex()], cands[0].GetDistance(), nil
}

// EvacuationCenters keeps facilities of a suitable class (when the source has classes) and
// deterministically samples at most limit of them.
func (s *Store) EvacuationCenters(limit int) []SafePoint {
	centers := make([]SafePoint, 0, len(s.points))
	for _, p := range s.points {
		if s.hasFClass {
			if _, ok := suitableClasses[p.FClass]; !ok {
				continue
			}
		}
		centers = append(centers, p)
	}
	if limit <= 0 || len(centers) <= limit {
		return centers
	}

	rnd := rand.New(rand.NewSource(SAMPLE_SEED))
	perm := rnd.Perm(len(centers))[:limit]
	sampled := make([]SafePoint, limit)
	for i, idx := range perm {
		sampled[i] = centers[idx]
	}
	return sampled
}

// Load reads safe points from path. an empty path tries DefaultCandidates, returning ErrNoSafePoints if none exist.
func Load(path string, proj Projector) (*Store, error) {
	if path == "" {
		for _, c := range DefaultCandidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
		if path == "" {
			return nil, ErrNoSafePoints
		}
	}

	lower := strings.ToLower(strings.TrimSuffix(path, ".bz2"))
	switch {
	case strings.HasSuffix(lower, ".geojson"), strings.HasSuffix(lower, ".json"):
		data, err := loader.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read safe points: %w", err)
		}
		return ReadGeoJSON(data, proj)
	case strings.HasSuffix(lower, ".csv"):
		return LoadCSV(path, proj)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func newSafePoint(idx int, props map[string]string, lat, lon float64, proj Projector) (SafePoint, error) {
	x, y, err := proj.ToPlanar(lat, lon)
	if err != nil {
		return SafePoint{}, err
	}
	sp := SafePoint{
		ID:          strconv.Itoa(idx),
		Name:        props["name"],
		FClass:      props["fclass"],
		Coordinate:  datastructure.NewCoordinate(lat, lon),
		Node:        datastructure.NewNode(x, y),
		Capacity:    DEFAULT_CAPACITY,
		SafetyScore: DEFAULT_SAFETY_SCORE,
	}
	if sp.Name == "" {
		sp.Name = fmt.Sprintf("Evacuation Center %d", idx)
	}
	if c, err := strconv.Atoi(props["capacity"]); err == nil {
		sp.Capacity = c
	}
	if v, err := strconv.ParseFloat(props["safety_score"], 64); err == nil {
		sp.SafetyScore = v
	}
	return sp, nil
}

// ReadGeoJSON reads WGS84 Point / Polygon / MultiPolygon features. polygons are reduced to their centroid.
func ReadGeoJSON(data []byte, proj Projector) (*Store, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse safe points: %w", err)
	}

	points := make([]SafePoint, 0, len(fc.Features))
	hasFClass := false
	for idx, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		props := stringProperties(f.Properties)
		if _, ok := props["fclass"]; ok {
			hasFClass = true
		}

		var (
			lat, lon float64
			err      error
		)
		switch f.Geometry.Type {
		case geojson.GeometryPoint:
			if len(f.Geometry.Point) < 2 {
				continue
			}
			lon, lat = f.Geometry.Point[0], f.Geometry.Point[1]
		case geojson.GeometryPolygon:
			lat, lon, err = polygonCentroid([][][][]float64{f.Geometry.Polygon}, proj)
		case geojson.GeometryMultiPolygon:
			lat, lon, err = polygonCentroid(f.Geometry.MultiPolygon, proj)
		default:
			continue
		}
		if err != nil {
			continue
		}

		sp, spErr := newSafePoint(idx, props, lat, lon, proj)
		if spErr != nil {
			continue
		}
		points = append(points, sp)
	}
	return NewStore(points, hasFClass), nil
}

func stringProperties(props map[string]interface{}) map[string]string {
	out := make(map[string]string, len(props))
	for k, v := range props {
		if v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			out[strings.ToLower(k)] = val
		case float64:
			out[strings.ToLower(k)] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			out[strings.ToLower(k)] = fmt.Sprint(val)
		}
	}
	return out
}

// LoadCSV reads points from latitude/lat and longitude/lon/lng columns, matched case-insensitively.
func LoadCSV(path string, proj Projector) (*Store, error) {
	f, err := loader.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open safe points: %w", err)
	}
	defer f.Close()

	points := make([]SafePoint, 0)
	hasFClass := false
	idx := 0
	err = loader.ForEachRow(f, func(line int, row map[string]string) error {
		props := make(map[string]string, len(row))
		for k, v := range row {
			props[strings.ToLower(k)] = v
		}
		if _, ok := props["fclass"]; ok {
			hasFClass = true
		}

		latStr := firstOf(props, "latitude", "lat")
		lonStr := firstOf(props, "longitude", "lon", "lng")
		if latStr == nil || lonStr == nil {
			return ErrMissingLatLon
		}
		lat, err := strconv.ParseFloat(*latStr, 64)
		if err != nil {
			return fmt.Errorf("line %d: latitude: %w", line, err)
		}
		lon, err := strconv.ParseFloat(*lonStr, 64)
		if err != nil {
			return fmt.Errorf("line %d: longitude: %w", line, err)
		}

		sp, err := newSafePoint(idx, props, lat, lon, proj)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		points = append(points, sp)
		idx++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewStore(points, hasFClass), nil
}

func firstOf(props map[string]string, keys ...string) *string {
	for _, k := range keys {
		if v, ok := props[k]; ok {
			return &v
		}
	}
	return nil
}
