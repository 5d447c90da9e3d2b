package datastructure

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lintang-b-s/sheltr/pkg"
)

var (
	ErrMalformedCoordinateKey = errors.New("malformed coordinate key")
	ErrCoordinateOutOfRange   = errors.New("coordinate is not finite or too large for a node key")
)

// CoordKey. canonical identity of a node: planar coordinate rounded to integer micro-units.
// two coordinates that format differently but round to the same micro-unit are the same node.
type CoordKey struct {
	x, y int64
}

func (k CoordKey) GetX() int64 {
	return k.x
}

func (k CoordKey) GetY() int64 {
	return k.y
}

// Node is a planar (x, y) coordinate. nodes only exist as keys of the edges that reference them.
type Node struct {
	x, y float64
	key  CoordKey
}

// NewNode. components beyond MAX_COORD_MAGNITUDE are clamped, use NewNodeChecked for untrusted input.
func NewNode(x, y float64) Node {
	key := CoordKey{
		x: toKeyUnit(x),
		y: toKeyUnit(y),
	}
	return Node{
		x:   float64(key.x) / pkg.COORD_KEY_SCALE,
		y:   float64(key.y) / pkg.COORD_KEY_SCALE,
		key: key,
	}
}

// NewNodeChecked is NewNode for untrusted input. NaN components and those beyond MAX_COORD_MAGNITUDE are rejected.
func NewNodeChecked(x, y float64) (Node, error) {
	if !validComponent(x) || !validComponent(y) {
		return Node{}, fmt.Errorf("%w: %v,%v", ErrCoordinateOutOfRange, x, y)
	}
	return NewNode(x, y), nil
}

func validComponent(v float64) bool {
	return !math.IsNaN(v) && math.Abs(v) <= pkg.MAX_COORD_MAGNITUDE
}

func toKeyUnit(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(-pkg.MAX_COORD_MAGNITUDE, math.Min(pkg.MAX_COORD_MAGNITUDE, v))
	return int64(math.Round(v * pkg.COORD_KEY_SCALE))
}

func (n Node) GetX() float64 {
	return n.x
}

func (n Node) GetY() float64 {
	return n.y
}

func (n Node) Key() CoordKey {
	return n.key
}

func (n Node) Equal(o Node) bool {
	return n.key == o.key
}

// String. fixed precision "x,y" serialization of the node key
func (n Node) String() string {
	return strconv.FormatFloat(n.x, 'f', pkg.COORD_KEY_PRECISION, 64) + "," +
		strconv.FormatFloat(n.y, 'f', pkg.COORD_KEY_PRECISION, 64)
}

func (n Node) EuclideanDistance(o Node) float64 {
	return EuclideanDistance(n.x, n.y, o.x, o.y)
}

func EuclideanDistance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

func (n Node) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// ParseCoordKey parses "x,y" into a Node. anything that is not exactly two finite numbers is rejected.
func ParseCoordKey(s string) (Node, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Node{}, fmt.Errorf("%w: %q must have two comma separated components", ErrMalformedCoordinateKey, s)
	}
	x, err := parseCoordComponent(parts[0])
	if err != nil {
		return Node{}, fmt.Errorf("%w: %q: %v", ErrMalformedCoordinateKey, s, err)
	}
	y, err := parseCoordComponent(parts[1])
	if err != nil {
		return Node{}, fmt.Errorf("%w: %q: %v", ErrMalformedCoordinateKey, s, err)
	}
	n, err := NewNodeChecked(x, y)
	if err != nil {
		return Node{}, fmt.Errorf("%w: %q: %v", ErrMalformedCoordinateKey, s, err)
	}
	return n, nil
}

func parseCoordComponent(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("component %q is not finite", s)
	}
	return v, nil
}
