package datastructure

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point. planar point of a drawn segment shape
type Point struct {
	x, y float64
}

func NewPoint(x, y float64) Point {
	return Point{x, y}
}

func (p Point) GetX() float64 {
	return p.x
}

func (p Point) GetY() float64 {
	return p.y
}

func (p Point) toOrb() orb.Point {
	return orb.Point{p.x, p.y}
}

func (p Point) DistanceTo(o Point) float64 {
	return planar.Distance(p.toOrb(), o.toOrb())
}

// PointSegmentDistance. planar distance from p to the closed segment ab
func PointSegmentDistance(p, a, b Point) float64 {
	return planar.DistanceFromSegment(a.toOrb(), b.toOrb(), p.toOrb())
}
