package datastructure

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNegativeDistance = errors.New("edge distance must be a finite non-negative number")
)

// EdgeRecord. raw undirected edge as it comes from the edge source. immutable after load.
type EdgeRecord struct {
	from      Node
	to        Node
	distance  float64
	segmentID string
}

func NewEdgeRecord(from, to Node, distance float64, segmentID string) (EdgeRecord, error) {
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		return EdgeRecord{}, fmt.Errorf("%w: segment %s has distance %v", ErrNegativeDistance, segmentID, distance)
	}
	return EdgeRecord{
		from:      from,
		to:        to,
		distance:  distance,
		segmentID: segmentID,
	}, nil
}

func (e EdgeRecord) GetFrom() Node {
	return e.from
}

func (e EdgeRecord) GetTo() Node {
	return e.to
}

func (e EdgeRecord) GetDistance() float64 {
	return e.distance
}

func (e EdgeRecord) GetSegmentID() string {
	return e.segmentID
}
