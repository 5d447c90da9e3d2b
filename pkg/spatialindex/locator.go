package spatialindex

import (
	"sort"

	"github.com/lintang-b-s/sheltr/pkg/datastructure"
)

// Candidate. graph node near a query point
type Candidate struct {
	index    datastructure.Index
	node     datastructure.Node
	distance float64
}

func NewCandidate(index datastructure.Index, node datastructure.Node, distance float64) Candidate {
	return Candidate{index: index, node: node, distance: distance}
}

func (c Candidate) GetIndex() datastructure.Index {
	return c.index
}

func (c Candidate) GetNode() datastructure.Node {
	return c.node
}

func (c Candidate) GetDistance() float64 {
	return c.distance
}

// NodeLocator finds the k graph nodes closest to (x, y) by euclidean distance,
// sorted ascending by distance. equal distances are ordered by node index.
type NodeLocator interface {
	NearestK(x, y float64, k int) []Candidate
}

// LinearLocator scans every node.
type LinearLocator struct {
	nodes []datastructure.Node
}

func NewLinearLocator(nodes []datastructure.Node) *LinearLocator {
	return &LinearLocator{nodes: nodes}
}

func (l *LinearLocator) NearestK(x, y float64, k int) []Candidate {
	if k <= 0 || len(l.nodes) == 0 {
		return []Candidate{}
	}
	cands := make([]Candidate, len(l.nodes))
	for i, n := range l.nodes {
		cands[i] = NewCandidate(datastructure.Index(i), n, datastructure.EuclideanDistance(x, y, n.GetX(), n.GetY()))
	}
	sortCandidates(cands)
	if k < len(cands) {
		cands = cands[:k]
	}
	return cands
}

func sortCandidates(cands []Candidate) {
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].distance != cands[j].distance {
			return cands[i].distance < cands[j].distance
		}
		return cands[i].index < cands[j].index
	})
}
