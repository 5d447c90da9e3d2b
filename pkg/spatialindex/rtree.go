package spatialindex

import (
	"math"

	"github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/tidwall/rtree"
)

// Rtree. r-tree over graph nodes, each leaf is the degenerate box of one node
type Rtree struct {
	tr            *rtree.RTreeG[datastructure.Index]
	nodes         []datastructure.Node
	initialRadius float64
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build indexes nodes. a candidate's index is its position in nodes.
func (rt *Rtree) Build(nodes []datastructure.Node) {
	rt.nodes = nodes
	if len(nodes) == 0 {
		return
	}

	bb := datastructure.NewBoundingBox(nodes[0].GetX(), nodes[0].GetY(), nodes[0].GetX(), nodes[0].GetY())
	for i, n := range nodes {
		p := [2]float64{n.GetX(), n.GetY()}
		rt.tr.Insert(p, p, datastructure.Index(i))
		bb.Extend(n.GetX(), n.GetY())
	}

	// expected spacing of uniformly spread nodes
	minX, minY := bb.GetMin()
	maxX, maxY := bb.GetMax()
	rt.initialRadius = math.Max(maxX-minX, maxY-minY) / math.Sqrt(float64(len(nodes)))
	if rt.initialRadius <= 0 {
		rt.initialRadius = 1
	}
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// NearestK grows a square search window around (x, y) until it provably holds the k nearest nodes:
// once the k-th closest hit lies within the window's half-width, no node outside the window can be closer.
func (rt *Rtree) NearestK(x, y float64, k int) []Candidate {
	total := rt.tr.Len()
	if k <= 0 || total == 0 {
		return []Candidate{}
	}

	r := rt.initialRadius
	for {
		cands := rt.searchWithinRadius(x, y, r)
		switch {
		case len(cands) >= k:
			sortCandidates(cands)
			dk := cands[k-1].distance
			if dk <= r {
				return cands[:k]
			}
			r = dk
		case len(cands) == total:
			sortCandidates(cands)
			return cands
		default:
			r *= 2
		}
	}
}

func (rt *Rtree) searchWithinRadius(x, y, radius float64) []Candidate {
	results := make([]Candidate, 0, 16)
	rt.tr.Search([2]float64{x - radius, y - radius}, [2]float64{x + radius, y + radius},
		func(min, max [2]float64, id datastructure.Index) bool {
			n := rt.nodes[id]
			results = append(results, NewCandidate(id, n, datastructure.EuclideanDistance(x, y, n.GetX(), n.GetY())))
			return true
		})
	return results
}
