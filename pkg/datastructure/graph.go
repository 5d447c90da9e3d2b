package datastructure

import (
	"errors"
	"fmt"
	"math"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
)

var (
	ErrNegativeWeight = errors.New("edge weight must be a finite non-negative number")
	ErrVertexNotFound = errors.New("vertex not found in graph")
)

// Edge. weighted half of an undirected edge. distance, safety & segment id are kept for path reconstruction.
type Edge struct {
	head       Index
	weight     float64
	distance   float64
	safetyProb float64
	segmentID  string
}

func NewEdge(head Index, weight, distance, safetyProb float64, segmentID string) Edge {
	return Edge{
		head:       head,
		weight:     weight,
		distance:   distance,
		safetyProb: safetyProb,
		segmentID:  segmentID,
	}
}

func (e *Edge) GetHead() Index {
	return e.head
}

func (e *Edge) GetWeight() float64 {
	return e.weight
}

func (e *Edge) GetDistance() float64 {
	return e.distance
}

func (e *Edge) GetSafetyProb() float64 {
	return e.safetyProb
}

func (e *Edge) GetSegmentID() string {
	return e.segmentID
}

// Graph. weighted undirected simple graph over coordinate keyed nodes.
// a graph is built for exactly one cost function and is read-only once built.
type Graph struct {
	vertices  []Node
	nodeIndex map[CoordKey]Index
	adj       [][]Edge
	numEdges  int
	costName  string
}

func NewGraph(costName string) *Graph {
	return &Graph{
		vertices:  make([]Node, 0),
		nodeIndex: make(map[CoordKey]Index),
		adj:       make([][]Edge, 0),
		costName:  costName,
	}
}

func (g *Graph) GetCostFunctionName() string {
	return g.costName
}

// AddVertex returns the index of n, inserting it if needed.
func (g *Graph) AddVertex(n Node) Index {
	if id, ok := g.nodeIndex[n.Key()]; ok {
		return id
	}
	id := Index(len(g.vertices))
	g.vertices = append(g.vertices, n)
	g.nodeIndex[n.Key()] = id
	g.adj = append(g.adj, make([]Edge, 0, 2))
	return id
}

// AddEdge inserts the undirected edge (u,v). adding an edge between an already connected pair
// overwrites its attributes (simple graph view over a multigraph edge source).
func (g *Graph) AddEdge(u, v Node, weight, distance, safetyProb float64, segmentID string) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return fmt.Errorf("%w: segment %s weight %v", ErrNegativeWeight, segmentID, weight)
	}
	uId := g.AddVertex(u)
	vId := g.AddVertex(v)
	if uId == vId {
		// self loops never lie on a shortest path
		return nil
	}

	if !g.updateEdge(uId, vId, weight, distance, safetyProb, segmentID) {
		g.adj[uId] = append(g.adj[uId], NewEdge(vId, weight, distance, safetyProb, segmentID))
		g.adj[vId] = append(g.adj[vId], NewEdge(uId, weight, distance, safetyProb, segmentID))
		g.numEdges++
		return nil
	}
	g.updateEdge(vId, uId, weight, distance, safetyProb, segmentID)
	return nil
}

func (g *Graph) updateEdge(u, v Index, weight, distance, safetyProb float64, segmentID string) bool {
	for i := range g.adj[u] {
		if g.adj[u][i].head == v {
			g.adj[u][i] = NewEdge(v, weight, distance, safetyProb, segmentID)
			return true
		}
	}
	return false
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return g.numEdges
}

func (g *Graph) GetVertex(u Index) Node {
	return g.vertices[u]
}

func (g *Graph) GetVertices() []Node {
	return g.vertices
}

func (g *Graph) GetVertexIndex(n Node) (Index, bool) {
	id, ok := g.nodeIndex[n.Key()]
	return id, ok
}

func (g *Graph) ForOutEdgesOf(u Index, handle func(e *Edge)) {
	for i := range g.adj[u] {
		handle(&g.adj[u][i])
	}
}

// GetEdge returns the edge (u,v) if present.
func (g *Graph) GetEdge(u, v Index) (*Edge, bool) {
	for i := range g.adj[u] {
		if g.adj[u][i].head == v {
			return &g.adj[u][i], true
		}
	}
	return nil, false
}

// Density. 2|E| / (|V|(|V|-1)) for an undirected simple graph
func (g *Graph) Density() float64 {
	n := float64(len(g.vertices))
	if n < 2 {
		return 0
	}
	return 2 * float64(g.numEdges) / (n * (n - 1))
}
