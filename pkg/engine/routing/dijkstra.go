package routing

import (
	"math"

	da "github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/lintang-b-s/sheltr/pkg/spatialindex"
)

type vertexInfo struct {
	dist     float64
	parent   da.Index
	heapNode *da.PriorityQueueNode[da.Index]
	settled  bool
}

// Dijkstra. point to point shortest path over one built graph. a Dijkstra holds no state
// between queries, concurrent queries on the same graph are safe.
type Dijkstra struct {
	graph   *da.Graph
	locator spatialindex.NodeLocator
}

func NewDijkstra(graph *da.Graph, locator spatialindex.NodeLocator) *Dijkstra {
	return &Dijkstra{
		graph:   graph,
		locator: locator,
	}
}

func (d *Dijkstra) GetGraph() *da.Graph {
	return d.graph
}

// snap returns the graph vertex for q. a point that is not exactly a graph node is replaced by its nearest node.
func (d *Dijkstra) snap(q da.Node) (da.Index, SnapInfo, bool) {
	if id, ok := d.graph.GetVertexIndex(q); ok {
		return id, SnapInfo{Query: q, Node: q}, true
	}
	cands := d.locator.NearestK(q.GetX(), q.GetY(), 1)
	if len(cands) == 0 {
		return da.INVALID_VERTEX_ID, SnapInfo{Query: q}, false
	}
	c := cands[0]
	return c.GetIndex(), SnapInfo{Query: q, Node: c.GetNode(), Snapped: true, Distance: c.GetDistance()}, true
}

// ShortestPath runs dijkstra from start to end, snapping either endpoint onto the graph if needed.
func (d *Dijkstra) ShortestPath(start, end da.Node) *Route {
	if d.graph == nil || d.graph.NumberOfVertices() < 2 {
		return NewFailedRoute(INSUFFICIENT_GRAPH, SnapInfo{Query: start}, SnapInfo{Query: end})
	}

	s, startSnap, ok := d.snap(start)
	if !ok {
		return NewFailedRoute(INSUFFICIENT_GRAPH, startSnap, SnapInfo{Query: end})
	}
	t, endSnap, ok := d.snap(end)
	if !ok {
		return NewFailedRoute(INSUFFICIENT_GRAPH, startSnap, endSnap)
	}

	info := d.search(s, t)
	if math.IsInf(info[t].dist, 1) {
		return NewFailedRoute(NO_PATH_FOUND, startSnap, endSnap)
	}

	path := d.reconstruct(info, s, t)
	nodes := make([]da.Node, len(path))
	for i, v := range path {
		nodes[i] = d.graph.GetVertex(v)
	}
	return &Route{
		Success:   true,
		Path:      nodes,
		TotalCost: info[t].dist,
		Detail:    NewPathDetail(d.graph, path),
		StartSnap: startSnap,
		EndSnap:   endSnap,
	}
}

func (d *Dijkstra) search(s, t da.Index) []vertexInfo {
	n := d.graph.NumberOfVertices()
	info := make([]vertexInfo, n)
	for i := range info {
		info[i] = vertexInfo{dist: math.Inf(1), parent: da.INVALID_VERTEX_ID}
	}

	pq := da.NewFourAryHeap[da.Index]()
	info[s].dist = 0
	info[s].heapNode = da.NewPriorityQueueNode(0, s)
	pq.Insert(info[s].heapNode)

	for !pq.IsEmpty() {
		minNode, _ := pq.ExtractMin()
		u := minNode.GetItem()
		if info[u].settled {
			// stale entry left behind by a reinsert
			continue
		}
		info[u].settled = true
		info[u].heapNode = nil
		if u == t {
			break
		}

		d.graph.ForOutEdgesOf(u, func(e *da.Edge) {
			v := e.GetHead()
			if info[v].settled {
				return
			}
			newDist := info[u].dist + e.GetWeight()
			if !(newDist < info[v].dist) {
				return
			}

			info[v].parent = u
			relax(pq, info, v, newDist)
		})
	}
	return info
}

// relax lowers the tentative distance of v. when the heap rejects the decrease the vertex is pushed again
// and the old entry is skipped once popped.
func relax(pq *da.MinHeap[da.Index], info []vertexInfo, v da.Index, dist float64) {
	info[v].dist = dist
	if info[v].heapNode != nil {
		if err := pq.DecreaseKey(info[v].heapNode, dist); err == nil {
			return
		}
	}
	info[v].heapNode = da.NewPriorityQueueNode(dist, v)
	pq.Insert(info[v].heapNode)
}

func (d *Dijkstra) reconstruct(info []vertexInfo, s, t da.Index) []da.Index {
	path := make([]da.Index, 0)
	for v := t; v != da.INVALID_VERTEX_ID; v = info[v].parent {
		path = append(path, v)
		if v == s {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
