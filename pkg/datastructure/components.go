package datastructure

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrNoComponent = errors.New("no connected component meets the minimum size")
)

// Component. maximal set of nodes mutually reachable through raw (unweighted) edges.
type Component struct {
	nodes     []Node
	members   map[CoordKey]struct{}
	firstSeen int
}

func (c *Component) Size() int {
	return len(c.nodes)
}

func (c *Component) Contains(n Node) bool {
	_, ok := c.members[n.Key()]
	return ok
}

// GetNodes. nodes in first-encountered order
func (c *Component) GetNodes() []Node {
	return c.nodes
}

type disjointSet struct {
	parent []int
	size   []int
}

func newDisjointSet() *disjointSet {
	return &disjointSet{
		parent: make([]int, 0),
		size:   make([]int, 0),
	}
}

func (ds *disjointSet) makeSet() int {
	id := len(ds.parent)
	ds.parent = append(ds.parent, id)
	ds.size = append(ds.size, 1)
	return id
}

func (ds *disjointSet) find(u int) int {
	root := u
	for ds.parent[root] != root {
		root = ds.parent[root]
	}
	for ds.parent[u] != root {
		next := ds.parent[u]
		ds.parent[u] = root
		u = next
	}
	return root
}

func (ds *disjointSet) union(u, v int) {
	ru, rv := ds.find(u), ds.find(v)
	if ru == rv {
		return
	}
	if ds.size[ru] < ds.size[rv] {
		ru, rv = rv, ru
	}
	ds.parent[rv] = ru
	ds.size[ru] += ds.size[rv]
}

// FindConnectedComponents partitions the nodes of the raw edge list into connected components,
// ranked by descending size. ties keep the order in which their first node was encountered.
func FindConnectedComponents(records []EdgeRecord) []*Component {
	ds := newDisjointSet()
	ids := make(map[CoordKey]int, len(records))
	order := make([]Node, 0, len(records))

	idOf := func(n Node) int {
		if id, ok := ids[n.Key()]; ok {
			return id
		}
		id := ds.makeSet()
		ids[n.Key()] = id
		order = append(order, n)
		return id
	}

	for _, e := range records {
		u := idOf(e.GetFrom())
		v := idOf(e.GetTo())
		ds.union(u, v)
	}

	rootComponent := make(map[int]*Component)
	components := make([]*Component, 0)
	for id, n := range order {
		root := ds.find(id)
		comp, ok := rootComponent[root]
		if !ok {
			comp = &Component{
				nodes:     make([]Node, 0, ds.size[root]),
				members:   make(map[CoordKey]struct{}, ds.size[root]),
				firstSeen: id,
			}
			rootComponent[root] = comp
			components = append(components, comp)
		}
		comp.nodes = append(comp.nodes, n)
		comp.members[n.Key()] = struct{}{}
	}

	// components are already in first-seen order, a stable sort keeps it for equal sizes
	sort.SliceStable(components, func(i, j int) bool {
		return components[i].Size() > components[j].Size()
	})
	return components
}

// SelectComponent returns the largest component with at least minSize nodes.
func SelectComponent(components []*Component, minSize int) (*Component, error) {
	// ranked by size, only the first component can qualify
	if len(components) > 0 && components[0].Size() >= minSize {
		return components[0], nil
	}
	return nil, fmt.Errorf("%w: minimum size %d, %d components", ErrNoComponent, minSize, len(components))
}
