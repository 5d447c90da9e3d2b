package datastructure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeKeyRounding(t *testing.T) {
	a := NewNode(421034.1234561, 9213450.0000004)
	b := NewNode(421034.1234559, 9213449.9999996)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "421034.123456,9213450.000000", a.String())

	c := NewNode(421034.123457, 9213450)
	assert.False(t, a.Equal(c))
}

func TestParseCoordKey(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Node
		wantErr bool
	}{
		{name: "plain", in: "10,20", want: NewNode(10, 20)},
		{name: "spaces", in: " 1.5 , -2.25 ", want: NewNode(1.5, -2.25)},
		{name: "one component", in: "10", wantErr: true},
		{name: "three components", in: "1,2,3", wantErr: true},
		{name: "not a number", in: "a,2", wantErr: true},
		{name: "not finite", in: "NaN,2", wantErr: true},
		{name: "infinite", in: "1,+Inf", wantErr: true},
		{name: "key overflow", in: "1e13,5", wantErr: true},
		{name: "negative key overflow", in: "5,-9.3e12", wantErr: true},
		{name: "largest key", in: "1e12,-1e12", want: NewNode(1e12, -1e12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordKey(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedCoordinateKey)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestNewNodeChecked(t *testing.T) {
	for _, v := range [][2]float64{
		{math.NaN(), 0},
		{0, math.Inf(-1)},
		{2e12, 0},
		{0, -1e18},
	} {
		_, err := NewNodeChecked(v[0], v[1])
		assert.ErrorIs(t, err, ErrCoordinateOutOfRange, "%v", v)
	}

	n, err := NewNodeChecked(421034.5, 9213450.25)
	require.NoError(t, err)
	assert.True(t, n.Equal(NewNode(421034.5, 9213450.25)))

	// out of range components saturate instead of wrapping around
	big := NewNode(1e18, -1e18)
	assert.Equal(t, int64(1e18), big.Key().GetX())
	assert.Equal(t, int64(-1e18), big.Key().GetY())
}

func TestNewEdgeRecordRejectsBadDistance(t *testing.T) {
	_, err := NewEdgeRecord(NewNode(0, 0), NewNode(1, 0), -1, "s")
	assert.ErrorIs(t, err, ErrNegativeDistance)

	e, err := NewEdgeRecord(NewNode(0, 0), NewNode(1, 0), 0, "s")
	require.NoError(t, err)
	assert.Equal(t, 0.0, e.GetDistance())
}

func mustRecord(t *testing.T, from, to Node) EdgeRecord {
	t.Helper()
	e, err := NewEdgeRecord(from, to, 1, "")
	require.NoError(t, err)
	return e
}

func TestFindConnectedComponents(t *testing.T) {
	a, b, c := NewNode(0, 0), NewNode(1, 0), NewNode(2, 0)
	x, y := NewNode(10, 10), NewNode(11, 10)
	p, q := NewNode(20, 20), NewNode(21, 20)

	comps := FindConnectedComponents([]EdgeRecord{
		mustRecord(t, x, y),
		mustRecord(t, a, b),
		mustRecord(t, p, q),
		mustRecord(t, b, c),
	})

	require.Len(t, comps, 3)
	assert.Equal(t, 3, comps[0].Size())
	assert.True(t, comps[0].Contains(a))
	assert.True(t, comps[0].Contains(c))
	// equal sizes keep first-seen order
	assert.True(t, comps[1].Contains(x))
	assert.True(t, comps[2].Contains(p))

	sel, err := SelectComponent(comps, 2)
	require.NoError(t, err)
	assert.Same(t, comps[0], sel)

	_, err = SelectComponent(comps, 4)
	assert.ErrorIs(t, err, ErrNoComponent)

	_, err = SelectComponent(nil, 1)
	assert.ErrorIs(t, err, ErrNoComponent)
}

func TestHeapOrder(t *testing.T) {
	h := NewFourAryHeap[string]()
	nodes := map[string]*PriorityQueueNode[string]{}
	for _, it := range []struct {
		item string
		rank float64
	}{{"c", 3}, {"a", 1}, {"tie1", 2}, {"tie2", 2}, {"e", 5}} {
		nodes[it.item] = NewPriorityQueueNode(it.rank, it.item)
		h.Insert(nodes[it.item])
	}

	require.NoError(t, h.DecreaseKey(nodes["e"], 0.5))
	assert.ErrorIs(t, h.DecreaseKey(nodes["c"], 10), ErrInvalidDecrease, "a larger rank is not a decrease")

	got := make([]string, 0, 5)
	for !h.IsEmpty() {
		n, err := h.ExtractMin()
		require.NoError(t, err)
		got = append(got, n.GetItem())
	}
	assert.Equal(t, []string{"e", "a", "tie1", "tie2", "c"}, got)

	_, err := h.ExtractMin()
	assert.ErrorIs(t, err, ErrEmptyHeap)
	_, err = h.GetMin()
	assert.ErrorIs(t, err, ErrEmptyHeap)
}

func TestGraphSimpleView(t *testing.T) {
	a, b := NewNode(0, 0), NewNode(3, 4)
	g := NewGraph("distance")

	require.NoError(t, g.AddEdge(a, b, 5, 5, 0.9, "first"))
	require.NoError(t, g.AddEdge(b, a, 7, 7, 0.1, "second"))
	require.NoError(t, g.AddEdge(a, a, 1, 1, 1, "loop"))

	assert.Equal(t, 2, g.NumberOfVertices())
	assert.Equal(t, 1, g.NumberOfEdges())

	u, ok := g.GetVertexIndex(a)
	require.True(t, ok)
	v, ok := g.GetVertexIndex(b)
	require.True(t, ok)
	degree := 0
	g.ForOutEdgesOf(u, func(e *Edge) { degree++ })
	assert.Equal(t, 1, degree)

	e, ok := g.GetEdge(u, v)
	require.True(t, ok)
	assert.Equal(t, "second", e.GetSegmentID())
	back, ok := g.GetEdge(v, u)
	require.True(t, ok)
	assert.Equal(t, 7.0, back.GetWeight())

	assert.ErrorIs(t, g.AddEdge(a, b, -1, 1, 1, "neg"), ErrNegativeWeight)
	assert.InDelta(t, 1.0, g.Density(), 1e-12)
}

func TestPointSegmentDistance(t *testing.T) {
	a, b := NewPoint(0, 0), NewPoint(10, 0)

	assert.InDelta(t, 3.0, PointSegmentDistance(NewPoint(5, 3), a, b), 1e-12)
	assert.InDelta(t, 5.0, PointSegmentDistance(NewPoint(-3, 4), a, b), 1e-12)
	assert.InDelta(t, 5.0, PointSegmentDistance(NewPoint(13, 4), a, b), 1e-12)
	assert.InDelta(t, 5.0, PointSegmentDistance(NewPoint(3, 4), a, a), 1e-12)
}
