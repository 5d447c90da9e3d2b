package spatialindex

import (
	"math/rand"
	"testing"

	"github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridNodes() []datastructure.Node {
	return []datastructure.Node{
		datastructure.NewNode(0, 0),
		datastructure.NewNode(0, 10),
		datastructure.NewNode(10, 10),
		datastructure.NewNode(10, 0),
	}
}

func TestLinearLocatorNearestK(t *testing.T) {
	l := NewLinearLocator(gridNodes())

	got := l.NearestK(1, 2, 2)
	require.Len(t, got, 2)
	assert.True(t, got[0].GetNode().Equal(datastructure.NewNode(0, 0)))
	assert.InDelta(t, 2.2360679, got[0].GetDistance(), 1e-6)
	assert.True(t, got[1].GetNode().Equal(datastructure.NewNode(0, 10)))

	// equidistant from all corners, ties keep node order
	got = l.NearestK(5, 5, 4)
	require.Len(t, got, 4)
	for i, c := range got {
		assert.Equal(t, datastructure.Index(i), c.GetIndex())
	}

	assert.Len(t, l.NearestK(1, 1, 10), 4)
	assert.Empty(t, l.NearestK(1, 1, 0))
	assert.Empty(t, NewLinearLocator(nil).NearestK(1, 1, 1))
}

func TestRtreeMatchesLinearScan(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	nodes := make([]datastructure.Node, 0, 500)
	for i := 0; i < 500; i++ {
		nodes = append(nodes, datastructure.NewNode(500000+rnd.Float64()*5000, 9000000+rnd.Float64()*5000))
	}
	// clustered duplicates-ish points
	for i := 0; i < 20; i++ {
		nodes = append(nodes, datastructure.NewNode(502000+float64(i%3), 9002000))
	}

	linear := NewLinearLocator(nodes)
	rt := NewRtree()
	rt.Build(nodes)
	assert.Equal(t, len(nodes), rt.Len())

	for q := 0; q < 100; q++ {
		x := 499000 + rnd.Float64()*7000
		y := 8999000 + rnd.Float64()*7000
		for _, k := range []int{1, 3, 10} {
			want := linear.NearestK(x, y, k)
			got := rt.NearestK(x, y, k)
			require.Len(t, got, len(want))
			for i := range want {
				assert.Equal(t, want[i].GetIndex(), got[i].GetIndex(), "query %d k=%d rank %d", q, k, i)
				assert.InDelta(t, want[i].GetDistance(), got[i].GetDistance(), 1e-9)
			}
		}
	}
}

func TestRtreeMoreThanAvailable(t *testing.T) {
	rt := NewRtree()
	rt.Build(gridNodes())

	got := rt.NearestK(-100, -100, 10)
	require.Len(t, got, 4)
	assert.True(t, got[0].GetNode().Equal(datastructure.NewNode(0, 0)))
	assert.True(t, got[3].GetNode().Equal(datastructure.NewNode(10, 10)))
}

func TestRtreeEmpty(t *testing.T) {
	rt := NewRtree()
	rt.Build(nil)
	assert.Empty(t, rt.NearestK(0, 0, 1))
}
