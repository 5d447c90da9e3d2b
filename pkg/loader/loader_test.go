package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const segmentsCSV = `HubName,pred_prob_safe,pred_safe
101.0,0.91,1
102.0,0.15,0
103,0.5,
`

const graphCSV = `from,to,cost,road_segment_id
"0.0,0.0","0.0,10.0",10,0
"0.0,10.0","10.0,10.0",10.0,1
"10.0,10.0","10,0",10,2.0
`

func TestReadSegmentSafety(t *testing.T) {
	records, err := ReadSegmentSafety(strings.NewReader(segmentsCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "101", records[0].GetSegmentID())
	assert.Equal(t, 0.91, records[0].GetSafetyProb())
	assert.Equal(t, 1, records[0].GetPredSafe())
	assert.Equal(t, 0, records[1].GetPredSafe())
	assert.Equal(t, -1, records[2].GetPredSafe())
}

func TestReadSegmentSafetyMissingColumn(t *testing.T) {
	_, err := ReadSegmentSafety(strings.NewReader("HubName,prob\n1,0.4\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadSegmentSafetyInvalidProbability(t *testing.T) {
	_, err := ReadSegmentSafety(strings.NewReader("HubName,pred_prob_safe\n1,abc\n"))
	assert.ErrorIs(t, err, ErrInvalidRow)
}

func TestReadEdges(t *testing.T) {
	es, err := ReadEdges(strings.NewReader(graphCSV), false)
	require.NoError(t, err)
	require.Equal(t, 3, es.Len())
	assert.False(t, es.ProvidesStableIds())

	recs := es.GetRecords()
	assert.Equal(t, "0", recs[0].GetSegmentID())
	assert.Equal(t, "2", recs[2].GetSegmentID())
	assert.Equal(t, 10.0, recs[1].GetDistance())

	// "10,0" and "10.0,10.0" style keys resolve to the same canonical nodes
	assert.True(t, recs[2].GetTo().Equal(datastructure.NewNode(10, 0)))
	assert.True(t, recs[1].GetTo().Equal(recs[2].GetFrom()))
}

func TestReadEdgesRejectsMalformedKey(t *testing.T) {
	testCases := []struct {
		name string
		csv  string
	}{
		{"one component", "from,to,cost,road_segment_id\n\"1.0\",\"2.0,3.0\",1,7\n"},
		{"non numeric", "from,to,cost,road_segment_id\n\"a,b\",\"2.0,3.0\",1,7\n"},
		{"three components", "from,to,cost,road_segment_id\n\"1,2\",\"2.0,3.0,4.0\",1,7\n"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEdges(strings.NewReader(tt.csv), true)
			assert.ErrorIs(t, err, datastructure.ErrMalformedCoordinateKey)
		})
	}
}

func TestReadEdgesRejectsNegativeDistance(t *testing.T) {
	_, err := ReadEdges(strings.NewReader("from,to,cost,road_segment_id\n\"1,2\",\"2,3\",-4,7\n"), true)
	assert.ErrorIs(t, err, datastructure.ErrNegativeDistance)
}

func TestLoadEdgesBzip2(t *testing.T) {
	var buf bytes.Buffer
	bz, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bz.Write([]byte(graphCSV))
	require.NoError(t, err)
	require.NoError(t, bz.Close())

	path := filepath.Join(t.TempDir(), "segments_graph.csv.bz2")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	es, err := LoadEdges(path, true)
	require.NoError(t, err)
	assert.Equal(t, 3, es.Len())
	assert.True(t, es.ProvidesStableIds())
}

func TestLoadSegmentSafetyMissingFile(t *testing.T) {
	_, err := LoadSegmentSafety(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestForEachRow(t *testing.T) {
	rows := []map[string]string{}
	err := ForEachRow(strings.NewReader("name,Lat,lng\nA, 14.6 ,121.0\nB,14.7,121.1\n"), func(line int, row map[string]string) error {
		rows = append(rows, row)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "14.6", rows[0]["Lat"])
	assert.Equal(t, "B", rows[1]["name"])
}
