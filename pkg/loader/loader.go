package loader

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lintang-b-s/sheltr/pkg/datastructure"
	"github.com/lintang-b-s/sheltr/pkg/segment"
	"github.com/lintang-b-s/sheltr/pkg/util"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidRow    = errors.New("invalid row")
)

const (
	colHubName      = "HubName"
	colPredProbSafe = "pred_prob_safe"
	colPredSafe     = "pred_safe"

	colFrom      = "from"
	colTo        = "to"
	colCost      = "cost"
	colSegmentID = "road_segment_id"
)

// EdgeSource. ordered raw edge records plus whether their segment ids are stable ids
// or positional indices into the safety records.
type EdgeSource struct {
	records           []datastructure.EdgeRecord
	providesStableIds bool
}

func NewEdgeSource(records []datastructure.EdgeRecord, providesStableIds bool) *EdgeSource {
	return &EdgeSource{records: records, providesStableIds: providesStableIds}
}

func (es *EdgeSource) GetRecords() []datastructure.EdgeRecord {
	return es.records
}

func (es *EdgeSource) ProvidesStableIds() bool {
	return es.providesStableIds
}

func (es *EdgeSource) Len() int {
	return len(es.records)
}

// LoadSegmentSafety reads the classifier output csv (HubName, pred_prob_safe[, pred_safe]).
func LoadSegmentSafety(path string) ([]segment.SafetyRecord, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, fmt.Errorf("open segment safety file: %w", err)
	}
	defer f.Close()
	return ReadSegmentSafety(f)
}

func ReadSegmentSafety(r io.Reader) ([]segment.SafetyRecord, error) {
	t, err := newCSVTable(r, colHubName, colPredProbSafe)
	if err != nil {
		return nil, err
	}

	records := make([]segment.SafetyRecord, 0, 1024)
	for {
		err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read segment safety row: %w", err)
		}

		prob, err := strconv.ParseFloat(t.get(colPredProbSafe), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: pred_prob_safe: %v", ErrInvalidRow, t.line, err)
		}
		records = append(records, segment.NewSafetyRecord(t.get(colHubName), prob, parsePredSafe(t.get(colPredSafe))))
	}
	return records, nil
}

func parsePredSafe(s string) int {
	switch strings.ToLower(s) {
	case "":
		return -1
	case "true":
		return 1
	case "false":
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return -1
	}
	return int(v)
}

// LoadEdges reads the segment graph csv (from, to, cost, road_segment_id). coordinate keys are
// parsed here so a malformed key never reaches graph construction.
func LoadEdges(path string, providesStableIds bool) (*EdgeSource, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, fmt.Errorf("open graph file: %w", err)
	}
	defer f.Close()
	return ReadEdges(f, providesStableIds)
}

func ReadEdges(r io.Reader, providesStableIds bool) (*EdgeSource, error) {
	t, err := newCSVTable(r, colFrom, colTo, colCost, colSegmentID)
	if err != nil {
		return nil, err
	}

	records := make([]datastructure.EdgeRecord, 0, 4096)
	for {
		err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read graph row: %w", err)
		}

		from, err := datastructure.ParseCoordKey(t.get(colFrom))
		if err != nil {
			return nil, fmt.Errorf("line %d: from: %w", t.line, err)
		}
		to, err := datastructure.ParseCoordKey(t.get(colTo))
		if err != nil {
			return nil, fmt.Errorf("line %d: to: %w", t.line, err)
		}
		dist, err := util.StringToFloat64(t.get(colCost))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: cost: %v", ErrInvalidRow, t.line, err)
		}

		rec, err := datastructure.NewEdgeRecord(from, to, dist, util.NormalizeID(t.get(colSegmentID)))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", t.line, err)
		}
		records = append(records, rec)
	}
	return NewEdgeSource(records, providesStableIds), nil
}
