package guidance

import (
	"fmt"
	"math"
)

const (
	WALKING_SPEED_KMH = 5.0
)

type Summary struct {
	TotalSteps             int     `json:"total_steps"`
	TotalDistance          float64 `json:"total_distance"`
	TotalDistanceFormatted string  `json:"total_distance_formatted"`
	NumTurns               int     `json:"num_turns"`
	EstimatedTimeMinutes   int     `json:"estimated_time_minutes"`
}

// NewSummary summarizes directions. nil for no directions.
func NewSummary(directions []Direction) *Summary {
	if len(directions) == 0 {
		return nil
	}
	total := directions[len(directions)-1].TotalDistance
	numTurns := 0
	for _, d := range directions {
		if d.Type == TURN {
			numTurns++
		}
	}
	return &Summary{
		TotalSteps:             len(directions),
		TotalDistance:          total,
		TotalDistanceFormatted: FormatDistance(total),
		NumTurns:               numTurns,
		EstimatedTimeMinutes:   int(math.RoundToEven(total / 1000 / WALKING_SPEED_KMH * 60)),
	}
}

// FormatDistance. "850m" below a kilometer, "1.2km" above
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(meters))
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}
