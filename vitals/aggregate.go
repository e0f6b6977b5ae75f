package vitals

import (
	"math"
	"slices"
	"strings"

	"github.com/ayoisaiah/cogload/internal/models"
)

// Aggregation methods for combining per-reading cost deltas.
const (
	Mean   = "mean"
	Median = "median"
	P90    = "p90"
)

// ValidAggregation reports whether method names a supported aggregation.
func ValidAggregation(method string) bool {
	switch strings.ToLower(method) {
	case Mean, Median, P90:
		return true
	}

	return false
}

// Aggregate combines values with the named method. An empty input yields 0.
func Aggregate(values []float64, method string) (float64, error) {
	if !ValidAggregation(method) {
		return 0, errUnknownAggregation.Fmt(method)
	}

	if len(values) == 0 {
		return 0, nil
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	n := len(sorted)

	switch strings.ToLower(method) {
	case Mean:
		var sum float64
		for _, v := range sorted {
			sum += v
		}

		return sum / float64(n), nil
	case P90:
		return sorted[min(int(float64(n)*0.9), n-1)], nil
	default:
		if n%2 == 1 {
			return sorted[n/2], nil
		}

		return (sorted[n/2-1] + sorted[n/2]) / 2, nil
	}
}

// Summary describes the readings of one session.
type Summary struct {
	Count     int     `json:"count"`
	AvgFocus  float64 `json:"avg_focus"`
	MinFocus  float64 `json:"min_focus"`
	AvgStress float64 `json:"avg_stress"`
	MaxStress float64 `json:"max_stress"`
	AvgHRV    float64 `json:"avg_hrv"`
}

// Summarize computes summary statistics over scores. Averages are rounded
// to whole points.
func Summarize(scores []models.Score) Summary {
	if len(scores) == 0 {
		return Summary{}
	}

	s := Summary{
		Count:     len(scores),
		MinFocus:  scores[0].Focus,
		MaxStress: scores[0].Stress,
	}

	var focus, stress, hrv float64

	for i := range scores {
		focus += scores[i].Focus
		stress += scores[i].Stress
		hrv += scores[i].HRV

		s.MinFocus = math.Min(s.MinFocus, scores[i].Focus)
		s.MaxStress = math.Max(s.MaxStress, scores[i].Stress)
	}

	n := float64(len(scores))
	s.AvgFocus = math.Round(focus / n)
	s.AvgStress = math.Round(stress / n)
	s.AvgHRV = math.Round(hrv / n)

	return s
}
