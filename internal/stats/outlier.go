// Package stats holds the robust statistics and shooting summaries the engine derives features from.
package stats

import (
	"math"
	"sort"

	"github.com/yourusername/hoops-edge/internal/models"
)

// modifiedZScale is the 0.75 quantile of the standard normal distribution.
const modifiedZScale = 0.6745

// Bounds is the inclusive modified z-score window an observation must fall in.
type Bounds struct {
	Lower float64 `mapstructure:"lower" json:"lower"`
	Upper float64 `mapstructure:"upper" json:"upper"`
}

// Dropped describes an observation removed by the filter.
type Dropped struct {
	Index  int
	Value  float64
	ZScore float64
}

// Attribute names a numeric game log column the filter can key on.
type Attribute string

// Filterable game log attributes
const (
	AttrMinutes  Attribute = "minutes_played"
	AttrPoints   Attribute = "points"
	AttrRebounds Attribute = "rebounds"
	AttrAssists  Attribute = "assists"
	AttrThrees   Attribute = "three_pt_made"
)

// Value reads the attribute from a game log.
func (a Attribute) Value(gl models.GameLog) float64 {
	switch a {
	case AttrMinutes:
		return float64(gl.MinutesPlayed)
	case AttrPoints:
		return float64(gl.Points)
	case AttrRebounds:
		return float64(gl.Rebounds)
	case AttrAssists:
		return float64(gl.Assists)
	case AttrThrees:
		return float64(gl.ThreePtMade)
	}
	return math.NaN()
}

// RemoveOutliers keeps the items whose modified z-score lies within bounds.
// Inputs of length <= 1 and inputs with zero MAD are returned unchanged.
// The input slice is never modified.
func RemoveOutliers[T any](items []T, value func(T) float64, bounds Bounds) ([]T, []Dropped) {
	if len(items) <= 1 {
		return items, nil
	}

	values := make([]float64, len(items))
	for i, item := range items {
		values[i] = value(item)
	}

	median := Median(values)
	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = math.Abs(v - median)
	}
	mad := Median(deviations)
	if mad == 0 {
		return items, nil
	}

	kept := make([]T, 0, len(items))
	var dropped []Dropped
	for i, item := range items {
		z := modifiedZScale * (values[i] - median) / mad
		if z < bounds.Lower || z > bounds.Upper {
			dropped = append(dropped, Dropped{Index: i, Value: values[i], ZScore: z})
			continue
		}
		kept = append(kept, item)
	}
	return kept, dropped
}

// FilterGameLogs applies RemoveOutliers to game logs keyed by attribute.
func FilterGameLogs(logs []models.GameLog, attribute Attribute, bounds Bounds) ([]models.GameLog, []Dropped) {
	return RemoveOutliers(logs, attribute.Value, bounds)
}

// Median returns the middle value, averaging the two middle values for even lengths.
// Returns NaN for an empty slice.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
