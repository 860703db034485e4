package stats

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/hoops-edge/internal/models"
)

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}

// Correlation returns the Pearson coefficient of x and y rounded to 3 decimals.
// A constant series has no defined coefficient and yields 0.
func Correlation(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	r = math.Max(-1, math.Min(1, r))
	return Round(r, 3)
}

// Mean returns the arithmetic mean, or false for an empty slice.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}

// PopStdDev returns the population standard deviation, or false for an empty slice.
func PopStdDev(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return stat.PopStdDev(values, nil), true
}

// Points extracts the points column.
func Points(logs []models.GameLog) []float64 {
	points := make([]float64, len(logs))
	for i, gl := range logs {
		points[i] = float64(gl.Points)
	}
	return points
}

// ThreePointFrequency returns three point attempts as a percentage of field goal attempts.
func ThreePointFrequency(logs []models.GameLog) float64 {
	var threes, total []float64
	for _, gl := range logs {
		threes = append(threes, float64(gl.ThreePtAttempted))
		total = append(total, float64(gl.FGAttempted))
	}
	return percentage(floats.Sum(threes), floats.Sum(total))
}

// TwoPointFrequency returns two point attempts as a percentage of field goal attempts.
func TwoPointFrequency(logs []models.GameLog) float64 {
	var twos, total []float64
	for _, gl := range logs {
		twos = append(twos, float64(gl.FGAttempted-gl.ThreePtAttempted))
		total = append(total, float64(gl.FGAttempted))
	}
	return percentage(floats.Sum(twos), floats.Sum(total))
}

// EffectiveFieldGoal returns (FGM + 0.5*3PM) / FGA across the logs.
func EffectiveFieldGoal(logs []models.GameLog) float64 {
	var made, threes, attempts float64
	for _, gl := range logs {
		made += float64(gl.FGMade)
		threes += float64(gl.ThreePtMade)
		attempts += float64(gl.FGAttempted)
	}
	if attempts == 0 {
		return 0
	}
	return (made + 0.5*threes) / attempts
}

func percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// HitRate returns the share of games where points reached the line, formatted "%.1f%%".
func HitRate(logs []models.GameLog, line float64) (string, bool) {
	if len(logs) == 0 {
		return "", false
	}
	hits := 0
	for _, gl := range logs {
		if float64(gl.Points) >= line {
			hits++
		}
	}
	return fmt.Sprintf("%.1f%%", float64(hits)/float64(len(logs))*100), true
}

// RestDays returns the smallest positive day gap between day and any of others,
// or ceiling when no gap is below it.
func RestDays(day time.Time, others []time.Time, ceiling int) int {
	rest := ceiling
	for _, other := range others {
		gap := int(day.Sub(other).Hours() / 24)
		if gap > 0 && gap < rest {
			rest = gap
		}
	}
	return rest
}
