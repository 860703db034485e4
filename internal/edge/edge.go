// Package edge converts American odds into implied probabilities and prices a
// model probability against them.
package edge

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/hoops-edge/internal/models"
)

var hundred = decimal.NewFromInt(100)

// ParseAmericanOdds parses odds such as "+150", "-110" or "−200".
func ParseAmericanOdds(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "−", "-")
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty odds: %w", models.ErrInvalidInput)
	}
	odds, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse odds %q: %w", raw, models.ErrInvalidInput)
	}
	return odds, nil
}

// ImpliedProbability returns the break-even probability of American odds.
// Odds of zero have no meaning and return ErrDegenerateInput.
func ImpliedProbability(odds decimal.Decimal) (decimal.Decimal, error) {
	switch {
	case odds.IsZero():
		return decimal.Zero, fmt.Errorf("odds of zero: %w", models.ErrDegenerateInput)
	case odds.IsPositive():
		return hundred.Div(odds.Add(hundred)), nil
	default:
		neg := odds.Neg()
		return neg.Div(neg.Add(hundred)), nil
	}
}

// Edge returns the model probability minus the implied probability, in percentage points.
func Edge(probability float64, odds decimal.Decimal) (decimal.Decimal, error) {
	implied, err := ImpliedProbability(odds)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(probability).Sub(implied).Mul(hundred), nil
}

// Format renders an edge as "3.33%".
func Format(edge decimal.Decimal) string {
	return edge.StringFixed(2) + "%"
}

// ForPrediction prices a prediction against the odds of the side it picked.
func ForPrediction(p models.Prediction, overOdds, underOdds string) (string, error) {
	raw := underOdds
	if p.Over {
		raw = overOdds
	}
	odds, err := ParseAmericanOdds(raw)
	if err != nil {
		return "", err
	}
	e, err := Edge(p.Probability, odds)
	if err != nil {
		return "", err
	}
	return Format(e), nil
}
