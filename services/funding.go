package services

import (
	"math"

	"github.com/shopspring/decimal"

	models "github.com/nayeem/cleanup-portal-go/models"
	utils "github.com/nayeem/cleanup-portal-go/utils"
)

// Funding is the derived progress of an issue's fix budget.
type Funding struct {
	TotalCollected float64 `json:"totalCollected"`
	Percent        int     `json:"percent"`
}

// Aggregate sums the contribution amounts against the issue's goal.
// Summation runs through decimal so repeated float addition cannot
// drift a receipt total. Percent is rounded to the nearest integer and
// clamped to [0,100]; a zero, negative, or non-finite goal yields 0.
// The input slice is never mutated and order does not matter.
func Aggregate(contributions []models.Contribution, goal float64) Funding {
	total := decimal.Zero
	for _, c := range contributions {
		amount := utils.CoerceAmount(c.Amount)
		if amount == 0 {
			continue
		}
		total = total.Add(decimal.NewFromFloat(amount))
	}

	totalCollected, _ := total.Float64()

	if goal <= 0 || math.IsNaN(goal) || math.IsInf(goal, 0) {
		return Funding{TotalCollected: totalCollected}
	}

	percent := total.
		Div(decimal.NewFromFloat(goal)).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return Funding{TotalCollected: totalCollected, Percent: int(percent)}
}
