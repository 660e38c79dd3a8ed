package budget

import (
	"time"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

// NewBudget derives remaining and percent-used from a limit and spend.
// A zero or negative limit reports 0% when nothing is spent and 100% otherwise.
func NewBudget(category string, limit, spent float64) model.Budget {
	return model.Budget{
		Category:    category,
		Limit:       limit,
		Spent:       spent,
		Remaining:   limit - spent,
		PercentUsed: percentOf(spent, limit),
	}
}

// Track computes one Budget per limit, in limit order, from spend in the
// month containing asOf up to and including asOf's date.
func Track(limits []model.BudgetLimit, txns []model.Transaction, asOf time.Time) []model.Budget {
	spent := SpendThrough(txns, asOf)

	budgets := make([]model.Budget, 0, len(limits))
	for _, l := range limits {
		budgets = append(budgets, NewBudget(l.Category, l.Limit, spent[l.Category]))
	}
	return budgets
}

func percentOf(spent, limit float64) float64 {
	if limit <= 0 {
		if spent > 0 {
			return 100
		}
		return 0
	}
	return spent / limit * 100
}
