package budget

import (
	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

// Envelope shares of monthly income.
const (
	NeedsShare   = 0.50
	WantsShare   = 0.30
	SavingsShare = 0.20

	investmentShare    = 0.70
	emergencyFundShare = 0.30
)

// envelope is one bucket of the 50/30/20 split.
type envelope struct {
	defaults   map[string]float64
	categories []string
	share      float64
}

var envelopes = []envelope{
	{
		share:      NeedsShare,
		categories: model.NeedCategories(),
		defaults: map[string]float64{
			model.CategoryHousing:        0.50,
			model.CategoryUtilities:      0.15,
			model.CategoryFood:           0.25,
			model.CategoryTransportation: 0.10,
		},
	},
	{
		share:      WantsShare,
		categories: model.WantCategories(),
		defaults: map[string]float64{
			model.CategoryEntertainment: 0.40,
			model.CategoryShopping:      0.40,
			model.CategoryPersonal:      0.20,
		},
	},
}

// SuggestBudgetAllocation splits monthly income with a 50/30/20 envelope.
// Needs and wants are divided by each category's historical weight within its
// envelope, or by a fixed default split when the envelope has no history.
// Savings are always 70% investment and 30% emergency fund. The returned
// amounts sum to monthlyIncome; a non-positive income yields all zeros.
func SuggestBudgetAllocation(txns []model.Transaction, monthlyIncome float64) map[string]float64 {
	if monthlyIncome < 0 {
		monthlyIncome = 0
	}
	history := SpendByCategory(txns)
	allocation := make(map[string]float64)

	for _, env := range envelopes {
		pot := monthlyIncome * env.share
		weights := envelopeWeights(env, history)
		for _, category := range env.categories {
			allocation[category] = pot * weights[category]
		}
	}

	savings := monthlyIncome * SavingsShare
	allocation[model.CategoryInvestment] = savings * investmentShare
	allocation[model.CategoryEmergencyFund] = savings * emergencyFundShare

	return allocation
}

// envelopeWeights returns each category's share of its envelope; the shares sum to 1.
func envelopeWeights(env envelope, history map[string]float64) map[string]float64 {
	var total float64
	for _, category := range env.categories {
		total += history[category]
	}
	if total <= 0 {
		return env.defaults
	}

	weights := make(map[string]float64, len(env.categories))
	for _, category := range env.categories {
		weights[category] = history[category] / total
	}
	return weights
}
