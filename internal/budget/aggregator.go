// Package budget aggregates categorized spending, tracks it against limits,
// forecasts month-end totals and suggests allocations.
package budget

import (
	"time"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/shopspring/decimal"
)

// Sums are accumulated as decimals so that many small amounts add up exactly.
type categorySums map[string]decimal.Decimal

func (s categorySums) add(category string, amount float64) {
	s[category] = s[category].Add(decimal.NewFromFloat(amount))
}

func (s categorySums) floats() map[string]float64 {
	out := make(map[string]float64, len(s))
	for category, sum := range s {
		out[category] = sum.InexactFloat64()
	}
	return out
}

// SpendByCategory sums expense amounts by category. Income is excluded and
// uncategorized expenses are counted under "other".
func SpendByCategory(txns []model.Transaction) map[string]float64 {
	sums := make(categorySums)
	for _, txn := range txns {
		if !txn.IsExpense() {
			continue
		}
		sums.add(txn.CategoryOrOther(), txn.Amount)
	}
	return sums.floats()
}

// SpendThrough sums expense amounts by category for the month containing
// asOf, counting only expenses posted on or before asOf's calendar date.
func SpendThrough(txns []model.Transaction, asOf time.Time) map[string]float64 {
	month := model.MonthOf(asOf)
	through := model.DayOf(asOf)

	sums := make(categorySums)
	for _, txn := range txns {
		if !txn.IsExpense() || txn.Month() != month || model.DayOf(txn.Date).After(through) {
			continue
		}
		sums.add(txn.CategoryOrOther(), txn.Amount)
	}
	return sums.floats()
}

// SpendByMonth sums expense amounts by (month, category).
func SpendByMonth(txns []model.Transaction) map[model.Month]map[string]float64 {
	byMonth := make(map[model.Month]categorySums)
	for _, txn := range txns {
		if !txn.IsExpense() {
			continue
		}
		month := txn.Month()
		if byMonth[month] == nil {
			byMonth[month] = make(categorySums)
		}
		byMonth[month].add(txn.CategoryOrOther(), txn.Amount)
	}

	out := make(map[model.Month]map[string]float64, len(byMonth))
	for month, sums := range byMonth {
		out[month] = sums.floats()
	}
	return out
}

// TotalIncome sums income amounts.
func TotalIncome(txns []model.Transaction) float64 {
	total := decimal.Zero
	for _, txn := range txns {
		if txn.Kind == model.KindIncome {
			total = total.Add(decimal.NewFromFloat(txn.Amount))
		}
	}
	return total.InexactFloat64()
}
