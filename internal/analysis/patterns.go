// Package analysis derives trends, insights and recommendations from
// categorized spending and budget forecasts.
package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/Veraticus/the-budget-must-flow/internal/budget"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

const (
	// DefaultLookbackMonths is the pattern window used when none is given.
	DefaultLookbackMonths = 3
	// StableChangePercent is the average change below which a trend is stable.
	StableChangePercent = 5.0
)

// AnalyzeSpendingPatterns classifies each category's trend over the
// lookbackMonths calendar months ending with the month of asOf. Only expense
// transactions count. Results are sorted by category.
func AnalyzeSpendingPatterns(txns []model.Transaction, lookbackMonths int, asOf time.Time) []model.SpendingPattern {
	if lookbackMonths <= 0 {
		lookbackMonths = DefaultLookbackMonths
	}
	last := model.MonthOf(asOf)
	first := last.AddMonths(-(lookbackMonths - 1))

	byMonth := budget.SpendByMonth(txns)
	months := make([]model.Month, 0, len(byMonth))
	for month := range byMonth {
		if month.Before(first) || last.Before(month) {
			continue
		}
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	// Series only contain months in which the category was observed.
	series := make(map[string][]float64)
	for _, month := range months {
		for category, sum := range byMonth[month] {
			series[category] = append(series[category], sum)
		}
	}

	categories := make([]string, 0, len(series))
	for category := range series {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	patterns := make([]model.SpendingPattern, 0, len(categories))
	for _, category := range categories {
		patterns = append(patterns, ClassifySeries(category, series[category]))
	}
	return patterns
}

// ClassifySeries classifies a chronological series of monthly totals.
//
// Month-over-month changes are computed between consecutive points, skipping
// pairs whose earlier value is zero. Opposite-signed consecutive changes mark
// the series as fluctuating regardless of the average; otherwise an average
// under StableChangePercent in magnitude is stable.
func ClassifySeries(category string, totals []float64) model.SpendingPattern {
	pattern := model.SpendingPattern{
		Category:      category,
		Pattern:       model.PatternStable,
		MonthlyTotals: append([]float64(nil), totals...),
	}
	if len(totals) < 2 {
		return pattern
	}

	changes := percentChanges(totals)
	if len(changes) == 0 {
		return pattern
	}

	var sum float64
	for _, c := range changes {
		sum += c
	}
	avg := sum / float64(len(changes))
	pattern.PercentageChange = avg

	switch {
	case hasSignChange(changes):
		pattern.Pattern = model.PatternFluctuating
	case math.Abs(avg) < StableChangePercent:
		pattern.Pattern = model.PatternStable
	case avg > 0:
		pattern.Pattern = model.PatternIncreasing
	default:
		pattern.Pattern = model.PatternDecreasing
	}
	return pattern
}

func percentChanges(totals []float64) []float64 {
	changes := make([]float64, 0, len(totals)-1)
	for i := 1; i < len(totals); i++ {
		prev := totals[i-1]
		if prev == 0 {
			continue
		}
		changes = append(changes, (totals[i]-prev)/prev*100)
	}
	return changes
}

func hasSignChange(changes []float64) bool {
	if len(changes) < 2 {
		return false
	}
	for i := 1; i < len(changes); i++ {
		if changes[i-1]*changes[i] < 0 {
			return true
		}
	}
	return false
}
