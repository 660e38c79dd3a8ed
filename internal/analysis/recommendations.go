package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

// Recommendation thresholds.
const (
	// UnderUtilizedPercent marks a budget as a reallocation source.
	UnderUtilizedPercent = 70.0
	// OverUtilizedPercent marks a budget as a reallocation target.
	OverUtilizedPercent = 100.0
	// ReallocationShare caps a transfer at this share of the source limit.
	ReallocationShare = 0.2
	// SmallTransactionShare is the share of a limit below which a purchase is small.
	SmallTransactionShare = 0.02
	// SmallTransactionCount is how many small purchases trigger a bundling tip.
	SmallTransactionCount = 10
	// SavingsUtilizationPercent is the usage below which surplus can be saved.
	SavingsUtilizationPercent = 80.0
	// SavingsSurplusShare is the share of a surplus proposed for automated savings.
	SavingsSurplusShare = 0.5
)

// GenerateRecommendations proposes concrete actions ranked by impact. asOf
// anchors the trailing month used to find small repeated purchases.
func GenerateRecommendations(
	budgets []model.Budget,
	predictions []model.BudgetPrediction,
	patterns []model.SpendingPattern,
	txns []model.Transaction,
	asOf time.Time,
) []model.Recommendation {
	var recs []model.Recommendation

	recs = append(recs, dailyTargets(predictions)...)
	if rec, ok := reallocation(budgets); ok {
		recs = append(recs, rec)
	}
	recs = append(recs, bundleSmallTransactions(budgets, txns, asOf)...)
	if rec, ok := automatedSavings(budgets); ok {
		recs = append(recs, rec)
	}
	recs = append(recs, growthReviews(patterns, budgets)...)

	sortBySeverity(recs, func(r model.Recommendation) model.Severity { return r.Impact })
	return recs
}

// dailyTargets gives each at-risk category a per-day allowance for the rest of the month.
func dailyTargets(predictions []model.BudgetPrediction) []model.Recommendation {
	var recs []model.Recommendation
	for _, p := range predictions {
		if p.RiskLevel == model.SeverityLow || p.DaysRemaining <= 0 || p.Limit <= 0 {
			continue
		}

		impact := model.SeverityMedium
		if p.RiskLevel == model.SeverityHigh {
			impact = model.SeverityHigh
		}

		left := p.Limit - p.CurrentSpent
		if left <= 0 {
			recs = append(recs, model.Recommendation{
				ID:     "daily-target-" + p.Category,
				Type:   model.RecommendDailyTarget,
				Impact: impact,
				Title:  fmt.Sprintf("Pause %s spending", p.Category),
				Description: fmt.Sprintf("The %s budget of %.2f is already used up with %d days left.",
					p.Category, p.Limit, p.DaysRemaining),
				Category: p.Category,
			})
			continue
		}

		perDay := left / float64(p.DaysRemaining)
		recs = append(recs, model.Recommendation{
			ID:     "daily-target-" + p.Category,
			Type:   model.RecommendDailyTarget,
			Impact: impact,
			Title:  fmt.Sprintf("Keep %s under %.2f per day", p.Category, perDay),
			Description: fmt.Sprintf("%.2f remains in the %s budget for the next %d days.",
				left, p.Category, p.DaysRemaining),
			Category: p.Category,
			Amount:   perDay,
		})
	}
	return recs
}

// reallocation moves part of the least-used budget into the most overspent one.
func reallocation(budgets []model.Budget) (model.Recommendation, bool) {
	var source, target *model.Budget
	for i := range budgets {
		b := &budgets[i]
		if b.Limit <= 0 {
			continue
		}
		if b.PercentUsed < UnderUtilizedPercent && (source == nil || b.PercentUsed < source.PercentUsed) {
			source = b
		}
		if b.PercentUsed > OverUtilizedPercent && (target == nil || b.PercentUsed > target.PercentUsed) {
			target = b
		}
	}
	if source == nil || target == nil {
		return model.Recommendation{}, false
	}

	overspend := target.Spent - target.Limit
	amount := math.Min(ReallocationShare*source.Limit, overspend)
	if amount <= 0 {
		return model.Recommendation{}, false
	}

	return model.Recommendation{
		ID:     fmt.Sprintf("reallocate-%s-%s", source.Category, target.Category),
		Type:   model.RecommendReallocate,
		Impact: model.SeverityHigh,
		Title:  fmt.Sprintf("Move %.2f from %s to %s", amount, source.Category, target.Category),
		Description: fmt.Sprintf("%s has used %.0f%% of its budget while %s is at %.0f%%.",
			source.Category, source.PercentUsed, target.Category, target.PercentUsed),
		FromCategory: source.Category,
		ToCategory:   target.Category,
		Amount:       amount,
	}, true
}

// bundleSmallTransactions flags categories with many tiny purchases in the trailing month.
func bundleSmallTransactions(budgets []model.Budget, txns []model.Transaction, asOf time.Time) []model.Recommendation {
	windowEnd := model.DayOf(asOf)
	windowStart := windowEnd.AddDate(0, -1, 0)

	type tally struct {
		count int
		total float64
	}
	small := make(map[string]*tally)
	limits := make(map[string]float64, len(budgets))
	for _, b := range budgets {
		limits[b.Category] = b.Limit
	}

	for _, txn := range txns {
		if !txn.IsExpense() {
			continue
		}
		if day := model.DayOf(txn.Date); !day.After(windowStart) || day.After(windowEnd) {
			continue
		}
		category := txn.CategoryOrOther()
		limit, ok := limits[category]
		if !ok || limit <= 0 || txn.Amount >= SmallTransactionShare*limit {
			continue
		}
		if small[category] == nil {
			small[category] = &tally{}
		}
		small[category].count++
		small[category].total += txn.Amount
	}

	var recs []model.Recommendation
	for _, b := range budgets {
		t := small[b.Category]
		if t == nil || t.count < SmallTransactionCount {
			continue
		}
		recs = append(recs, model.Recommendation{
			ID:     "bundle-" + b.Category,
			Type:   model.RecommendBundle,
			Impact: model.SeverityLow,
			Title:  fmt.Sprintf("Bundle small %s purchases", b.Category),
			Description: fmt.Sprintf("%d small %s purchases added up to %.2f in the last month; combining them can cut impulse spending.",
				t.count, b.Category, t.total),
			Category: b.Category,
			Amount:   t.total,
		})
	}
	return recs
}

// automatedSavings proposes saving half the surplus of every comfortably under-used budget.
func automatedSavings(budgets []model.Budget) (model.Recommendation, bool) {
	var total float64
	var contributing int
	for _, b := range budgets {
		if b.Limit <= 0 || b.PercentUsed >= SavingsUtilizationPercent {
			continue
		}
		surplus := b.Limit - b.Spent
		if surplus <= 0 {
			continue
		}
		total += SavingsSurplusShare * surplus
		contributing++
	}
	if total <= 0 {
		return model.Recommendation{}, false
	}

	return model.Recommendation{
		ID:     "automated-savings",
		Type:   model.RecommendAutoSavings,
		Impact: model.SeverityMedium,
		Title:  fmt.Sprintf("Automatically save %.2f", total),
		Description: fmt.Sprintf("%d categories are under %.0f%% of their limits; moving half of that surplus to savings keeps it from being spent.",
			contributing, SavingsUtilizationPercent),
		Amount: total,
	}, true
}

// growthReviews asks the user to look at budgeted categories that keep growing.
func growthReviews(patterns []model.SpendingPattern, budgets []model.Budget) []model.Recommendation {
	budgeted := make(map[string]bool, len(budgets))
	for _, b := range budgets {
		budgeted[b.Category] = true
	}

	var recs []model.Recommendation
	for _, p := range patterns {
		if p.Pattern != model.PatternIncreasing || p.PercentageChange <= TrendNoticePercent || !budgeted[p.Category] {
			continue
		}
		var latest float64
		if n := len(p.MonthlyTotals); n > 0 {
			latest = p.MonthlyTotals[n-1]
		}
		recs = append(recs, model.Recommendation{
			ID:     "review-growth-" + p.Category,
			Type:   model.RecommendReviewGrowth,
			Impact: model.SeverityMedium,
			Title:  fmt.Sprintf("Review growing %s spending", p.Category),
			Description: fmt.Sprintf("%s has grown %.1f%% per month; at that rate next month would reach %.2f.",
				p.Category, p.PercentageChange, latest*(1+p.PercentageChange/100)),
			Category: p.Category,
			Amount:   latest * p.PercentageChange / 100,
		})
	}
	return recs
}
