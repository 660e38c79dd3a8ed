package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

const (
	// TrendNoticePercent is the average change above which a trend is reported.
	TrendNoticePercent = 15.0
	// LargeTransactionShare is the share of a category limit above which a
	// single transaction is reported.
	LargeTransactionShare = 0.4
)

// GenerateInsights folds forecasts, trends and unusually large transactions
// into one list ranked by severity. Ties keep insertion order: forecast
// warnings, then trends, then large transactions.
func GenerateInsights(
	txns []model.Transaction,
	budgets []model.Budget,
	predictions []model.BudgetPrediction,
	patterns []model.SpendingPattern,
) []model.Insight {
	var insights []model.Insight

	insights = append(insights, forecastInsights(predictions)...)
	insights = append(insights, trendInsights(patterns)...)
	insights = append(insights, largeTransactionInsights(txns, budgets)...)

	sortBySeverity(insights, func(i model.Insight) model.Severity { return i.Severity })
	return insights
}

func forecastInsights(predictions []model.BudgetPrediction) []model.Insight {
	var insights []model.Insight
	for _, p := range predictions {
		switch {
		case p.PredictedOverspend > 0:
			insights = append(insights, model.Insight{
				ID:       "overspend-" + p.Category,
				Type:     model.InsightOverspend,
				Severity: p.RiskLevel,
				Title:    fmt.Sprintf("%s is on track to exceed its budget", displayName(p.Category)),
				Description: fmt.Sprintf("At the current pace %s spending will reach %.2f against a limit of %.2f, %.2f over.",
					p.Category, p.PredictedTotal, p.Limit, p.PredictedOverspend),
				Category: p.Category,
				Amount:   p.PredictedOverspend,
			})
		case p.RiskLevel != model.SeverityLow:
			insights = append(insights, model.Insight{
				ID:       "approaching-" + p.Category,
				Type:     model.InsightApproachingLimit,
				Severity: p.RiskLevel,
				Title:    fmt.Sprintf("%s is close to its limit", displayName(p.Category)),
				Description: fmt.Sprintf("%s spending is projected at %.2f of a %.2f limit.",
					p.Category, p.PredictedTotal, p.Limit),
				Category: p.Category,
				Amount:   p.PredictedTotal,
			})
		}
	}
	return insights
}

func trendInsights(patterns []model.SpendingPattern) []model.Insight {
	var insights []model.Insight
	for _, p := range patterns {
		if p.Pattern == model.PatternStable || math.Abs(p.PercentageChange) <= TrendNoticePercent {
			continue
		}

		insight := model.Insight{
			ID:       "trend-" + p.Category,
			Type:     model.InsightTrend,
			Category: p.Category,
			Amount:   math.Abs(p.PercentageChange),
		}
		switch p.Pattern {
		case model.PatternIncreasing:
			insight.Severity = model.SeverityMedium
			insight.Title = fmt.Sprintf("%s spending is rising", displayName(p.Category))
			insight.Description = fmt.Sprintf("%s spending grew %.1f%% per month on average.", p.Category, p.PercentageChange)
		case model.PatternDecreasing:
			insight.Severity = model.SeverityLow
			insight.Title = fmt.Sprintf("%s spending is falling", displayName(p.Category))
			insight.Description = fmt.Sprintf("%s spending dropped %.1f%% per month on average.", p.Category, -p.PercentageChange)
		default:
			insight.Severity = model.SeverityLow
			insight.Title = fmt.Sprintf("%s spending is irregular", displayName(p.Category))
			insight.Description = fmt.Sprintf("%s spending swings month to month, averaging %+.1f%%.", p.Category, p.PercentageChange)
		}
		insights = append(insights, insight)
	}
	return insights
}

func largeTransactionInsights(txns []model.Transaction, budgets []model.Budget) []model.Insight {
	limits := make(map[string]float64, len(budgets))
	for _, b := range budgets {
		limits[b.Category] = b.Limit
	}

	var insights []model.Insight
	for _, txn := range txns {
		if !txn.IsExpense() {
			continue
		}
		limit, ok := limits[txn.CategoryOrOther()]
		if !ok || limit <= 0 || txn.Amount <= LargeTransactionShare*limit {
			continue
		}
		insights = append(insights, model.Insight{
			ID:       "large-" + txn.ID,
			Type:     model.InsightLargeTransaction,
			Severity: model.SeverityMedium,
			Title:    fmt.Sprintf("Large %s transaction", txn.CategoryOrOther()),
			Description: fmt.Sprintf("%q for %.2f on %s is %.0f%% of the %s budget.",
				txn.Description, txn.Amount, txn.Date.Format("2006-01-02"), txn.Amount/limit*100, txn.CategoryOrOther()),
			Category: txn.CategoryOrOther(),
			Amount:   txn.Amount,
		})
	}
	return insights
}

// sortBySeverity orders items from high to low severity, keeping insertion order on ties.
func sortBySeverity[T any](items []T, severity func(T) model.Severity) {
	sort.SliceStable(items, func(i, j int) bool {
		return severity(items[i]).Rank() > severity(items[j]).Rank()
	})
}

func displayName(category string) string {
	if category == "" {
		return category
	}
	return strings.ToUpper(category[:1]) + category[1:]
}
