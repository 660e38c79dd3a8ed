package budget

import (
	"log/slog"
	"time"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

// Risk thresholds for month-end projections.
const (
	// HighRiskOverspendRatio is the overspend share of the limit above which risk is high.
	HighRiskOverspendRatio = 0.20
	// MediumRiskUsageRatio is the projected share of the limit above which risk is medium.
	MediumRiskUsageRatio = 0.85
)

// Project extrapolates the current run rate to the end of the month.
//
// The model is deliberately linear: avgDaily = spent / dayOfMonth and the
// remaining days are assumed to repeat that average. It is easy to explain to
// a user and to verify by hand, at the cost of ignoring seasonality and
// one-off purchases.
func Project(category string, spent, limit float64, dayOfMonth, daysInMonth int) model.BudgetPrediction {
	if dayOfMonth < 1 {
		dayOfMonth = 1
	}
	remainingDays := daysInMonth - dayOfMonth
	if remainingDays < 0 {
		remainingDays = 0
	}

	prediction := model.BudgetPrediction{
		Category:      category,
		Limit:         limit,
		CurrentSpent:  spent,
		DaysRemaining: remainingDays,
	}

	// No limit means no forecast: report what is known and flag it.
	if limit <= 0 {
		prediction.PredictedTotal = spent
		prediction.PredictedOverspend = nonNegative(spent - limit)
		prediction.RiskLevel = model.SeverityHigh
		return prediction
	}

	avgDaily := spent / float64(dayOfMonth)
	prediction.PredictedTotal = spent + avgDaily*float64(remainingDays)
	prediction.PredictedOverspend = nonNegative(prediction.PredictedTotal - limit)
	prediction.RiskLevel = ClassifyRisk(prediction.PredictedOverspend, prediction.PredictedTotal, limit)
	return prediction
}

// ClassifyRisk maps a projection onto a risk level. For a fixed limit the
// level never decreases as the overspend grows.
func ClassifyRisk(overspend, predictedTotal, limit float64) model.Severity {
	if limit <= 0 {
		return model.SeverityHigh
	}
	if overspend > 0 && overspend/limit > HighRiskOverspendRatio {
		return model.SeverityHigh
	}
	if overspend > 0 || predictedTotal/limit > MediumRiskUsageRatio {
		return model.SeverityMedium
	}
	return model.SeverityLow
}

// PredictMonthlySpending forecasts every budgeted category for the month
// containing asOf, using expense transactions posted in that month on or
// before asOf's date. Categories without spend still get a prediction with a
// zero total.
func PredictMonthlySpending(txns []model.Transaction, limits []model.BudgetLimit, asOf time.Time) []model.BudgetPrediction {
	month := model.MonthOf(asOf)
	spent := SpendThrough(txns, asOf)
	dayOfMonth := asOf.Day()
	daysInMonth := month.Days()

	predictions := make([]model.BudgetPrediction, 0, len(limits))
	for _, l := range limits {
		predictions = append(predictions, Project(l.Category, spent[l.Category], l.Limit, dayOfMonth, daysInMonth))
	}

	slog.Debug("Predicted monthly spending",
		"month", month.String(),
		"day_of_month", dayOfMonth,
		"days_in_month", daysInMonth,
		"categories", len(predictions))

	return predictions
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
