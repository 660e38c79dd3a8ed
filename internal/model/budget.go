package model

// Severity is the single ordering field for risk levels, insights and recommendations.
type Severity string

// Severity constants.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank orders severities so that higher is more urgent. Unknown values rank below low.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// BudgetLimit is a period ceiling for one category.
type BudgetLimit struct {
	Category string  `json:"category" mapstructure:"category"`
	Limit    float64 `json:"limit" mapstructure:"limit"`
}

// Budget tracks spending against a limit for one category within one period.
// It has no identity beyond (category, period) and is recomputed on every call.
type Budget struct {
	Category    string  `json:"category"`
	Limit       float64 `json:"limit"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	PercentUsed float64 `json:"percent_used"`
}

// BudgetPrediction is the projected end-of-month position of one budget.
type BudgetPrediction struct {
	Category           string   `json:"category"`
	RiskLevel          Severity `json:"risk_level"`
	Limit              float64  `json:"limit"`
	CurrentSpent       float64  `json:"current_spent"`
	PredictedTotal     float64  `json:"predicted_total"`
	PredictedOverspend float64  `json:"predicted_overspend"`
	DaysRemaining      int      `json:"days_remaining"`
}

// PatternKind classifies a category's month-over-month trend.
type PatternKind string

// Pattern kind constants.
const (
	PatternIncreasing  PatternKind = "increasing"
	PatternDecreasing  PatternKind = "decreasing"
	PatternFluctuating PatternKind = "fluctuating"
	PatternStable      PatternKind = "stable"
)

// SpendingPattern summarizes how a category's spending moved across recent months.
type SpendingPattern struct {
	Category         string      `json:"category"`
	Pattern          PatternKind `json:"pattern"`
	MonthlyTotals    []float64   `json:"monthly_totals"`
	PercentageChange float64     `json:"percentage_change"`
}
