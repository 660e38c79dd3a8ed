package model

// InsightType describes what kind of finding an insight reports.
type InsightType string

// Insight type constants.
const (
	InsightOverspend        InsightType = "overspend"
	InsightApproachingLimit InsightType = "approaching_limit"
	InsightTrend            InsightType = "trend"
	InsightLargeTransaction InsightType = "large_transaction"
)

// Insight is a ranked, human-readable finding derived from forecasts and history.
type Insight struct {
	ID          string      `json:"id"`
	Type        InsightType `json:"type"`
	Severity    Severity    `json:"severity"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category,omitempty"`
	Amount      float64     `json:"amount,omitempty"`
}

// RecommendationType describes the action a recommendation proposes.
type RecommendationType string

// Recommendation type constants.
const (
	RecommendDailyTarget  RecommendationType = "daily_target"
	RecommendReallocate   RecommendationType = "reallocate"
	RecommendBundle       RecommendationType = "bundle_small_transactions"
	RecommendAutoSavings  RecommendationType = "automated_savings"
	RecommendReviewGrowth RecommendationType = "review_growth"
)

// Recommendation is a concrete action the user could take.
// Impact carries the ranking; Amount carries the money involved.
type Recommendation struct {
	ID           string             `json:"id"`
	Type         RecommendationType `json:"type"`
	Impact       Severity           `json:"impact"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Category     string             `json:"category,omitempty"`
	FromCategory string             `json:"from_category,omitempty"`
	ToCategory   string             `json:"to_category,omitempty"`
	Amount       float64            `json:"amount,omitempty"`
}
