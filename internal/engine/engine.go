// Package engine ties the classifier, forecaster and analyzers together behind
// one facade. Every operation is a pure function of its inputs; the engine
// keeps no state between calls.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/the-budget-must-flow/internal/analysis"
	"github.com/Veraticus/the-budget-must-flow/internal/budget"
	"github.com/Veraticus/the-budget-must-flow/internal/classification"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

// Config holds configuration options for the engine.
type Config struct {
	Rules          classification.RuleTable
	Batch          BatchOptions
	Threshold      float64
	LookbackMonths int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Rules:          classification.DefaultRules(),
		Batch:          DefaultBatchOptions(),
		Threshold:      DefaultThreshold,
		LookbackMonths: analysis.DefaultLookbackMonths,
	}
}

// Engine exposes the categorization and budget-forecasting operations.
type Engine struct {
	classifier *classification.Classifier
	batch      *BatchCategorizer
	config     Config
}

// New creates an engine with the default configuration.
func New() *Engine {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an engine with a custom configuration.
func NewWithConfig(config Config) *Engine {
	if config.LookbackMonths <= 0 {
		config.LookbackMonths = analysis.DefaultLookbackMonths
	}
	classifier := classification.NewClassifier(config.Rules)
	return &Engine{
		classifier: classifier,
		batch:      NewBatchCategorizer(classifier, config.Batch),
		config:     config,
	}
}

// RuleCount returns how many merchant patterns and keywords the classifier holds.
func (e *Engine) RuleCount() int {
	return e.classifier.RuleCount()
}

// Classify categorizes a single description and amount.
func (e *Engine) Classify(description string, amount float64) classification.Result {
	return e.classifier.Classify(description, amount)
}

// BatchCategorize categorizes a batch of transactions in input order.
func (e *Engine) BatchCategorize(ctx context.Context, txns []model.Transaction) ([]model.CategorizedTransaction, error) {
	return e.batch.Categorize(ctx, txns)
}

// Validate splits categorized transactions by the given confidence threshold.
func (e *Engine) Validate(categorized []model.CategorizedTransaction, threshold float64) Split {
	return Validate(categorized, threshold)
}

// PredictMonthlySpending forecasts month-end totals for each budget limit.
func (e *Engine) PredictMonthlySpending(txns []model.Transaction, limits []model.BudgetLimit, asOf time.Time) []model.BudgetPrediction {
	return budget.PredictMonthlySpending(txns, limits, asOf)
}

// AnalyzeSpendingPatterns classifies per-category trends over the lookback window.
func (e *Engine) AnalyzeSpendingPatterns(txns []model.Transaction, lookbackMonths int, asOf time.Time) []model.SpendingPattern {
	return analysis.AnalyzeSpendingPatterns(txns, lookbackMonths, asOf)
}

// GenerateInsights ranks findings from forecasts, trends and large transactions.
func (e *Engine) GenerateInsights(txns []model.Transaction, budgets []model.Budget, predictions []model.BudgetPrediction, patterns []model.SpendingPattern) []model.Insight {
	return analysis.GenerateInsights(txns, budgets, predictions, patterns)
}

// GenerateRecommendations ranks suggested actions.
func (e *Engine) GenerateRecommendations(budgets []model.Budget, predictions []model.BudgetPrediction, patterns []model.SpendingPattern, txns []model.Transaction, asOf time.Time) []model.Recommendation {
	return analysis.GenerateRecommendations(budgets, predictions, patterns, txns, asOf)
}

// SuggestBudgetAllocation splits income with the 50/30/20 envelope.
func (e *Engine) SuggestBudgetAllocation(txns []model.Transaction, monthlyIncome float64) map[string]float64 {
	return budget.SuggestBudgetAllocation(txns, monthlyIncome)
}

// Report is the output of running the whole pipeline once.
type Report struct {
	AsOf            time.Time                `json:"as_of"`
	Allocation      map[string]float64       `json:"allocation,omitempty"`
	Split           Split                    `json:"split"`
	Budgets         []model.Budget           `json:"budgets"`
	Predictions     []model.BudgetPrediction `json:"predictions"`
	Patterns        []model.SpendingPattern  `json:"patterns"`
	Insights        []model.Insight          `json:"insights"`
	Recommendations []model.Recommendation   `json:"recommendations"`
	Summary         Summary                  `json:"summary"`
}

// Run categorizes txns and derives every output for the month containing asOf.
// Transactions that already carry a category keep it. Allocation is only
// computed when monthlyIncome is positive.
func (e *Engine) Run(ctx context.Context, txns []model.Transaction, limits []model.BudgetLimit, monthlyIncome float64, asOf time.Time) (*Report, error) {
	categorized, err := e.BatchCategorize(ctx, txns)
	if err != nil {
		return nil, err
	}
	for i, txn := range txns {
		if txn.Category != "" {
			categorized[i].Category = txn.Category
			categorized[i].Source = model.SourceProvided
			categorized[i].Confidence = 1
			if txn.Confidence != nil {
				categorized[i].Confidence = *txn.Confidence
			}
		}
	}

	split := e.Validate(categorized, e.config.Threshold)
	applied := model.AppliedAll(categorized)
	month := model.MonthOf(asOf)
	through := model.DayOf(asOf)

	var current []model.Transaction
	for _, txn := range applied {
		if txn.Month() == month && !model.DayOf(txn.Date).After(through) {
			current = append(current, txn)
		}
	}

	report := &Report{
		AsOf:    asOf,
		Split:   split,
		Summary: Summarize(split),
	}
	report.Budgets = budget.Track(limits, applied, asOf)
	report.Predictions = e.PredictMonthlySpending(applied, limits, asOf)
	report.Patterns = e.AnalyzeSpendingPatterns(applied, e.config.LookbackMonths, asOf)
	report.Insights = e.GenerateInsights(current, report.Budgets, report.Predictions, report.Patterns)
	report.Recommendations = e.GenerateRecommendations(report.Budgets, report.Predictions, report.Patterns, applied, asOf)
	if monthlyIncome > 0 {
		report.Allocation = e.SuggestBudgetAllocation(applied, monthlyIncome)
	}

	slog.Debug("Built report",
		"month", month.String(),
		"transactions", len(txns),
		"reliable", report.Summary.Reliable,
		"uncertain", report.Summary.Uncertain,
		"insights", len(report.Insights),
		"recommendations", len(report.Recommendations))

	return report, nil
}
