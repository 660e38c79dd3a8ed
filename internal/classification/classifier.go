// Package classification assigns spending categories to transactions.
package classification

import (
	"math"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

// Confidence assigned by each stage of the cascade.
const (
	EmptyDescriptionConfidence = 0.5
	MerchantConfidence         = 0.9
	KeywordConfidence          = 0.8
)

// Result is the outcome of classifying one description.
type Result struct {
	Category   string            `json:"category"`
	Source     model.MatchSource `json:"source"`
	Rule       string            `json:"rule,omitempty"` // The merchant pattern or keyword that matched, if any
	Confidence float64           `json:"confidence"`
}

// amountRule is one step of the fallback used when no text rule matches.
type amountRule struct {
	matches    func(amount float64) bool
	category   string
	confidence float64
}

var amountRules = []amountRule{
	{matches: func(a float64) bool { return a > 1000 }, category: model.CategoryHousing, confidence: 0.6},
	{matches: func(a float64) bool { return a > 500 }, category: model.CategoryShopping, confidence: 0.5},
	{matches: func(a float64) bool { return a < 20 }, category: model.CategoryFood, confidence: 0.4},
}

const (
	fallbackCategory   = model.CategoryOther
	fallbackConfidence = 0.3
)

type keywordMatcher struct {
	category string
	keyword  string
}

// Classifier cascades merchant rules, keyword rules and amount heuristics.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	merchants []MerchantRule
	keywords  []keywordMatcher
}

// NewClassifier builds a classifier from a rule table. Patterns are lower-cased
// once here; the table passed in is not retained.
func NewClassifier(rules RuleTable) *Classifier {
	c := &Classifier{
		merchants: make([]MerchantRule, 0, len(rules.Merchants)),
	}

	for _, r := range rules.Merchants {
		c.merchants = append(c.merchants, MerchantRule{
			Pattern:  strings.ToLower(r.Pattern),
			Category: r.Category,
		})
	}

	// Flatten keyword rules so declaration order is a single sequence.
	for _, r := range rules.Keywords {
		for _, kw := range r.Keywords {
			c.keywords = append(c.keywords, keywordMatcher{
				category: r.Category,
				keyword:  strings.ToLower(kw),
			})
		}
	}

	return c
}

// Classify returns a category and confidence for a description and amount.
// Every input produces a result; confidence is always within [0, 1].
func (c *Classifier) Classify(description string, amount float64) Result {
	if strings.TrimSpace(description) == "" {
		return Result{
			Category:   model.CategoryOther,
			Confidence: EmptyDescriptionConfidence,
			Source:     model.SourceEmpty,
		}
	}

	searchText := strings.ToLower(description)

	for _, m := range c.merchants {
		if strings.Contains(searchText, m.Pattern) {
			return Result{
				Category:   m.Category,
				Confidence: MerchantConfidence,
				Source:     model.SourceMerchant,
				Rule:       m.Pattern,
			}
		}
	}

	for _, k := range c.keywords {
		if strings.Contains(searchText, k.keyword) {
			return Result{
				Category:   k.category,
				Confidence: KeywordConfidence,
				Source:     model.SourceKeyword,
				Rule:       k.keyword,
			}
		}
	}

	return classifyByAmount(amount)
}

// ClassifyTransaction classifies a transaction into a new categorized record.
func (c *Classifier) ClassifyTransaction(txn model.Transaction) model.CategorizedTransaction {
	res := c.Classify(txn.Description, txn.Amount)
	return model.CategorizedTransaction{
		Transaction: txn,
		Category:    res.Category,
		Confidence:  res.Confidence,
		Source:      res.Source,
	}
}

// RuleCount returns the number of merchant patterns and keywords loaded.
func (c *Classifier) RuleCount() int {
	return len(c.merchants) + len(c.keywords)
}

func classifyByAmount(amount float64) Result {
	magnitude := math.Abs(amount)
	for _, r := range amountRules {
		if r.matches(magnitude) {
			return Result{
				Category:   r.category,
				Confidence: r.confidence,
				Source:     model.SourceAmount,
			}
		}
	}
	return Result{
		Category:   fallbackCategory,
		Confidence: fallbackConfidence,
		Source:     model.SourceAmount,
	}
}
