package engine

import (
	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

// DefaultThreshold is the confidence at or above which a categorization is
// accepted without review.
const DefaultThreshold = 0.7

// Split is the result of partitioning a categorized batch by confidence.
type Split struct {
	Reliable  []model.CategorizedTransaction `json:"reliable"`
	Uncertain []model.CategorizedTransaction `json:"uncertain"`
}

// Validate partitions categorized transactions into reliable (confidence >=
// threshold) and uncertain ones. The partition is stable: each side keeps the
// input order, and every input lands on exactly one side.
func Validate(categorized []model.CategorizedTransaction, threshold float64) Split {
	split := Split{
		Reliable:  make([]model.CategorizedTransaction, 0, len(categorized)),
		Uncertain: make([]model.CategorizedTransaction, 0),
	}
	for _, c := range categorized {
		if c.Confidence >= threshold {
			split.Reliable = append(split.Reliable, c)
		} else {
			split.Uncertain = append(split.Uncertain, c)
		}
	}
	return split
}

// Summary counts how a batch was categorized.
type Summary struct {
	BySource  map[model.MatchSource]int `json:"by_source"`
	Total     int                       `json:"total"`
	Reliable  int                       `json:"reliable"`
	Uncertain int                       `json:"uncertain"`
}

// Summarize counts a split by reliability and by classifier stage.
func Summarize(split Split) Summary {
	summary := Summary{
		BySource:  make(map[model.MatchSource]int),
		Reliable:  len(split.Reliable),
		Uncertain: len(split.Uncertain),
	}
	summary.Total = summary.Reliable + summary.Uncertain
	for _, side := range [][]model.CategorizedTransaction{split.Reliable, split.Uncertain} {
		for _, c := range side {
			summary.BySource[c.Source]++
		}
	}
	return summary
}
