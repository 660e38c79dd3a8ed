package engine

import (
	"fmt"
	"testing"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/stretchr/testify/assert"
)

func categorized(id string, confidence float64, source model.MatchSource) model.CategorizedTransaction {
	return model.CategorizedTransaction{
		Transaction: model.Transaction{ID: id},
		Category:    model.CategoryOther,
		Confidence:  confidence,
		Source:      source,
	}
}

func TestValidate(t *testing.T) {
	input := []model.CategorizedTransaction{
		categorized("a", 0.9, model.SourceMerchant),
		categorized("b", 0.5, model.SourceAmount),
		categorized("c", 0.7, model.SourceAmount),
		categorized("d", 0.3, model.SourceAmount),
		categorized("e", 0.8, model.SourceKeyword),
	}

	split := Validate(input, DefaultThreshold)

	assert.Equal(t, []string{"a", "c", "e"}, ids(split.Reliable), "threshold is inclusive and order is kept")
	assert.Equal(t, []string{"b", "d"}, ids(split.Uncertain))
}

func TestValidate_PartitionLaw(t *testing.T) {
	var input []model.CategorizedTransaction
	for i := 0; i < 50; i++ {
		input = append(input, categorized(fmt.Sprintf("t%02d", i), float64(i%11)/10, model.SourceAmount))
	}

	for _, threshold := range []float64{0, 0.3, 0.5, 0.7, 1, 1.1} {
		split := Validate(input, threshold)
		assert.Len(t, split.Reliable, len(input)-len(split.Uncertain))

		seen := make(map[string]int)
		for _, c := range split.Reliable {
			seen[c.Transaction.ID]++
			assert.GreaterOrEqual(t, c.Confidence, threshold)
		}
		for _, c := range split.Uncertain {
			seen[c.Transaction.ID]++
			assert.Less(t, c.Confidence, threshold)
		}
		assert.Len(t, seen, len(input))
		for id, n := range seen {
			assert.Equal(t, 1, n, id)
		}
	}
}

func TestValidate_Empty(t *testing.T) {
	split := Validate(nil, DefaultThreshold)
	assert.Empty(t, split.Reliable)
	assert.Empty(t, split.Uncertain)
}

func TestSummarize(t *testing.T) {
	split := Validate([]model.CategorizedTransaction{
		categorized("a", 0.9, model.SourceMerchant),
		categorized("b", 0.9, model.SourceMerchant),
		categorized("c", 0.5, model.SourceEmpty),
	}, DefaultThreshold)

	summary := Summarize(split)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Reliable)
	assert.Equal(t, 1, summary.Uncertain)
	assert.Equal(t, map[model.MatchSource]int{model.SourceMerchant: 2, model.SourceEmpty: 1}, summary.BySource)
}

func ids(cs []model.CategorizedTransaction) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Transaction.ID
	}
	return out
}
