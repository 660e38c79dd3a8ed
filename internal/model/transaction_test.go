package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonth(t *testing.T) {
	jan := MonthOf(time.Date(2025, time.January, 31, 23, 0, 0, 0, time.UTC))

	assert.Equal(t, "2025-01", jan.String())
	assert.Equal(t, 31, jan.Days())
	assert.Equal(t, 28, jan.AddMonths(1).Days())
	assert.Equal(t, Month{Year: 2024, Month: time.December}, jan.AddMonths(-1))
	assert.Equal(t, Month{Year: 2026, Month: time.March}, jan.AddMonths(14))
	assert.Equal(t, 29, Month{Year: 2024, Month: time.February}.Days())

	assert.True(t, jan.AddMonths(-1).Before(jan))
	assert.False(t, jan.Before(jan))
	assert.False(t, jan.Before(jan.AddMonths(-12)))
}

func TestDayOf(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	late := time.Date(2025, time.June, 15, 23, 59, 0, 0, tokyo)

	assert.Equal(t, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), DayOf(late))
	assert.Equal(t, DayOf(time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)), DayOf(late))
	assert.True(t, DayOf(late).Before(DayOf(late.AddDate(0, 0, 1))))
}

func TestTransaction_Helpers(t *testing.T) {
	txn := Transaction{Kind: KindExpense, Date: time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)}

	assert.True(t, txn.IsExpense())
	assert.Equal(t, CategoryOther, txn.CategoryOrOther())
	assert.Equal(t, Month{Year: 2025, Month: time.June}, txn.Month())

	txn.Category = CategoryFood
	assert.Equal(t, CategoryFood, txn.CategoryOrOther())
	assert.False(t, Transaction{Kind: KindIncome}.IsExpense())
}

func TestGenerateHash(t *testing.T) {
	base := Transaction{
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "STARBUCKS",
		Amount:      25.50,
		Kind:        KindExpense,
	}

	other := base
	other.ID = "different id"
	assert.Equal(t, base.GenerateHash(), other.GenerateHash(), "ID is not part of the hash")

	changed := base
	changed.Amount = 30
	assert.NotEqual(t, base.GenerateHash(), changed.GenerateHash())

	changed = base
	changed.Date = changed.Date.AddDate(0, 0, 1)
	assert.NotEqual(t, base.GenerateHash(), changed.GenerateHash())
}

func TestApplied(t *testing.T) {
	original := Transaction{ID: "t1", Description: "NETFLIX"}
	c := CategorizedTransaction{Transaction: original, Category: CategoryEntertainment, Confidence: 0.9, Source: SourceMerchant}

	applied := AppliedAll([]CategorizedTransaction{c})

	assert.Len(t, applied, 1)
	assert.Equal(t, CategoryEntertainment, applied[0].Category)
	if assert.NotNil(t, applied[0].Confidence) {
		assert.InDelta(t, 0.9, *applied[0].Confidence, 1e-9)
	}
	assert.Empty(t, c.Transaction.Category, "the categorized record is not mutated")
	assert.Nil(t, original.Confidence)
}

func TestSeverityRank(t *testing.T) {
	assert.Greater(t, SeverityHigh.Rank(), SeverityMedium.Rank())
	assert.Greater(t, SeverityMedium.Rank(), SeverityLow.Rank())
	assert.Greater(t, SeverityLow.Rank(), Severity("unknown").Rank())
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		category string
		want     CategoryType
	}{
		{CategoryHousing, CategoryTypeNeed},
		{CategoryHealthcare, CategoryTypeNeed},
		{CategoryShopping, CategoryTypeWant},
		{CategoryInvestment, CategoryTypeSavings},
		{CategoryEmergencyFund, CategoryTypeSavings},
		{CategoryTravel, ""},
		{"made-up", ""},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.category))
		})
	}
}
