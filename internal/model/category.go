package model

// Spending category names shared by the classifier, forecaster and allocator.
const (
	CategoryHousing        = "housing"
	CategoryUtilities      = "utilities"
	CategoryFood           = "food"
	CategoryTransportation = "transportation"
	CategoryHealthcare     = "healthcare"
	CategoryEntertainment  = "entertainment"
	CategoryShopping       = "shopping"
	CategoryPersonal       = "personal"
	CategoryEducation      = "education"
	CategoryTravel         = "travel"
	CategoryIncome         = "income"
	CategoryOther          = "other"
)

// Allocation-only buckets produced by the savings envelope.
const (
	CategoryInvestment    = "investment"
	CategoryEmergencyFund = "emergency_fund"
)

// CategoryType groups categories into the 50/30/20 envelope buckets.
type CategoryType string

const (
	// CategoryTypeNeed represents essential spending.
	CategoryTypeNeed CategoryType = "need"
	// CategoryTypeWant represents discretionary spending.
	CategoryTypeWant CategoryType = "want"
	// CategoryTypeSavings represents money set aside.
	CategoryTypeSavings CategoryType = "savings"
)

// NeedCategories lists the categories that share the needs envelope.
func NeedCategories() []string {
	return []string{
		CategoryHousing,
		CategoryUtilities,
		CategoryFood,
		CategoryTransportation,
		CategoryHealthcare,
	}
}

// WantCategories lists the categories that share the wants envelope.
func WantCategories() []string {
	return []string{
		CategoryEntertainment,
		CategoryShopping,
		CategoryPersonal,
	}
}

// TypeOf returns the envelope a category belongs to, or "" when it is outside
// the 50/30/20 split.
func TypeOf(category string) CategoryType {
	switch category {
	case CategoryInvestment, CategoryEmergencyFund:
		return CategoryTypeSavings
	}
	for _, c := range NeedCategories() {
		if c == category {
			return CategoryTypeNeed
		}
	}
	for _, c := range WantCategories() {
		if c == category {
			return CategoryTypeWant
		}
	}
	return ""
}
