package classification

import "github.com/Veraticus/the-budget-must-flow/internal/model"

// DefaultRules returns the built-in rule table. Each call returns a fresh copy.
//
// Order is significant: the first matching merchant, then the first matching
// keyword in declaration order, wins. More specific names are listed before
// names they contain ("uber eats" before "uber").
func DefaultRules() RuleTable {
	return RuleTable{
		Merchants: []MerchantRule{
			// Streaming and media
			{Pattern: "netflix", Category: model.CategoryEntertainment},
			{Pattern: "spotify", Category: model.CategoryEntertainment},
			{Pattern: "hulu", Category: model.CategoryEntertainment},
			{Pattern: "disney+", Category: model.CategoryEntertainment},
			{Pattern: "steam games", Category: model.CategoryEntertainment},

			// Food delivery before ride share so "uber eats" is food
			{Pattern: "uber eats", Category: model.CategoryFood},
			{Pattern: "doordash", Category: model.CategoryFood},
			{Pattern: "grubhub", Category: model.CategoryFood},
			{Pattern: "starbucks", Category: model.CategoryFood},
			{Pattern: "mcdonald", Category: model.CategoryFood},
			{Pattern: "chipotle", Category: model.CategoryFood},
			{Pattern: "whole foods", Category: model.CategoryFood},
			{Pattern: "trader joe", Category: model.CategoryFood},
			{Pattern: "kroger", Category: model.CategoryFood},
			{Pattern: "safeway", Category: model.CategoryFood},

			// Transportation
			{Pattern: "uber", Category: model.CategoryTransportation},
			{Pattern: "lyft", Category: model.CategoryTransportation},
			{Pattern: "shell", Category: model.CategoryTransportation},
			{Pattern: "chevron", Category: model.CategoryTransportation},
			{Pattern: "exxon", Category: model.CategoryTransportation},

			// Retail
			{Pattern: "amazon", Category: model.CategoryShopping},
			{Pattern: "walmart", Category: model.CategoryShopping},
			{Pattern: "target", Category: model.CategoryShopping},
			{Pattern: "best buy", Category: model.CategoryShopping},
			{Pattern: "ikea", Category: model.CategoryShopping},

			// Utilities and telecom
			{Pattern: "comcast", Category: model.CategoryUtilities},
			{Pattern: "verizon", Category: model.CategoryUtilities},
			{Pattern: "at&t", Category: model.CategoryUtilities},
			{Pattern: "pg&e", Category: model.CategoryUtilities},

			// Health
			{Pattern: "cvs", Category: model.CategoryHealthcare},
			{Pattern: "walgreens", Category: model.CategoryHealthcare},

			// Travel
			{Pattern: "airbnb", Category: model.CategoryTravel},
			{Pattern: "delta air", Category: model.CategoryTravel},
			{Pattern: "marriott", Category: model.CategoryTravel},
		},
		Keywords: []KeywordRule{
			{Category: model.CategoryIncome, Keywords: []string{"salary", "payroll", "direct deposit", "dividend"}},
			{Category: model.CategoryHousing, Keywords: []string{"rent", "mortgage", "hoa fee", "property tax"}},
			{Category: model.CategoryTransportation, Keywords: []string{"gas station", "fuel", "parking", "taxi", "transit", "toll"}},
			{Category: model.CategoryUtilities, Keywords: []string{"electric", "water bill", "gas bill", "internet", "phone bill", "utility"}},
			{Category: model.CategoryFood, Keywords: []string{"grocery", "restaurant", "cafe", "coffee", "pizza", "bakery", "dinner", "lunch"}},
			{Category: model.CategoryHealthcare, Keywords: []string{"pharmacy", "doctor", "dental", "hospital", "clinic"}},
			{Category: model.CategoryEntertainment, Keywords: []string{"cinema", "movie", "concert", "theater", "streaming"}},
			{Category: model.CategoryShopping, Keywords: []string{"mall", "clothing", "electronics", "boutique", "department store"}},
			{Category: model.CategoryPersonal, Keywords: []string{"salon", "haircut", "barber", "gym", "spa "}},
			{Category: model.CategoryEducation, Keywords: []string{"tuition", "course", "textbook", "university"}},
			{Category: model.CategoryTravel, Keywords: []string{"hotel", "airline", "flight"}},
		},
	}
}
