package classification

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Veraticus/the-budget-must-flow/internal/common"
)

// MerchantRule maps a merchant-name substring to a category.
type MerchantRule struct {
	Pattern  string `toml:"pattern"`
	Category string `toml:"category"`
}

// KeywordRule maps any of a list of keyword substrings to a category.
type KeywordRule struct {
	Category string   `toml:"category"`
	Keywords []string `toml:"keywords"`
}

// RuleTable is the ordered configuration the Classifier is built from.
// Within each list the first matching rule in declaration order wins.
type RuleTable struct {
	Merchants []MerchantRule `toml:"merchant"`
	Keywords  []KeywordRule  `toml:"keyword"`
}

// Validate checks that every rule can match something and names a category.
func (rt RuleTable) Validate() error {
	for i, r := range rt.Merchants {
		if strings.TrimSpace(r.Pattern) == "" {
			return fmt.Errorf("%w: merchant rule %d has an empty pattern", common.ErrInvalidRules, i)
		}
		if strings.TrimSpace(r.Category) == "" {
			return fmt.Errorf("%w: merchant rule %q has no category", common.ErrInvalidRules, r.Pattern)
		}
	}
	for i, r := range rt.Keywords {
		if strings.TrimSpace(r.Category) == "" {
			return fmt.Errorf("%w: keyword rule %d has no category", common.ErrInvalidRules, i)
		}
		if len(r.Keywords) == 0 {
			return fmt.Errorf("%w: keyword rule for %q has no keywords", common.ErrInvalidRules, r.Category)
		}
		for _, kw := range r.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("%w: keyword rule for %q has an empty keyword", common.ErrInvalidRules, r.Category)
			}
		}
	}
	return nil
}

// ParseRules decodes a TOML rule table.
//
//	[[merchant]]
//	pattern = "netflix"
//	category = "entertainment"
//
//	[[keyword]]
//	category = "food"
//	keywords = ["grocery", "restaurant"]
func ParseRules(data string) (RuleTable, error) {
	var rt RuleTable
	md, err := toml.Decode(data, &rt)
	if err != nil {
		return RuleTable{}, fmt.Errorf("%w: %w", common.ErrInvalidRules, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return RuleTable{}, fmt.Errorf("%w: unknown key %q", common.ErrInvalidRules, undecoded[0].String())
	}
	if err := rt.Validate(); err != nil {
		return RuleTable{}, err
	}
	return rt, nil
}

// LoadRules reads a TOML rule table from path.
func LoadRules(path string) (RuleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleTable{}, fmt.Errorf("reading rules: %w", err)
	}
	rt, err := ParseRules(string(data))
	if err != nil {
		return RuleTable{}, fmt.Errorf("parsing rules %s: %w", path, err)
	}
	return rt, nil
}
