package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyThreshold         = "classification.threshold"
	KeyWorkers           = "classification.workers"
	KeyParallelThreshold = "classification.parallel_threshold"
	KeyRulesFile         = "classification.rules_file"
	KeyLookbackMonths    = "patterns.lookback_months"
	KeyAsOf              = "forecast.as_of"
	KeyLimits            = "budgets.limits"
	KeyIncome            = "budgets.income"
	KeyLogLevel          = "logging.level"
	KeyLogFormat         = "logging.format"
	KeyOutput            = "output"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// AsOfLayout is the date layout accepted for forecast.as_of.
const AsOfLayout = "2006-01-02"

// Config is the validated runtime configuration.
type Config struct {
	AsOf              time.Time
	RulesFile         string
	LogLevel          string
	LogFormat         string
	Output            string
	Limits            []model.BudgetLimit
	Threshold         float64
	Income            float64
	Workers           int
	ParallelThreshold int
	LookbackMonths    int
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyThreshold, 0.7)
	v.SetDefault(KeyWorkers, 4)
	v.SetDefault(KeyParallelThreshold, 256)
	v.SetDefault(KeyRulesFile, "")
	v.SetDefault(KeyLookbackMonths, 3)
	v.SetDefault(KeyAsOf, "")
	v.SetDefault(KeyIncome, 0.0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyOutput, OutputTable)
}

// Load reads and validates the configuration held by v. A missing
// forecast.as_of resolves to now.
func Load(v *viper.Viper, now time.Time) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Threshold:         v.GetFloat64(KeyThreshold),
		Workers:           v.GetInt(KeyWorkers),
		ParallelThreshold: v.GetInt(KeyParallelThreshold),
		RulesFile:         ExpandPath(v.GetString(KeyRulesFile)),
		LookbackMonths:    v.GetInt(KeyLookbackMonths),
		Income:            v.GetFloat64(KeyIncome),
		LogLevel:          v.GetString(KeyLogLevel),
		LogFormat:         v.GetString(KeyLogFormat),
		Output:            v.GetString(KeyOutput),
		AsOf:              now,
	}

	if raw := v.GetString(KeyAsOf); raw != "" {
		asOf, err := time.Parse(AsOfLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD: %w", common.ErrInvalidConfig, KeyAsOf, err)
		}
		cfg.AsOf = asOf
	}

	limits, err := loadLimits(v)
	if err != nil {
		return nil, err
	}
	cfg.Limits = limits

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every value is in range.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: %s must be between 0 and 1, got %v", common.ErrInvalidConfig, KeyThreshold, c.Threshold)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", common.ErrInvalidConfig, KeyWorkers, c.Workers)
	}
	if c.ParallelThreshold < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", common.ErrInvalidConfig, KeyParallelThreshold, c.ParallelThreshold)
	}
	if c.LookbackMonths < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", common.ErrInvalidConfig, KeyLookbackMonths, c.LookbackMonths)
	}
	if c.Income < 0 {
		return fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyIncome)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.LogFormat)
	}
	switch c.Output {
	case OutputTable, OutputJSON:
	default:
		return fmt.Errorf("%w: output %q must be table or json", common.ErrInvalidConfig, c.Output)
	}
	for _, l := range c.Limits {
		if l.Limit < 0 {
			return fmt.Errorf("%w: limit for %s must not be negative", common.ErrInvalidConfig, l.Category)
		}
	}
	return nil
}

// loadLimits reads budgets.limits as a category -> amount map, sorted by category.
func loadLimits(v *viper.Viper) ([]model.BudgetLimit, error) {
	if !v.IsSet(KeyLimits) {
		return nil, nil
	}

	var raw map[string]float64
	if err := v.UnmarshalKey(KeyLimits, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyLimits, err)
	}

	limits := make([]model.BudgetLimit, 0, len(raw))
	for category, limit := range raw {
		limits = append(limits, model.BudgetLimit{Category: category, Limit: limit})
	}
	sort.Slice(limits, func(i, j int) bool { return limits[i].Category < limits[j].Category })
	return limits, nil
}
