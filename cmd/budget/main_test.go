package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/the-budget-must-flow/internal/classification"
	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDataset = `{
  "income": 5000,
  "limits": [
    {"category": "housing", "limit": 1500},
    {"category": "food", "limit": 800}
  ],
  "transactions": [
    {"id": "rent-may", "description": "Monthly rent", "amount": 1500, "date": "2025-05-01"},
    {"id": "food-may", "description": "Whole Foods Market", "amount": 300, "date": "2025-05-10"},
    {"id": "rent-jun", "description": "Monthly rent", "amount": 1500, "date": "2025-06-01"},
    {"id": "food-jun", "description": "Whole Foods Market", "amount": 600, "date": "2025-06-12"},
    {"id": "mystery", "description": "Corner shop", "amount": 650, "date": "2025-06-14"},
    {"id": "salary", "description": "ACME payroll", "amount": 5000, "date": "2025-06-01", "type": "income"}
  ]
}`

// execute runs the CLI with a fresh viper instance and an isolated config file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("forecast:\n  as_of: \"2025-06-15\"\n"), 0o600))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", cfgPath, "--log-level", "error"}, args...))

	err := root.Execute()
	return out.String(), err
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o600))
	return path
}

func TestClassifyCommand(t *testing.T) {
	out, err := execute(t, "-o", "json", "classify", "NETFLIX Monthly", "14.99")
	require.NoError(t, err)

	var result classification.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, model.CategoryEntertainment, result.Category)
	assert.Equal(t, model.SourceMerchant, result.Source)
	assert.InDelta(t, 0.9, result.Confidence, 1e-9)
}

func TestClassifyCommand_BadAmount(t *testing.T) {
	_, err := execute(t, "classify", "Coffee", "lots")
	require.Error(t, err)
	assert.True(t, common.IsUserError(err))
}

func TestClassifyCommand_CustomRules(t *testing.T) {
	rules := filepath.Join(t.TempDir(), "rules.toml")
	require.NoError(t, os.WriteFile(rules, []byte(`
[[merchant]]
pattern = "corner shop"
category = "food"
`), 0o600))

	out, err := execute(t, "-o", "json", "--rules", rules, "classify", "Corner shop", "650")
	require.NoError(t, err)

	var result classification.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, model.CategoryFood, result.Category)
}

func TestCategorizeCommand(t *testing.T) {
	out, err := execute(t, "-o", "json", "categorize", "-i", writeDataset(t))
	require.NoError(t, err)

	var split struct {
		Reliable  []model.CategorizedTransaction `json:"reliable"`
		Uncertain []model.CategorizedTransaction `json:"uncertain"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &split))
	assert.Len(t, split.Reliable, 5)
	require.Len(t, split.Uncertain, 1)
	assert.Equal(t, "mystery", split.Uncertain[0].Transaction.ID)
}

func TestForecastCommand(t *testing.T) {
	out, err := execute(t, "-o", "json", "forecast", "-i", writeDataset(t))
	require.NoError(t, err)

	var forecast struct {
		Predictions []model.BudgetPrediction `json:"predictions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &forecast))
	require.Len(t, forecast.Predictions, 2)
	assert.Equal(t, model.CategoryFood, forecast.Predictions[1].Category)
	assert.InDelta(t, 1200.0, forecast.Predictions[1].PredictedTotal, 1e-9)
	assert.Equal(t, 15, forecast.Predictions[1].DaysRemaining)
}

func TestAllocateCommand(t *testing.T) {
	out, err := execute(t, "-o", "json", "allocate", "-i", writeDataset(t), "--income", "4000")
	require.NoError(t, err)

	var allocation map[string]float64
	require.NoError(t, json.Unmarshal([]byte(out), &allocation))
	var sum float64
	for _, v := range allocation {
		sum += v
	}
	assert.InDelta(t, 4000.0, sum, 1e-6)
}

func TestReportCommand_Table(t *testing.T) {
	out, err := execute(t, "report", "-i", writeDataset(t))
	require.NoError(t, err)

	for _, want := range []string{"Categorization", "Month-end forecast", "Spending patterns", "Insights", "Recommendations", "Suggested allocation"} {
		assert.Contains(t, out, want)
	}
}

func TestInputErrors(t *testing.T) {
	_, err := execute(t, "forecast", "-i", filepath.Join(t.TempDir(), "data.csv"))
	require.Error(t, err)
	assert.True(t, common.IsUserError(err))

	_, err = execute(t, "forecast")
	require.Error(t, err, "--input is required")
}

func TestInvalidConfig(t *testing.T) {
	_, err := execute(t, "--output", "xml", "classify", "Coffee", "3")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "budget dev")
}

func TestAllocateCommand_InfersIncome(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"transactions": [
		{"description": "ACME payroll", "amount": 3000, "date": "2025-06-01", "type": "income"},
		{"description": "Old bonus", "amount": 900, "date": "2025-05-20", "type": "income"}
	]}`), 0o600))

	out, err := execute(t, "-o", "json", "allocate", "-i", path)
	require.NoError(t, err)

	var allocation map[string]float64
	require.NoError(t, json.Unmarshal([]byte(out), &allocation))
	var sum float64
	for _, v := range allocation {
		sum += v
	}
	assert.InDelta(t, 3000.0, sum, 1e-6)
}

func TestInsightsCommand_SameResultInEveryZone(t *testing.T) {
	var records []string
	for i := 0; i < 10; i++ {
		records = append(records, fmt.Sprintf(
			`{"id": "coffee-%d", "description": "coffee", "amount": 3.00, "date": "2025-06-15", "category": "food"}`, i))
	}
	path := filepath.Join(t.TempDir(), "data.json")
	dataset := `{"limits": [{"category": "food", "limit": 500}], "transactions": [` + strings.Join(records, ",") + `]}`
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o600))

	zones := []*time.Location{
		time.UTC,
		time.FixedZone("EST", -5*3600),
		time.FixedZone("JST", 9*3600),
		time.FixedZone("LINT", 14*3600),
	}
	for _, zone := range zones {
		t.Run(zone.String(), func(t *testing.T) {
			local := time.Local
			time.Local = zone
			t.Cleanup(func() { time.Local = local })

			out, err := execute(t, "-o", "json", "--as-of", "2025-06-15", "insights", "-i", path)
			require.NoError(t, err)

			var result struct {
				Recommendations []model.Recommendation `json:"recommendations"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &result))

			var types []model.RecommendationType
			for _, rec := range result.Recommendations {
				types = append(types, rec.Type)
			}
			assert.Contains(t, types, model.RecommendAutoSavings)
			assert.Contains(t, types, model.RecommendBundle)
		})
	}
}

func TestPrintError(t *testing.T) {
	var userOut bytes.Buffer
	printError(&userOut, common.NewUserError("cannot read input", common.ErrUnsupportedInput))
	assert.Contains(t, userOut.String(), "cannot read input")
	assert.NotContains(t, userOut.String(), "--help")

	var usageOut bytes.Buffer
	printError(&usageOut, errors.New(`unknown flag: --bogus`))
	assert.Contains(t, usageOut.String(), "unknown flag: --bogus")
	assert.Contains(t, usageOut.String(), "budget --help")
}
