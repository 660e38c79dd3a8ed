package main

import (
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/cli"
	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/config"
	"github.com/Veraticus/the-budget-must-flow/internal/engine"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// reportCommand builds a command that runs the pipeline and prints part of the report.
func reportCommand(use, short string, render func(s *session, report *engine.Report) error) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, input)
			if err != nil {
				return err
			}
			report, err := s.run(cmd.Context())
			if err != nil {
				return err
			}
			return render(s, report)
		},
	}
	addInputFlag(cmd, &input)
	return cmd
}

func forecastCmd() *cobra.Command {
	return reportCommand("forecast", "Project each budget to the end of the month",
		func(s *session, report *engine.Report) error {
			out := struct {
				Budgets     []model.Budget           `json:"budgets"`
				Predictions []model.BudgetPrediction `json:"predictions"`
			}{report.Budgets, report.Predictions}
			return s.emit(out, func() string {
				return cli.FormatPredictions(report.Budgets, report.Predictions)
			})
		})
}

func patternsCmd() *cobra.Command {
	cmd := reportCommand("patterns", "Classify each category's month-over-month trend",
		func(s *session, report *engine.Report) error {
			return s.emit(report.Patterns, func() string {
				return cli.FormatPatterns(report.Patterns)
			})
		})
	cmd.Flags().Int("lookback", 3, "number of calendar months to analyze, ending with the as-of month")
	_ = viper.BindPFlag(config.KeyLookbackMonths, cmd.Flags().Lookup("lookback"))
	return cmd
}

func insightsCmd() *cobra.Command {
	return reportCommand("insights", "Show ranked insights and recommendations",
		func(s *session, report *engine.Report) error {
			out := struct {
				Insights        []model.Insight        `json:"insights"`
				Recommendations []model.Recommendation `json:"recommendations"`
			}{report.Insights, report.Recommendations}
			return s.emit(out, func() string {
				return cli.FormatInsights(report.Insights) + "\n\n" + cli.FormatRecommendations(report.Recommendations)
			})
		})
}

func allocateCmd() *cobra.Command {
	cmd := reportCommand("allocate", "Suggest a 50/30/20 budget allocation for monthly income",
		func(s *session, report *engine.Report) error {
			if s.data.Income <= 0 {
				return common.NewUserError("no monthly income known, pass --income or set budgets.income", common.ErrMissingConfig)
			}
			return s.emit(report.Allocation, func() string {
				return cli.FormatAllocation(report.Allocation, s.data.Income)
			})
		})
	cmd.Flags().Float64("income", 0, "monthly income to allocate")
	_ = viper.BindPFlag(config.KeyIncome, cmd.Flags().Lookup("income"))
	return cmd
}

func reportCmd() *cobra.Command {
	return reportCommand("report", "Run every analysis and print the full report",
		func(s *session, report *engine.Report) error {
			return s.emit(report, func() string {
				sections := []string{
					cli.FormatSplit(report.Split, s.cfg.Threshold),
					cli.FormatPredictions(report.Budgets, report.Predictions),
					cli.FormatPatterns(report.Patterns),
					cli.FormatInsights(report.Insights),
					cli.FormatRecommendations(report.Recommendations),
				}
				if report.Allocation != nil {
					sections = append(sections, cli.FormatAllocation(report.Allocation, s.data.Income))
				}
				return strings.Join(sections, "\n\n")
			})
		})
}
