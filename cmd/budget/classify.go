package main

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/the-budget-must-flow/internal/cli"
	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/config"
	"github.com/Veraticus/the-budget-must-flow/internal/engine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <description> <amount>",
		Short: "Classify a single transaction description",
		Long: `Run one description and amount through the rule cascade and show which
category, confidence and stage it lands on.`,
		Example: `  budget classify "NETFLIX Monthly" 14.99`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := args[0]
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return common.NewUserError(fmt.Sprintf("amount %q is not a number", args[1]), err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			eng, err := buildEngine(cfg, nil)
			if err != nil {
				return err
			}

			result := eng.Classify(description, amount)
			return emit(cmd.OutOrStdout(), cfg.Output, result, func() string {
				return cli.FormatClassification(description, amount, result)
			})
		},
	}
}

func categorizeCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Categorize a batch and split it by confidence",
		Long: `Categorize every transaction in the input file and split the result into
reliable categorizations and ones that need review.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, input)
			if err != nil {
				return err
			}
			if len(s.data.Transactions) == 0 {
				return common.NewUserError(fmt.Sprintf("%s has nothing to categorize", input), common.ErrNoTransactions)
			}

			categorized, err := s.engine.BatchCategorize(cmd.Context(), s.data.Transactions)
			if err != nil {
				return err
			}
			split := s.engine.Validate(categorized, s.cfg.Threshold)

			return s.emit(split, func() string {
				return cli.FormatSplit(split, s.cfg.Threshold)
			})
		},
	}

	addInputFlag(cmd, &input)
	cmd.Flags().Float64("threshold", engine.DefaultThreshold, "confidence at or above which a categorization is reliable")
	_ = viper.BindPFlag(config.KeyThreshold, cmd.Flags().Lookup("threshold"))

	return cmd
}
