package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Veraticus/the-budget-must-flow/internal/budget"
	"github.com/Veraticus/the-budget-must-flow/internal/classification"
	"github.com/Veraticus/the-budget-must-flow/internal/cli"
	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/config"
	"github.com/Veraticus/the-budget-must-flow/internal/dataset"
	"github.com/Veraticus/the-budget-must-flow/internal/engine"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// session bundles what every data command needs.
type session struct {
	cfg    *config.Config
	engine *engine.Engine
	data   *dataset.Dataset
	out    io.Writer
}

// loadConfig reads the validated configuration from the global viper instance.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper(), time.Now())
	if err != nil {
		return nil, common.NewUserError("configuration is invalid", err)
	}
	return cfg, nil
}

// buildEngine wires rules, batch options and thresholds from cfg into an engine.
func buildEngine(cfg *config.Config, progress engine.ProgressFunc) (*engine.Engine, error) {
	rules := classification.DefaultRules()
	if cfg.RulesFile != "" {
		loaded, err := classification.LoadRules(cfg.RulesFile)
		if err != nil {
			return nil, common.NewUserError("could not load rule table", err)
		}
		rules = loaded
		slog.Info("Loaded rule table", "path", cfg.RulesFile,
			"merchant_rules", len(rules.Merchants), "keyword_rules", len(rules.Keywords))
	}

	eng := engine.NewWithConfig(engine.Config{
		Rules: rules,
		Batch: engine.BatchOptions{
			Workers:           cfg.Workers,
			ParallelThreshold: cfg.ParallelThreshold,
			OnProgress:        progress,
		},
		Threshold:      cfg.Threshold,
		LookbackMonths: cfg.LookbackMonths,
	})
	slog.Debug("Built engine", "rules", eng.RuleCount(), "workers", cfg.Workers, "threshold", cfg.Threshold)
	return eng, nil
}

// openSession loads config, engine and the input file named by --input.
// Limits and income from the file win over the configured ones.
func openSession(cmd *cobra.Command, input string) (*session, error) {
	if input == "" {
		return nil, common.NewUserError("no input file given, use --input", common.ErrUnsupportedInput)
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	data, err := dataset.Load(cmd.Context(), input)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not read %s", input), err)
	}
	if len(data.Limits) == 0 {
		data.Limits = cfg.Limits
	}
	if data.Income == 0 || cmd.Flags().Changed("income") {
		data.Income = cfg.Income
	}
	if data.Income == 0 {
		data.Income = incomeInMonth(data.Transactions, model.MonthOf(cfg.AsOf))
	}

	var progress engine.ProgressFunc
	if cfg.Output == config.OutputTable && len(data.Transactions) >= cfg.ParallelThreshold {
		progress = cli.NewProgress(cmd.ErrOrStderr(), "Categorizing transactions...")
	}

	eng, err := buildEngine(cfg, progress)
	if err != nil {
		return nil, err
	}

	common.LogInfo("Loaded input", common.Fields{
		"path":         input,
		"transactions": len(data.Transactions),
		"limits":       len(data.Limits),
		"as_of":        cfg.AsOf.Format(config.AsOfLayout),
	})

	return &session{
		cfg:    cfg,
		engine: eng,
		data:   data,
		out:    cmd.OutOrStdout(),
	}, nil
}

// incomeInMonth sums the income transactions posted in month.
func incomeInMonth(txns []model.Transaction, month model.Month) float64 {
	var inMonth []model.Transaction
	for _, txn := range txns {
		if txn.Month() == month {
			inMonth = append(inMonth, txn)
		}
	}
	return budget.TotalIncome(inMonth)
}

// run executes the whole pipeline for the session's dataset.
func (s *session) run(ctx context.Context) (*engine.Report, error) {
	return s.engine.Run(ctx, s.data.Transactions, s.data.Limits, s.data.Income, s.cfg.AsOf)
}

// emit writes v as indented JSON or the rendered table text, depending on --output.
func (s *session) emit(v any, table func() string) error {
	return emit(s.out, s.cfg.Output, v, table)
}

func emit(w io.Writer, output string, v any, table func() string) error {
	if output == config.OutputJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	}
	_, err := fmt.Fprintln(w, table())
	return err
}

func addInputFlag(cmd *cobra.Command, input *string) {
	cmd.Flags().StringVarP(input, "input", "i", "", "transactions file (.json dataset, .ofx or .qfx)")
	_ = cmd.MarkFlagRequired("input")
}
