// Package dataset loads transactions, budget limits and income from input files.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/the-budget-must-flow/internal/common"
	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/Veraticus/the-budget-must-flow/internal/ofx"
)

// DateLayout is the short date form accepted in JSON datasets. Full RFC 3339
// timestamps are accepted too.
const DateLayout = "2006-01-02"

// Dataset is everything the engine needs for one run.
type Dataset struct {
	Transactions []model.Transaction `json:"transactions"`
	Limits       []model.BudgetLimit `json:"limits,omitempty"`
	Income       float64             `json:"income,omitempty"`
}

type transactionRecord struct {
	Confidence  *float64 `json:"confidence"`
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Amount      float64  `json:"amount"`
}

type datasetRecord struct {
	Transactions []transactionRecord `json:"transactions"`
	Limits       []model.BudgetLimit `json:"limits"`
	Income       float64             `json:"income"`
}

// Load reads a dataset from path, choosing the reader by file extension:
// .json for datasets, .ofx or .qfx for bank statements.
func Load(ctx context.Context, path string) (*Dataset, error) {
	file, err := os.Open(path) //nolint:gosec // path is supplied by the user on purpose
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			common.LogDebug("Failed to close input", common.Fields{"path": path, "error": closeErr})
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(file)
	case ".ofx", ".qfx":
		txns, err := ofx.NewParser().ParseFile(ctx, file)
		if err != nil {
			return nil, err
		}
		return &Dataset{Transactions: txns}, nil
	default:
		return nil, fmt.Errorf("%w: %s (want .json, .ofx or .qfx)", common.ErrUnsupportedInput, filepath.Base(path))
	}
}

// ReadJSON decodes and validates a JSON dataset.
func ReadJSON(r io.Reader) (*Dataset, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var record datasetRecord
	if err := decoder.Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidDataset, err)
	}

	if record.Income < 0 {
		return nil, fmt.Errorf("%w: income must not be negative", common.ErrInvalidDataset)
	}
	for _, l := range record.Limits {
		if l.Category == "" {
			return nil, fmt.Errorf("%w: limit without category", common.ErrInvalidDataset)
		}
		if l.Limit < 0 {
			return nil, fmt.Errorf("%w: limit for %s must not be negative", common.ErrInvalidDataset, l.Category)
		}
	}

	ds := &Dataset{
		Transactions: make([]model.Transaction, 0, len(record.Transactions)),
		Limits:       record.Limits,
		Income:       record.Income,
	}
	for i, rec := range record.Transactions {
		txn, err := rec.toTransaction()
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %d: %w", common.ErrInvalidDataset, i, err)
		}
		ds.Transactions = append(ds.Transactions, txn)
	}
	return ds, nil
}

func (r transactionRecord) toTransaction() (model.Transaction, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return model.Transaction{}, err
	}
	if r.Amount < 0 {
		return model.Transaction{}, fmt.Errorf("amount %v must be a non-negative magnitude", r.Amount)
	}
	if r.Confidence != nil && (*r.Confidence < 0 || *r.Confidence > 1) {
		return model.Transaction{}, fmt.Errorf("confidence %v outside [0, 1]", *r.Confidence)
	}

	kind := model.TransactionKind(strings.ToLower(r.Type))
	switch kind {
	case "":
		kind = model.KindExpense
	case model.KindExpense, model.KindIncome:
	default:
		return model.Transaction{}, fmt.Errorf("unknown type %q", r.Type)
	}

	txn := model.Transaction{
		ID:          r.ID,
		Description: r.Description,
		Amount:      r.Amount,
		Date:        date,
		Kind:        kind,
		Category:    r.Category,
		Confidence:  r.Confidence,
	}
	if txn.ID == "" {
		txn.ID = txn.GenerateHash()
	}
	return txn, nil
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("missing date")
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD or RFC 3339", raw)
	}
	return t, nil
}
