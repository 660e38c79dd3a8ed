package engine

import (
	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

// Classifier defines the contract for single-transaction categorization.
// Implementations must be safe for concurrent use.
type Classifier interface {
	ClassifyTransaction(txn model.Transaction) model.CategorizedTransaction
}

// ProgressFunc is called after each transaction in a batch is categorized.
type ProgressFunc func(done, total int)
