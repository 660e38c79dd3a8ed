// Package model defines the core domain models used throughout the application.
package model

// MatchSource indicates which classifier stage produced a category.
type MatchSource string

// Match source constants, in cascade order.
const (
	SourceEmpty    MatchSource = "empty_description"
	SourceMerchant MatchSource = "merchant"
	SourceKeyword  MatchSource = "keyword"
	SourceAmount   MatchSource = "amount_heuristic"
	// SourceProvided marks a category supplied with the transaction itself.
	SourceProvided MatchSource = "provided"
)

// CategorizedTransaction is a transaction paired with the category the classifier chose.
// It is never mutated; a corrected categorization produces a new record.
type CategorizedTransaction struct {
	Category    string      `json:"category"`
	Source      MatchSource `json:"source"`
	Transaction Transaction `json:"transaction"`
	Confidence  float64     `json:"confidence"`
}

// Applied returns a copy of the underlying transaction with the category and
// confidence written into it, ready for aggregation.
func (c CategorizedTransaction) Applied() Transaction {
	txn := c.Transaction
	txn.Category = c.Category
	confidence := c.Confidence
	txn.Confidence = &confidence
	return txn
}

// AppliedAll converts a categorized batch back into plain transactions.
func AppliedAll(categorized []CategorizedTransaction) []Transaction {
	txns := make([]Transaction, len(categorized))
	for i, c := range categorized {
		txns[i] = c.Applied()
	}
	return txns
}
