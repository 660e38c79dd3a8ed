package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// TransactionKind separates money leaving the account from money arriving.
type TransactionKind string

// Transaction kind constants.
const (
	KindExpense TransactionKind = "expense"
	KindIncome  TransactionKind = "income"
)

// Transaction represents a single financial transaction supplied by the caller.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Confidence  *float64        `json:"confidence,omitempty"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Kind        TransactionKind `json:"type"`
	Category    string          `json:"category,omitempty"`
	Amount      float64         `json:"amount"` // Always a non-negative magnitude
}

// IsExpense reports whether the transaction counts toward spending.
func (t Transaction) IsExpense() bool {
	return t.Kind == KindExpense
}

// CategoryOrOther returns the assigned category, or CategoryOther when none is set.
func (t Transaction) CategoryOrOther() string {
	if t.Category == "" {
		return CategoryOther
	}
	return t.Category
}

// Month returns the calendar month the transaction was posted in.
func (t Transaction) Month() Month {
	return MonthOf(t.Date)
}

// GenerateHash creates a stable identifier for transactions that arrive without one.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description,
		t.Kind)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Month is the (year, month) key used for multi-month aggregation.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// MonthOf returns the Month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// DayOf returns midnight UTC on the calendar date of t, as read in t's own
// location. Dates compared through DayOf ignore time of day and zone.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Before reports whether m is chronologically earlier than other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// AddMonths returns the month n months after m (n may be negative).
func (m Month) AddMonths(n int) Month {
	return MonthOf(m.Start().AddDate(0, n, 0))
}

// Start returns midnight UTC on the first day of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.Start().AddDate(0, 1, -1).Day()
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
