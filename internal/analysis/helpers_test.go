package analysis

import (
	"time"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func expense(id, category string, amount float64, when time.Time) model.Transaction {
	return model.Transaction{
		ID:          id,
		Description: id,
		Amount:      amount,
		Date:        when,
		Kind:        model.KindExpense,
		Category:    category,
	}
}
