package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Типы записей доходов и расходов.
const (
	TransactionIncome  = "Gelir"
	TransactionExpense = "Gider"
)

// ValidTransactionType сообщает, является ли t допустимым типом записи.
func ValidTransactionType(t string) bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction описывает запись о доходе или расходе.
type Transaction struct {
	ID          int64           `json:"id"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// TransactionPatch содержит изменяемые поля записи. nil означает «не менять».
type TransactionPatch struct {
	Date        *string          `json:"date"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Type        *string          `json:"type"`
	Amount      *decimal.Decimal `json:"amount"`
}

// SummaryFilter ограничивает период сводки. Пустые границы не применяются.
type SummaryFilter struct {
	From *time.Time
	To   *time.Time
}

// TransactionSummary: итоги по доходам и расходам за период.
type TransactionSummary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}
