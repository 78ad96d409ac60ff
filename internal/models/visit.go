package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы визита.
const (
	VisitPlanned   = "Planlandı"
	VisitCompleted = "Tamamlandı"
	VisitCancelled = "İptal Edildi"
)

// ValidVisitStatus сообщает, является ли status допустимым статусом визита.
func ValidVisitStatus(status string) bool {
	switch status {
	case VisitPlanned, VisitCompleted, VisitCancelled:
		return true
	}
	return false
}

// Visit описывает визит в фирму.
type Visit struct {
	ID            int64           `json:"id"`
	Date          string          `json:"date"` // YYYY-MM-DD
	Time          string          `json:"time"` // HH:mm
	Company       string          `json:"company"`
	Visitor       string          `json:"visitor"`
	Purpose       string          `json:"purpose"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	Details       string          `json:"details,omitempty"`
	Participants  string          `json:"participants,omitempty"`
	Location      string          `json:"location,omitempty"`
	Files         []string        `json:"files"`
	IncomeAmount  decimal.Decimal `json:"incomeAmount"`
	ExpenseAmount decimal.Decimal `json:"expenseAmount"`
	FinancialNote string          `json:"financialNote,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// VisitPatch содержит изменяемые поля визита. nil означает «не менять».
type VisitPatch struct {
	Date          *string          `json:"date"`
	Time          *string          `json:"time"`
	Company       *string          `json:"company"`
	Visitor       *string          `json:"visitor"`
	Purpose       *string          `json:"purpose"`
	Status        *string          `json:"status"`
	Notes         *string          `json:"notes"`
	Details       *string          `json:"details"`
	Participants  *string          `json:"participants"`
	Location      *string          `json:"location"`
	Files         *[]string        `json:"files"`
	IncomeAmount  *decimal.Decimal `json:"incomeAmount"`
	ExpenseAmount *decimal.Decimal `json:"expenseAmount"`
	FinancialNote *string          `json:"financialNote"`
}
