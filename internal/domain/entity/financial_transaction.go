package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType ingreso o egreso de caja.
type TransactionType string

const (
	TransactionIncome  TransactionType = "Income"
	TransactionExpense TransactionType = "Expense"
)

// ParseTransactionType convierte "income"/"Expense"/"1"/"2" a TransactionType.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "1":
		return TransactionIncome, true
	case "expense", "2":
		return TransactionExpense, true
	}
	return "", false
}

// FinancialTransaction movimiento de caja de una clínica. Inmutable: solo se crea o se elimina.
type FinancialTransaction struct {
	ID              string
	ClinicID        string
	Type            TransactionType
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time // solo fecha (00:00 UTC)
	CreatedBy       string    // UserID
	CreatedAt       time.Time
}

// CanBeDeletedBy: solo el creador o un Master.
func (t *FinancialTransaction) CanBeDeletedBy(userID, role string) bool {
	return role == RoleMaster || t.CreatedBy == userID
}

// DateOnly trunca t al día calendario en UTC.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
