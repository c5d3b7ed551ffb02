package repository

import (
	"context"
	"time"

	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
)

// FinancialTransactionView transacción con nombre de clínica y de usuario creador.
type FinancialTransactionView struct {
	entity.FinancialTransaction
	ClinicName    string
	CreatedByName string
}

// TransactionFilter filtros opcionales (nil = sin filtro). From/To comparan transaction_date inclusive.
type TransactionFilter struct {
	ClinicID *string
	From     *time.Time
	To       *time.Time
}

// FinancialTransactionRepository define el puerto del libro de ingresos/egresos.
type FinancialTransactionRepository interface {
	Create(ctx context.Context, tx *entity.FinancialTransaction) error
	GetByID(ctx context.Context, id string) (*FinancialTransactionView, error)
	// List ordenado por transaction_date DESC, created_at DESC.
	List(ctx context.Context, filter TransactionFilter) ([]FinancialTransactionView, error)
	Delete(ctx context.Context, id string) error
}
