package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
)

var _ repository.FinancialTransactionRepository = (*FinancialTransactionRepo)(nil)

// FinancialTransactionRepo libro de caja por clínica sobre PostgreSQL.
type FinancialTransactionRepo struct {
	q Querier
}

// NewFinancialTransactionRepository construye el adaptador.
func NewFinancialTransactionRepository(q Querier) *FinancialTransactionRepo {
	return &FinancialTransactionRepo{q: q}
}

const transactionViewQuery = `
		SELECT t.id, t.clinic_id, t.transaction_type, t.amount, t.description, t.transaction_date,
		       t.created_by, t.created_at, c.name, COALESCE(u.user_name, '')
		FROM financial_transactions t
		JOIN clinics c ON c.id = t.clinic_id
		LEFT JOIN users u ON u.id = t.created_by`

// Create persiste la transacción. transaction_date es DATE: se guarda solo el día.
func (r *FinancialTransactionRepo) Create(ctx context.Context, t *entity.FinancialTransaction) error {
	query := `
		INSERT INTO financial_transactions (id, clinic_id, transaction_type, amount, description,
			transaction_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ClinicID, string(t.Type), t.Amount, t.Description, entity.DateOnly(t.TransactionDate),
		t.CreatedBy, t.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: clínica o usuario de la transacción", domain.ErrNotFound)
		}
		return fmt.Errorf("insert financial transaction: %w", err)
	}
	return nil
}

// GetByID obtiene la transacción con clínica y usuario.
func (r *FinancialTransactionRepo) GetByID(ctx context.Context, id string) (*repository.FinancialTransactionView, error) {
	v, err := scanTransactionView(r.q.QueryRow(ctx, transactionViewQuery+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get financial transaction: %w", err)
	}
	return v, nil
}

// List filtra por clínica y rango de fechas (inclusive).
func (r *FinancialTransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]repository.FinancialTransactionView, error) {
	var where []string
	var args []any
	if f.ClinicID != nil {
		args = append(args, *f.ClinicID)
		where = append(where, fmt.Sprintf("t.clinic_id = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, entity.DateOnly(*f.From))
		where = append(where, fmt.Sprintf("t.transaction_date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, entity.DateOnly(*f.To))
		where = append(where, fmt.Sprintf("t.transaction_date <= $%d", len(args)))
	}
	query := transactionViewQuery
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY t.transaction_date DESC, t.created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list financial transactions: %w", err)
	}
	defer rows.Close()
	var list []repository.FinancialTransactionView
	for rows.Next() {
		v, err := scanTransactionView(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *v)
	}
	return list, rows.Err()
}

// Delete elimina la transacción.
func (r *FinancialTransactionRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM financial_transactions WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete financial transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTransactionView(row pgx.Row) (*repository.FinancialTransactionView, error) {
	var v repository.FinancialTransactionView
	var typ string
	err := row.Scan(
		&v.ID, &v.ClinicID, &typ, &v.Amount, &v.Description, &v.TransactionDate,
		&v.CreatedBy, &v.CreatedAt, &v.ClinicName, &v.CreatedByName,
	)
	if err != nil {
		return nil, err
	}
	v.Type = entity.TransactionType(typ)
	v.TransactionDate = entity.DateOnly(v.TransactionDate)
	return &v, nil
}
