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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del registro de movimientos sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementViewQuery = `
		SELECT sm.id, sm.clinic_id, sm.material_id, sm.quantity, sm.movement_type, sm.performed_by,
		       sm.note, sm.created_at, m.name, m.category, m.cost, COALESCE(u.user_name, '')
		FROM stock_movements sm
		JOIN materials m ON m.id = sm.material_id
		LEFT JOIN users u ON u.id = sm.performed_by`

// Create agrega un movimiento (append-only).
func (r *StockMovementRepo) Create(ctx context.Context, mv *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, clinic_id, material_id, quantity, movement_type, performed_by, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		mv.ID, mv.ClinicID, mv.MaterialID, mv.Quantity, string(mv.Kind), mv.PerformedBy, mv.Note, mv.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: clínica, material o usuario del movimiento", domain.ErrNotFound)
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento con sus nombres resueltos.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*repository.StockMovementView, error) {
	v, err := scanMovementView(r.q.QueryRow(ctx, movementViewQuery+` WHERE sm.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return v, nil
}

// ListByClinic movimientos de la clínica, más recientes primero.
func (r *StockMovementRepo) ListByClinic(ctx context.Context, clinicID string, limit, offset int) ([]repository.StockMovementView, error) {
	query := movementViewQuery + ` WHERE sm.clinic_id = $1 ORDER BY sm.created_at DESC, sm.id LIMIT $2 OFFSET $3`
	list, err := r.list(ctx, query, clinicID, limit, offset)
	if isInvalidUUID(err) {
		return nil, nil
	}
	return list, err
}

// ListInRange movimientos con created_at en [From, To], filtrados por clínica y tipo si se indican.
func (r *StockMovementRepo) ListInRange(ctx context.Context, f repository.MovementFilter) ([]repository.StockMovementView, error) {
	where := []string{"sm.created_at >= $1", "sm.created_at <= $2"}
	args := []any{f.From, f.To}
	if f.ClinicID != nil {
		args = append(args, *f.ClinicID)
		where = append(where, fmt.Sprintf("sm.clinic_id = $%d", len(args)))
	}
	if len(f.Kinds) > 0 {
		kinds := make([]string, 0, len(f.Kinds))
		for _, k := range f.Kinds {
			kinds = append(kinds, string(k))
		}
		args = append(args, kinds)
		where = append(where, fmt.Sprintf("sm.movement_type = ANY($%d)", len(args)))
	}
	query := movementViewQuery + ` WHERE ` + strings.Join(where, " AND ") + ` ORDER BY sm.created_at`
	list, err := r.list(ctx, query, args...)
	if isInvalidUUID(err) {
		return nil, nil
	}
	return list, err
}

// DeleteByClinic elimina todo el registro de la clínica.
func (r *StockMovementRepo) DeleteByClinic(ctx context.Context, clinicID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE clinic_id = $1`, clinicID)
	if err != nil {
		if isInvalidUUID(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("delete stock movements: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]repository.StockMovementView, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []repository.StockMovementView
	for rows.Next() {
		v, err := scanMovementView(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *v)
	}
	return list, rows.Err()
}

func scanMovementView(row pgx.Row) (*repository.StockMovementView, error) {
	var v repository.StockMovementView
	var kind string
	var category int16
	err := row.Scan(
		&v.ID, &v.ClinicID, &v.MaterialID, &v.Quantity, &kind, &v.PerformedBy,
		&v.Note, &v.CreatedAt, &v.MaterialName, &category, &v.MaterialCost, &v.PerformedByName,
	)
	if err != nil {
		return nil, err
	}
	v.Kind = entity.MovementKind(kind)
	v.MaterialCategory = entity.MaterialCategory(category)
	return &v, nil
}
