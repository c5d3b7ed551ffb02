package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
)

var _ repository.ClinicStockRepository = (*ClinicStockRepo)(nil)

// ClinicStockRepo implementación de ClinicStockRepository sobre PostgreSQL (usable con pool o tx).
type ClinicStockRepo struct {
	q Querier
}

// NewClinicStockRepository construye el adaptador de stock por clínica. Pasar pool o tx (Querier).
func NewClinicStockRepository(q Querier) *ClinicStockRepo {
	return &ClinicStockRepo{q: q}
}

// Get obtiene el stock de un material en una clínica; (nil, nil) si aún no hay fila.
func (r *ClinicStockRepo) Get(ctx context.Context, clinicID, materialID string) (*entity.ClinicStock, error) {
	query := `
		SELECT clinic_id, material_id, quantity_available, is_open, opened_at, updated_at
		FROM clinic_stocks WHERE clinic_id = $1 AND material_id = $2`
	return r.getOne(ctx, query, clinicID, materialID)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *ClinicStockRepo) GetForUpdate(ctx context.Context, clinicID, materialID string) (*entity.ClinicStock, error) {
	query := `
		SELECT clinic_id, material_id, quantity_available, is_open, opened_at, updated_at
		FROM clinic_stocks WHERE clinic_id = $1 AND material_id = $2
		FOR UPDATE`
	return r.getOne(ctx, query, clinicID, materialID)
}

// Upsert inserta o actualiza la fila (clínica, material).
func (r *ClinicStockRepo) Upsert(ctx context.Context, s *entity.ClinicStock) error {
	query := `
		INSERT INTO clinic_stocks (clinic_id, material_id, quantity_available, is_open, opened_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (clinic_id, material_id)
		DO UPDATE SET quantity_available = EXCLUDED.quantity_available,
			is_open = EXCLUDED.is_open,
			opened_at = EXCLUDED.opened_at,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, s.ClinicID, s.MaterialID, s.QuantityAvailable, s.IsOpen, s.OpenedAt, s.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("upsert clinic stock: %w", err)
	}
	return nil
}

const clinicStockViewQuery = `
		SELECT s.clinic_id, c.name, s.material_id, m.name, m.category,
		       s.quantity_available, s.is_open, s.opened_at
		FROM clinic_stocks s
		JOIN clinics c ON c.id = s.clinic_id
		JOIN materials m ON m.id = s.material_id`

// ListByClinic stock de la clínica ordenado por nombre de material (incluye cantidades en cero).
func (r *ClinicStockRepo) ListByClinic(ctx context.Context, clinicID string) ([]repository.ClinicStockView, error) {
	return r.list(ctx, clinicStockViewQuery+` WHERE s.clinic_id = $1 ORDER BY m.name`, clinicID)
}

// ListAll stock de todas las clínicas.
func (r *ClinicStockRepo) ListAll(ctx context.Context) ([]repository.ClinicStockView, error) {
	return r.list(ctx, clinicStockViewQuery+` ORDER BY m.name, c.name`)
}

func (r *ClinicStockRepo) getOne(ctx context.Context, query string, args ...any) (*entity.ClinicStock, error) {
	var s entity.ClinicStock
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.ClinicID, &s.MaterialID, &s.QuantityAvailable, &s.IsOpen, &s.OpenedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get clinic stock: %w", err)
	}
	return &s, nil
}

func (r *ClinicStockRepo) list(ctx context.Context, query string, args ...any) ([]repository.ClinicStockView, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clinic stock: %w", err)
	}
	defer rows.Close()
	var list []repository.ClinicStockView
	for rows.Next() {
		var v repository.ClinicStockView
		var category int16
		if err := rows.Scan(&v.ClinicID, &v.ClinicName, &v.MaterialID, &v.MaterialName, &category,
			&v.QuantityAvailable, &v.IsOpen, &v.OpenedAt); err != nil {
			return nil, err
		}
		v.Category = entity.MaterialCategory(category)
		list = append(list, v)
	}
	return list, rows.Err()
}
