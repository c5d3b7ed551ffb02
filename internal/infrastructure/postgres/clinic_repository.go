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

var _ repository.ClinicRepository = (*ClinicRepo)(nil)

// ClinicRepo implementación del puerto ClinicRepository sobre PostgreSQL.
type ClinicRepo struct {
	q Querier
}

// NewClinicRepository construye el adaptador de persistencia para clínicas. Pasar pool o tx.
func NewClinicRepository(q Querier) *ClinicRepo {
	return &ClinicRepo{q: q}
}

// Create persiste una nueva clínica.
func (r *ClinicRepo) Create(ctx context.Context, clinic *entity.Clinic) error {
	query := `
		INSERT INTO clinics (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, clinic.ID, clinic.Name, clinic.CreatedAt, clinic.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert clinic: %w", err)
	}
	return nil
}

// GetByID obtiene una clínica por ID.
func (r *ClinicRepo) GetByID(ctx context.Context, id string) (*entity.Clinic, error) {
	query := `SELECT id, name, created_at, updated_at FROM clinics WHERE id = $1`
	var c entity.Clinic
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isInvalidUUID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get clinic: %w", err)
	}
	return &c, nil
}

// Update renombra una clínica.
func (r *ClinicRepo) Update(ctx context.Context, clinic *entity.Clinic) error {
	cmd, err := r.q.Exec(ctx, `UPDATE clinics SET name = $2, updated_at = $3 WHERE id = $1`,
		clinic.ID, clinic.Name, clinic.UpdatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update clinic: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista las clínicas por nombre.
func (r *ClinicRepo) List(ctx context.Context) ([]*entity.Clinic, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at, updated_at FROM clinics ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list clinics: %w", err)
	}
	defer rows.Close()
	var list []*entity.Clinic
	for rows.Next() {
		var c entity.Clinic
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ListSummaries cuenta materiales distintos con stock y la cantidad total por clínica.
func (r *ClinicRepo) ListSummaries(ctx context.Context) ([]repository.ClinicSummary, error) {
	query := `
		SELECT c.id, c.name,
		       COUNT(s.material_id) FILTER (WHERE s.quantity_available > 0),
		       COALESCE(SUM(s.quantity_available), 0)
		FROM clinics c
		LEFT JOIN clinic_stocks s ON s.clinic_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clinic summaries: %w", err)
	}
	defer rows.Close()
	var list []repository.ClinicSummary
	for rows.Next() {
		var s repository.ClinicSummary
		var distinct, total int64
		if err := rows.Scan(&s.ClinicID, &s.ClinicName, &distinct, &total); err != nil {
			return nil, err
		}
		s.DistinctMaterials, s.TotalQuantity = int(distinct), int(total)
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete elimina la clínica; stock, movimientos y transacciones caen por ON DELETE CASCADE.
func (r *ClinicRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM clinics WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete clinic: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
