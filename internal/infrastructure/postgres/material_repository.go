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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, name, category, quantity, cost, last_added_quantity, last_added_total,
		last_added_at, created_at, updated_at`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material. name_key guarda el nombre normalizado para la unicidad nombre+categoría.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (id, name, name_key, category, quantity, cost, last_added_quantity,
			last_added_total, last_added_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, entity.NormalizeMaterialName(m.Name), int16(m.Category), m.Quantity, m.Cost,
		m.LastAddedQuantity, m.LastAddedTotal, m.LastAddedAt, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

// GetForUpdate obtiene el material y bloquea la fila (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *MaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, id)
}

// FindByNameAndCategory busca por nombre normalizado y categoría.
func (r *MaterialRepo) FindByNameAndCategory(ctx context.Context, name string, category entity.MaterialCategory) (*entity.Material, error) {
	return r.getOne(ctx, `SELECT `+materialColumns+` FROM materials WHERE name_key = $1 AND category = $2`,
		entity.NormalizeMaterialName(name), int16(category))
}

// Update guarda todos los campos mutables del material.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, name_key = $3, category = $4, quantity = $5, cost = $6,
			last_added_quantity = $7, last_added_total = $8, last_added_at = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.Name, entity.NormalizeMaterialName(m.Name), int16(m.Category), m.Quantity, m.Cost,
		m.LastAddedQuantity, m.LastAddedTotal, m.LastAddedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isInvalidUUID(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos los materiales por nombre.
func (r *MaterialRepo) List(ctx context.Context) ([]*entity.Material, error) {
	return r.getMany(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY name, category`)
}

// ListByCategory lista los materiales de una categoría.
func (r *MaterialRepo) ListByCategory(ctx context.Context, category entity.MaterialCategory) ([]*entity.Material, error) {
	return r.getMany(ctx, `SELECT `+materialColumns+` FROM materials WHERE category = $1 ORDER BY name`, int16(category))
}

// Delete elimina el material; su stock por clínica y sus movimientos caen en cascada.
func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MaterialRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

func (r *MaterialRepo) getMany(ctx context.Context, query string, args ...any) ([]*entity.Material, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	var category int16
	err := row.Scan(
		&m.ID, &m.Name, &category, &m.Quantity, &m.Cost, &m.LastAddedQuantity, &m.LastAddedTotal,
		&m.LastAddedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Category = entity.MaterialCategory(category)
	return &m, nil
}
