package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
)

// Notas por defecto de los movimientos.
const (
	NoteAllocate       = "Distribución desde inventario general."
	NoteDirectInbound  = "Entrada directa al inventario de la clínica."
	NoteConsume        = "Consumo de material"
	NoteInitialStock   = "Stock inicial"
	NoteWarehouseAdd   = "Entrada a bodega general"
	NoteAdminAdjust    = "Ajuste administrativo de cantidad"
	noteAssignTemplate = "Transferido desde bodega a %s"
)

// StockUseCase mueve cantidades entre bodega general y clínicas. Cada operación es una sola
// transacción: bloquea la fila del material y luego la de stock de la clínica (SELECT FOR UPDATE),
// valida, muta y agrega el movimiento. Si algo falla se hace Rollback completo.
type StockUseCase struct {
	txRunner   TxRunner
	clinicRepo repository.ClinicRepository
	movRepo    repository.StockMovementRepository
	now        func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	clinicRepo repository.ClinicRepository,
	movRepo repository.StockMovementRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:   txRunner,
		clinicRepo: clinicRepo,
		movRepo:    movRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *StockUseCase) WithClock(now func() time.Time) *StockUseCase {
	uc.now = now
	return uc
}

// Allocate traslada quantity de la bodega general a la clínica (movimiento Transfer).
func (uc *StockUseCase) Allocate(ctx context.Context, actorID, clinicID string, in dto.ClinicAllocateRequest) (*dto.AllocateResponse, error) {
	if err := inventory.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	clinic, err := uc.requireClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	note := defaultNote(in.Note, NoteAllocate)
	m, s, err := uc.moveToClinic(ctx, actorID, clinic, in.MaterialID, in.Quantity, entity.MovementTransfer, note)
	if err != nil {
		return nil, err
	}
	return &dto.AllocateResponse{
		Material:    ToMaterialResponse(m),
		ClinicStock: ToClinicStockResponse(s, m),
	}, nil
}

// AddToClinic registra una entrada directa a la clínica (movimiento Inbound). También descuenta de bodega.
func (uc *StockUseCase) AddToClinic(ctx context.Context, actorID, clinicID string, in dto.ClinicAllocateRequest) (*dto.ClinicStockResponse, error) {
	if err := inventory.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	clinic, err := uc.requireClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	note := defaultNote(in.Note, NoteDirectInbound)
	m, s, err := uc.moveToClinic(ctx, actorID, clinic, in.MaterialID, in.Quantity, entity.MovementInbound, note)
	if err != nil {
		return nil, err
	}
	out := ToClinicStockResponse(s, m)
	return &out, nil
}

// AssignToClinic variante de Allocate iniciada desde el material (POST /materials/{id}/assign-to-clinic).
func (uc *StockUseCase) AssignToClinic(ctx context.Context, actorID, materialID string, in dto.MaterialAssignToClinicRequest) (*dto.AssignToClinicResponse, error) {
	if err := inventory.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	clinic, err := uc.requireClinic(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}
	note := fmt.Sprintf(noteAssignTemplate, clinic.Name)
	m, s, err := uc.moveToClinic(ctx, actorID, clinic, materialID, in.Quantity, entity.MovementTransfer, note)
	if err != nil {
		return nil, err
	}
	return &dto.AssignToClinicResponse{
		Message:           fmt.Sprintf("Se asignaron %d unidad(es) de '%s' a %s", in.Quantity, m.Name, clinic.Name),
		WarehouseQuantity: m.Quantity,
		ClinicQuantity:    s.QuantityAvailable,
	}, nil
}

// moveToClinic descuenta de bodega y acredita a la clínica en una sola transacción.
func (uc *StockUseCase) moveToClinic(
	ctx context.Context,
	actorID string,
	clinic *entity.Clinic,
	materialID string,
	qty int,
	kind entity.MovementKind,
	note string,
) (*entity.Material, *entity.ClinicStock, error) {
	if err := inventory.ValidateQuantity(qty); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(materialID) == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	var (
		material *entity.Material
		stock    *entity.ClinicStock
	)
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		stockRepo repository.ClinicStockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		now := uc.now()
		// Orden fijo de bloqueo: material, luego stock de clínica
		m, err := materialRepo.GetForUpdate(ctx, materialID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		remaining, err := inventory.Withdraw(m.Quantity, qty)
		if err != nil {
			return err
		}
		m.Quantity = remaining
		m.UpdatedAt = now
		if err := materialRepo.Update(ctx, m); err != nil {
			return err
		}

		s, err := stockRepo.GetForUpdate(ctx, clinic.ID, m.ID)
		if err != nil {
			return err
		}
		if s == nil {
			s = entity.NewClinicStock(clinic.ID, m.ID, now)
		}
		s.QuantityAvailable += qty
		s.UpdatedAt = now
		if err := stockRepo.Upsert(ctx, s); err != nil {
			return err
		}

		clinicID := clinic.ID
		if err := movRepo.Create(ctx, &entity.StockMovement{
			ID:          uuid.New().String(),
			ClinicID:    &clinicID,
			MaterialID:  m.ID,
			Quantity:    qty,
			Kind:        kind,
			PerformedBy: actorID,
			Note:        note,
			CreatedAt:   now,
		}); err != nil {
			return err
		}
		material, stock = m, s
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return material, stock, nil
}

// Consume descuenta quantity del stock de la clínica (movimiento Outbound). No toca la bodega.
func (uc *StockUseCase) Consume(ctx context.Context, actorID, clinicID string, in dto.ClinicConsumeRequest) (*dto.ConsumeResponse, error) {
	if err := inventory.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	if _, err := uc.requireClinic(ctx, clinicID); err != nil {
		return nil, err
	}
	var remaining int
	err := uc.txRunner.Run(ctx, func(
		_ repository.MaterialRepository,
		stockRepo repository.ClinicStockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		now := uc.now()
		s, err := stockRepo.GetForUpdate(ctx, clinicID, in.MaterialID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrClinicStockMissing
		}
		left, err := inventory.Withdraw(s.QuantityAvailable, in.Quantity)
		if err != nil {
			return err
		}
		s.QuantityAvailable = left
		s.UpdatedAt = now
		if err := stockRepo.Upsert(ctx, s); err != nil {
			return err
		}
		cid := clinicID
		if err := movRepo.Create(ctx, &entity.StockMovement{
			ID:          uuid.New().String(),
			ClinicID:    &cid,
			MaterialID:  in.MaterialID,
			Quantity:    -in.Quantity,
			Kind:        entity.MovementOutbound,
			PerformedBy: actorID,
			Note:        defaultNote(in.Note, NoteConsume),
			CreatedAt:   now,
		}); err != nil {
			return err
		}
		remaining = left
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.ConsumeResponse{
		Message:           "Material consumido correctamente.",
		RemainingQuantity: remaining,
	}, nil
}

// SetOpen marca el material de la clínica como abierto o cerrado. Repetir el mismo estado no cambia OpenedAt.
func (uc *StockUseCase) SetOpen(ctx context.Context, clinicID, materialID string, open bool) (*dto.ClinicStockResponse, error) {
	var out dto.ClinicStockResponse
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		stockRepo repository.ClinicStockRepository,
		_ repository.StockMovementRepository,
	) error {
		m, err := materialRepo.GetByID(ctx, materialID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		s, err := stockRepo.GetForUpdate(ctx, clinicID, materialID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrClinicStockMissing
		}
		if s.SetOpen(open, uc.now()) {
			if err := stockRepo.Upsert(ctx, s); err != nil {
				return err
			}
		}
		out = ToClinicStockResponse(s, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AddWarehouseStock entrada de compra a la bodega general: suma cantidad, reemplaza el costo unitario
// y actualiza los campos "última entrada".
func (uc *StockUseCase) AddWarehouseStock(ctx context.Context, actorID, materialID string, in dto.MaterialAdjustQuantityRequest) (*dto.MaterialResponse, error) {
	if err := inventory.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	if in.Cost.IsNegative() || in.Total.IsNegative() {
		return nil, fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrInvalidInput)
	}
	var out dto.MaterialResponse
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.ClinicStockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		now := uc.now()
		m, err := materialRepo.GetForUpdate(ctx, materialID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		m.Quantity += in.Quantity
		m.Cost = in.Cost
		m.LastAddedQuantity = in.Quantity
		m.LastAddedTotal = in.Total
		m.LastAddedAt = now
		m.UpdatedAt = now
		if err := materialRepo.Update(ctx, m); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, warehouseMovement(m.ID, in.Quantity, entity.MovementInbound, actorID, NoteWarehouseAdd, now)); err != nil {
			return err
		}
		out = ToMaterialResponse(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearMovements limpia el registro de movimientos de la clínica. No modifica cantidades.
func (uc *StockUseCase) ClearMovements(ctx context.Context, clinicID string) (int64, error) {
	if _, err := uc.requireClinic(ctx, clinicID); err != nil {
		return 0, err
	}
	return uc.movRepo.DeleteByClinic(ctx, clinicID)
}

// GetMovement devuelve un movimiento por ID.
func (uc *StockUseCase) GetMovement(ctx context.Context, id string) (*dto.StockMovementResponse, error) {
	v, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	out := ToMovementResponse(*v)
	return &out, nil
}

// ListMovements lista paginada del registro de una clínica, más recientes primero.
func (uc *StockUseCase) ListMovements(ctx context.Context, clinicID string, page dto.PageRequest) (*dto.StockMovementListResponse, error) {
	page.DefaultPage()
	if _, err := uc.requireClinic(ctx, clinicID); err != nil {
		return nil, err
	}
	views, err := uc.movRepo.ListByClinic(ctx, clinicID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.StockMovementListResponse{
		Items: ToMovementResponses(views),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *StockUseCase) requireClinic(ctx context.Context, clinicID string) (*entity.Clinic, error) {
	if strings.TrimSpace(clinicID) == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func warehouseMovement(materialID string, qty int, kind entity.MovementKind, actorID, note string, now time.Time) *entity.StockMovement {
	return &entity.StockMovement{
		ID:          uuid.New().String(),
		MaterialID:  materialID,
		Quantity:    qty,
		Kind:        kind,
		PerformedBy: actorID,
		Note:        note,
		CreatedAt:   now,
	}
}

func defaultNote(note, fallback string) string {
	if strings.TrimSpace(note) == "" {
		return fallback
	}
	return note
}
