// Package analytics contiene los casos de uso de reportes del inventario:
// gasto en materiales por clínica y detalle operativo de una clínica.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	domaininv "github.com/jhoicas/dental-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
)

const (
	allClinicsName       = "Todas las clínicas"
	dashboardRecentMoves = 20
	endOfDay             = 24*time.Hour - time.Nanosecond
)

// DashboardUseCase genera los reportes del dashboard (solo Master).
//
// Fuente de datos: movimientos valorizados al costo vigente del material.
// Todo el cálculo es de lectura; se recalcula en cada consulta.
type DashboardUseCase struct {
	clinicRepo repository.ClinicRepository
	stockRepo  repository.ClinicStockRepository
	movRepo    repository.StockMovementRepository
	now        func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	clinicRepo repository.ClinicRepository,
	stockRepo repository.ClinicStockRepository,
	movRepo repository.StockMovementRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		clinicRepo: clinicRepo,
		stockRepo:  stockRepo,
		movRepo:    movRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// SpendingRange rango por defecto: desde el día 1 del mes en curso hasta ahora.
// Si se indica end se incluye el día completo.
func SpendingRange(start, end *time.Time, now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if start != nil {
		from = *start
	}
	to := now
	if end != nil {
		to = entity.DateOnly(*end).Add(endOfDay)
	}
	return from, to
}

// FinancialSummary gasto en materiales: un grupo "todas las clínicas" (solo entradas) y uno por clínica
// (entradas directas y traslados recibidos). clinicID limita los movimientos a esa clínica.
func (uc *DashboardUseCase) FinancialSummary(
	ctx context.Context,
	start, end *time.Time,
	clinicID string,
) (*dto.DashboardFinancialSummary, error) {
	from, to := SpendingRange(start, end, uc.now())
	filter := repository.MovementFilter{
		From:  from,
		To:    to,
		Kinds: []entity.MovementKind{entity.MovementInbound, entity.MovementTransfer},
	}
	if clinicID != "" && clinicID != dto.AllClinicsID {
		filter.ClinicID = &clinicID
	}

	// ── Consultas en paralelo ─────────────────────────────────────────────────
	type movesResult struct {
		views []repository.StockMovementView
		err   error
	}
	type clinicsResult struct {
		clinics []*entity.Clinic
		err     error
	}
	movesCh := make(chan movesResult, 1)
	clinicsCh := make(chan clinicsResult, 1)

	go func() {
		views, err := uc.movRepo.ListInRange(ctx, filter)
		movesCh <- movesResult{views, err}
	}()
	go func() {
		clinics, err := uc.clinicRepo.List(ctx)
		clinicsCh <- clinicsResult{clinics, err}
	}()

	moves := <-movesCh
	clinics := <-clinicsCh
	if moves.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos: %w", moves.err)
	}
	if clinics.err != nil {
		return nil, fmt.Errorf("dashboard: clínicas: %w", clinics.err)
	}

	lines := make([]domaininv.SpendingLine, 0, len(moves.views))
	for _, v := range moves.views {
		lines = append(lines, domaininv.SpendingLine{
			ClinicID:     v.ClinicID,
			MaterialName: v.MaterialName,
			Category:     v.MaterialCategory,
			Kind:         v.Kind,
			Quantity:     v.Quantity,
			UnitCost:     v.MaterialCost,
			CreatedAt:    v.CreatedAt,
		})
	}

	global := domaininv.GlobalSpending(lines)
	out := &dto.DashboardFinancialSummary{
		StartDate:           from,
		EndDate:             to,
		TotalSpent:          global.TotalSpent,
		TotalMaterialsAdded: global.MaterialsAdded,
		ClinicExpenses:      make([]dto.ClinicExpense, 0, len(clinics.clinics)+1),
	}
	out.ClinicExpenses = append(out.ClinicExpenses, toClinicExpense(dto.AllClinicsID, allClinicsName, global))
	for _, c := range clinics.clinics {
		out.ClinicExpenses = append(out.ClinicExpenses, toClinicExpense(c.ID, c.Name, domaininv.ClinicSpending(lines, c.ID)))
	}
	return out, nil
}

// ClinicDetails stock con cantidad > 0 y los últimos movimientos de la clínica.
func (uc *DashboardUseCase) ClinicDetails(ctx context.Context, clinicID string) (*dto.DashboardClinicDetail, error) {
	clinic, err := uc.clinicRepo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, domain.ErrNotFound
	}
	stocks, err := uc.stockRepo.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	moves, err := uc.movRepo.ListByClinic(ctx, clinicID, dashboardRecentMoves, 0)
	if err != nil {
		return nil, err
	}
	out := &dto.DashboardClinicDetail{
		ID:              clinic.ID,
		Name:            clinic.Name,
		Stocks:          []dto.ClinicStockResponse{},
		RecentMovements: inventory.ToMovementResponses(moves),
	}
	for _, s := range stocks {
		if s.QuantityAvailable > 0 {
			out.Stocks = append(out.Stocks, inventory.ToClinicStockViewResponse(s))
		}
	}
	return out, nil
}

func toClinicExpense(id, name string, g domaininv.SpendingGroup) dto.ClinicExpense {
	materials := make([]dto.MaterialExpense, 0, len(g.Materials))
	for _, m := range g.Materials {
		materials = append(materials, dto.MaterialExpense{
			MaterialName:  m.MaterialName,
			Category:      m.Category.String(),
			QuantityAdded: m.QuantityAdded,
			TotalCost:     m.TotalCost,
			LastAdded:     m.LastAdded,
		})
	}
	return dto.ClinicExpense{
		ClinicID:       id,
		ClinicName:     name,
		TotalSpent:     g.TotalSpent,
		MaterialsAdded: g.MaterialsAdded,
		Materials:      materials,
	}
}
