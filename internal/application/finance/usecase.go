// Package finance contiene los casos de uso del libro de ingresos/egresos por clínica
// y sus reportes (balance diario, dashboard, PDF y XLSX).
package finance

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	domainfin "github.com/jhoicas/dental-inventory-api/internal/domain/finance"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
)

// TransactionUseCase registra y consulta transacciones financieras.
type TransactionUseCase struct {
	repo       repository.FinancialTransactionRepository
	clinicRepo repository.ClinicRepository
	pdf        DailyBalancePDFGenerator
	exporter   TransactionExporter
	now        func() time.Time
}

// NewTransactionUseCase construye el caso de uso. pdf y exporter pueden ser nil si no se exponen esos reportes.
func NewTransactionUseCase(
	repo repository.FinancialTransactionRepository,
	clinicRepo repository.ClinicRepository,
	pdf DailyBalancePDFGenerator,
	exporter TransactionExporter,
) *TransactionUseCase {
	return &TransactionUseCase{
		repo:       repo,
		clinicRepo: clinicRepo,
		pdf:        pdf,
		exporter:   exporter,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *TransactionUseCase) WithClock(now func() time.Time) *TransactionUseCase {
	uc.now = now
	return uc
}

// ParseDate acepta "2006-01-02" o RFC3339 y devuelve solo la fecha (UTC).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha inválida %q", domain.ErrInvalidInput, s)
	}
	return entity.DateOnly(t), nil
}

// Create registra una transacción. La clínica debe existir y el monto no puede ser negativo.
func (uc *TransactionUseCase) Create(ctx context.Context, actorID string, in dto.FinancialTransactionCreateRequest) (*dto.FinancialTransactionResponse, error) {
	txType, ok := entity.ParseTransactionType(in.TransactionType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidType, in.TransactionType)
	}
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: el monto no puede ser negativo", domain.ErrInvalidInput)
	}
	date, err := ParseDate(in.TransactionDate)
	if err != nil {
		return nil, err
	}
	if _, err := uc.requireClinic(ctx, in.ClinicID); err != nil {
		return nil, err
	}
	t := &entity.FinancialTransaction{
		ID:              uuid.New().String(),
		ClinicID:        in.ClinicID,
		Type:            txType,
		Amount:          in.Amount,
		Description:     strings.TrimSpace(in.Description),
		TransactionDate: date,
		CreatedBy:       actorID,
		CreatedAt:       uc.now(),
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return uc.Get(ctx, t.ID)
}

// Get obtiene una transacción por ID.
func (uc *TransactionUseCase) Get(ctx context.Context, id string) (*dto.FinancialTransactionResponse, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	out := toTransactionResponse(*v)
	return &out, nil
}

// List transacciones filtradas por clínica y/o fecha, más recientes primero.
func (uc *TransactionUseCase) List(ctx context.Context, clinicID string, date *time.Time) ([]dto.FinancialTransactionResponse, error) {
	filter := repository.TransactionFilter{}
	if clinicID != "" {
		filter.ClinicID = &clinicID
	}
	if date != nil {
		d := entity.DateOnly(*date)
		filter.From, filter.To = &d, &d
	}
	views, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(views), nil
}

// Delete elimina la transacción si el actor es su creador o Master.
func (uc *TransactionUseCase) Delete(ctx context.Context, actorID, actorRole, id string) error {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	if !v.CanBeDeletedBy(actorID, actorRole) {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

// DailyBalance totales de una clínica en un día, con sus transacciones en orden de creación.
func (uc *TransactionUseCase) DailyBalance(ctx context.Context, clinicID string, date time.Time) (*dto.DailyBalanceResponse, error) {
	if strings.TrimSpace(clinicID) == "" {
		return nil, fmt.Errorf("%w: clinic_id es obligatorio", domain.ErrInvalidInput)
	}
	d := entity.DateOnly(date)
	views, err := uc.repo.List(ctx, repository.TransactionFilter{ClinicID: &clinicID, From: &d, To: &d})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].CreatedAt.Before(views[j].CreatedAt) })
	totals := domainfin.Sum(toLines(views))
	return &dto.DailyBalanceResponse{
		Date:          d,
		TotalIncome:   totals.Income,
		TotalExpenses: totals.Expense,
		Balance:       totals.Balance,
		Transactions:  toTransactionResponses(views),
	}, nil
}

// DailyBalancePDF genera el PDF del balance diario. Devuelve bytes y nombre de archivo sugerido.
func (uc *TransactionUseCase) DailyBalancePDF(ctx context.Context, clinicID string, date time.Time) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("finance: generador PDF no configurado")
	}
	clinic, err := uc.requireClinic(ctx, clinicID)
	if err != nil {
		return nil, "", err
	}
	balance, err := uc.DailyBalance(ctx, clinicID, date)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.pdf.GenerateDailyBalancePDF(ctx, DailyBalanceReport{ClinicName: clinic.Name, Balance: *balance})
	if err != nil {
		return nil, "", fmt.Errorf("finance: pdf balance diario: %w", err)
	}
	return doc, fmt.Sprintf("balance-%s.pdf", balance.Date.Format(time.DateOnly)), nil
}

// DashboardRange rango por defecto: del día 1 del mes en curso a hoy (fechas inclusivas).
func DashboardRange(start, end *time.Time, now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if start != nil {
		from = entity.DateOnly(*start)
	}
	to := entity.DateOnly(now)
	if end != nil {
		to = entity.DateOnly(*end)
	}
	return from, to
}

// Dashboard totales del rango, historial diario (ascendente) y desempeño por clínica (balance descendente).
func (uc *TransactionUseCase) Dashboard(ctx context.Context, start, end *time.Time, clinicID string) (*dto.FinancialDashboardSummary, error) {
	from, to := DashboardRange(start, end, uc.now())
	views, err := uc.listRange(ctx, from, to, clinicID)
	if err != nil {
		return nil, err
	}
	return summarize(from, to, views), nil
}

// Export genera el XLSX de las transacciones del rango.
func (uc *TransactionUseCase) Export(ctx context.Context, start, end *time.Time, clinicID string) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("finance: exportador no configurado")
	}
	from, to := DashboardRange(start, end, uc.now())
	clinicName := ""
	if clinicID != "" && clinicID != dto.AllClinicsID {
		clinic, err := uc.requireClinic(ctx, clinicID)
		if err != nil {
			return nil, "", err
		}
		clinicName = clinic.Name
	}
	views, err := uc.listRange(ctx, from, to, clinicID)
	if err != nil {
		return nil, "", err
	}
	// Orden cronológico para la hoja
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].TransactionDate.Equal(views[j].TransactionDate) {
			return views[i].CreatedAt.Before(views[j].CreatedAt)
		}
		return views[i].TransactionDate.Before(views[j].TransactionDate)
	})
	doc, err := uc.exporter.ExportTransactions(ctx, TransactionExport{
		ClinicName:   clinicName,
		StartDate:    from,
		EndDate:      to,
		Transactions: toTransactionResponses(views),
		Summary:      *summarize(from, to, views),
	})
	if err != nil {
		return nil, "", fmt.Errorf("finance: exportar xlsx: %w", err)
	}
	name := fmt.Sprintf("transacciones-%s-%s.xlsx", from.Format(time.DateOnly), to.Format(time.DateOnly))
	return doc, name, nil
}

func (uc *TransactionUseCase) listRange(ctx context.Context, from, to time.Time, clinicID string) ([]repository.FinancialTransactionView, error) {
	filter := repository.TransactionFilter{From: &from, To: &to}
	if clinicID != "" && clinicID != dto.AllClinicsID {
		filter.ClinicID = &clinicID
	}
	return uc.repo.List(ctx, filter)
}

func (uc *TransactionUseCase) requireClinic(ctx context.Context, clinicID string) (*entity.Clinic, error) {
	if strings.TrimSpace(clinicID) == "" {
		return nil, fmt.Errorf("%w: clinic_id es obligatorio", domain.ErrInvalidInput)
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

func summarize(from, to time.Time, views []repository.FinancialTransactionView) *dto.FinancialDashboardSummary {
	lines := toLines(views)
	totals := domainfin.Sum(lines)
	out := &dto.FinancialDashboardSummary{
		StartDate:         from,
		EndDate:           to,
		TotalIncome:       totals.Income,
		TotalExpense:      totals.Expense,
		NetBalance:        totals.Balance,
		DailyHistory:      []dto.DailyFinancialStats{},
		ClinicPerformance: []dto.ClinicFinancialPerformance{},
	}
	for _, d := range domainfin.ByDay(lines) {
		out.DailyHistory = append(out.DailyHistory, dto.DailyFinancialStats{
			Date: d.Date, Income: d.Income, Expense: d.Expense, Balance: d.Balance,
		})
	}
	for _, c := range domainfin.ByClinic(lines) {
		out.ClinicPerformance = append(out.ClinicPerformance, dto.ClinicFinancialPerformance{
			ClinicID: c.ClinicID, ClinicName: c.ClinicName,
			Income: c.Income, Expense: c.Expense, Balance: c.Balance,
		})
	}
	return out
}

func toLines(views []repository.FinancialTransactionView) []domainfin.Line {
	lines := make([]domainfin.Line, 0, len(views))
	for _, v := range views {
		lines = append(lines, domainfin.Line{
			ClinicID:   v.ClinicID,
			ClinicName: v.ClinicName,
			Type:       v.Type,
			Amount:     v.Amount,
			Date:       v.TransactionDate,
		})
	}
	return lines
}

func toTransactionResponse(v repository.FinancialTransactionView) dto.FinancialTransactionResponse {
	return dto.FinancialTransactionResponse{
		ID:                v.ID,
		ClinicID:          v.ClinicID,
		ClinicName:        v.ClinicName,
		TransactionType:   string(v.Type),
		Amount:            v.Amount,
		Description:       v.Description,
		TransactionDate:   v.TransactionDate,
		CreatedByUserID:   v.CreatedBy,
		CreatedByUserName: v.CreatedByName,
		CreatedAt:         v.CreatedAt,
	}
}

func toTransactionResponses(views []repository.FinancialTransactionView) []dto.FinancialTransactionResponse {
	out := make([]dto.FinancialTransactionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toTransactionResponse(v))
	}
	return out
}
