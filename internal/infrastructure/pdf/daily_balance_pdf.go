// Package pdf genera el reporte PDF del balance diario de caja de una clínica.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Clínica                    │  BALANCE DIARIO + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Hora | Tipo | Descripción | Registrado por | Monto  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ingresos / Egresos / BALANCE                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de generación                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/application/finance"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorIncome  = &props.Color{Red: 22, Green: 128, Blue: 60}
	colorExpense = &props.Color{Red: 180, Green: 35, Blue: 35}
)

var _ finance.DailyBalancePDFGenerator = (*DailyBalanceGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// DailyBalanceGenerator implementa finance.DailyBalancePDFGenerator usando Maroto v2.
type DailyBalanceGenerator struct {
	now func() time.Time
}

// NewDailyBalanceGenerator construye el generador.
func NewDailyBalanceGenerator() *DailyBalanceGenerator {
	return &DailyBalanceGenerator{now: time.Now}
}

// GenerateDailyBalancePDF genera el PDF y devuelve sus bytes.
func (g *DailyBalanceGenerator) GenerateDailyBalancePDF(_ context.Context, report finance.DailyBalanceReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Balance diario - "+report.ClinicName, true).
		WithAuthor(report.ClinicName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(report.Balance.Transactions) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin transacciones registradas en la fecha.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, r := range tableDetailRows(report.Balance.Transactions) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report.Balance))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Generado el "+g.now().Format("02/01/2006 15:04"), props.Text{
			Size: 7, Color: colorGray, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report finance.DailyBalanceReport) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(report.ClinicName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Caja de la clínica", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("BALANCE DIARIO", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+report.Balance.Date.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Hora", 1, align.Center),
		h("Tipo", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Registrado por", 2, align.Left),
		h("Monto", 3, align.Right),
	)
}

func tableDetailRows(txs []dto.FinancialTransactionResponse) []core.Row {
	result := make([]core.Row, 0, len(txs))
	for _, t := range txs {
		label, color := "Ingreso", colorIncome
		if t.TransactionType == string(entity.TransactionExpense) {
			label, color = "Egreso", colorExpense
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(t.CreatedAt.Format("15:04"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(label, props.Text{Size: 8, Top: 1, Left: 1, Color: color})),
			col.New(4).Add(text.New(nonEmpty(t.Description, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(t.CreatedByUserName, "-"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(3).Add(text.New(formatMoney(t.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(b dto.DailyBalanceResponse) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Color: c})
	}
	balanceColor := colorIncome
	if b.Balance.IsNegative() {
		balanceColor = colorExpense
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total ingresos:"),
			label("Total egresos:"),
			text.New("BALANCE:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
			}),
		),
		col.New(3).Add(
			value(formatMoney(b.TotalIncome), colorIncome),
			value(formatMoney(b.TotalExpenses), colorExpense),
			text.New(formatMoney(b.Balance), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: balanceColor, Right: 1,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formato local con puntos de miles y coma decimal.
// Ej: 1234567.5 → "$1.234.567,50", -25000 → "-$25.000,00"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "," + frac
}
