// Package xlsx exporta las transacciones de caja a hojas de cálculo con excelize.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/dental-inventory-api/internal/application/finance"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
)

// Nombres de las hojas del libro exportado.
const (
	SheetTransactions = "Transacciones"
	SheetSummary      = "Resumen"
)

const moneyFormat = `"$"#,##0.00`

var transactionHeaders = []any{"Fecha", "Clínica", "Tipo", "Descripción", "Monto", "Registrado por", "Creado"}

var _ finance.TransactionExporter = (*TransactionExporter)(nil)

// TransactionExporter implementa finance.TransactionExporter.
type TransactionExporter struct{}

// NewTransactionExporter construye el exportador.
func NewTransactionExporter() *TransactionExporter { return &TransactionExporter{} }

// ExportTransactions arma el libro con una hoja de detalle y una de resumen por clínica.
func (e *TransactionExporter) ExportTransactions(_ context.Context, export finance.TransactionExport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetTransactions); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}
	if err := writeTransactions(f, styles, export); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja resumen: %w", err)
	}
	if err := writeSummary(f, styles, export); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	header int
	money  int
	bold   int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	}); err != nil {
		return s, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}
	fmtCode := moneyFormat
	if s.money, err = f.NewStyle(&excelize.Style{CustomNumFmt: &fmtCode}); err != nil {
		return s, fmt.Errorf("xlsx: estilo moneda: %w", err)
	}
	if s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &fmtCode}); err != nil {
		return s, fmt.Errorf("xlsx: estilo total: %w", err)
	}
	return s, nil
}

func writeTransactions(f *excelize.File, st sheetStyles, export finance.TransactionExport) error {
	sh := SheetTransactions
	if err := f.SetSheetRow(sh, "A1", &transactionHeaders); err != nil {
		return fmt.Errorf("xlsx: encabezado: %w", err)
	}
	if err := f.SetCellStyle(sh, "A1", "G1", st.header); err != nil {
		return err
	}
	for i, t := range export.Transactions {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		typ := "Ingreso"
		if t.TransactionType == string(entity.TransactionExpense) {
			typ = "Egreso"
		}
		values := []any{
			t.TransactionDate.Format("2006-01-02"),
			t.ClinicName,
			typ,
			t.Description,
			t.Amount.InexactFloat64(),
			t.CreatedByUserName,
			t.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(sh, cell, &values); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if n := len(export.Transactions); n > 0 {
		last, _ := excelize.CoordinatesToCellName(5, n+1)
		if err := f.SetCellStyle(sh, "E2", last, st.money); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(sh, "A", "A", 12)
	_ = f.SetColWidth(sh, "B", "B", 24)
	_ = f.SetColWidth(sh, "D", "D", 40)
	_ = f.SetColWidth(sh, "E", "E", 16)
	_ = f.SetColWidth(sh, "F", "G", 18)
	return f.SetPanes(sh, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeSummary(f *excelize.File, st sheetStyles, export finance.TransactionExport) error {
	sh := SheetSummary
	scope := export.ClinicName
	if scope == "" {
		scope = "Todas las clínicas"
	}
	sum := export.Summary
	rows := [][]any{
		{"Alcance", scope},
		{"Desde", export.StartDate.Format("2006-01-02")},
		{"Hasta", export.EndDate.Format("2006-01-02")},
		{"Total ingresos", sum.TotalIncome.InexactFloat64()},
		{"Total egresos", sum.TotalExpense.InexactFloat64()},
		{"Balance neto", sum.NetBalance.InexactFloat64()},
		{},
		{"Clínica", "Ingresos", "Egresos", "Balance"},
	}
	for _, p := range sum.ClinicPerformance {
		rows = append(rows, []any{p.ClinicName, p.Income.InexactFloat64(), p.Expense.InexactFloat64(), p.Balance.InexactFloat64()})
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sh, cell, &r); err != nil {
			return fmt.Errorf("xlsx: resumen fila %d: %w", i+1, err)
		}
	}
	if err := f.SetCellStyle(sh, "B4", "B6", st.bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, "A8", "D8", st.header); err != nil {
		return err
	}
	if n := len(sum.ClinicPerformance); n > 0 {
		last, _ := excelize.CoordinatesToCellName(4, 8+n)
		if err := f.SetCellStyle(sh, "B9", last, st.money); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(sh, "A", "A", 24)
	return f.SetColWidth(sh, "B", "D", 16)
}
