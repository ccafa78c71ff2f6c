// Package export renders assets into shareable documents: an Excel
// workbook of the registry, QR tags and printable labels.
package export

import (
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/vbonduro/assetreg/internal/domain"
	"github.com/vbonduro/assetreg/internal/valuation"
)

// SheetName is the worksheet holding the asset rows.
const SheetName = "Activos"

const minColumnWidth = 18

var ErrNothingToExport = errors.New("no assets to export")

var workbookHeaders = []string{
	"ID",
	"Nombre",
	"Categoría",
	"Estado",
	"Ubicación",
	"Fecha Adquisición",
	"Fecha Registro",
	"Costo Inicial (USD)",
	"Depreciación Anual (%)",
	"Valor Actual (USD)",
}

// WriteWorkbook writes an xlsx workbook with one row per asset to w. The
// current value column is computed as of asOf.
func WriteWorkbook(w io.Writer, assets []*domain.Asset, asOf time.Time) (err error) {
	if len(assets) == 0 {
		return ErrNothingToExport
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(workbookHeaders))
	for i, h := range workbookHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, a := range assets {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := workbookRow(a, asOf)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write asset %d: %w", a.ID, err)
		}
	}

	for i, h := range workbookHeaders {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := float64(max(utf8.RuneCountInString(h), minColumnWidth))
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func workbookRow(a *domain.Asset, asOf time.Time) []any {
	var rate any = ""
	if a.DepreciationRate.Valid {
		rate = a.DepreciationRate.Decimal.InexactFloat64()
	}
	return []any{
		a.ID,
		a.Name,
		a.Category,
		a.Status,
		a.Location,
		a.AcquisitionDate.Format(domain.DateLayout),
		a.RegisteredAt.UTC().Format(time.DateTime),
		a.InitialCost.InexactFloat64(),
		rate,
		valuation.ForAsset(a, asOf).CurrentValue.InexactFloat64(),
	}
}
