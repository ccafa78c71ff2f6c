package export

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vbonduro/assetreg/internal/domain"
)

func sampleAssets() []*domain.Asset {
	return []*domain.Asset{
		{
			ID:               1,
			Name:             "Laptop Dell",
			Category:         "Equipos",
			Status:           domain.StatusActive,
			Location:         "Oficina",
			Quantity:         1,
			AcquisitionDate:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			RegisteredAt:     time.Date(2020, 1, 2, 9, 30, 0, 0, time.UTC),
			InitialCost:      decimal.NewFromInt(1000),
			DepreciationRate: decimal.NewNullDecimal(decimal.NewFromInt(10)),
		},
		{
			ID:              2,
			Name:            "Silla Ergonómica",
			Category:        "Muebles",
			Status:          domain.StatusRetired,
			Location:        "Bodega",
			Quantity:        4,
			AcquisitionDate: time.Date(2022, 5, 10, 0, 0, 0, 0, time.UTC),
			RegisteredAt:    time.Date(2022, 5, 10, 0, 0, 0, 0, time.UTC),
			InitialCost:     decimal.RequireFromString("150.25"),
		},
	}
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	asOf := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, WriteWorkbook(&buf, sampleAssets(), asOf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, workbookHeaders, rows[0])
	assert.Equal(t, []string{
		"1", "Laptop Dell", "Equipos", "Activo", "Oficina",
		"2020-01-01", "2020-01-02 09:30:00", "1000", "10", "700",
	}, rows[1])
	assert.Equal(t, "Silla Ergonómica", rows[2][1])
	assert.Equal(t, "150.25", rows[2][7])
	assert.Equal(t, "", rows[2][8])
	assert.Equal(t, "150.25", rows[2][9])
}

func TestWriteWorkbookColumnWidths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, sampleAssets(), time.Now()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	width, err := f.GetColWidth(SheetName, "A")
	require.NoError(t, err)
	assert.Equal(t, float64(18), width)

	// "Depreciación Anual (%)" is 22 characters long.
	width, err = f.GetColWidth(SheetName, "I")
	require.NoError(t, err)
	assert.Equal(t, float64(22), width)
}

func TestWriteWorkbookEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteWorkbook(&buf, nil, time.Now())
	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.Zero(t, buf.Len())
}

func TestQRCode(t *testing.T) {
	data, err := QRCode(42, 128)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestTagPayload(t *testing.T) {
	assert.Equal(t, "42", TagPayload(42))
	assert.Equal(t, "1717243200000", TagPayload(1717243200000))
}

func TestWriteLabel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLabel(&buf, sampleAssets()[1]))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
