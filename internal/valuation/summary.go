package valuation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vbonduro/assetreg/internal/domain"
)

// Bucket names for assets with an empty classification field.
const (
	UnknownCategory = "Otros"
	UnknownStatus   = "Desconocido"
	UnknownLocation = "Sin ubicación"
)

// Summary aggregates a set of assets. Counts are in units, so an asset with
// quantity 3 counts three times.
type Summary struct {
	TotalUnits       int
	AcquisitionValue decimal.Decimal
	CurrentValue     decimal.Decimal
	ByCategory       map[string]int
	ByStatus         map[string]int
	ByLocation       map[string]int
	TopLocation      string
}

func Summarize(assets []*domain.Asset, asOf time.Time) Summary {
	s := Summary{
		AcquisitionValue: decimal.Zero,
		CurrentValue:     decimal.Zero,
		ByCategory:       make(map[string]int),
		ByStatus:         make(map[string]int),
		ByLocation:       make(map[string]int),
	}

	for _, a := range assets {
		qty := a.Quantity
		if qty < 1 {
			qty = 1
		}
		units := decimal.NewFromInt(int64(qty))

		s.TotalUnits += qty
		s.AcquisitionValue = s.AcquisitionValue.Add(a.InitialCost.Mul(units))
		s.CurrentValue = s.CurrentValue.Add(ForAsset(a, asOf).CurrentValue.Mul(units))
		s.ByCategory[orDefault(a.Category, UnknownCategory)] += qty
		s.ByStatus[orDefault(a.Status, UnknownStatus)] += qty
		s.ByLocation[orDefault(a.Location, UnknownLocation)] += qty
	}

	best := 0
	for loc, n := range s.ByLocation {
		if n > best || (n == best && loc < s.TopLocation) {
			best, s.TopLocation = n, loc
		}
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
