// Package valuation computes straight-line depreciation for assets.
//
// Elapsed time is measured in whole calendar days and converted to whole
// years using 365.25 days per year, floored. Partial years contribute
// nothing. Depreciation is linear on the initial cost, never compounding.
package valuation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vbonduro/assetreg/internal/domain"
)

// Days per year scaled by 100 (365.25 * 100), so years can be derived in integer
// arithmetic.
const centiDaysPerYear = 36525

const secondsPerDay = 24 * 60 * 60

var hundred = decimal.NewFromInt(100)

type Result struct {
	ElapsedYears      int
	TotalDepreciation decimal.Decimal
	CurrentValue      decimal.Decimal
}

// Compute returns the depreciated value of an asset as of asOf. A zero or
// negative cost or rate means there is nothing to depreciate: the result
// carries the (non-negative) cost as current value and zero elapsed years.
// CurrentValue is never negative.
func Compute(initialCost, annualRate decimal.Decimal, acquired, asOf time.Time) Result {
	if !initialCost.IsPositive() || !annualRate.IsPositive() {
		return Result{
			TotalDepreciation: decimal.Zero,
			CurrentValue:      decimal.Max(initialCost, decimal.Zero),
		}
	}

	years := ElapsedYears(acquired, asOf)
	total := initialCost.Mul(annualRate).Div(hundred).Mul(decimal.NewFromInt(int64(years)))
	return Result{
		ElapsedYears:      years,
		TotalDepreciation: total,
		CurrentValue:      decimal.Max(initialCost.Sub(total), decimal.Zero),
	}
}

// ForAsset applies Compute to a stored asset. A missing rate is zero.
func ForAsset(a *domain.Asset, asOf time.Time) Result {
	rate := decimal.Zero
	if a.DepreciationRate.Valid {
		rate = a.DepreciationRate.Decimal
	}
	return Compute(a.InitialCost, rate, a.AcquisitionDate, asOf)
}

// ElapsedYears returns the whole years between two calendar dates, clamped
// to zero when asOf precedes acquired.
func ElapsedYears(acquired, asOf time.Time) int {
	days := (domain.Civil(asOf).Unix() - domain.Civil(acquired).Unix()) / secondsPerDay
	if days <= 0 {
		return 0
	}
	return int(days * 100 / centiDaysPerYear)
}
