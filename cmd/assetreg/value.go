package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vbonduro/assetreg/internal/domain"
	"github.com/vbonduro/assetreg/internal/valuation"
)

func newValueCmd() *cobra.Command {
	var cost, rate, acquired, asOf string
	cmd := &cobra.Command{
		Use:   "value",
		Short: "Compute the depreciated value of an asset",
		Example: "  assetreg value --cost 1000 --rate 10 --acquired 2020-01-01 --as-of 2023-01-01",
		RunE: func(cmd *cobra.Command, args []string) error {
			acquiredAt, err := domain.ParseDate(acquired)
			if err != nil {
				return fmt.Errorf("invalid --acquired: %w", err)
			}
			at := domain.Civil(time.Now())
			if asOf != "" {
				if at, err = domain.ParseDate(asOf); err != nil {
					return fmt.Errorf("invalid --as-of: %w", err)
				}
			}
			c, err := valuation.ParseAmountStrict(cost)
			if err != nil {
				return fmt.Errorf("invalid --cost: %w", err)
			}
			r := decimal.Zero
			if rate != "" {
				if r, err = valuation.ParseAmountStrict(rate); err != nil {
					return fmt.Errorf("invalid --rate: %w", err)
				}
			}

			res := valuation.Compute(c, r, acquiredAt, at)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "as of:              %s\n", at.Format(domain.DateLayout))
			fmt.Fprintf(w, "elapsed years:      %d\n", res.ElapsedYears)
			fmt.Fprintf(w, "total depreciation: %s\n", res.TotalDepreciation.StringFixed(2))
			fmt.Fprintf(w, "current value:      %s\n", res.CurrentValue.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&cost, "cost", "", "initial cost")
	cmd.Flags().StringVar(&rate, "rate", "", "annual depreciation rate in percent")
	cmd.Flags().StringVar(&acquired, "acquired", "", "acquisition date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "valuation date (YYYY-MM-DD), defaults to today")
	_ = cmd.MarkFlagRequired("cost")
	_ = cmd.MarkFlagRequired("acquired")
	return cmd
}
