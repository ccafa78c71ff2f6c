package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/vbonduro/assetreg/internal/domain"
)

func newExportCmd() *cobra.Command {
	var (
		out    string
		filter domain.AssetFilter
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the asset registry to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer func() {
				err = multierr.Append(err, f.Close())
				if err != nil {
					_ = os.Remove(out)
				}
			}()

			if err := a.services.Exports.WriteAssetWorkbook(cmd.Context(), f, filter); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "activos.xlsx", "output file")
	cmd.Flags().StringVar(&filter.Category, "category", "", "only assets in this category")
	cmd.Flags().StringVar(&filter.Status, "status", "", "only assets with this status")
	cmd.Flags().StringVar(&filter.Location, "location", "", "only assets at this location")
	return cmd
}
