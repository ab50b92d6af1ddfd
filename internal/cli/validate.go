package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"creativetech.dev/internal/catalog"
)

func newValidateCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog file for duplicate ids and category mismatches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			cat, err := catalog.Load(cfg.CatalogPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d categories, %d projects, %d tags\n",
				cfg.CatalogPath, len(cat.Categories()), cat.Count(), len(cat.Tags()))
			return nil
		},
	}
}
