package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"creativetech.dev/internal/catalog"
	"creativetech.dev/internal/models"
)

func newExportCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "export <output-dir>",
		Short: "Write the catalog as static JSON files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			cat, err := catalog.Load(cfg.CatalogPath)
			if err != nil {
				return err
			}
			return export(cmd, cat, args[0])
		},
	}
}

func export(cmd *cobra.Command, cat *catalog.Catalog, outputDir string) error {
	out := cmd.OutOrStdout()

	// Ensure output directory exists
	categoriesDir := filepath.Join(outputDir, "categories")
	if err := os.MkdirAll(categoriesDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeJSON(filepath.Join(outputDir, "projects.json"), models.ProjectList{Projects: cat.All()}); err != nil {
		return err
	}
	fmt.Fprintf(out, "Created projects.json (%d projects)\n", cat.Count())

	if err := writeJSON(filepath.Join(outputDir, "categories.json"), cat.Categories()); err != nil {
		return err
	}

	for _, c := range cat.Categories() {
		filename := c.ID + ".json"
		projects := cat.InCategory(c.ID)
		if projects == nil {
			projects = []models.Project{}
		}
		if err := writeJSON(filepath.Join(categoriesDir, filename), models.ProjectList{Projects: projects}); err != nil {
			return err
		}
		fmt.Fprintf(out, "  Created categories/%s (%d projects)\n", filename, len(projects))
	}

	fmt.Fprintln(out, "Done!")
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
