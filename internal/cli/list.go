package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"creativetech.dev/internal/catalog"
	"creativetech.dev/internal/filter"
	"creativetech.dev/internal/models"
)

func newListCmd(load configLoader) *cobra.Command {
	var (
		category    string
		contentType string
		search      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the projects matching a category, content type and search",
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
			if category != models.AllCategories && !cat.HasCategory(category) {
				return fmt.Errorf("unknown category %q (have: %s)", category, strings.Join(cat.CategoryIDs(), ", "))
			}
			ct, err := models.ParseContentType(contentType)
			if err != nil {
				return err
			}

			criteria := filter.Default().
				WithCategory(category).
				WithContentType(ct).
				WithSearch(search)
			projects := filter.Apply(cat, criteria)

			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found matching your criteria.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Title", "Category", "Tags", "Embed"})
			for _, p := range projects {
				embed := ""
				if p.HasEmbed() {
					embed = string(p.EmbedType)
				}
				t.AppendRow(table.Row{p.ID, p.Title, models.BadgeLabel(p.Category), strings.Join(p.Tags, ", "), embed})
			}
			t.AppendFooter(table.Row{"", "", "", "Total", len(projects)})
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", models.AllCategories, "category id or \"all\"")
	cmd.Flags().StringVar(&contentType, "type", string(models.ContentAll), "content type (ALL|CODE|VISUALS|AUDIO)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "search text")
	return cmd
}
