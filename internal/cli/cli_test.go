package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creativetech.dev/internal/models"
	fixtures "creativetech.dev/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	path := fixtures.WriteCatalog(t, fixtures.CatalogYAML)

	out, err := run(t, "list", "--catalog-path", path, "--category", "ai-gems", "-s", "umap")

	require.NoError(t, err)
	assert.Contains(t, out, "latent-space-explorer")
	assert.NotContains(t, out, "neural-dreamscapes")
	assert.Contains(t, out, "AI Gems")
}

func TestListCommandEmpty(t *testing.T) {
	path := fixtures.WriteCatalog(t, fixtures.CatalogYAML)

	out, err := run(t, "list", "--catalog-path", path, "--category", "ai-gems", "--type", "audio")

	require.NoError(t, err)
	assert.Contains(t, out, "No projects found matching your criteria.")
}

func TestListCommandBadType(t *testing.T) {
	path := fixtures.WriteCatalog(t, fixtures.CatalogYAML)

	_, err := run(t, "list", "--catalog-path", path, "--type", "games")

	assert.Error(t, err)
}

func TestListCommandUnknownCategory(t *testing.T) {
	path := fixtures.WriteCatalog(t, fixtures.CatalogYAML)

	_, err := run(t, "list", "--catalog-path", path, "--category", "retro-games")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown category "retro-games"`)
	assert.Contains(t, err.Error(), "ai-gems")
}

func TestValidateCommand(t *testing.T) {
	path := fixtures.WriteCatalog(t, fixtures.CatalogYAML)

	out, err := run(t, "validate", "--catalog-path", path)

	require.NoError(t, err)
	assert.Contains(t, out, "5 categories, 6 projects")
}

func TestValidateCommandRejectsMismatch(t *testing.T) {
	path := fixtures.WriteCatalog(t, `
categories:
  - id: ai-gems
    title: AI Gems
projects:
  ai-gems:
    - id: stray
      title: Stray
      category: audio-max-msp
`)

	_, err := run(t, "validate", "--catalog-path", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `project "stray" has category "audio-max-msp" but is grouped under "ai-gems"`)
}

func TestExportCommand(t *testing.T) {
	path := fixtures.WriteCatalog(t, fixtures.CatalogYAML)
	outDir := filepath.Join(t.TempDir(), "api")

	out, err := run(t, "export", outDir, "--catalog-path", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Created projects.json (6 projects)")
	assert.Contains(t, out, "Done!")

	data, err := os.ReadFile(filepath.Join(outDir, "categories", "ai-gems.json"))
	require.NoError(t, err)
	var list models.ProjectList
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list.Projects, 2)
	assert.Equal(t, "neural-dreamscapes", list.Projects[0].ID)

	_, err = os.Stat(filepath.Join(outDir, "categories.json"))
	assert.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "portfolio "+Version)
}
