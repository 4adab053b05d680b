package pipeline

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docindex/internal/config"
	"docindex/internal/diagnostic"
	"docindex/internal/emit"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()

	return &config.Config{
		DataDir:             dir,
		LocalRepoDir:        filepath.Join(dir, "corpus"),
		DocsSubpath:         "docs",
		NavSubpath:          "nav/reference.yaml",
		ObjectsDir:          "objects",
		GeneralIndexFile:    "index.jsonl",
		PropertiesIndexFile: "properties.jsonl",
		BaseURL:             "https://example.com/docs",
		IDPrefix:            "engine/",
	}
}

func seedCorpus(t *testing.T, cfg *config.Config) {
	t.Helper()

	writeFile(t, cfg.LocalRepoDir, "docs/classes/Instance.yaml", `
name: Instance
type: class
summary: Root of the hierarchy.
properties:
  - name: Name
    description: Object name.
`)
	writeFile(t, cfg.LocalRepoDir, "docs/classes/Part.yaml", `
name: Part
type: class
inherits: Instance
properties:
  - name: Material
    description: Surface material.
`)
	writeFile(t, cfg.LocalRepoDir, "nav/reference.yaml", `
title: Reference
children:
  - title: Classes
    children:
      - path: classes/Instance.yaml
      - path: classes/Part.yaml
      - path: classes/Ghost.yaml
`)
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	seedCorpus(t, cfg)

	res, err := Run(cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, res.RecordsWritten)
	assert.Equal(t, 1, res.NavMissing)
	assert.Equal(t, 1, res.Diags.CountWarnings(diagnostic.CodeNavUnmatched))

	// Overview per record plus one entry per member: Instance has one
	// property, Part inherits it and adds one.
	assert.Equal(t, 2+1+2, res.GeneralEntries)
	assert.Equal(t, 3, res.PropertyEntries)

	// The per-record document carries the fully merged view.
	data, err := os.ReadFile(filepath.Join(cfg.ObjectsRoot(), "classes", "Part.json"))
	require.NoError(t, err)

	var doc emit.RecordDoc
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "engine/classes/Part", doc.ID)
	assert.Equal(t, "https://example.com/docs/classes/Part", doc.URL)
	assert.Equal(t, "Reference", doc.Breadcrumbs[0].Title)
	assert.Equal(t, "Classes", doc.Breadcrumbs[1].Title)
	assert.Equal(t, "Root of the hierarchy.", doc.Merged["summary"])

	props := doc.Merged["properties"].([]any)
	require.Len(t, props, 2)

	// The raw body is preserved unmerged.
	rawProps := doc.Raw["properties"].([]any)
	require.Len(t, rawProps, 1)
}

func TestRunIndexLinesAreSelfContained(t *testing.T) {
	cfg := testConfig(t)
	seedCorpus(t, cfg)

	_, err := Run(cfg)
	require.NoError(t, err)

	f, err := os.Open(cfg.GeneralIndexPath())
	require.NoError(t, err)
	defer f.Close()

	var ids []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry emit.Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		ids = append(ids, entry.ID)
	}

	require.NoError(t, scanner.Err())

	assert.Equal(t, []string{
		"engine/classes/Instance#overview",
		"engine/classes/Instance#property:Name",
		"engine/classes/Part#overview",
		"engine/classes/Part#property:Material",
		"engine/classes/Part#property:Name",
	}, ids)
}

func TestRunMissingNavRootFatal(t *testing.T) {
	cfg := testConfig(t)
	// Records exist, navigation does not.
	writeFile(t, cfg.LocalRepoDir, "docs/classes/Instance.yaml", "name: Instance\n")

	_, err := Run(cfg)
	assert.Error(t, err)
}

func TestRunMissingDocsRootFatal(t *testing.T) {
	cfg := testConfig(t)
	writeFile(t, cfg.LocalRepoDir, "nav/reference.yaml", "title: Reference\n")

	_, err := Run(cfg)
	assert.Error(t, err)
}

func TestCleanAndDatasetExists(t *testing.T) {
	cfg := testConfig(t)
	seedCorpus(t, cfg)

	assert.False(t, DatasetExists(cfg))

	_, err := Run(cfg)
	require.NoError(t, err)
	assert.True(t, DatasetExists(cfg))

	require.NoError(t, Clean(cfg))

	_, err = os.Stat(cfg.ObjectsRoot())
	assert.True(t, os.IsNotExist(err))

	// The index streams survive cleanup.
	assert.True(t, DatasetExists(cfg))
}
