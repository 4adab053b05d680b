package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"docindex/internal/config"
	"docindex/internal/diagnostic"
	"docindex/internal/docpath"
	"docindex/internal/emit"
	"docindex/internal/nav"
	"docindex/internal/resolve"
	"docindex/internal/store"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Result summarizes one run.
type Result struct {
	// RecordsWritten is the number of per-record JSON documents written.
	RecordsWritten int
	// NavMissing counts navigation references with no matching record.
	NavMissing int
	// GeneralEntries and PropertyEntries count emitted index lines.
	GeneralEntries  int
	PropertyEntries int
	// Diags aggregates every non-fatal condition hit during the run.
	Diags diagnostic.Diagnostics
}

// Run executes a full build over an already-present corpus.
// Missing input roots are fatal; everything downstream degrades per
// record and lands in Result.Diags.
func Run(cfg *config.Config) (*Result, error) {
	docsRoot := cfg.DocsRoot()
	navPath := cfg.NavPath()

	if _, err := os.Stat(navPath); err != nil {
		return nil, fmt.Errorf("navigation root: %w", err)
	}

	res := &Result{}

	slog.Info("loading record set", "root", docsRoot)

	recordStore, err := store.Load(docsRoot, &res.Diags)
	if err != nil {
		return nil, err
	}

	slog.Info("loaded records", "count", recordStore.Len())

	navTree, err := loadNavTree(navPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.ObjectsRoot(), dirPerm); err != nil {
		return nil, fmt.Errorf("creating objects root: %w", err)
	}

	emitter, err := emit.NewEmitter(cfg.GeneralIndexPath(), cfg.PropertiesIndexPath())
	if err != nil {
		return nil, err
	}

	runErr := walkAndEmit(cfg, recordStore, navTree, emitter, res)

	if closeErr := emitter.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}

	if runErr != nil {
		return nil, runErr
	}

	res.GeneralEntries = emitter.GeneralCount
	res.PropertyEntries = emitter.PropertyCount

	slog.Info("run complete",
		"records", res.RecordsWritten,
		"index_entries", res.GeneralEntries,
		"property_entries", res.PropertyEntries,
		"nav_missing", res.NavMissing)

	return res, nil
}

func walkAndEmit(cfg *config.Config, recordStore *store.Store, navTree any, emitter *emit.Emitter, res *Result) error {
	resolver := resolve.NewResolver(recordStore.ByName, &res.Diags)

	for ref := range nav.Walk(navTree) {
		relKey, rec := recordStore.LookupNav(ref.Path, docpath.DefaultNavPrefixes)
		if rec == nil {
			res.Diags.AddWarning(diagnostic.CodeNavUnmatched,
				"no record for navigation path", "", ref.Path)
			res.NavMissing++

			continue
		}

		merged := resolver.Resolve(rec)

		doc := &emit.RecordDoc{
			ID:            cfg.IDPrefix + docpath.TrimYAMLExt(relKey),
			Name:          rec.Name,
			Kind:          rec.Kind,
			Path:          relKey,
			URL:           docpath.ToURL(cfg.BaseURL, relKey),
			Breadcrumbs:   ref.Breadcrumbs,
			ReferenceNode: ref.Node,
			Raw:           rec.Body,
			Merged:        merged,
		}

		if err := writeRecordDoc(cfg.ObjectsRoot(), relKey, doc); err != nil {
			return err
		}

		res.RecordsWritten++

		if err := emitter.WriteRecord(doc); err != nil {
			return err
		}
	}

	return nil
}

func loadNavTree(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading navigation tree %s: %w", path, err)
	}

	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parsing navigation tree %s: %w", path, err)
	}

	if tree == nil {
		return nil, errors.New("navigation tree is empty")
	}

	return tree, nil
}

// writeRecordDoc writes one per-record JSON document, mirroring the
// record's source layout under the objects root.
func writeRecordDoc(root, relKey string, doc *emit.RecordDoc) error {
	rel := docpath.TrimYAMLExt(relKey) + ".json"
	target := filepath.Join(root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding record document %s: %w", doc.ID, err)
	}

	return os.WriteFile(target, append(data, '\n'), filePerm)
}

// Clean removes the extracted corpus and the intermediate per-record
// object tree, leaving only the index streams.
func Clean(cfg *config.Config) error {
	for _, dir := range []string{cfg.LocalRepoDir, cfg.ObjectsRoot()} {
		slog.Info("removing", "dir", dir)

		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}

	return nil
}

// DatasetExists reports whether a previous run's outputs are present.
func DatasetExists(cfg *config.Config) bool {
	for _, p := range []string{cfg.GeneralIndexPath(), cfg.PropertiesIndexPath()} {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}

	return false
}
