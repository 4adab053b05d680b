// Package store loads the raw record set from disk and indexes it two
// ways: by unique record name and by normalized relative source path.
//
// Files are parsed concurrently, but records are indexed in lexicographic
// path order so that duplicate-name collisions resolve deterministically:
// the record from the lexicographically greatest path wins, independent
// of filesystem walk or goroutine scheduling order.
package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"docindex/internal/diagnostic"
	"docindex/internal/docpath"
	"docindex/internal/document"
)

// Store holds the loaded record set.
type Store struct {
	byName map[string]*document.Record
	byPath map[string]*document.Record
	paths  []string
}

// Load reads every *.yaml file under root into a Store. A missing or
// unreadable root is fatal; an individual file that fails to parse is
// skipped with a diagnostic. Diagnostics may be nil.
func Load(root string, diags *diagnostic.Diagnostics) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("record root %s: %w", root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("record root %s: not a directory", root)
	}

	var files []string

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".yaml") {
			files = append(files, p)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking record root %s: %w", root, err)
	}

	type parseResult struct {
		rec *document.Record
		err error
	}

	// Each goroutine writes only its own slot; diagnostics have a single
	// writer and are filled in after every parse has finished.
	results := make([]parseResult, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, file := range files {
		g.Go(func() error {
			rec, err := loadFile(root, file)
			results[i] = parseResult{rec: rec, err: err}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]*document.Record, 0, len(results))

	for i, res := range results {
		if res.err != nil {
			if diags != nil {
				// Parse failures degrade to "record absent".
				diags.AddWarning("unparsable-record", res.err.Error(), "", files[i])
			}

			continue
		}

		records = append(records, res.rec)
	}

	s := &Store{
		byName: make(map[string]*document.Record, len(records)),
		byPath: make(map[string]*document.Record, len(records)),
	}

	// Deterministic tie-break for duplicate names: index in sorted path
	// order, last one wins.
	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})

	for _, rec := range records {
		if prev, ok := s.byName[rec.Name]; ok && diags != nil {
			diags.AddWarning(diagnostic.CodeDuplicateName,
				fmt.Sprintf("record name %q also declared at %s", rec.Name, prev.Path),
				rec.Name, rec.Path)
		}

		s.byName[rec.Name] = rec
		s.byPath[rec.Path] = rec
		s.paths = append(s.paths, rec.Path)
	}

	return s, nil
}

func loadFile(root, file string) (*document.Record, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading record %s: %w", file, err)
	}

	rel, err := filepath.Rel(root, file)
	if err != nil {
		return nil, fmt.Errorf("relativizing %s: %w", file, err)
	}

	relKey := docpath.NormalizeRel(rel)

	var meta document.RecordMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing record %s: %w", relKey, err)
	}

	var body map[string]any
	if err := yaml.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("parsing record %s: %w", relKey, err)
	}

	if body == nil {
		body = map[string]any{}
	}

	name := meta.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}

	return &document.Record{
		Name: name,
		Kind: meta.KindOrType(),
		Path: relKey,
		Body: body,
		Meta: meta,
	}, nil
}

// ByName returns the record with the given name, or nil.
func (s *Store) ByName(name string) *document.Record {
	return s.byName[name]
}

// ByPath returns the record at the given normalized relative path, or nil.
func (s *Store) ByPath(rel string) *document.Record {
	return s.byPath[rel]
}

// LookupNav resolves a raw navigation path to a stored record, trying
// prefix-stripped candidates with and without the ".yaml" extension.
// Returns the matched path key and record, or ("", nil).
func (s *Store) LookupNav(rawNavPath string, prefixes []string) (string, *document.Record) {
	rel := docpath.StripNavPrefix(rawNavPath, prefixes)

	for _, cand := range docpath.Candidates(rel) {
		key := docpath.NormalizeRel(cand)
		if rec, ok := s.byPath[key]; ok {
			return key, rec
		}
	}

	return "", nil
}

// Len returns the number of stored records (by path).
func (s *Store) Len() int {
	return len(s.byPath)
}

// Paths returns the sorted relative paths of all stored records.
func (s *Store) Paths() []string {
	return s.paths
}
