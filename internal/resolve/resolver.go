package resolve

import (
	"docindex/internal/diagnostic"
	"docindex/internal/document"
	"docindex/internal/merge"
)

// MergeFunc is the merge primitive used to fold a resolved base into a
// child. Injectable so tests can instrument call counts; defaults to
// merge.Merge.
type MergeFunc func(base, child any) any

// Lookup maps a base name to its record, or nil when unknown.
type Lookup func(name string) *document.Record

type entryState int

const (
	stateInProgress entryState = iota + 1
	stateDone
)

type cacheEntry struct {
	state entryState
	view  map[string]any
}

// Resolver memoizes inheritance resolution over one record set. It is
// scoped to a single run and is not safe for concurrent use: there is
// exactly one writer of the cache.
type Resolver struct {
	lookup  Lookup
	diags   *diagnostic.Diagnostics
	mergeFn MergeFunc
	cache   map[string]*cacheEntry
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMergeFunc replaces the merge primitive.
func WithMergeFunc(fn MergeFunc) Option {
	return func(r *Resolver) {
		r.mergeFn = fn
	}
}

// NewResolver creates a Resolver over the given record lookup.
// Diagnostics may be nil when the caller does not care about skipped
// edges.
func NewResolver(lookup Lookup, diags *diagnostic.Diagnostics, opts ...Option) *Resolver {
	r := &Resolver{
		lookup:  lookup,
		diags:   diags,
		mergeFn: merge.Merge,
		cache:   make(map[string]*cacheEntry),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the fully merged view of rec: its own body plus
// everything inherited from its transitive bases, with the own-only
// overrides applied and the deduplicated ancestor chain attached under
// document.KeyAncestors. The result is cached; resolving the same name
// twice within one run returns the first computation.
func (r *Resolver) Resolve(rec *document.Record) map[string]any {
	if e, ok := r.cache[rec.Name]; ok && e.state == stateDone {
		return e.view
	}

	e := &cacheEntry{state: stateInProgress}
	r.cache[rec.Name] = e

	merged := merge.CopyMap(rec.Body)

	var ancestors []string

	for _, baseName := range rec.BaseNames() {
		baseRec := r.lookup(baseName)
		if baseRec == nil {
			// Unresolvable base names are not an error.
			if r.diags != nil {
				r.diags.AddWarning(diagnostic.CodeMissingBase,
					"base record not found: "+baseName, rec.Name, rec.Path)
			}

			continue
		}

		if be, ok := r.cache[baseRec.Name]; ok && be.state == stateInProgress {
			// A base still being resolved means the chain loops back
			// here. Drop the edge so both records terminate.
			if r.diags != nil {
				r.diags.AddWarning(diagnostic.CodeCycle,
					"inheritance cycle via base "+baseName, rec.Name, rec.Path)
			}

			continue
		}

		baseView := r.Resolve(baseRec)

		// Base first, child second: the child wins on conflict.
		merged = r.mergeFn(baseView, merged).(map[string]any)

		ancestors = append(ancestors, baseName)
		ancestors = append(ancestors, ancestorsOf(baseView)...)
	}

	merged[document.KeyAncestors] = dedupe(ancestors)

	r.applyOwnOnly(rec, merged)

	e.state = stateDone
	e.view = merged

	return merged
}

// applyOwnOnly forces the fields that must reflect only the leaf record,
// always deriving from the leaf body rather than the merge result.
func (r *Resolver) applyOwnOnly(rec *document.Record, merged map[string]any) {
	// The display name is always the leaf's, falling back to the
	// indexed name.
	if own, ok := rec.Body[document.KeyName]; ok {
		merged[document.KeyName] = merge.Copy(own)
	} else {
		merged[document.KeyName] = rec.Name
	}

	// Base-reference fields and direct descendants describe the leaf's
	// position in the hierarchy: keep the leaf's own value, or remove
	// the field entirely when only a base contributed it.
	ownOnly := append([]string{document.KeyDescendants}, document.BaseKeys...)
	for _, key := range ownOnly {
		if own, ok := rec.Body[key]; ok {
			merged[key] = merge.Copy(own)
		} else {
			delete(merged, key)
		}
	}

	// Tags are already child-wins inside the merge, but force the
	// leaf's own tags in case a base's leaked through an intermediate
	// merge step.
	if own, ok := rec.Body[document.KeyTags]; ok {
		merged[document.KeyTags] = merge.Copy(own)
	}

	// A non-empty leaf deprecation notice wins over anything inherited.
	if notice, ok := rec.Body[document.KeyDeprecation].(string); ok && notice != "" {
		merged[document.KeyDeprecation] = notice
	}
}

// ancestorsOf reads the synthesized ancestor chain off a resolved view.
func ancestorsOf(view map[string]any) []string {
	chain, _ := view[document.KeyAncestors].([]string)
	return chain
}

// dedupe removes duplicates preserving first-seen order. Always returns
// a non-nil slice so the field is present (and JSON-encodes as []) even
// for records with no bases.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}
