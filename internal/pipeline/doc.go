// Package pipeline orchestrates one full batch run: load the record
// store, walk the navigation tree, resolve inheritance for every
// referenced record, write the per-record JSON documents and emit both
// index streams. Single pass, single writer; a mid-run failure can
// leave an incomplete output stream, which is acceptable for a
// full-rebuild batch tool.
package pipeline
