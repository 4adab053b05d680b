// Package document defines the value types shared across the indexing
// pipeline: the raw Record loaded from a YAML source file, the BaseList
// string-or-array form used by inheritance declarations, and the
// well-known field names that carry special merge semantics.
//
// A record body is an arbitrarily nested YAML structure
// (map[string]any / []any / scalars). The typed RecordMeta header is
// decoded from the same bytes and exists only to give the pipeline cheap
// access to the handful of fields it dispatches on (name, kind,
// inheritance declarations); the body stays generic.
package document
