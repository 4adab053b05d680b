// Package resolve computes the fully inherited view of every record by
// walking declared base references and folding each resolved base into
// the leaf with the merge engine (base first, child second, so the child
// wins on conflict).
//
// Resolution is memoized per run. Cache entries pass through three
// states (unresolved, in progress, done), which makes a genuine cycle
// observable: re-entering a name that is still in progress drops that
// inheritance edge, records a diagnostic, and lets both records resolve
// best-effort. A base name with no matching record is skipped the same
// way. Results are never mutated after first computation.
package resolve
