// Package diagnostic provides structured, aggregated warnings and errors
// for a resolution run.
//
// Most bad input is non-fatal for this pipeline: an unresolvable base
// name is skipped, a navigation path with no matching record is counted,
// a cyclic inheritance edge is dropped. Diagnostics collect those
// conditions so a run can report them in aggregate at the end instead of
// failing midway.
package diagnostic
