// Package emit flattens resolved records into the final queryable index:
// two append-only JSONL streams, a general one (one line per record
// overview and per member) and a properties-only subset. Pure
// projection, no merge logic.
package emit
