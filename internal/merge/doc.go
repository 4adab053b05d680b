// Package merge implements the structural deep-merge of two record
// bodies, the primitive underneath inheritance resolution.
//
// Merge is a pure function over the generic YAML value domain
// (map[string]any, []any, scalars). Dispatch is an explicit type switch
// per value pairing:
//
//   - map + map: recursive key-wise merge, base-only keys retained.
//   - sequence + sequence under a member-group key (properties, methods,
//     events, callbacks, members, fields, items, parameters): union keyed
//     by each element's "name", so a child can narrow one field of an
//     inherited member without losing its siblings.
//   - sequence + sequence under "tags" or any other key: child replaces
//     base wholesale. Concatenation would make every subclass's lists
//     grow across multi-level hierarchies.
//   - everything else: child wins, including a scalar child demoting a
//     base map.
//
// Results are deep copies; mutating a merge result never mutates either
// input.
package merge
