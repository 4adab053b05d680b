// Package nav walks an arbitrary navigation tree (nested maps, sequences
// and scalars) and discovers every node that references a record by
// path, carrying a breadcrumb trail accumulated from root to the
// referencing node.
//
// The walk is depth-first pre-order and lazy: it is exposed as an
// iter.Seq that can be restarted and holds no shared mutable state.
// Sequence elements are visited in document order; the values of a map
// node are visited in sorted key order, since decoded maps do not retain
// their source order.
package nav
