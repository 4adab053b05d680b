package nav

import (
	"iter"
	"sort"

	"docindex/internal/docpath"
	"docindex/internal/merge"
)

// Crumb is one breadcrumb entry along a navigation path. A node
// contributes a crumb only if it carries at least one of these fields.
type Crumb struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Ref is a discovered pointer from the navigation tree to a record.
// Immutable once yielded: the breadcrumb trail and node are copies.
type Ref struct {
	// Path is the normalized reference path as spelled in the tree.
	Path string
	// Breadcrumbs is the trail accumulated from the root down to and
	// including the referencing node.
	Breadcrumbs []Crumb
	// Node is a deep copy of the referencing node.
	Node map[string]any
}

// Walk returns a lazy sequence of every record reference reachable from
// node, in depth-first pre-order: a node carrying a "path" field is
// yielded before its children are visited. Sibling branches do not see
// each other's breadcrumb contributions.
func Walk(node any) iter.Seq[Ref] {
	return func(yield func(Ref) bool) {
		walk(node, nil, yield)
	}
}

func walk(node any, crumbs []Crumb, yield func(Ref) bool) bool {
	switch n := node.(type) {
	case map[string]any:
		if crumb, ok := crumbOf(n); ok {
			// Append-only down each path: siblings share the parent
			// trail, never each other's.
			extended := make([]Crumb, len(crumbs), len(crumbs)+1)
			copy(extended, crumbs)
			crumbs = append(extended, crumb)
		}

		if p, ok := n["path"].(string); ok {
			ref := Ref{
				Path:        docpath.NormalizeRel(p),
				Breadcrumbs: crumbs,
				Node:        merge.CopyMap(n),
			}

			if !yield(ref) {
				return false
			}
		}

		for _, key := range sortedKeys(n) {
			switch n[key].(type) {
			case map[string]any, []any:
				if !walk(n[key], crumbs, yield) {
					return false
				}
			}
		}

		return true

	case []any:
		for _, item := range n {
			if !walk(item, crumbs, yield) {
				return false
			}
		}

		return true

	default:
		// Scalars terminate recursion.
		return true
	}
}

// crumbOf extracts the breadcrumb contribution of a map node, if any.
// Title falls back through title/label/name, the id through id/key.
func crumbOf(n map[string]any) (Crumb, bool) {
	var c Crumb

	for _, key := range []string{"title", "label", "name"} {
		if s, ok := n[key].(string); ok && s != "" {
			c.Title = s
			break
		}
	}

	for _, key := range []string{"id", "key"} {
		if s, ok := n[key].(string); ok && s != "" {
			c.ID = s
			break
		}
	}

	if s, ok := n["type"].(string); ok && s != "" {
		c.Type = s
	}

	return c, c != Crumb{}
}

func sortedKeys(n map[string]any) []string {
	keys := make([]string, 0, len(n))
	for key := range n {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
