package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func tree(t *testing.T, src string) any {
	t.Helper()

	var out any
	require.NoError(t, yaml.Unmarshal([]byte(src), &out))

	return out
}

func collect(node any) []Ref {
	var refs []Ref
	for ref := range Walk(node) {
		refs = append(refs, ref)
	}

	return refs
}

func TestWalkDocumentOrderAndBreadcrumbs(t *testing.T) {
	root := tree(t, `
title: Root
children:
  - path: classes/Foo.yaml
  - path: classes/Bar.yaml
    title: Bar
`)

	refs := collect(root)
	require.Len(t, refs, 2)

	assert.Equal(t, "classes/Foo.yaml", refs[0].Path)
	assert.Equal(t, []Crumb{{Title: "Root"}}, refs[0].Breadcrumbs)

	assert.Equal(t, "classes/Bar.yaml", refs[1].Path)
	assert.Equal(t, []Crumb{{Title: "Root"}, {Title: "Bar"}}, refs[1].Breadcrumbs)
}

func TestWalkPreOrderParentBeforeChildren(t *testing.T) {
	root := tree(t, `
title: Section
path: classes/Parent.yaml
children:
  - path: classes/Child.yaml
`)

	refs := collect(root)
	require.Len(t, refs, 2)
	assert.Equal(t, "classes/Parent.yaml", refs[0].Path)
	assert.Equal(t, "classes/Child.yaml", refs[1].Path)
}

func TestWalkSiblingsDoNotShareCrumbs(t *testing.T) {
	root := tree(t, `
title: Root
children:
  - title: Left
    children:
      - path: classes/L.yaml
  - title: Right
    children:
      - path: classes/R.yaml
`)

	refs := collect(root)
	require.Len(t, refs, 2)
	assert.Equal(t, []Crumb{{Title: "Root"}, {Title: "Left"}}, refs[0].Breadcrumbs)
	assert.Equal(t, []Crumb{{Title: "Root"}, {Title: "Right"}}, refs[1].Breadcrumbs)
}

func TestWalkCrumbFieldFallbacks(t *testing.T) {
	root := tree(t, `
label: Labeled
key: section-key
type: category
children:
  - path: classes/X.yaml
`)

	refs := collect(root)
	require.Len(t, refs, 1)
	assert.Equal(t, []Crumb{{ID: "section-key", Title: "Labeled", Type: "category"}}, refs[0].Breadcrumbs)
}

func TestWalkNormalizesPaths(t *testing.T) {
	root := tree(t, `
items:
  - path: ./classes/Foo.yaml
`)

	refs := collect(root)
	require.Len(t, refs, 1)
	assert.Equal(t, "classes/Foo.yaml", refs[0].Path)
}

func TestWalkRestartable(t *testing.T) {
	root := tree(t, `
children:
  - path: a.yaml
  - path: b.yaml
`)

	seq := Walk(root)

	first := make([]string, 0, 2)
	for ref := range seq {
		first = append(first, ref.Path)
	}

	second := make([]string, 0, 2)
	for ref := range seq {
		second = append(second, ref.Path)
	}

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, first)
}

func TestWalkEarlyStop(t *testing.T) {
	root := tree(t, `
children:
  - path: a.yaml
  - path: b.yaml
  - path: c.yaml
`)

	var got []string

	for ref := range Walk(root) {
		got = append(got, ref.Path)
		if len(got) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"a.yaml", "b.yaml"}, got)
}

func TestWalkYieldedNodeIsACopy(t *testing.T) {
	original := map[string]any{"path": "a.yaml", "title": "A"}

	refs := collect(original)
	require.Len(t, refs, 1)

	refs[0].Node["title"] = "mutated"
	assert.Equal(t, "A", original["title"])
}
