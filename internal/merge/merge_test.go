package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func body(t *testing.T, src string) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(src), &out))

	return out
}

func TestMergeScalarChildWins(t *testing.T) {
	base := body(t, `
summary: base summary
memory_category: Instances
`)
	child := body(t, `
summary: child summary
`)

	merged := Merge(base, child).(map[string]any)

	assert.Equal(t, "child summary", merged["summary"])
	// Base-only keys are retained.
	assert.Equal(t, "Instances", merged["memory_category"])
}

func TestMergeChildDemotesBaseMap(t *testing.T) {
	base := body(t, `
security:
  read: None
  write: None
`)
	child := body(t, `
security: PluginSecurity
`)

	merged := Merge(base, child).(map[string]any)
	assert.Equal(t, "PluginSecurity", merged["security"])
}

func TestMergeNonMapOperand(t *testing.T) {
	// Either operand not a map: child wins outright.
	assert.Equal(t, "leaf", Merge(map[string]any{"a": 1}, "leaf"))
	assert.Equal(t, map[string]any{"a": 1}, Merge("base", map[string]any{"a": 1}))
}

func TestMergeNestedMaps(t *testing.T) {
	base := body(t, `
code_samples:
  intro:
    title: Base intro
    rating: 3
`)
	child := body(t, `
code_samples:
  intro:
    title: Child intro
`)

	merged := Merge(base, child).(map[string]any)
	intro := merged["code_samples"].(map[string]any)["intro"].(map[string]any)

	assert.Equal(t, "Child intro", intro["title"])
	assert.Equal(t, 3, intro["rating"])
}

func TestMergeMemberGroupUnionByName(t *testing.T) {
	base := body(t, `
properties:
  - name: X
    description: b
    security: None
`)
	child := body(t, `
properties:
  - name: X
    description: c
  - name: Y
    description: c2
`)

	merged := Merge(base, child).(map[string]any)
	props := merged["properties"].([]any)
	require.Len(t, props, 2)

	x := props[0].(map[string]any)
	assert.Equal(t, "X", x["name"])
	assert.Equal(t, "c", x["description"])
	// Sibling fields of the overridden member survive.
	assert.Equal(t, "None", x["security"])

	y := props[1].(map[string]any)
	assert.Equal(t, "Y", y["name"])
	assert.Equal(t, "c2", y["description"])
}

func TestMergeMemberGroupSortedByName(t *testing.T) {
	base := body(t, `
methods:
  - name: Zap
  - name: Move
`)
	child := body(t, `
methods:
  - name: Activate
`)

	merged := Merge(base, child).(map[string]any)
	methods := merged["methods"].([]any)
	require.Len(t, methods, 3)

	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.(map[string]any)["name"].(string)
	}

	assert.Equal(t, []string{"Activate", "Move", "Zap"}, names)
}

func TestMergeMemberGroupUnnamedKeptPositionally(t *testing.T) {
	base := body(t, `
items:
  - plain base entry
  - name: Named
    value: 1
`)
	child := body(t, `
items:
  - plain child entry
`)

	merged := Merge(base, child).(map[string]any)
	items := merged["items"].([]any)
	require.Len(t, items, 3)

	// Unnamed entries first in base-then-child order, named after.
	assert.Equal(t, "plain base entry", items[0])
	assert.Equal(t, "plain child entry", items[1])
	assert.Equal(t, "Named", items[2].(map[string]any)["name"])
}

func TestMergeTagsNeverAccumulate(t *testing.T) {
	base := body(t, `
tags: [A]
`)
	child := body(t, `
tags: [B]
`)

	merged := Merge(base, child).(map[string]any)
	assert.Equal(t, []any{"B"}, merged["tags"])
}

func TestMergeOtherSequencesReplaceWholesale(t *testing.T) {
	base := body(t, `
code_samples: [one, two]
`)
	child := body(t, `
code_samples: [three]
`)

	merged := Merge(base, child).(map[string]any)
	assert.Equal(t, []any{"three"}, merged["code_samples"])
}

func TestMergeMismatchedSequenceAndScalar(t *testing.T) {
	base := body(t, `
tags: [A, B]
`)
	child := body(t, `
tags: deprecated
`)

	merged := Merge(base, child).(map[string]any)
	assert.Equal(t, "deprecated", merged["tags"])
}

func TestMergeDoesNotAliasInputs(t *testing.T) {
	base := body(t, `
nested:
  list: [1, 2]
`)
	child := body(t, `
other:
  value: keep
`)

	merged := Merge(base, child).(map[string]any)

	// Mutate the result; inputs must be untouched.
	merged["nested"].(map[string]any)["list"].([]any)[0] = 99
	merged["other"].(map[string]any)["value"] = "changed"

	assert.Equal(t, 1, base["nested"].(map[string]any)["list"].([]any)[0])
	assert.Equal(t, "keep", child["other"].(map[string]any)["value"])
}

func TestCopyMapNil(t *testing.T) {
	out := CopyMap(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)
}
