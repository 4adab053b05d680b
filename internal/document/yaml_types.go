package document

import (
	"slices"

	"gopkg.in/yaml.v3"
)

// BaseList is a list of base-reference names that can be unmarshaled
// from either a single string or an array of strings:
//
//	inherits: Instance
//	inherits: [Instance, PVInstance]
//
// Non-string elements are dropped rather than rejected; a malformed
// inheritance declaration degrades to "no bases", it never fails a load.
type BaseList []string

// UnmarshalYAML implements custom YAML unmarshaling for BaseList.
func (b *BaseList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil || str == "" {
			*b = BaseList{}
			return nil
		}

		*b = BaseList{str}

		return nil

	case yaml.SequenceNode:
		names := make([]string, 0, len(node.Content))

		for _, item := range node.Content {
			var str string

			err := item.Decode(&str)
			if err != nil || str == "" {
				continue
			}

			names = append(names, str)
		}

		*b = names

		return nil

	default:
		*b = BaseList{}
		return nil
	}
}

// MarshalYAML implements custom YAML marshaling for BaseList.
// Outputs a single string if length is 1, otherwise an array.
func (b BaseList) MarshalYAML() (any, error) {
	if len(b) == 1 {
		return b[0], nil
	}

	return []string(b), nil
}

// IsEmpty returns true if the list is empty.
func (b BaseList) IsEmpty() bool {
	return len(b) == 0
}

// Contains returns true if the list contains the given name.
func (b BaseList) Contains(name string) bool {
	return slices.Contains(b, name)
}
