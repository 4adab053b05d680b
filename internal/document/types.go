package document

// Well-known field names with special semantics during merging and
// resolution. Everything else in a record body is opaque structure.
const (
	// KeyName is the record's declared display name.
	KeyName = "name"

	// KeyTags is the tag list; it never accumulates across the
	// inheritance chain (child replaces base wholesale).
	KeyTags = "tags"

	// KeyDescendants lists a record's direct subtypes. It describes the
	// record's position in the hierarchy, never shared content, so it is
	// own-only: a base's value must not leak into a leaf.
	KeyDescendants = "descendants"

	// KeyDeprecation is the deprecation notice. A non-empty leaf value
	// always wins over an inherited one.
	KeyDeprecation = "deprecation_message"

	// KeyAncestors is the synthesized, deduplicated chain of all
	// transitively resolved base names, attached by the resolver.
	KeyAncestors = "_ancestors"
)

// BaseKeys is the fixed priority list of fields that may declare base
// references. The first key present on a record wins; later keys are
// ignored even if also present.
var BaseKeys = []string{"inherits", "extends", "superclass", "superclasses", "bases"}

// Record is one named structured document loaded from disk.
type Record struct {
	// Name is the unique key within the record set. Falls back to the
	// file stem when the body declares none.
	Name string

	// Kind is the optional category tag ("class", "enum", ...).
	Kind string

	// Path is the normalized relative source path, also a unique key.
	Path string

	// Body is the raw declared content, decoded generically.
	Body map[string]any

	// Meta is the typed header decoded from the same bytes as Body.
	Meta RecordMeta
}

// RecordMeta is the typed slice of a record body the pipeline dispatches
// on. Unknown fields are ignored; absent fields decode to zero values.
type RecordMeta struct {
	Name string `yaml:"name,omitempty"`
	Type string `yaml:"type,omitempty"`
	Kind string `yaml:"kind,omitempty"`

	Inherits     BaseList `yaml:"inherits,omitempty"`
	Extends      BaseList `yaml:"extends,omitempty"`
	Superclass   BaseList `yaml:"superclass,omitempty"`
	Superclasses BaseList `yaml:"superclasses,omitempty"`
	Bases        BaseList `yaml:"bases,omitempty"`
}

// BaseNames returns the record's declared base references, honoring the
// BaseKeys priority order: the first declared field wins outright.
func (r *Record) BaseNames() []string {
	for _, key := range BaseKeys {
		if _, ok := r.Body[key]; !ok {
			continue
		}

		switch key {
		case "inherits":
			return r.Meta.Inherits
		case "extends":
			return r.Meta.Extends
		case "superclass":
			return r.Meta.Superclass
		case "superclasses":
			return r.Meta.Superclasses
		case "bases":
			return r.Meta.Bases
		}
	}

	return nil
}

// KindOrType returns the record's category, preferring "type" over
// "kind" the way the source corpus spells it.
func (m RecordMeta) KindOrType() string {
	if m.Type != "" {
		return m.Type
	}

	return m.Kind
}
