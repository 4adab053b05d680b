package emit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"docindex/internal/docpath"
	"docindex/internal/nav"
)

// MemberGroup maps a member-group key in a merged view to the entry kind
// it produces in the index.
type MemberGroup struct {
	Key  string
	Kind string
}

// MemberGroups lists every known member-group key in emission order.
var MemberGroups = []MemberGroup{
	{"properties", "property"},
	{"methods", "method"},
	{"events", "event"},
	{"callbacks", "callback"},
	{"items", "enum_item"},
	{"fields", "field"},
	{"members", "library_member"},
	{"functions", "function"},
	{"constructors", "constructor"},
}

// RecordDoc is the self-contained output document for one navigable
// record: stored metadata plus the raw body and the resolved merged
// view. It is both the per-record JSON file and the emitter's input.
type RecordDoc struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Kind          string         `json:"kind,omitempty"`
	Path          string         `json:"path"`
	URL           string         `json:"url"`
	Breadcrumbs   []nav.Crumb    `json:"breadcrumbs"`
	ReferenceNode map[string]any `json:"reference_node"`
	Raw           map[string]any `json:"raw_yaml"`
	Merged        map[string]any `json:"merged_yaml"`
}

// Entry is one line of the index: either a record overview or a single
// named member.
type Entry struct {
	ID          string      `json:"id"`
	EntryKind   string      `json:"entry_kind"`
	ObjectType  string      `json:"object_type"`
	Name        string      `json:"name"`
	Group       string      `json:"group,omitempty"`
	Parent      string      `json:"parent,omitempty"`
	SourceID    string      `json:"source_id"`
	JSONPath    string      `json:"json_path"`
	URL         string      `json:"url"`
	Breadcrumbs []nav.Crumb `json:"breadcrumbs,omitempty"`
	AnchorHint  string      `json:"anchor_hint,omitempty"`
	Tags        []string    `json:"tags"`
	Deprecated  bool        `json:"deprecated"`
}

// Emitter writes the two index streams. Streams are opened once and
// must be closed via Close on every exit path; entries are appended as
// resolution proceeds, so a mid-run failure leaves a truncated but
// well-formed-per-line file.
type Emitter struct {
	generalFile *os.File
	propsFile   *os.File
	general     *bufio.Writer
	props       *bufio.Writer

	// GeneralCount and PropertyCount track written entries.
	GeneralCount  int
	PropertyCount int
}

// NewEmitter creates (truncating) both stream files.
func NewEmitter(generalPath, propsPath string) (*Emitter, error) {
	generalFile, err := os.Create(generalPath)
	if err != nil {
		return nil, fmt.Errorf("creating general index %s: %w", generalPath, err)
	}

	propsFile, err := os.Create(propsPath)
	if err != nil {
		generalFile.Close()
		return nil, fmt.Errorf("creating properties index %s: %w", propsPath, err)
	}

	return &Emitter{
		generalFile: generalFile,
		propsFile:   propsFile,
		general:     bufio.NewWriter(generalFile),
		props:       bufio.NewWriter(propsFile),
	}, nil
}

// Close flushes and closes both streams.
func (e *Emitter) Close() error {
	var errs []error

	for _, w := range []*bufio.Writer{e.general, e.props} {
		if err := w.Flush(); err != nil {
			errs = append(errs, err)
		}
	}

	for _, f := range []*os.File{e.generalFile, e.propsFile} {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// WriteRecord emits one overview entry for the record plus one entry per
// named member across every member group present in the merged view.
// Non-map members and members without a name are skipped. Property
// entries are written to both streams.
func (e *Emitter) WriteRecord(doc *RecordDoc) error {
	objType := strings.ToLower(stringOf(firstPresent(doc.Merged, "type", "kind")))

	// json_path points at the per-record document written under the
	// objects root, not at the YAML source.
	jsonPath := docpath.TrimYAMLExt(doc.Path) + ".json"

	overview := Entry{
		ID:          doc.ID + "#overview",
		EntryKind:   objType + "_overview",
		ObjectType:  objType,
		Name:        stringOf(doc.Merged["name"]),
		SourceID:    doc.ID,
		JSONPath:    jsonPath,
		URL:         doc.URL,
		Breadcrumbs: doc.Breadcrumbs,
		Tags:        stringList(doc.Merged["tags"]),
		Deprecated:  truthy(doc.Merged["deprecation_message"]),
	}

	if err := e.writeGeneral(overview); err != nil {
		return err
	}

	for _, group := range MemberGroups {
		members, ok := doc.Merged[group.Key].([]any)
		if !ok {
			continue
		}

		for _, raw := range members {
			member, ok := raw.(map[string]any)
			if !ok {
				continue
			}

			memberName := stringOf(member["name"])
			if memberName == "" {
				continue
			}

			entry := Entry{
				ID:         fmt.Sprintf("%s#%s:%s", doc.ID, group.Kind, memberName),
				EntryKind:  group.Kind,
				ObjectType: objType,
				Name:       memberName,
				Group:      group.Key,
				Parent:     overview.Name,
				SourceID:   doc.ID,
				JSONPath:   jsonPath,
				URL:        doc.URL,
				AnchorHint: memberName,
				Tags:       stringList(member["tags"]),
				Deprecated: truthy(member["deprecation_message"]),
			}

			if err := e.writeGeneral(entry); err != nil {
				return err
			}

			if group.Kind == "property" {
				if err := writeLine(e.props, entry); err != nil {
					return err
				}

				e.PropertyCount++
			}
		}
	}

	return nil
}

func (e *Emitter) writeGeneral(entry Entry) error {
	if err := writeLine(e.general, entry); err != nil {
		return err
	}

	e.GeneralCount++

	return nil
}

func writeLine(w *bufio.Writer, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding index entry %s: %w", entry.ID, err)
	}

	if _, err := w.Write(data); err != nil {
		return err
	}

	return w.WriteByte('\n')
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}

	return nil
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}

// stringList coerces a generic tag list to strings, dropping anything
// else. Always non-nil so the field encodes as [].
func stringList(v any) []string {
	out := []string{}

	switch list := v.(type) {
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, list...)
	}

	return out
}

// truthy mirrors the presence test for scalar notice fields: present
// and, for strings, non-empty.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	default:
		return true
	}
}
