package tex2img

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/alnah/go-tex2img/internal/mdsource"
	"github.com/alnah/go-tex2img/internal/yamlutil"
)

// Entry is one element of a record group: either a raw LaTeX string or an
// annotated object {"latex": ..., "id": ..., "auto_align": ...}.
type Entry struct {
	LaTeX     string
	ID        string
	AutoAlign bool
	Annotated bool

	hasLaTeX bool
	problem  string // why the entry cannot become a record
}

// RawEntry returns a plain string entry.
func RawEntry(latex string) Entry {
	return Entry{LaTeX: latex, AutoAlign: true, hasLaTeX: true}
}

// UnmarshalJSON accepts a string or an annotated object.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*e = entryFromValue(v)
	return nil
}

// UnmarshalYAML accepts a string or an annotated mapping.
func (e *Entry) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	*e = entryFromValue(v)
	return nil
}

func entryFromValue(v any) Entry {
	switch val := v.(type) {
	case string:
		return RawEntry(val)
	case map[string]any:
		e := Entry{Annotated: true, AutoAlign: true}
		if latex, ok := val["latex"]; ok {
			s, isString := latex.(string)
			if !isString {
				e.problem = fmt.Sprintf(`"latex" must be a string, got %T`, latex)
				return e
			}
			e.LaTeX, e.hasLaTeX = s, true
		} else {
			e.problem = `missing "latex" field`
		}
		if id, ok := val["id"]; ok && id != nil {
			e.ID = scalarString(id)
		}
		if align, ok := val["auto_align"].(bool); ok {
			e.AutoAlign = align
		}
		return e
	default:
		return Entry{problem: fmt.Sprintf("entry must be a string or an object, got %T", v)}
	}
}

// scalarString renders an id given as a string or number.
func scalarString(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return fmt.Sprint(n)
	}
}

// Collection is a parsed input file. Exactly one of the groups is set.
type Collection struct {
	Equations  *[]Entry `json:"equations" yaml:"equations"`
	Pseudocode *[]Entry `json:"pseudocode" yaml:"pseudocode"`

	Source string `json:"-" yaml:"-"` // path the collection was read from
}

// EntryIssue describes an entry skipped during normalization.
type EntryIssue struct {
	Kind   Kind
	Index  int
	Reason string
}

func (i EntryIssue) String() string {
	return fmt.Sprintf("%s %d: %s", i.Kind, i.Index, i.Reason)
}

// Validate enforces the single non-empty group rule.
func (c *Collection) Validate() error {
	switch {
	case c.Equations != nil && c.Pseudocode != nil:
		return ErrAmbiguousRecordGroup
	case c.Equations == nil && c.Pseudocode == nil:
		return ErrNoRecordGroup
	case c.Equations != nil && len(*c.Equations) == 0:
		return fmt.Errorf("%w: equations", ErrEmptyRecordGroup)
	case c.Pseudocode != nil && len(*c.Pseudocode) == 0:
		return fmt.Errorf("%w: pseudocode", ErrEmptyRecordGroup)
	}
	return nil
}

// Kind returns the kind of the populated group.
func (c *Collection) Kind() Kind {
	if c.Pseudocode != nil {
		return KindPseudocode
	}
	return KindEquation
}

// Records normalizes the populated group into records, in input order.
// Raw strings get the id <kind><index> and auto alignment. Annotated
// entries keep their id when given; entries without latex, or with only
// whitespace, are skipped and reported as issues.
func (c *Collection) Records() ([]Record, []EntryIssue) {
	kind := c.Kind()
	var entries []Entry
	if kind == KindPseudocode && c.Pseudocode != nil {
		entries = *c.Pseudocode
	} else if c.Equations != nil {
		entries = *c.Equations
	}

	records := make([]Record, 0, len(entries))
	var issues []EntryIssue
	for i, e := range entries {
		if e.problem != "" || !e.hasLaTeX || strings.TrimSpace(e.LaTeX) == "" {
			reason := e.problem
			switch {
			case reason != "":
			case !e.hasLaTeX:
				reason = `missing "latex" field`
			default:
				reason = `empty "latex" field`
			}
			issues = append(issues, EntryIssue{Kind: kind, Index: i, Reason: reason})
			continue
		}

		id := e.ID
		if id == "" {
			id = kind.String() + strconv.Itoa(i)
		}
		records = append(records, Record{
			Kind:      kind,
			ID:        id,
			Content:   e.LaTeX,
			AutoAlign: e.AutoAlign,
			Index:     i,
		})
	}
	return records, issues
}

// LoadCollection reads and validates a record collection. The parser is
// chosen by extension: .json, .yaml/.yml or .md/.markdown.
func LoadCollection(path string) (*Collection, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	col, err := ParseCollection(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	col.Source = path
	return col, nil
}

// ParseCollection decodes data according to ext (with leading dot) and
// validates the group structure.
func ParseCollection(data []byte, ext string) (*Collection, error) {
	var col Collection

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &col); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCollectionParse, err)
		}
	case ".yaml", ".yml":
		if err := yamlutil.Unmarshal(data, &col); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCollectionParse, err)
		}
	case ".md", ".markdown":
		col = collectionFromMarkdown(data)
	default:
		return nil, fmt.Errorf("%w: %q (use .json, .yaml, .yml, .md)", ErrUnsupportedInput, ext)
	}

	if err := col.Validate(); err != nil {
		return nil, err
	}
	return &col, nil
}

// collectionFromMarkdown groups fenced LaTeX blocks by kind.
func collectionFromMarkdown(data []byte) Collection {
	var col Collection
	for _, b := range mdsource.Extract(data) {
		e := Entry{LaTeX: b.Content, ID: b.ID, AutoAlign: b.AutoAlign, Annotated: true, hasLaTeX: true}
		group := &col.Equations
		if b.Kind == mdsource.Pseudocode {
			group = &col.Pseudocode
		}
		if *group == nil {
			*group = &[]Entry{}
		}
		**group = append(**group, e)
	}
	return col
}
