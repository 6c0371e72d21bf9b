package uischema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type decodeFunc func(data []byte, v any) error

// decoders maps overlay file extensions to their decoder. Other files in the
// tree are ignored.
var decoders = map[string]decodeFunc{
	".json": json.Unmarshal,
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
}

type documentFile struct {
	Operations map[string]operationFile `json:"operations" yaml:"operations"`
}

type operationFile struct {
	Form     FormConfig             `json:"form" yaml:"form"`
	Sections []SectionConfig        `json:"sections" yaml:"sections"`
	Fields   map[string]FieldConfig `json:"fields" yaml:"fields"`
}

// LoadFS reads every overlay file under fsys. A nil fsys yields an empty
// store. An operation may only be configured by one file.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{operations: make(map[string]Operation)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		decode, ok := decoders[strings.ToLower(path.Ext(name))]
		if entry.IsDir() || !ok {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", name, err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return fmt.Errorf("uischema: file %s is empty", name)
		}
		var doc documentFile
		if err := decode(data, &doc); err != nil {
			return fmt.Errorf("uischema: parse %s: %w", name, err)
		}
		return store.add(name, doc)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) add(file string, doc documentFile) error {
	for key, raw := range doc.Operations {
		id := strings.TrimSpace(key)
		if id == "" {
			return fmt.Errorf("uischema: file %s defines an empty operation id", file)
		}
		if prev, dup := s.operations[id]; dup {
			return fmt.Errorf("uischema: operation %q configured by %s and %s", id, prev.Source, file)
		}
		op, err := newOperation(id, file, raw)
		if err != nil {
			return err
		}
		s.operations[id] = op
	}
	return nil
}

// newOperation trims ids and field names, drops empty rows and rejects a
// field placed in more than one section.
func newOperation(id, file string, raw operationFile) (Operation, error) {
	op := Operation{ID: id, Source: file, Form: raw.Form, Fields: make(map[string]FieldConfig, len(raw.Fields))}
	fail := func(format string, args ...any) (Operation, error) {
		return Operation{}, fmt.Errorf("uischema: operation %q (file %s) "+format, append([]any{id, file}, args...)...)
	}

	placed := make(map[string]string)
	for _, section := range raw.Sections {
		section.ID = strings.TrimSpace(section.ID)
		if section.ID == "" {
			return fail("has a section without id")
		}
		rows := section.Rows
		section.Rows = nil
		for _, row := range rows {
			var cells []string
			for _, name := range row {
				if name = strings.TrimSpace(name); name == "" {
					continue
				}
				if other, dup := placed[name]; dup {
					return fail("places field %q in sections %q and %q", name, other, section.ID)
				}
				placed[name] = section.ID
				cells = append(cells, name)
			}
			if len(cells) > 0 {
				section.Rows = append(section.Rows, cells)
			}
		}
		op.Sections = append(op.Sections, section)
	}

	for key, cfg := range raw.Fields {
		name := strings.TrimSpace(key)
		if name == "" {
			return fail("has an empty field key")
		}
		op.Fields[name] = cfg
	}
	return op, nil
}

// Operation returns the overlay for an operation id.
func (s *Store) Operation(id string) (Operation, bool) {
	if s == nil {
		return Operation{}, false
	}
	op, ok := s.operations[id]
	return op, ok
}

// Operations lists the configured operation ids, sorted.
func (s *Store) Operations() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.operations))
	for id := range s.operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store has no overlays.
func (s *Store) Empty() bool {
	return s == nil || len(s.operations) == 0
}
