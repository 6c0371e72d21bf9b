package openapi

import (
	"errors"
	"slices"
)

// Document is a forms document as fetched from its Source. The payload is
// copied on the way in and out so a Document can be shared freely.
type Document struct {
	source Source
	data   []byte
}

// NewDocument pairs a payload with where it came from.
func NewDocument(src Source, data []byte) (Document, error) {
	switch {
	case src == nil:
		return Document{}, errors.New("openapi: document source is nil")
	case len(data) == 0:
		return Document{}, errors.New("openapi: document is empty")
	}
	return Document{source: src, data: slices.Clone(data)}, nil
}

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return slices.Clone(d.data) }

// Location is the source location, or "" for the zero Document.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation is a form endpoint: a POST operation and the request body its
// fields come from.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	RequestBody Schema
	Extensions  map[string]any
}

// NewOperation reports every missing identifier at once.
func NewOperation(id, method, path string, body Schema) (Operation, error) {
	var errs []error
	if id == "" {
		errs = append(errs, errors.New("openapi: operation id is required"))
	}
	if method == "" {
		errs = append(errs, errors.New("openapi: operation method is required"))
	}
	if path == "" {
		errs = append(errs, errors.New("openapi: operation path is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return Operation{}, err
	}
	return Operation{ID: id, Method: method, Path: path, RequestBody: body}, nil
}

// Schema keeps the request body keywords that turn into fields and rules.
// Extensions holds the x-formgen-* hints verbatim.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Required    []string
	Properties  map[string]Schema
	Enum        []any
	Description string
	Default     any
	MinLength   *int
	Pattern     string
	Extensions  map[string]any
}

// Validate rejects bodies no form can be built from: unresolved references
// and objects without properties.
func (s Schema) Validate() error {
	switch {
	case s.Type == "" && s.Ref != "":
		return errors.New("openapi: schema reference " + s.Ref + " is unresolved")
	case s.Type == "":
		return errors.New("openapi: schema has no type")
	case s.Type == "object" && len(s.Properties) == 0:
		return errors.New("openapi: object schema has no properties")
	}
	return nil
}

// IsRequired reports whether the property is listed in required.
func (s Schema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}
