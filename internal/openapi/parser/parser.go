// Package parser turns forms documents into operations with kin-openapi.
package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-leadform/pkg/openapi"
)

const extensionPrefix = "x-formgen"

// formMediaTypes lists request body encodings in the order they are preferred
// when an operation declares several.
var formMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Parser extracts the form operations of a document.
type Parser struct {
	validate bool
	methods  map[string]bool
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New builds a Parser. With no methods configured only POST operations are
// collected.
func New(options pkgopenapi.ParserOptions) *Parser {
	p := &Parser{validate: options.ValidateDocument, methods: make(map[string]bool)}
	for _, method := range options.Methods {
		if method = strings.ToUpper(strings.TrimSpace(method)); method != "" {
			p.methods[method] = true
		}
	}
	if len(p.methods) == 0 {
		p.methods["POST"] = true
	}
	return p
}

// Operations returns the collected operations keyed by operationId.
// Operations without an id are keyed "<method>:<path>".
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	spec, err := (&openapi3.Loader{Context: ctx}).LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load %s: %w", doc.Location(), err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, fmt.Errorf("openapi parser: %s declares no paths", doc.Location())
	}
	if p.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate %s: %w", doc.Location(), err)
		}
	}

	paths := spec.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	out := make(map[string]pkgopenapi.Operation)
	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			method = strings.ToUpper(method)
			if !p.methods[method] || operation == nil {
				continue
			}
			op, err := formOperation(method, path, operation)
			if err != nil {
				return nil, err
			}
			if prev, dup := out[op.ID]; dup {
				return nil, fmt.Errorf("openapi parser: operation %q declared by %s %s and %s %s", op.ID, prev.Method, prev.Path, method, path)
			}
			out[op.ID] = op
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("openapi parser: %s has no form operations", doc.Location())
	}
	return out, nil
}

func formOperation(method, path string, operation *openapi3.Operation) (pkgopenapi.Operation, error) {
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	op, err := pkgopenapi.NewOperation(id, method, path, requestSchema(operation.RequestBody))
	if err != nil {
		return pkgopenapi.Operation{}, fmt.Errorf("openapi parser: %s %s: %w", method, path, err)
	}
	op.Summary = operation.Summary
	op.Description = operation.Description
	op.Extensions = formExtensions(operation.Extensions)
	return op, nil
}

func requestSchema(body *openapi3.RequestBodyRef) pkgopenapi.Schema {
	switch {
	case body == nil:
		return pkgopenapi.Schema{}
	case body.Value == nil:
		return pkgopenapi.Schema{Ref: body.Ref}
	}
	content := body.Value.Content
	for _, mediaType := range formMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return schemaFrom(mt.Schema)
		}
	}
	// Any other single encoding is taken as is.
	for _, mt := range content {
		if mt != nil {
			return schemaFrom(mt.Schema)
		}
	}
	return pkgopenapi.Schema{}
}

func schemaFrom(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	src := ref.Value
	if src == nil {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}

	out := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Format:      src.Format,
		Description: src.Description,
		Default:     src.Default,
		Pattern:     src.Pattern,
		Required:    append([]string(nil), src.Required...),
		Enum:        append([]any(nil), src.Enum...),
		Extensions:  formExtensions(src.Extensions),
	}
	if src.Type != nil {
		if types := src.Type.Slice(); len(types) > 0 {
			out.Type = types[0]
		}
	}
	if src.MinLength > 0 {
		n := int(src.MinLength)
		out.MinLength = &n
	}
	if len(src.Properties) > 0 {
		out.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			out.Properties[name] = schemaFrom(property)
		}
	}
	return out
}

// formExtensions keeps x-formgen-* keys. A nested x-formgen object is
// flattened so {"x-formgen": {"label": "A"}} reads as x-formgen-label.
func formExtensions(raw map[string]any) map[string]any {
	out := make(map[string]any)
	for key, value := range raw {
		if key == extensionPrefix {
			if nested, ok := value.(map[string]any); ok {
				for name, v := range nested {
					out[extensionPrefix+"-"+name] = v
				}
			}
			continue
		}
		if strings.HasPrefix(key, extensionPrefix+"-") {
			out[key] = value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
