package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	leadform "github.com/goliatone/go-leadform"
	internalmodel "github.com/goliatone/go-leadform/internal/model"
	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
	pkgopenapi "github.com/goliatone/go-leadform/pkg/openapi"
)

type violation struct {
	file     string
	location string
	message  string
}

func (v violation) String() string {
	return fmt.Sprintf("%s: %s -> %s", v.file, v.location, v.message)
}

func lintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check forms documents for unknown x-formgen hints and unbuildable fields",
		Long: `lint parses each forms document, reports x-formgen extensions the form
builder does not understand and any operation it cannot turn into a form.
Without arguments the embedded forms document is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			violations, err := lintDocuments(cmd.Context(), args)
			if err != nil {
				return err
			}
			return reportViolations(cmd.ErrOrStderr(), violations)
		},
	}
}

func lintDocuments(ctx context.Context, paths []string) ([]violation, error) {
	parser := leadform.NewParser()
	builder := pkgmodel.NewBuilder()

	var result []violation
	if len(paths) == 0 {
		raw, err := fs.ReadFile(leadform.FormsFS(), "openapi.yaml")
		if err != nil {
			return nil, fmt.Errorf("lint: %w", err)
		}
		return lintDocument(ctx, parser, builder, pkgopenapi.SourceFromFS("openapi.yaml"), raw)
	}
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("lint %s: %w", path, err)
		}
		linted, err := lintDocument(ctx, parser, builder, pkgopenapi.SourceFromFile(path), raw)
		if err != nil {
			return nil, fmt.Errorf("lint %s: %w", path, err)
		}
		result = append(result, linted...)
	}
	return result, nil
}

func lintDocument(ctx context.Context, parser pkgopenapi.Parser, builder pkgmodel.Builder, src pkgopenapi.Source, raw []byte) ([]violation, error) {
	doc, err := pkgopenapi.NewDocument(src, raw)
	if err != nil {
		return nil, err
	}
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return nil, err
	}

	file := src.Location()
	var result []violation
	for id, op := range operations {
		base := []string{"operation", id}
		result = append(result, lintExtensions(file, base, op.Extensions)...)
		result = append(result, lintSchema(file, append(base, "requestBody"), op.RequestBody)...)
		if _, err := builder.Build(op); err != nil {
			result = append(result, violation{file: file, location: formatLocation(base), message: err.Error()})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].location == result[j].location {
			return result[i].message < result[j].message
		}
		return result[i].location < result[j].location
	})
	return result, nil
}

func lintSchema(file string, path []string, schema pkgopenapi.Schema) []violation {
	result := lintExtensions(file, path, schema.Extensions)
	keys := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		result = append(result, lintSchema(file, appendPath(path, "properties."+key), schema.Properties[key])...)
	}
	return result
}

func lintExtensions(file string, path []string, extensions map[string]any) []violation {
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result []violation
	for _, key := range keys {
		if internalmodel.IsKnownExtension(key) {
			continue
		}
		result = append(result, violation{
			file:     file,
			location: formatLocation(path),
			message:  fmt.Sprintf("unsupported extension %q (supported: %s)", key, strings.Join(internalmodel.KnownExtensions(), ", ")),
		})
	}
	return result
}

func reportViolations(w io.Writer, violations []violation) error {
	if len(violations) == 0 {
		return nil
	}
	for _, v := range violations {
		fmt.Fprintln(w, v)
	}
	return fmt.Errorf("lint: %d problem(s) found", len(violations))
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
