package site

import (
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName names the built-in manifest.
const DefaultThemeName = "leadform"

// DefaultManifest is the built-in theme with a light base and a dark variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"primary":    "#1f4fd1",
			"on-primary": "#ffffff",
			"text":       "#1b1f24",
			"muted":      "#5b6470",
			"surface":    "#eef1f5",
			"background": "#ffffff",
			"border":     "#c9ced6",
			"danger":     "#c62828",
			"success":    "#2e7d32",
			"radius":     "0.375rem",
		},
		Templates: map[string]string{
			templateHome:    "templates/home.tmpl",
			templateInquiry: "templates/inquiry.tmpl",
			templateLayout:  "templates/layout.tmpl",
			templateBanner:  "templates/banner.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/static",
			Files: map[string]string{
				"stylesheet":      "leadform.css",
				"site.stylesheet": "site.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"primary":    "#8aa8ff",
					"on-primary": "#0b1020",
					"text":       "#e6e9ef",
					"muted":      "#a3acb9",
					"surface":    "#1c2230",
					"background": "#10141c",
					"border":     "#343c4c",
				},
			},
		},
	}
}

// manifestSelector serves selections from a fixed set of manifests.
type manifestSelector struct {
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*manifestSelector)(nil)

// NewThemeSelector validates manifests through a go-theme registry and
// returns a selector over them. The first manifest is the fallback.
func NewThemeSelector(manifests ...*theme.Manifest) (theme.ThemeSelector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	registry := theme.NewRegistry()
	sel := &manifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("site: register theme %q: %w", manifest.Name, err)
		}
		sel.manifests[manifest.Name] = manifest
		if sel.fallback == "" {
			sel.fallback = manifest.Name
		}
	}
	if sel.fallback == "" {
		return nil, fmt.Errorf("site: no theme manifests")
	}
	return sel, nil
}

func (s *manifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("site: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("site: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection: variant tokens and assets override
// the base, tokens become --leadform-* CSS variables and asset keys resolve
// to prefixed URLs.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := copyStringMap(manifest.Tokens)
	templates := copyStringMap(manifest.Templates)
	files := copyStringMap(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStringMap(tokens, variant.Tokens)
		templates = mergeStringMap(templates, variant.Templates)
		files = mergeStringMap(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--leadform-"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: templates,
		Tokens:   tokens,
		CSSVars:  vars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}
}

// cssVarsStyle renders CSS variables as a sorted declaration list.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %s; ", key, vars[key])
	}
	return strings.TrimSpace(b.String())
}

func copyStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
