package site

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-leadform/pkg/consent"
	rendertemplate "github.com/goliatone/go-leadform/pkg/render/template"
	"github.com/goliatone/go-leadform/pkg/render/template/pongo"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	templateLayout  = "site.layout"
	templateHome    = "site.home"
	templateInquiry = "site.inquiry"
	templateBanner  = "site.banner"
)

var fallbackTemplates = map[string]string{
	templateLayout:  "templates/layout.tmpl",
	templateHome:    "templates/home.tmpl",
	templateInquiry: "templates/inquiry.tmpl",
	templateBanner:  "templates/banner.tmpl",
}

// AssetsFS exposes the site stylesheet.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// Page is the per-request state of a rendered page.
type Page struct {
	// Path is where the consent form redirects after a decision.
	Path    string
	Consent consent.State
	// Inquiry and Newsletter hold pre-rendered form HTML.
	Inquiry          string
	Newsletter       string
	NewsletterNotice string
}

// Option configures a Site.
type Option func(*options)

type options struct {
	content      Content
	templates    rendertemplate.TemplateRenderer
	templateFS   fs.FS
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
}

// WithContent replaces the default copy.
func WithContent(content Content) Option {
	return func(o *options) {
		o.content = content
	}
}

// WithTemplateRenderer injects a template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(o *options) {
		o.templates = renderer
	}
}

// WithTemplatesDir loads page templates from disk instead of the embedded set.
func WithTemplatesDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.templateFS = os.DirFS(dir)
		}
	}
}

// WithThemeSelector supplies the theme source.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *options) {
		o.selector = selector
	}
}

// WithTheme picks the theme and variant to render with.
func WithTheme(name, variant string) Option {
	return func(o *options) {
		o.themeName = name
		o.themeVariant = variant
	}
}

// Site renders pages. It is immutable after New and safe for concurrent use.
type Site struct {
	content   Content
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
	services  []serviceView
	carousel  Carousel
}

type serviceView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// New builds a Site with the embedded templates and the default theme unless
// overridden.
func New(opts ...Option) (*Site, error) {
	o := options{content: DefaultContent(), templateFS: embeddedTemplates}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.selector == nil {
		selector, err := NewThemeSelector()
		if err != nil {
			return nil, err
		}
		o.selector = selector
	}
	selection, err := o.selector.Select(o.themeName, o.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("site: select theme: %w", err)
	}

	templates := o.templates
	if templates == nil {
		engine, err := pongo.New(pongo.WithFS(o.templateFS), pongo.WithExtension(".tmpl"))
		if err != nil {
			return nil, fmt.Errorf("site: configure templates: %w", err)
		}
		templates = engine
	}

	s := &Site{
		content:   o.content,
		templates: templates,
		theme:     RendererConfig(selection),
		carousel:  BuildCarousel(o.content.Carousel),
	}
	for _, service := range o.content.Services {
		s.services = append(s.services, serviceView{
			Title:       service.Title,
			Description: service.Description,
			Icon:        IconMarkup(service),
		})
	}
	return s, nil
}

// Content returns the copy the site renders.
func (s *Site) Content() Content { return s.content }

// Theme returns the resolved theme configuration.
func (s *Site) Theme() *theme.RendererConfig { return s.theme }

// RenderHome writes the landing page.
func (s *Site) RenderHome(w io.Writer, page Page) error {
	body, err := s.templates.RenderTemplate(s.template(templateHome), map[string]any{
		"content":          s.content,
		"services":         s.services,
		"carousel":         s.carousel,
		"newsletter":       page.Newsletter,
		"newsletterNotice": page.NewsletterNotice,
	})
	if err != nil {
		return fmt.Errorf("site: render home: %w", err)
	}
	return s.layout(w, page, s.content.SiteName, body)
}

// RenderInquiry writes the standalone inquiry sheet page.
func (s *Site) RenderInquiry(w io.Writer, page Page) error {
	body, err := s.templates.RenderTemplate(s.template(templateInquiry), map[string]any{
		"content": s.content,
		"form":    page.Inquiry,
	})
	if err != nil {
		return fmt.Errorf("site: render inquiry: %w", err)
	}
	return s.layout(w, page, "Inquiry | "+s.content.SiteName, body)
}

func (s *Site) layout(w io.Writer, page Page, title, body string) error {
	banner := ""
	if !page.Consent.Decided() {
		rendered, err := s.templates.RenderTemplate(s.template(templateBanner), map[string]any{
			"cookies":  s.content.Cookies,
			"redirect": SafeRedirect(page.Path),
		})
		if err != nil {
			return fmt.Errorf("site: render banner: %w", err)
		}
		banner = rendered
	}

	_, err := s.templates.RenderTemplate(s.template(templateLayout), map[string]any{
		"title":       title,
		"siteName":    s.content.SiteName,
		"body":        body,
		"banner":      banner,
		"consent":     string(page.Consent),
		"cssVars":     cssVarsStyle(s.cssVars()),
		"stylesheets": s.stylesheets(),
		"themeName":   s.themeName(),
	}, w)
	if err != nil {
		return fmt.Errorf("site: render layout: %w", err)
	}
	return nil
}

func (s *Site) template(key string) string {
	if s.theme != nil {
		if name := s.theme.Partials[key]; name != "" {
			return name
		}
	}
	return fallbackTemplates[key]
}

func (s *Site) cssVars() map[string]string {
	if s.theme == nil {
		return nil
	}
	return s.theme.CSSVars
}

func (s *Site) stylesheets() []string {
	if s.theme == nil || s.theme.AssetURL == nil {
		return nil
	}
	var out []string
	for _, key := range []string{"stylesheet", "site.stylesheet"} {
		if href := s.theme.AssetURL(key); href != "" {
			out = append(out, href)
		}
	}
	return out
}

func (s *Site) themeName() string {
	if s.theme == nil {
		return ""
	}
	if s.theme.Variant != "" {
		return s.theme.Theme + "-" + s.theme.Variant
	}
	return s.theme.Theme
}

// SafeRedirect returns path when it is a local absolute path and "/" otherwise.
func SafeRedirect(path string) string {
	if path == "" || path[0] != '/' || (len(path) > 1 && (path[1] == '/' || path[1] == '\\')) {
		return "/"
	}
	return path
}
