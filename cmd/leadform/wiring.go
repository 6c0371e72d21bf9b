package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	leadform "github.com/goliatone/go-leadform"
	"github.com/goliatone/go-leadform/internal/config"
	"github.com/goliatone/go-leadform/internal/logging"
	"github.com/goliatone/go-leadform/pkg/challenge"
	"github.com/goliatone/go-leadform/pkg/consent"
	"github.com/goliatone/go-leadform/pkg/countries"
	pkgopenapi "github.com/goliatone/go-leadform/pkg/openapi"
	"github.com/goliatone/go-leadform/pkg/orchestrator"
	"github.com/goliatone/go-leadform/pkg/session"
	"github.com/goliatone/go-leadform/pkg/site"
	"github.com/goliatone/go-leadform/pkg/submit"
)

// app holds the validated configuration and the collaborators built from it.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func loadApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger}, nil
}

// forms builds the form set from the configured document, or the embedded
// one. A document on disk picks up layout overlays from a ui/ directory next
// to it; remote documents keep the embedded overlays.
func (a *app) forms(ctx context.Context) (leadform.FormSet, error) {
	opts, err := a.formOptions()
	if err != nil {
		return leadform.FormSet{}, err
	}
	return leadform.Forms(ctx, opts...)
}

func (a *app) formOptions() ([]orchestrator.Option, error) {
	document := a.cfg.Forms.Document
	if document == "" {
		return nil, nil
	}
	src, err := pkgopenapi.SourceFor(document)
	if err != nil {
		return nil, fmt.Errorf("forms document: %w", err)
	}
	opts := []orchestrator.Option{
		orchestrator.WithSource(src),
		orchestrator.WithLoader(leadform.NewLoader(pkgopenapi.WithHTTPFallback(a.cfg.Forms.Timeout))),
	}
	if src.Kind() == pkgopenapi.SourceKindFile {
		uiDir := filepath.Join(filepath.Dir(src.Location()), orchestrator.DefaultUISchemaDir)
		if info, err := os.Stat(uiDir); err == nil && info.IsDir() {
			opts = append(opts, orchestrator.WithUISchemaFS(os.DirFS(uiDir)))
		}
	}
	return opts, nil
}

func (a *app) countries() countries.Provider {
	if len(a.cfg.Countries.Static) > 0 {
		return countries.Static(a.cfg.Countries.Static)
	}
	remote := countries.NewHTTPProvider(a.cfg.Countries.URL, a.cfg.Countries.Timeout, nil)
	return countries.NewCached(remote, a.cfg.Countries.CacheTTL)
}

// submitter strips markup from free text and forwards to the webhook, or
// logs the payload when no webhook is configured.
func (a *app) submitter() (submit.Submitter, error) {
	if a.cfg.Submit.WebhookURL == "" {
		return submit.NewSanitizing(submit.NewLogSubmitter(a.logger)), nil
	}
	var opts []submit.WebhookOption
	for key, value := range a.cfg.Submit.Headers {
		opts = append(opts, submit.WithHeader(key, value))
	}
	webhook, err := submit.NewWebhookSubmitter(a.cfg.Submit.WebhookURL, a.cfg.Submit.Timeout, opts...)
	if err != nil {
		return nil, err
	}
	return submit.NewSanitizing(submit.Chain{submit.NewLogSubmitter(a.logger), webhook}), nil
}

func (a *app) generator() *challenge.Generator {
	opts := []challenge.Option{challenge.WithLength(a.cfg.Session.ChallengeLength)}
	if a.cfg.Session.CaseInsensitive {
		opts = append(opts, challenge.WithPolicy(challenge.CaseInsensitive))
	}
	return challenge.NewGenerator(opts...)
}

func (a *app) sessionOptions(sub submit.Submitter, extra ...session.Option) []session.Option {
	opts := []session.Option{
		session.WithGenerator(a.generator()),
		session.WithSubmitter(sub),
		session.WithLogger(a.logger),
		session.WithSubmitTimeout(a.cfg.Submit.Timeout),
	}
	return append(opts, extra...)
}

func (a *app) consentStore() consent.Store {
	return consent.NewCookieStore(
		consent.WithSecure(a.cfg.Server.SecureCookies),
		consent.WithSameSite(http.SameSiteLaxMode),
	)
}

func (a *app) site() (*site.Site, error) {
	st, err := site.New(
		site.WithTheme(a.cfg.Theme.Name, a.cfg.Theme.Variant),
		site.WithTemplatesDir(a.cfg.Server.TemplatesDir),
	)
	if err != nil {
		return nil, fmt.Errorf("site: %w", err)
	}
	return st, nil
}
