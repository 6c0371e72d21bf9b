package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	leadform "github.com/goliatone/go-leadform"
	"github.com/goliatone/go-leadform/internal/config"
	"github.com/goliatone/go-leadform/pkg/submit"
)

func testApp(t *testing.T, mutate func(*config.Config)) *app {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())
	return &app{cfg: cfg, logger: zap.NewNop()}
}

func TestFormsFromDocumentOnDisk(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "forms", "openapi.yaml"))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "forms.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	a := testApp(t, func(cfg *config.Config) { cfg.Forms.Document = path })
	forms, err := a.forms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, leadform.InquiryFormID, forms.Inquiry.ID)
	_, ok := forms.Inquiry.Field("code")
	assert.True(t, ok)
}

func TestFormsFromRemoteDocument(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "forms", "openapi.yaml"))
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	a := testApp(t, func(cfg *config.Config) { cfg.Forms.Document = srv.URL + "/forms.yaml" })
	forms, err := a.forms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, leadform.NewsletterFormID, forms.Newsletter.ID)
}

func TestFormsDefaultToEmbedded(t *testing.T) {
	opts, err := testApp(t, nil).formOptions()
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestSubmitterWithoutWebhookLogs(t *testing.T) {
	sub, err := testApp(t, nil).submitter()
	require.NoError(t, err)
	assert.IsType(t, &submit.Sanitizing{}, sub)
	require.NoError(t, sub.Submit(context.Background(), submit.Payload{FormID: leadform.InquiryFormID}))
}

func TestCountriesPrefersStaticList(t *testing.T) {
	a := testApp(t, func(cfg *config.Config) { cfg.Countries.Static = []string{"Germany"} })
	list, err := a.countries().Countries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Germany"}, list)
}

func TestGeneratorHonoursLength(t *testing.T) {
	a := testApp(t, func(cfg *config.Config) { cfg.Session.ChallengeLength = 8 })
	code, err := a.generator().Generate()
	require.NoError(t, err)
	assert.Len(t, code.String(), 8)
}
