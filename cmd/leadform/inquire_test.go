package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	leadform "github.com/goliatone/go-leadform"
	"github.com/goliatone/go-leadform/pkg/challenge"
	"github.com/goliatone/go-leadform/pkg/renderers/tui"
	"github.com/goliatone/go-leadform/pkg/session"
	"github.com/goliatone/go-leadform/pkg/submit"
)

type cycleReader struct{ n byte }

func (c *cycleReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = c.n % 4
		c.n++
	}
	return len(p), nil
}

// scriptedDriver answers prompts by matching the lower-cased label against
// answers. Codes are consumed in order so a test can fail the challenge
// first.
type scriptedDriver struct {
	answers map[string]string
	codes   []string
	prompts []string
}

func (d *scriptedDriver) answer(message string) string {
	d.prompts = append(d.prompts, message)
	label := strings.ToLower(message)
	if strings.HasPrefix(label, "code") {
		if len(d.codes) == 0 {
			return ""
		}
		code := d.codes[0]
		d.codes = d.codes[1:]
		return code
	}
	for key, value := range d.answers {
		if strings.Contains(label, key) {
			return value
		}
	}
	return ""
}

func (d *scriptedDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	return d.answer(cfg.Message), nil
}

func (d *scriptedDriver) TextArea(_ context.Context, cfg tui.TextAreaConfig) (string, error) {
	return d.answer(cfg.Message), nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	d.prompts = append(d.prompts, cfg.Message)
	return false, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	want := d.answer(cfg.Message)
	for i, option := range cfg.Options {
		if option == want {
			return i, nil
		}
	}
	return 0, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func (d *scriptedDriver) count(prefix string) int {
	n := 0
	for _, p := range d.prompts {
		if strings.HasPrefix(strings.ToLower(p), prefix) {
			n++
		}
	}
	return n
}

type recordingSubmitter struct {
	mu       sync.Mutex
	payloads []submit.Payload
	failures int
}

func (r *recordingSubmitter) Submit(_ context.Context, payload submit.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, payload)
	if r.failures > 0 {
		r.failures--
		return errors.New("webhook down")
	}
	return nil
}

func newDriver(codes ...string) *scriptedDriver {
	return &scriptedDriver{
		answers: map[string]string{
			"subject":       "Hi",
			"description":   "Need help",
			"first":         "A",
			"last":          "B",
			"email":         "a@b.com",
			"phone":         "1234567890",
			"country":       "Germany",
			"communication": "email",
		},
		codes: codes,
	}
}

func newCLIController(t *testing.T, sub submit.Submitter) *session.Controller {
	t.Helper()
	forms, err := leadform.Forms(context.Background())
	require.NoError(t, err)
	gen := challenge.NewGenerator(
		challenge.WithAlphabet("XQ7F"),
		challenge.WithLength(4),
		challenge.WithRandom(&cycleReader{}),
	)
	ctrl, err := session.NewController("cli", forms.Inquiry,
		session.WithGenerator(gen),
		session.WithSubmitter(sub),
	)
	require.NoError(t, err)
	return ctrl
}

func TestRunInquirySendsPayloadWithoutCode(t *testing.T) {
	sub := &recordingSubmitter{}
	ctrl := newCLIController(t, sub)
	driver := newDriver("XQ7F")
	var out bytes.Buffer

	err := runInquiry(context.Background(), ctrl, tui.New(tui.WithPromptDriver(driver)), []string{"Bulgaria", "Germany"}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Inquiry sent.")
	require.Len(t, sub.payloads, 1)
	values := sub.payloads[0].Values
	assert.Equal(t, "Hi", values["subject"])
	assert.Equal(t, "Germany", values["country"])
	assert.Equal(t, "email", values["communication"])
	assert.NotContains(t, values, "code")
	assert.Equal(t, session.StateSubmitted, ctrl.State())
}

func TestRunInquiryReasksOnlyTheCodeAfterMismatch(t *testing.T) {
	sub := &recordingSubmitter{}
	ctrl := newCLIController(t, sub)
	driver := newDriver("0000", "XQ7F")
	var out bytes.Buffer

	err := runInquiry(context.Background(), ctrl, tui.New(tui.WithPromptDriver(driver)), []string{"Germany"}, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, driver.count("code"))
	assert.Equal(t, 1, driver.count("subject"))
	require.Len(t, sub.payloads, 1)
	assert.Equal(t, "Need help", sub.payloads[0].Values["description"])
}

func TestRunInquiryRetriesFailedDeliveryWithoutPrompting(t *testing.T) {
	sub := &recordingSubmitter{failures: 1}
	ctrl := newCLIController(t, sub)
	driver := newDriver("XQ7F")
	var out bytes.Buffer

	err := runInquiry(context.Background(), ctrl, tui.New(tui.WithPromptDriver(driver)), []string{"Germany"}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Delivery failed: ")
	assert.Contains(t, out.String(), "Inquiry sent.")
	assert.Len(t, sub.payloads, 2)
	assert.Equal(t, 1, driver.count("code"))
}

func TestRunInquiryGivesUpAfterRepeatedFailures(t *testing.T) {
	sub := &recordingSubmitter{failures: maxInquiryRounds}
	ctrl := newCLIController(t, sub)
	var out bytes.Buffer

	err := runInquiry(context.Background(), ctrl, tui.New(tui.WithPromptDriver(newDriver("XQ7F"))), []string{"Germany"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "giving up")
	assert.Len(t, sub.payloads, maxInquiryRounds)
}

func TestVersionCommandShort(t *testing.T) {
	cmd := versionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--short"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, version+"\n", out.String())
}
