package vanilla_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-leadform/pkg/render"
	"github.com/goliatone/go-leadform/pkg/renderers/vanilla"
	"github.com/goliatone/go-leadform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-leadform/pkg/testsupport"
)

func renderInquiry(t *testing.T, options render.RenderOptions, opts ...vanilla.Option) string {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), testsupport.InquiryForm(), options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderer_RendersEveryField(t *testing.T) {
	html := renderInquiry(t, render.RenderOptions{
		Challenge: "XQ7F",
		Options:   map[string][]string{"countries": {"Austria", "Germany"}},
		Hidden:    map[string]string{"sessionId": "abc"},
	})

	for _, field := range testsupport.InquiryForm().Fields {
		if !strings.Contains(html, `name="`+field.Name+`"`) {
			t.Fatalf("expected control for %q in output:\n%s", field.Name, html)
		}
	}
	for _, want := range []string{
		`<form class="leadform" id="sendInquiry" method="POST" action="/inquiry"`,
		`<textarea id="field-description"`,
		`<input type="email" id="field-email"`,
		`<input type="tel" id="field-phone"`,
		`<option value="Germany">Germany</option>`,
		`<input type="checkbox" id="field-newsletter"`,
		`translate="no">XQ7F</output>`,
		`<input type="hidden" name="sessionId" value="abc">`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRenderer_ShowsErrorsAndValues(t *testing.T) {
	values := testsupport.InquiryValues("0000")
	html := renderInquiry(t, render.RenderOptions{
		Values: values,
		Errors: map[string]string{"code": "The code does not match."},
	})

	if !strings.Contains(html, `value="Hi"`) {
		t.Fatalf("expected subject value to be preserved")
	}
	if !strings.Contains(html, `<p class="leadform__error" id="field-code-error" role="alert">The code does not match.</p>`) {
		t.Fatalf("expected code error in output:\n%s", html)
	}
	if strings.Count(html, "is-invalid") != 1 {
		t.Fatalf("expected exactly one invalid field")
	}
}

func TestRenderer_EscapesValues(t *testing.T) {
	html := renderInquiry(t, render.RenderOptions{
		Values: map[string]any{"subject": `<script>alert(1)</script>`},
	})
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatalf("expected value to be escaped")
	}
}

func TestRenderer_BusyDisablesSubmit(t *testing.T) {
	html := renderInquiry(t, render.RenderOptions{State: "submitting"})
	if !strings.Contains(html, `aria-busy="true"`) || !strings.Contains(html, " disabled>") {
		t.Fatalf("expected busy form with disabled submit:\n%s", html)
	}
}

func TestRenderer_CustomComponent(t *testing.T) {
	registry, err := components.NewDefaultRegistry().With(components.NameChallenge, components.Component{
		Render: func(buf *bytes.Buffer, field render.FieldView, _ components.ComponentData) error {
			buf.WriteString(`<span class="custom-challenge">` + field.Challenge + `</span>`)
			return nil
		},
		Assets: []string{"/static/challenge.js"},
	})
	if err != nil {
		t.Fatalf("With: %v", err)
	}

	html := renderInquiry(t, render.RenderOptions{Challenge: "AB12"}, vanilla.WithComponentRegistry(registry))
	if !strings.Contains(html, `<span class="custom-challenge">AB12</span>`) {
		t.Fatalf("expected custom challenge control:\n%s", html)
	}
	if !strings.Contains(html, `<script src="/static/challenge.js" defer></script>`) {
		t.Fatalf("expected component script")
	}
}

func TestAssetsFS_ContainsStylesheet(t *testing.T) {
	f, err := vanilla.AssetsFS().Open(vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("open stylesheet: %v", err)
	}
	_ = f.Close()
}
