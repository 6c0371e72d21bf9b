package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-leadform/pkg/model"
	"github.com/goliatone/go-leadform/pkg/render"
)

func sampleForm() pkgmodel.FormDefinition {
	country := pkgmodel.NewField("country", pkgmodel.FieldKindText, pkgmodel.Required())
	country.Metadata = map[string]string{pkgmodel.MetadataOptionSource: "countries"}
	code := pkgmodel.NewField("code", pkgmodel.FieldKindText, pkgmodel.Required())
	code.Metadata = map[string]string{pkgmodel.MetadataChallenge: "true"}

	return pkgmodel.FormDefinition{
		ID:          "sendInquiry",
		Endpoint:    "/inquiry",
		SubmitLabel: "Submit",
		Fields: []pkgmodel.FieldDefinition{
			pkgmodel.NewField("subject", pkgmodel.FieldKindText, pkgmodel.Required()),
			country,
			code,
			pkgmodel.NewField("newsletter", pkgmodel.FieldKindBoolean),
		},
		Sections: []pkgmodel.Section{
			{ID: "main", Title: "Main", Rows: [][]string{{"subject"}, {"country", "code"}}},
		},
	}
}

func TestBuildView_SectionsAndLeftovers(t *testing.T) {
	view := render.BuildView(sampleForm(), render.RenderOptions{})

	if len(view.Sections) != 2 {
		t.Fatalf("expected main section plus leftovers, got %d", len(view.Sections))
	}
	var names [][]string
	for _, section := range view.Sections {
		for _, row := range section.Rows {
			var rowNames []string
			for _, field := range row {
				rowNames = append(rowNames, field.Name)
			}
			names = append(names, rowNames)
		}
	}
	want := [][]string{{"subject"}, {"country", "code"}, {"newsletter"}}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
	if view.Method != "POST" || view.Action != "/inquiry" {
		t.Fatalf("unexpected method/action %s %s", view.Method, view.Action)
	}
	if len(view.Actions) != 1 || view.Actions[0].Label != "Submit" {
		t.Fatalf("expected default submit action, got %+v", view.Actions)
	}
}

func TestBuildView_DynamicOptionsAndState(t *testing.T) {
	view := render.BuildView(sampleForm(), render.RenderOptions{
		Values:    pkgmodel.Values{"country": "Germany", "newsletter": true, "subject": " Hi "},
		Errors:    pkgmodel.ValidationResult{"code": "The code does not match."},
		Options:   map[string][]string{"countries": {"Austria", "Germany"}},
		Challenge: "XQ7F",
		State:     "submitting",
	})

	subject := view.Sections[0].Rows[0][0]
	country := view.Sections[0].Rows[1][0]
	code := view.Sections[0].Rows[1][1]
	newsletter := view.Sections[1].Rows[0][0]

	if subject.Value != "Hi" {
		t.Fatalf("expected trimmed value, got %q", subject.Value)
	}
	if country.Kind != "enum" {
		t.Fatalf("expected country to render as select, got %q", country.Kind)
	}
	want := []render.OptionView{
		{Value: "Austria", Label: "Austria"},
		{Value: "Germany", Label: "Germany", Selected: true},
	}
	if diff := cmp.Diff(want, country.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if !code.IsChallenge || code.Challenge != "XQ7F" || code.Error == "" {
		t.Fatalf("unexpected challenge field %+v", code)
	}
	if !newsletter.Checked {
		t.Fatalf("expected newsletter checked")
	}
	if !view.Busy {
		t.Fatalf("submitting state must mark the view busy")
	}
}

func TestBuildView_EmptyCountryListFallsBackToText(t *testing.T) {
	view := render.BuildView(sampleForm(), render.RenderOptions{
		Options: map[string][]string{"countries": {}},
	})
	country := view.Sections[0].Rows[1][0]
	if country.Kind != "text" || len(country.Options) != 0 {
		t.Fatalf("expected plain text control, got %+v", country)
	}
}

func TestSortedHiddenFields(t *testing.T) {
	fields := render.MergeHiddenFields(map[string]string{"b": "2"}, render.Hidden("a", 1), render.Hidden("b", "3"))
	got := render.SortedHiddenFields(fields)
	want := []render.HiddenField{{Name: "a", Value: "1"}, {Name: "b", Value: "3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
}
