package html_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/renderers/html"
)

func sampleController(t *testing.T, defaults map[string]any) *form.Controller {
	t.Helper()
	schema, err := model.NewSchema(
		model.FieldDescriptor{Name: "name", Type: model.FieldTypeText, Label: "Name", Required: true},
		model.FieldDescriptor{Name: "age", Type: model.FieldTypeNumber, Label: "Age", Min: model.Float(0), Max: model.Float(150)},
		model.FieldDescriptor{Name: "role", Type: model.FieldTypeSelect, Label: "Role", Options: []model.Option{
			{Label: "User", Value: "user"},
			{Label: "Admin", Value: "admin"},
		}},
		model.FieldDescriptor{Name: "bio", Type: model.FieldTypeTextarea, Label: "Bio", HelperText: `Keep it <b>short</b><script>alert(1)</script>`},
		model.FieldDescriptor{Name: "newsletter", Type: model.FieldTypeCheckbox, Label: "Newsletter"},
		model.FieldDescriptor{Name: "rating", Type: model.FieldTypeRating, Label: "Rating"},
		model.FieldDescriptor{Name: "regions", Type: model.FieldTypeMultiSelect, Label: "Regions", AddNewOption: true, Options: []model.Option{
			{Label: "Europe", Value: "europe"},
			{Label: "North America", Value: "north-america"},
		}},
		model.FieldDescriptor{Name: "secret", Type: model.FieldTypeText, Hidden: true},
	)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	controller, err := form.New(schema, form.WithDefaults(defaults))
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	return controller
}

func TestRenderForm_BuiltInTemplates(t *testing.T) {
	controller := sampleController(t, map[string]any{
		"name":       "Ann <admin>",
		"age":        34,
		"role":       "admin",
		"newsletter": true,
		"rating":     3,
		"regions":    []string{"europe"},
	})
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.RenderForm(controller.Render(), html.FormView{
		Action:      "/submit",
		EventPrefix: "/fields/",
		Config:      model.FormConfig{SubmitLabel: "Add User"},
	})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	got := string(out)

	for _, want := range []string{
		`action="/submit"`,
		`value="Ann &lt;admin&gt;"`,
		`type="number" value="34" min="0" max="150"`,
		`<option value="admin" selected>Admin</option>`,
		`Keep it <b>short</b>`,
		`name="newsletter" type="checkbox" value="on" checked`,
		`name="rating" value="3" checked`,
		`formaction="/fields/regions?_action=remove&amp;_value=europe"`,
		`formaction="/fields/regions?_action=select&amp;_value=north-america"`,
		`name="_pending.regions"`,
		`>Add User</button>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
	if n, m := strings.Count(got, "formaction="), strings.Count(got, "formnovalidate"); n != 3 || m != n {
		t.Errorf("event buttons: formaction=%d formnovalidate=%d, want 3 each", n, m)
	}
	if !strings.Contains(got, `<button type="submit" class="dynform__submit">Add User</button>`) {
		t.Errorf("submit button should keep browser validation:\n%s", got)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("helper text was not sanitized:\n%s", got)
	}
	if strings.Contains(got, `name="secret"`) {
		t.Errorf("hidden control rendered:\n%s", got)
	}
	if strings.Index(got, `name="name"`) > strings.Index(got, `name="age"`) {
		t.Errorf("controls out of schema order")
	}
}

func TestRenderForm_PasswordValueIsNotEchoed(t *testing.T) {
	schema := model.MustSchema(
		model.FieldDescriptor{Name: "password", Type: model.FieldTypePassword, Label: "Password"},
	)
	controller, err := form.New(schema, form.WithDefaults(map[string]any{"password": "hunter2"}))
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.RenderForm(controller.Render(), html.FormView{Action: "/submit"})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, `type="password" value=""`) {
		t.Errorf("password input should render empty:\n%s", got)
	}
	if strings.Contains(got, "hunter2") {
		t.Errorf("stored password leaked into markup:\n%s", got)
	}
}

func TestRenderForm_ThemeConfig(t *testing.T) {
	controller := sampleController(t, nil)
	overrides := fstest.MapFS{
		"form.tmpl":                 &fstest.MapFile{Data: []byte(`<form style="{{ theme.cssVarsStyle }}" data-theme="{{ theme.name }}" data-css="{{ stylesheet }}">{% for section in sections %}{% for field in section.fields %}{{ field|safe }}{% endfor %}{% endfor %}</form>`)},
		"themes/acme/input.tmpl":    &fstest.MapFile{Data: []byte(`<acme-input name="{{ control.name }}">`)},
		"controls/textarea.tmpl":    &fstest.MapFile{Data: []byte(`<textarea name="{{ control.name }}"></textarea>`)},
		"controls/select.tmpl":      &fstest.MapFile{Data: []byte(`<select name="{{ control.name }}"></select>`)},
		"controls/checkbox.tmpl":    &fstest.MapFile{Data: []byte(`<checkbox name="{{ control.name }}">`)},
		"controls/rating.tmpl":      &fstest.MapFile{Data: []byte(`<rating name="{{ control.name }}">`)},
		"controls/multiselect.tmpl": &fstest.MapFile{Data: []byte(`<multi name="{{ control.name }}">`)},
	}
	renderer, err := html.New(
		html.WithTemplatesFS(overrides),
		html.WithTheme(&theme.RendererConfig{
			Theme:    "acme",
			Variant:  "dark",
			CSSVars:  map[string]string{"--brand": "#123456", "accent": "red"},
			Partials: map[string]string{"dynform.input": "themes/acme/input.tmpl"},
			AssetURL: func(key string) string { return "/themes/acme/" + key },
		}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.RenderForm(controller.Render(), html.FormView{})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	got := string(out)
	for _, want := range []string{
		`style="--brand: #123456;--accent: red;"`,
		`data-theme="acme"`,
		`data-css="/themes/acme/dynform.css"`,
		`<acme-input name="name">`,
		`<acme-input name="age">`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
}

func TestRenderForm_LayoutGroups(t *testing.T) {
	controller := sampleController(t, nil)
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.RenderForm(controller.Render(), html.FormView{
		Config: model.FormConfig{Layout: model.Layout{Groups: []model.FieldGroup{
			{Title: "Profile <1>", Fields: []string{"bio", "name", "secret"}},
		}}},
	})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	got := string(out)

	legend := strings.Index(got, "<legend>Profile &lt;1&gt;</legend>")
	bio := strings.Index(got, `name="bio"`)
	name := strings.Index(got, `name="name"`)
	closing := strings.Index(got, "</fieldset>\n")
	age := strings.Index(got, `name="age"`)
	if legend < 0 || !(legend < bio && bio < name && name < closing && closing < age) {
		t.Fatalf("grouped fields out of place:\n%s", got)
	}
	if strings.Contains(got, `name="secret"`) {
		t.Fatalf("hidden control rendered inside group:\n%s", got)
	}
}

func TestRenderPage(t *testing.T) {
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.RenderPage(html.PageView{Title: "Users & Co", Form: []byte("<form></form>"), Table: []byte("<table></table>")})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	for _, want := range []string{"<title>Users &amp; Co</title>", "<form></form>", "<table></table>"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("page missing %q\n%s", want, out)
		}
	}
}

func TestRenderTable(t *testing.T) {
	controller := sampleController(t, nil)
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	empty, err := renderer.RenderTable(controller.Schema(), nil, "name", "age")
	if err != nil {
		t.Fatalf("render empty table: %v", err)
	}
	if !strings.Contains(string(empty), `colspan="2">No records yet`) {
		t.Fatalf("empty table missing placeholder:\n%s", empty)
	}

	records := []form.Record{
		{"name": "Ann", "age": float64(34), "newsletter": true, "regions": []string{"europe", "asia"}},
	}
	out, err := renderer.RenderTable(controller.Schema(), records, "name", "age", "newsletter", "regions")
	if err != nil {
		t.Fatalf("render table: %v", err)
	}
	got := string(out)
	for _, want := range []string{
		`<th>Name</th><th>Age</th><th>Newsletter</th><th>Regions</th>`,
		`<td>Ann</td><td>34</td><td>Yes</td><td>europe, asia</td>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q\n%s", want, got)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := map[string]struct {
		in   any
		want string
	}{
		"true":   {in: true, want: "Yes"},
		"false":  {in: false, want: "No"},
		"list":   {in: []string{"a", "b"}, want: "a, b"},
		"any":    {in: []any{"a", float64(2)}, want: "a, 2"},
		"number": {in: float64(4.5), want: "4.5"},
		"nil":    {in: nil, want: ""},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, html.FormatValue(tc.in)); diff != "" {
				t.Fatalf("FormatValue mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
