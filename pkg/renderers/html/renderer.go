// Package html renders form controls and submitted records as server-side
// HTML using pongo2 templates. Forms work without JavaScript: every field
// interaction is a button that posts the whole form to a per-field event URL.
package html

import (
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

const (
	formTemplate  = "form.tmpl"
	tableTemplate = "table.tmpl"
	pageTemplate  = "page.tmpl"

	partialPrefix = "dynform."
	stylesheetKey = "dynform.css"
)

// FormView carries the form-level settings for RenderForm.
type FormView struct {
	// Action is the URL the submit button posts to.
	Action string
	// EventPrefix is joined with a field name to build its event URL.
	EventPrefix string
	Title       string
	Config      model.FormConfig
}

// PageView is a standalone document wrapping a rendered form and table.
type PageView struct {
	Title string
	Form  []byte
	Table []byte
}

// Renderer turns controls into HTML.
type Renderer struct {
	templates fs.FS
	theme     *theme.RendererConfig
	sanitizer Sanitizer
	engine    *engine
}

// New constructs a renderer over the built-in templates unless overridden.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		templates: TemplatesFS(),
		sanitizer: DefaultSanitizer(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	eng, err := newEngine(r.templates)
	if err != nil {
		return nil, err
	}
	r.engine = eng
	return r, nil
}

// RenderForm renders controls in order inside a form element. Hidden
// controls are omitted. Fields named by Layout.Groups are wrapped in one
// fieldset per group; the rest follow in schema order.
func (r *Renderer) RenderForm(controls []render.Control, view FormView) ([]byte, error) {
	rendered := make(map[string]string, len(controls))
	for _, control := range controls {
		if control.Hidden {
			continue
		}
		out, err := r.RenderControl(control, view.EventPrefix)
		if err != nil {
			return nil, err
		}
		rendered[control.Name] = out
	}

	data := map[string]any{
		"form": map[string]any{
			"action":      view.Action,
			"title":       view.Title,
			"className":   view.Config.ClassName,
			"submitLabel": view.Config.SubmitLabelOrDefault(),
		},
		"theme":      buildThemeView(r.theme),
		"stylesheet": r.assetURL(stylesheetKey),
		"sections":   buildSections(controls, rendered, view.Config.Layout.Groups),
	}
	out, err := r.engine.render(formTemplate, data)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

type sectionView struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Collapsed   bool     `json:"collapsed,omitempty"`
	Fields      []string `json:"fields"`
}

func buildSections(controls []render.Control, rendered map[string]string, groups []model.FieldGroup) []sectionView {
	grouped := make(map[string]bool)
	sections := make([]sectionView, 0, len(groups)+1)
	for _, group := range groups {
		section := sectionView{Title: group.Title, Description: group.Description, Collapsed: group.Collapsible && group.Collapsed}
		for _, name := range group.Fields {
			if out, ok := rendered[name]; ok && !grouped[name] {
				section.Fields = append(section.Fields, out)
				grouped[name] = true
			}
		}
		if len(section.Fields) > 0 {
			sections = append(sections, section)
		}
	}

	rest := sectionView{}
	for _, control := range controls {
		if out, ok := rendered[control.Name]; ok && !grouped[control.Name] {
			rest.Fields = append(rest.Fields, out)
		}
	}
	if len(rest.Fields) > 0 {
		sections = append(sections, rest)
	}
	return sections
}

// RenderControl renders a single control with the partial registered for its
// kind.
func (r *Renderer) RenderControl(control render.Control, eventPrefix string) (string, error) {
	view := newControlView(control, eventPrefix, r.sanitizer)
	return r.engine.render(r.partial(control.Kind), map[string]any{"control": view})
}

// RenderTable renders records as a table with one column per schema field,
// or per named column when columns is non-empty.
func (r *Renderer) RenderTable(schema *model.Schema, records []form.Record, columns ...string) ([]byte, error) {
	fields := schema.Fields()
	if len(columns) > 0 {
		fields = slices.DeleteFunc(fields, func(f model.FieldDescriptor) bool {
			return !slices.Contains(columns, f.Name)
		})
	}

	headers := make([]string, 0, len(fields))
	for _, field := range fields {
		headers = append(headers, labelOf(field))
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, 0, len(fields))
		for _, field := range fields {
			row = append(row, FormatValue(record[field.Name]))
		}
		rows = append(rows, row)
	}

	out, err := r.engine.render(tableTemplate, map[string]any{
		"headers": headers,
		"rows":    rows,
	})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// RenderPage wraps previously rendered fragments in a full HTML document.
func (r *Renderer) RenderPage(view PageView) ([]byte, error) {
	out, err := r.engine.render(pageTemplate, map[string]any{
		"title": view.Title,
		"form":  string(view.Form),
		"table": string(view.Table),
	})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (r *Renderer) partial(kind render.Kind) string {
	if r.theme != nil {
		if path := strings.TrimSpace(r.theme.Partials[partialPrefix+string(kind)]); path != "" {
			return path
		}
	}
	return "controls/" + string(kind) + ".tmpl"
}

func (r *Renderer) assetURL(key string) string {
	if r.theme == nil || r.theme.AssetURL == nil {
		return ""
	}
	return r.theme.AssetURL(key)
}

type themeView struct {
	Name         string `json:"name,omitempty"`
	Variant      string `json:"variant,omitempty"`
	CSSVarsStyle string `json:"cssVarsStyle,omitempty"`
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	return themeView{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	var b strings.Builder
	for _, key := range slices.Sorted(maps.Keys(vars)) {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		fmt.Fprintf(&b, "%s: %s;", name, strings.TrimSpace(vars[key]))
	}
	return b.String()
}

func labelOf(field model.FieldDescriptor) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}
