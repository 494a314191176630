package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"unicode"

	"portfolio-site/internal/view"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// staticFiles is the static directory rooted at its own contents.
func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// loadTemplates parses the page template set.
func loadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"join":       strings.Join,
		"initials":   initials,
		"sections":   func() []string { return view.Sections },
		"title":      titleCase,
		"clampLevel": clampLevel,
		"field":      newFieldView,
	}

	tmpl, err := template.New("page").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return tmpl, nil
}

// fieldView is one labelled contact input.
type fieldView struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
	Value       string
	Error       string
}

func newFieldView(form view.ContactView, name, label, typ, placeholder string) fieldView {
	return fieldView{
		Name:        name,
		Label:       label,
		Type:        typ,
		Placeholder: placeholder,
		Value:       form.FieldValue(name),
		Error:       form.FieldError(name),
	}
}

// initials turns "Alex Morgan" into "AM".
func initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		b.WriteRune(unicode.ToUpper(r[0]))
	}
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func clampLevel(level int) int {
	switch {
	case level < 0:
		return 0
	case level > 100:
		return 100
	}
	return level
}
