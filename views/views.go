// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

// Page templates
const (
	TemplateHome    = "home"
	TemplateQuiz    = "quiz"
	TemplateResults = "results"
	TemplatePrint   = "print"
	TemplateGifts   = "gifts"
	TemplateReset   = "reset"
	TemplateError   = "error"
)

var pageTemplates = []string{
	TemplateHome,
	TemplateQuiz,
	TemplateResults,
	TemplatePrint,
	TemplateGifts,
	TemplateReset,
	TemplateError,
}

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the base layout around one page template.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the layout once and clones it for every page, so each page
// can define its own "content" block.
func New() (*Renderer, error) {
	funcMap := template.FuncMap{
		"percent": func(score, max int) int {
			if max <= 0 {
				return 0
			}
			return score * 100 / max
		},
	}

	base, err := template.New("base").Funcs(funcMap).ParseFS(templateFS, "templates/base.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageTemplates))}
	for _, name := range pageTemplates {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page through the named template.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "base", page)
}
