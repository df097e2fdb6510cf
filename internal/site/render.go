package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes page templates.
//
// Thread-safety: a Renderer is safe for concurrent use once created.
type Renderer struct {
	pages map[string]*template.Template
}

// pageNames lists the body templates; each is parsed together with the layout.
var pageNames = []string{"home", "news", "subscribed"}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").ParseFS(templateFS,
			"templates/layout.html",
			"templates/header.html",
			"templates/latest.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render writes page as a complete HTML document. The page is rendered into a
// buffer first so a template error never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page Page) error {
	tmpl, ok := r.pages[page.TemplateName()]
	if !ok {
		return fmt.Errorf("unknown page template %q", page.TemplateName())
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return fmt.Errorf("render %s: %w", page.TemplateName(), err)
	}
	_, err := buf.WriteTo(w)
	return err
}
