package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Fragment template names.
const (
	FragmentCatalog   = "catalog"
	FragmentServices  = "services"
	FragmentCart      = "cart"
	FragmentCartCount = "cart-count"
)

// Renderer writes view descriptions as HTML fragments.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded fragment templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse view templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the named fragment with data.
func (r *Renderer) Render(w io.Writer, fragment string, data interface{}) error {
	if r.tmpl.Lookup(fragment) == nil {
		return fmt.Errorf("unknown fragment %q", fragment)
	}
	return r.tmpl.ExecuteTemplate(w, fragment, data)
}
