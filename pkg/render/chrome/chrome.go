// Package chrome wraps processed document bodies into complete printable
// pages: header, footer, page geometry, and theme-derived CSS variables.
package chrome

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-docgen/pkg/render/template"
	"github.com/goliatone/go-docgen/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var chromeTemplates embed.FS

// Margins are page margins in millimeters.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins match the historical print layout.
var DefaultMargins = Margins{Top: 20, Right: 15, Bottom: 20, Left: 15}

// mmToPx converts print millimeters to screen pixels at 96 dpi.
const mmToPx = 3.78

// Document carries everything a chrome needs to produce the final page.
type Document struct {
	Title      string
	Header     string
	Body       string
	Footer     string
	PageSize   string
	Margins    Margins
	FontSizePt int
	CSSVars    map[string]string
}

// Chrome turns a Document into a standalone HTML page.
type Chrome interface {
	Name() string
	Wrap(ctx context.Context, doc Document) (string, error)
}

// ThemeSelector resolves a theme selection by name and variant. The go-theme
// registry satisfies it.
type ThemeSelector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// CSSVarsFor derives CSS custom properties from a theme selection: manifest
// tokens first, variant tokens layered on top, keys mapped to `--token-name`.
func CSSVarsFor(selection *theme.Selection, variant string) map[string]string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}

	tokens := map[string]string{}
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if variant != "" {
		if v, ok := selection.Manifest.Variants[variant]; ok {
			for key, value := range v.Tokens {
				tokens[key] = value
			}
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		out["--"+strings.ReplaceAll(key, ".", "-")] = value
	}
	return out
}

// CSSVarsStyle renders custom properties as a :root style block.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

// templateChrome renders a named chrome template through the shared engine.
type templateChrome struct {
	name     string
	engine   template.TemplateRenderer
	template string
}

// New builds a chrome that renders the given embedded template.
func New(name, templateName string) (Chrome, error) {
	engine, err := gotemplate.New(gotemplate.WithFS(chromeTemplates))
	if err != nil {
		return nil, fmt.Errorf("chrome: create engine: %w", err)
	}
	return &templateChrome{name: name, engine: engine, template: "templates/" + templateName}, nil
}

func (c *templateChrome) Name() string { return c.name }

func (c *templateChrome) Wrap(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("chrome: %w", err)
	}

	margins := doc.Margins
	if margins == (Margins{}) {
		margins = DefaultMargins
	}
	pageSize := doc.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}
	fontSize := doc.FontSizePt
	if fontSize <= 0 {
		fontSize = 11
	}

	out, err := c.engine.RenderTemplate(c.template, map[string]any{
		"title":          doc.Title,
		"header":         doc.Header,
		"body":           doc.Body,
		"footer":         doc.Footer,
		"page_size":      pageSize,
		"font_size":      fontSize,
		"css_vars_style": CSSVarsStyle(doc.CSSVars),
		"margin_top":     margins.Top,
		"margin_right":   margins.Right,
		"margin_bottom":  margins.Bottom,
		"margin_left":    margins.Left,
		"padding_top":    margins.Top * mmToPx,
		"padding_right":  margins.Right * mmToPx,
		"padding_bottom": margins.Bottom * mmToPx,
		"padding_left":   margins.Left * mmToPx,
	})
	if err != nil {
		return "", fmt.Errorf("chrome: wrap %q: %w", c.name, err)
	}
	return out, nil
}
