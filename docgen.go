// Package docgen generates school documents from HTML templates and variable
// bags: conditional sections, loops, substitution, formulas, interactive form
// fields, and signature zones, optionally wrapped in a printable page chrome.
package docgen

import (
	"context"
	"errors"
	"fmt"
	"log"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-docgen/pkg/render"
	"github.com/goliatone/go-docgen/pkg/render/chrome"
	"github.com/goliatone/go-docgen/pkg/signature"
	"github.com/goliatone/go-docgen/pkg/vars"
)

// Logger is the minimal logging surface the generator needs.
type Logger interface {
	Printf(format string, args ...any)
}

// Option customises the generator configuration.
type Option func(*Generator)

// WithStore injects the persisted signature source used by the signature
// stage. Without a store, signature fields render as empty zones.
func WithStore(store signature.Store) Option {
	return func(g *Generator) {
		g.store = store
	}
}

// WithLogger overrides the default standard-library logger.
func WithLogger(logger Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithChromeRegistry injects a custom chrome registry.
func WithChromeRegistry(registry *chrome.Registry) Option {
	return func(g *Generator) {
		g.chromes = registry
	}
}

// WithDefaultChrome names the chrome used when a request omits one.
func WithDefaultChrome(name string) Option {
	return func(g *Generator) {
		g.defaultChrome = name
	}
}

// WithThemeSelector passes a go-theme selector so chrome pages receive the
// theme's CSS variables.
func WithThemeSelector(selector chrome.ThemeSelector, themeName, variant string) Option {
	return func(g *Generator) {
		g.themes = selector
		g.themeName = themeName
		g.themeVariant = variant
	}
}

// WithLocale sets the document language exposed to templates as {langue}
// when the variable bag does not carry one. Defaults to "fr".
func WithLocale(locale string) Option {
	return func(g *Generator) {
		if locale != "" {
			g.locale = locale
		}
	}
}

// WithRawHTMLKeys overrides the variable names whose values are sanitized as
// HTML fragments instead of escaped.
func WithRawHTMLKeys(keys ...string) Option {
	return func(g *Generator) {
		g.rawHTMLKeys = keys
	}
}

// WithStagePolicy overrides the failure policy of a named pipeline stage.
func WithStagePolicy(stage string, policy render.FailurePolicy) Option {
	return func(g *Generator) {
		if g.stagePolicies == nil {
			g.stagePolicies = map[string]render.FailurePolicy{}
		}
		g.stagePolicies[stage] = policy
	}
}

// Generator coordinates the rendering pipeline and the page chrome. It
// applies sensible defaults (embedded chromes, escaped values, degrading
// signature stage) while remaining open to dependency injection.
type Generator struct {
	store         signature.Store
	logger        Logger
	chromes       *chrome.Registry
	defaultChrome string
	themes        chrome.ThemeSelector
	themeName     string
	themeVariant  string
	locale        string
	rawHTMLKeys   []string
	stagePolicies map[string]render.FailurePolicy

	initialiseErr   error
	defaultsApplied bool
}

// New constructs a Generator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Generator {
	g := &Generator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	g.applyDefaults()
	return g
}

func (g *Generator) applyDefaults() {
	g.defaultsApplied = true
	if g.logger == nil {
		g.logger = log.Default()
	}
	if g.locale == "" {
		g.locale = "fr"
	}
	if g.rawHTMLKeys == nil {
		g.rawHTMLKeys = render.DefaultRawHTMLKeys
	}
	if g.chromes == nil {
		registry, err := chrome.DefaultRegistry()
		if err != nil {
			g.initialiseErr = fmt.Errorf("docgen: initialise chromes: %w", err)
			return
		}
		g.chromes = registry
	}
}

// Request describes one document render.
type Request struct {
	// Template is the raw HTML template to process.
	Template string

	// Variables feeds conditionals, loops, substitution and formulas.
	Variables vars.Bag

	// DocumentID scopes signature lookups. Without one, signature zones
	// render empty or variable-filled instead of signed.
	DocumentID string

	// Chrome names the page chrome to wrap the result in. Empty uses the
	// configured default; none configured means the processed body is
	// returned bare.
	Chrome string

	// Title, Header and Footer feed the chrome. Header and footer go
	// through the same variable pipeline as the body.
	Title  string
	Header string
	Footer string

	// PageSize, FontSizePt and Margins override the chrome defaults.
	PageSize   string
	FontSizePt int
	Margins    chrome.Margins
}

// Generate runs the template through the full stage pipeline and wraps the
// result in the requested chrome.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	if ctx == nil {
		return "", errors.New("docgen: context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := g.initialiseErr; err != nil {
		return "", err
	}
	if !g.defaultsApplied {
		g.applyDefaults()
		if err := g.initialiseErr; err != nil {
			return "", err
		}
	}
	if req.Template == "" {
		return "", errors.New("docgen: template is required")
	}

	bag := req.Variables
	if bag == nil {
		bag = vars.Bag{}
	}
	bag = vars.Flatten(bag)
	if _, ok := bag["langue"]; !ok {
		bag["langue"] = g.locale
	}

	pipeline := g.pipeline(req.DocumentID)
	body, err := pipeline.Run(ctx, req.Template, bag)
	if err != nil {
		return "", err
	}

	chromeName := req.Chrome
	if chromeName == "" {
		chromeName = g.defaultChrome
	}
	if chromeName == "" {
		return body, nil
	}

	page, err := g.chromes.Get(chromeName)
	if err != nil {
		return "", fmt.Errorf("docgen: %w", err)
	}

	header, footer := req.Header, req.Footer
	if header != "" {
		if header, err = pipeline.Run(ctx, header, bag); err != nil {
			return "", fmt.Errorf("docgen: render header: %w", err)
		}
	}
	if footer != "" {
		if footer, err = pipeline.Run(ctx, footer, bag); err != nil {
			return "", fmt.Errorf("docgen: render footer: %w", err)
		}
	}

	out, err := page.Wrap(ctx, chrome.Document{
		Title:      req.Title,
		Header:     header,
		Body:       body,
		Footer:     footer,
		PageSize:   req.PageSize,
		Margins:    req.Margins,
		FontSizePt: req.FontSizePt,
		CSSVars:    g.cssVars(),
	})
	if err != nil {
		return "", fmt.Errorf("docgen: %w", err)
	}
	return out, nil
}

func (g *Generator) pipeline(documentID string) *render.Pipeline {
	sanitizer := render.NewValueSanitizer(g.rawHTMLKeys...)

	stages := []render.StageConfig{
		g.stage(render.TemplateStage(sanitizer), render.Propagate),
		g.stage(render.FormulaStage(), render.Propagate),
		g.stage(render.HyperlinkStage(), render.Propagate),
		g.stage(render.BarcodeStage(), render.Propagate),
		g.stage(render.LogoStage(), render.Propagate),
		g.stage(render.CleanupStage(), render.Propagate),
		g.stage(render.FormFieldStage(), render.Propagate),
	}

	// Signature zones always render. Without a document id the injector
	// skips the store lookup and every zone comes out empty or
	// variable-filled.
	injector := signature.NewInjector(
		signature.WithStore(g.store),
		signature.WithLogger(g.logger),
	)
	stages = append(stages, g.stage(render.SignatureStage(injector, documentID), render.Degrade))

	return render.NewPipeline(stages, render.WithPipelineLogger(g.logger))
}

func (g *Generator) stage(s render.Stage, fallback render.FailurePolicy) render.StageConfig {
	policy := fallback
	if override, ok := g.stagePolicies[s.Name()]; ok {
		policy = override
	}
	return render.StageConfig{Stage: s, Policy: policy}
}

func (g *Generator) cssVars() map[string]string {
	if g.themes == nil || g.themeName == "" {
		return nil
	}
	selection, err := g.themes.Select(g.themeName, g.themeVariant)
	if err != nil {
		g.logger.Printf("docgen: theme %q not resolved: %v", g.themeName, err)
		return nil
	}
	return chrome.CSSVarsFor(selection, g.themeVariant)
}

// GenerateHTML is the simplest entry point: process the template with the
// given variables and return the resulting HTML.
func GenerateHTML(ctx context.Context, template string, variables vars.Bag, options ...Option) (string, error) {
	gen := New(options...)
	return gen.Generate(ctx, Request{Template: template, Variables: variables})
}

// GenerateDocument renders a template for a persisted document so signature
// zones resolve against its signing records.
func GenerateDocument(ctx context.Context, template string, variables vars.Bag, documentID string, options ...Option) (string, error) {
	gen := New(options...)
	return gen.Generate(ctx, Request{Template: template, Variables: variables, DocumentID: documentID})
}

// ThemeSelection re-exports the go-theme selection type for callers wiring
// WithThemeSelector.
type ThemeSelection = theme.Selection
