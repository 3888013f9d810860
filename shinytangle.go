// Package shinytangle turns running prose into tangle documents: sentences
// with draggable numbers inline and reactive outputs that reformat as the
// numbers change. The root package is a thin facade over pkg/document,
// pkg/render, and the built-in renderers; advanced callers wire those
// packages directly.
package shinytangle

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/coatless-rpkg/shinytangle/pkg/document"
	"github.com/coatless-rpkg/shinytangle/pkg/reactive"
	"github.com/coatless-rpkg/shinytangle/pkg/render"
	htmlrenderer "github.com/coatless-rpkg/shinytangle/pkg/renderers/html"
)

const defaultRendererName = "html"

// Option customises the generator configuration.
type Option func(*Generator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(g *Generator) {
		g.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(g *Generator) {
		g.defaultRenderer = name
	}
}

// WithThunks registers the output computations used to prefill output slots
// before the page is rendered.
func WithThunks(thunks *document.Thunks) Option {
	return func(g *Generator) {
		g.thunks = thunks
	}
}

// WithThemeSelector passes a go-theme selector through so theme and variant
// choices can be resolved into CSS variables ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(g *Generator) {
		g.themeSelector = selector
		g.themeName = defaultTheme
		g.themeVariant = defaultVariant
	}
}

// Generator coordinates the document loader, thunk evaluation, and renderer
// selection. Missing dependencies are initialised with the built-in
// implementations so callers can start with a single constructor call.
type Generator struct {
	registry        *render.Registry
	defaultRenderer string
	thunks          *document.Thunks
	themeSelector   theme.ThemeSelector
	themeName       string
	themeVariant    string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs a Generator applying any provided options.
func New(options ...Option) *Generator {
	g := &Generator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	g.applyDefaults()
	return g
}

// Request describes the inputs required to render a tangle document.
type Request struct {
	// Source is a path to a YAML document. Optional when Document is supplied.
	Source string

	// Document allows callers to bypass the loader when they already have a
	// built document.
	Document *document.Document

	// Renderer names the renderer to use. If empty, the generator falls back
	// to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant select a theme when a selector is configured.
	// Empty values fall back to the generator defaults.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request instructions such as prefilled control
	// values. Output text computed from registered thunks is merged in.
	RenderOptions render.Options
}

// Generate executes the loader, thunk evaluation, and renderer sequence and
// returns the rendered bytes (HTML for the default renderer).
func (g *Generator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("shinytangle: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.initialiseErr; err != nil {
		return nil, err
	}

	doc, err := g.resolveDocument(req)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("shinytangle: %w", err)
	}

	options := req.RenderOptions
	if err := g.computeOutputs(doc, &options); err != nil {
		return nil, err
	}
	if err := g.resolveTheme(req, &options); err != nil {
		return nil, err
	}

	renderer, err := g.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, doc, options)
	if err != nil {
		return nil, fmt.Errorf("shinytangle: render output: %w", err)
	}
	return output, nil
}

// GenerateHTML loads the YAML document at source and renders it with the
// default html renderer. It is the simplest entry point for callers that just
// want a page.
func GenerateHTML(ctx context.Context, source string, options ...Option) ([]byte, error) {
	gen := New(options...)
	return gen.Generate(ctx, Request{Source: source})
}

func (g *Generator) resolveDocument(req Request) (document.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == "" {
		return document.Document{}, errors.New("shinytangle: source or document is required")
	}
	doc, err := document.LoadFile(req.Source)
	if err != nil {
		return document.Document{}, fmt.Errorf("shinytangle: load document: %w", err)
	}
	return doc, nil
}

// computeOutputs runs the registered thunks once against the declared control
// values (plus any per-request overrides) so output slots arrive prefilled
// instead of empty until the first client round trip.
func (g *Generator) computeOutputs(doc document.Document, options *render.Options) error {
	if g.thunks == nil {
		return nil
	}

	sched := reactive.NewScheduler()
	values := reactive.NewValues(sched)
	for _, spec := range doc.Controls() {
		values.Seed(spec.ID, options.Value(spec.ID, spec.Value))
	}

	outputs := make(map[string]string)
	var failure error
	for _, id := range doc.OutputIDs() {
		thunk, ok := g.thunks.Bind(id, values)
		if !ok {
			continue
		}
		_, err := sched.Bind(id, thunk, func(id, text string) {
			outputs[id] = text
		}, errorSinkFunc(func(id string, err error) {
			if failure == nil {
				failure = fmt.Errorf("shinytangle: output %q: %w", id, err)
			}
		}))
		if err != nil {
			return fmt.Errorf("shinytangle: %w", err)
		}
	}
	sched.Flush()
	if failure != nil {
		return failure
	}

	if len(outputs) == 0 {
		return nil
	}
	if options.Outputs == nil {
		options.Outputs = make(map[string]string, len(outputs))
	}
	for id, text := range outputs {
		if _, exists := options.Outputs[id]; !exists {
			options.Outputs[id] = text
		}
	}
	return nil
}

func (g *Generator) resolveTheme(req Request, options *render.Options) error {
	if g.themeSelector == nil || options.Theme != nil {
		return nil
	}

	name := req.ThemeName
	if name == "" {
		name = g.themeName
	}
	variant := req.ThemeVariant
	if variant == "" {
		variant = g.themeVariant
	}
	if name == "" {
		return nil
	}

	selection, err := g.themeSelector.Select(name, variant)
	if err != nil {
		return fmt.Errorf("shinytangle: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil
	}

	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}
	if selection.Manifest != nil {
		cfg.Tokens = selection.Manifest.Tokens
	}
	options.Theme = cfg
	return nil
}

func (g *Generator) rendererFor(name string) (render.Renderer, error) {
	if g.registry == nil {
		return nil, errors.New("shinytangle: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = g.defaultRenderer
	}

	if target != "" {
		renderer, err := g.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("shinytangle: renderer %q: %w", name, err)
		}
	}

	names := g.registry.List()
	if len(names) == 0 {
		return nil, errors.New("shinytangle: no renderers registered")
	}
	renderer, err := g.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("shinytangle: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (g *Generator) applyDefaults() {
	if g.defaultsApplied {
		return
	}

	if g.registry == nil {
		g.registry = render.NewRegistry()
		renderer, err := htmlrenderer.New()
		if err != nil {
			g.initialiseErr = fmt.Errorf("shinytangle: default renderer: %w", err)
		} else {
			g.registry.MustRegister(renderer)
		}
	}
	if g.defaultRenderer == "" {
		g.defaultRenderer = defaultRendererName
	}

	g.defaultsApplied = true
}

type errorSinkFunc func(id string, err error)

func (f errorSinkFunc) OutputError(id string, err error) { f(id, err) }
