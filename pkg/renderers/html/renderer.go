// Package html renders tangle documents as complete HTML pages: running text
// with inline number inputs and output spans, shared assets included once per
// page, and optional theme tokens exposed as CSS custom properties.
package html

import (
	"context"
	"fmt"
	"html"
	"io/fs"
	"strings"

	"github.com/coatless-rpkg/shinytangle/pkg/control"
	"github.com/coatless-rpkg/shinytangle/pkg/document"
	"github.com/coatless-rpkg/shinytangle/pkg/render"
	rendertemplate "github.com/coatless-rpkg/shinytangle/pkg/render/template"
	gotemplate "github.com/coatless-rpkg/shinytangle/pkg/render/template/gotemplate"
)

// DefaultUpdateEndpoint is where the browser runtime posts value updates
// unless the renderer is configured otherwise.
const DefaultUpdateEndpoint = "/tangle/value"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	updateEndpoint   string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithUpdateEndpoint overrides the path the browser runtime posts control
// value updates to.
func WithUpdateEndpoint(path string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(path) != "" {
			cfg.updateEndpoint = path
		}
	}
}

// Renderer is the default tangle renderer producing full HTML pages.
type Renderer struct {
	templates      rendertemplate.TemplateRenderer
	updateEndpoint string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:     TemplatesFS(),
		updateEndpoint: DefaultUpdateEndpoint,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:      renderer,
		updateEndpoint: cfg.updateEndpoint,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render walks the document segments in flow order and assembles the page.
// Control segments register the shared asset bundle; the registry guarantees
// the bundle is emitted once no matter how many controls the page declares.
func (r *Renderer) Render(ctx context.Context, doc document.Document, options render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("html renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}

	assets := newAssetRegistry()

	var body strings.Builder
	for i, segment := range doc.Segments {
		switch segment.Kind {
		case document.SegmentText:
			body.WriteString(html.EscapeString(segment.Text))
		case document.SegmentControl:
			assets.include(bundleTangle)
			markup, err := r.renderControl(segment.Control, options)
			if err != nil {
				return nil, fmt.Errorf("html renderer: segment %d: %w", i, err)
			}
			body.WriteString(markup)
		case document.SegmentOutput:
			markup, err := r.renderOutput(segment.OutputID, options)
			if err != nil {
				return nil, fmt.Errorf("html renderer: segment %d: %w", i, err)
			}
			body.WriteString(markup)
		}
	}

	page, err := r.templates.RenderTemplate("templates/page.tmpl", map[string]any{
		"title":       doc.Title,
		"body":        body.String(),
		"head":        assets.headMarkup(options.AssetBase),
		"scripts":     assets.scriptMarkup(options.AssetBase),
		"theme_style": themeStyle(options.Theme),
		"endpoint":    r.updateEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render page: %w", err)
	}
	return []byte(page), nil
}

func (r *Renderer) renderControl(spec control.Spec, options render.Options) (string, error) {
	fragment := spec.Fragment(options.Value(spec.ID, spec.Value))
	data := map[string]any{
		"id":          fragment.ID,
		"class":       fragment.Class,
		"value":       fragment.Value,
		"min":         fragment.Min,
		"max":         fragment.Max,
		"step":        fragment.Step,
		"sensitivity": fragment.Sensitivity,
	}
	markup, err := r.templates.RenderTemplate("templates/control.tmpl", data)
	if err != nil {
		return "", fmt.Errorf("render control %q: %w", spec.ID, err)
	}
	return strings.TrimSpace(markup), nil
}

func (r *Renderer) renderOutput(id string, options render.Options) (string, error) {
	markup, err := r.templates.RenderTemplate("templates/output.tmpl", map[string]any{
		"id":   id,
		"text": options.Outputs[id],
	})
	if err != nil {
		return "", fmt.Errorf("render output %q: %w", id, err)
	}
	return strings.TrimSpace(markup), nil
}

