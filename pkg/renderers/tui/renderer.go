// Package tui previews tangle documents in a terminal session: each control
// is adjusted through a prompt, values are clamped and quantized exactly like
// a drag, outputs are recomputed through the scheduler, and the finished
// sentence is printed with the interactive values substituted inline.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/coatless-rpkg/shinytangle/pkg/control"
	"github.com/coatless-rpkg/shinytangle/pkg/document"
	"github.com/coatless-rpkg/shinytangle/pkg/gesture"
	"github.com/coatless-rpkg/shinytangle/pkg/reactive"
	"github.com/coatless-rpkg/shinytangle/pkg/render"
)

// Option customises the renderer.
type Option func(*Renderer)

// WithDriver swaps the prompt driver, typically for tests.
func WithDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithThunks supplies the output computations looked up by output identifier.
func WithThunks(thunks *document.Thunks) Option {
	return func(r *Renderer) {
		r.thunks = thunks
	}
}

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver PromptDriver
	thunks *document.Thunks
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with the survey driver by default.
func New(options ...Option) (*Renderer, error) {
	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}

	r := &Renderer{driver: driver}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization of Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render prompts for every control in document order, pushes the adjusted
// values through the input channel, flushes the scheduler once, and prints
// the document with values and outputs substituted inline.
func (r *Renderer) Render(ctx context.Context, doc document.Document, options render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	sched := reactive.NewScheduler()
	values := reactive.NewValues(sched)

	rendered := make(map[string]string)
	var thunkErr error
	sink := errorSinkFunc(func(id string, err error) {
		if thunkErr == nil {
			thunkErr = fmt.Errorf("tui: output %q: %w", id, err)
		}
	})
	bindings := make([]*reactive.Binding, 0, len(doc.OutputIDs()))
	for _, id := range doc.OutputIDs() {
		thunk, ok := r.thunks.Bind(id, values)
		if !ok {
			continue
		}
		binding, err := sched.Bind(id, thunk, func(id, text string) {
			rendered[id] = text
		}, sink)
		if err != nil {
			return nil, fmt.Errorf("tui: %w", err)
		}
		bindings = append(bindings, binding)
	}

	// Every output in a document may read any control; attach each binding to
	// every control token rather than tracking fine-grained reads.
	current := make(map[string]float64)
	for _, spec := range doc.Controls() {
		token := values.Watch(spec.ID)
		for _, binding := range bindings {
			token.Attach(binding)
		}

		value := options.Value(spec.ID, spec.Value)
		adjusted, err := r.promptValue(ctx, spec, value)
		if err != nil {
			return nil, err
		}
		values.Seed(spec.ID, adjusted)
		current[spec.ID] = adjusted
	}
	sched.Flush()
	if thunkErr != nil {
		return nil, thunkErr
	}

	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(doc.Title)
		b.WriteString("\n\n")
	}
	for _, segment := range doc.Segments {
		switch segment.Kind {
		case document.SegmentText:
			b.WriteString(segment.Text)
		case document.SegmentControl:
			b.WriteString(control.Display(current[segment.Control.ID], segment.Control.Step))
		case document.SegmentOutput:
			b.WriteString(rendered[segment.OutputID])
		}
	}
	b.WriteString("\n")
	return []byte(b.String()), nil
}

func (r *Renderer) promptValue(ctx context.Context, spec control.Spec, value float64) (float64, error) {
	answer, err := r.driver.Input(ctx, InputConfig{
		Message:   spec.ID,
		Default:   control.Display(value, spec.Step),
		Help:      boundsHelp(spec),
		Validator: validateNumber,
	})
	if err != nil {
		return 0, fmt.Errorf("tui: prompt %q: %w", spec.ID, err)
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
	if err != nil {
		parsed = 0
	}
	return gesture.Quantize(parsed, spec.Min, spec.Max, spec.Step), nil
}

type errorSinkFunc func(id string, err error)

func (f errorSinkFunc) OutputError(id string, err error) { f(id, err) }

func validateNumber(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		return fmt.Errorf("%q is not a number", text)
	}
	return nil
}

func boundsHelp(spec control.Spec) string {
	var parts []string
	if spec.Min != nil {
		parts = append(parts, "min "+strconv.FormatFloat(*spec.Min, 'f', -1, 64))
	}
	if spec.Max != nil {
		parts = append(parts, "max "+strconv.FormatFloat(*spec.Max, 'f', -1, 64))
	}
	parts = append(parts, "step "+strconv.FormatFloat(spec.Step, 'f', -1, 64))
	return strings.Join(parts, ", ")
}
