// Package control defines the descriptor for an inline numeric input: the
// value embedded in running text that readers drag, scroll, or type to change.
// The descriptor carries everything the renderer and the gesture machine need:
// bounds, step quantum, and drag sensitivity.
package control

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Defaults applied when a declaration omits step or sensitivity.
const (
	DefaultStep        = 0.1
	DefaultSensitivity = 0.1
)

// ClassName is the stable CSS class carried by every rendered control. It is
// both the styling hook and the gesture-handler attachment point used by the
// browser runtime.
const ClassName = "tangle-input"

// Spec describes one inline input control.
type Spec struct {
	// ID is the input-channel identifier. Unique among all controls on a page.
	ID string
	// Value is the declared starting value.
	Value float64
	// Min and Max bound the value during drag and wheel interaction. Nil means
	// unbounded on that side.
	Min *float64
	Max *float64
	// Step is the quantization quantum for emitted values.
	Step float64
	// Sensitivity is the value change per pixel of vertical drag.
	Sensitivity float64
}

// Option customises a control declaration.
type Option func(*Spec)

// WithMin sets the lower bound.
func WithMin(min float64) Option {
	return func(s *Spec) { s.Min = &min }
}

// WithMax sets the upper bound.
func WithMax(max float64) Option {
	return func(s *Spec) { s.Max = &max }
}

// WithStep overrides the default step quantum.
func WithStep(step float64) Option {
	return func(s *Spec) { s.Step = step }
}

// WithSensitivity overrides the default drag sensitivity.
func WithSensitivity(sensitivity float64) Option {
	return func(s *Spec) { s.Sensitivity = sensitivity }
}

// New declares a control, applying defaults and validating the invariants.
func New(id string, value float64, options ...Option) (Spec, error) {
	spec := Spec{
		ID:          strings.TrimSpace(id),
		Value:       value,
		Step:        DefaultStep,
		Sensitivity: DefaultSensitivity,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&spec)
	}
	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// Validate checks the declaration invariants.
func (s Spec) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("control: id is required")
	}
	if s.Step <= 0 {
		return fmt.Errorf("control %q: step must be positive, got %v", s.ID, s.Step)
	}
	if s.Sensitivity <= 0 {
		return fmt.Errorf("control %q: sensitivity must be positive, got %v", s.ID, s.Sensitivity)
	}
	if s.Min != nil && s.Max != nil && *s.Min > *s.Max {
		return fmt.Errorf("control %q: min %v exceeds max %v", s.ID, *s.Min, *s.Max)
	}
	return nil
}

// DisplayValue formats the declared value for first render: when both step and
// value are integral the control shows a rounded integer, otherwise it shows
// one digit after the decimal point.
func (s Spec) DisplayValue() string {
	return Display(s.Value, s.Step)
}

// Fragment is the renderable inline form of a control: the attribute strings a
// renderer needs to emit a number input in running text. Min and Max are empty
// when the corresponding bound is unset.
type Fragment struct {
	ID          string
	Class       string
	Value       string
	Min         string
	Max         string
	Step        string
	Sensitivity string
}

// Fragment prepares the control for rendering, optionally substituting the
// declared value with current.
func (s Spec) Fragment(current float64) Fragment {
	return Fragment{
		ID:          s.ID,
		Class:       ClassName,
		Value:       Display(current, s.Step),
		Min:         boundAttr(s.Min),
		Max:         boundAttr(s.Max),
		Step:        attr(s.Step),
		Sensitivity: attr(s.Sensitivity),
	}
}

func boundAttr(bound *float64) string {
	if bound == nil {
		return ""
	}
	return attr(*bound)
}

func attr(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Display applies the first-render formatting rule to an arbitrary value, for
// callers that override the declared value at render time. The non-integer
// branch keeps full precision: the rule is at least one decimal digit, and the
// displayed text is also the drag origin, so rounding here would shift where
// a drag starts from.
func Display(v, step float64) string {
	if isIntegral(step) && isIntegral(v) {
		return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
	}
	text := strconv.FormatFloat(trimNoise(v), 'f', -1, 64)
	if !strings.ContainsRune(text, '.') {
		text += ".0"
	}
	return text
}

// trimNoise rounds away accumulated float error so step-grid values such as
// 3*0.1 display as 0.3, not 0.30000000000000004. Nine decimals is far finer
// than any plausible step while coarse enough to absorb the error.
func trimNoise(v float64) float64 {
	if math.Abs(v) >= 1e12 {
		return v
	}
	return math.Round(v*1e9) / 1e9
}

// FormatForStep formats an in-flight value the way the gesture machine
// re-displays it: integer style when the step is exactly 1, fixed one-decimal
// style otherwise. Note the narrower rule than DisplayValue; first render
// treats any integral step as integer style, interaction only step == 1.
func FormatForStep(v, step float64) string {
	if step == 1 {
		return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func isIntegral(v float64) bool {
	return v == math.Floor(v)
}
