// Package gesture implements the state machine that turns drag, wheel, and
// direct-edit interaction into bounded, step-quantized control values. It is
// the authoritative form of the logic the embedded browser runtime mirrors,
// which keeps the interaction contract testable on the server side.
//
// The machine has two states, idle and dragging, with at most one drag session
// alive at a time. Events arrive one at a time from a cooperative event loop;
// no call blocks and every value change is emitted to the input channel
// immediately, in event order, with no debounce or coalescing.
package gesture

import (
	"math"
	"strconv"
	"strings"

	"github.com/coatless-rpkg/shinytangle/pkg/control"
	"github.com/coatless-rpkg/shinytangle/pkg/reactive"
)

// Session is the transient drag state between a press and its release.
type Session struct {
	// Control is the spec of the control being dragged.
	Control control.Spec
	// OriginY is the vertical pointer coordinate at press time.
	OriginY float64
	// OriginValue is the value parsed from the displayed text at press time.
	OriginValue float64
}

// Update describes the outcome of one interaction event: the text the control
// should now display and the quantized value emitted to the input channel.
type Update struct {
	Display string
	Value   float64
}

// Machine drives one page's drag interaction. Wheel and edit events are
// stateless; only a drag holds a session.
type Machine struct {
	channel reactive.InputChannel
	session *Session
}

// NewMachine creates a machine emitting to channel.
func NewMachine(channel reactive.InputChannel) *Machine {
	return &Machine{channel: channel}
}

// Dragging reports whether a drag session is active.
func (m *Machine) Dragging() bool {
	return m.session != nil
}

// Session returns a copy of the active session, if any.
func (m *Machine) Session() (Session, bool) {
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// PointerDown starts a drag session over ctrl. The origin value is parsed
// from the currently displayed text, defaulting to 0 when unparsable. A press
// while another session is active is ignored; this is a single-pointer model.
func (m *Machine) PointerDown(ctrl control.Spec, y float64, displayed string) {
	if m.session != nil {
		return
	}
	m.session = &Session{
		Control:     ctrl,
		OriginY:     y,
		OriginValue: parseDisplayed(displayed),
	}
}

// PointerMove advances an active drag. Dragging upward increases the value
// (inverted Y axis). The candidate is clamped to the control bounds, quantized
// to the step, and re-formatted for display. The quantized numeric, not the
// display string, is emitted to the channel. Moves without a session are
// ignored.
func (m *Machine) PointerMove(y float64) (Update, bool) {
	if m.session == nil {
		return Update{}, false
	}
	ctrl := m.session.Control
	delta := m.session.OriginY - y
	candidate := m.session.OriginValue + delta*ctrl.Sensitivity
	return m.emit(ctrl, candidate, true), true
}

// PointerUp ends the active drag session. Release anywhere on the page counts;
// the runtime listens page-globally while a session is live.
func (m *Machine) PointerUp() {
	m.session = nil
}

// Wheel moves the value one step in the direction of the scroll, clamped to
// bounds. It needs no session; the current value comes from the displayed
// text.
func (m *Machine) Wheel(ctrl control.Spec, displayed string, direction int) Update {
	step := ctrl.Step
	if direction < 0 {
		step = -step
	}
	candidate := parseDisplayed(displayed) + step
	return m.emit(ctrl, candidate, true)
}

// Edit handles a direct text change. The raw value is parsed (0 when
// unparsable), re-formatted per the step display rule, and emitted without
// bound clamping. Typed values bypass the bounds that drag and wheel enforce.
func (m *Machine) Edit(ctrl control.Spec, text string) Update {
	return m.emit(ctrl, parseDisplayed(text), false)
}

func (m *Machine) emit(ctrl control.Spec, candidate float64, clampBounds bool) Update {
	var quantized float64
	if clampBounds {
		quantized = Quantize(candidate, ctrl.Min, ctrl.Max, ctrl.Step)
	} else {
		quantized = quantizeStep(candidate, ctrl.Step)
	}
	update := Update{
		Display: control.FormatForStep(quantized, ctrl.Step),
		Value:   quantized,
	}
	if m.channel != nil {
		m.channel.SetValue(ctrl.ID, quantized)
	}
	return update
}

// Quantize clamps v into [min, max] (nil bounds are open) and rounds the
// result to the nearest multiple of step. A bound that is not itself a step
// multiple wins over quantization: the result never leaves the interval.
func Quantize(v float64, min, max *float64, step float64) float64 {
	if min != nil && v < *min {
		v = *min
	}
	if max != nil && v > *max {
		v = *max
	}
	q := quantizeStep(v, step)
	if min != nil && q < *min {
		q = *min
	}
	if max != nil && q > *max {
		q = *max
	}
	return q
}

func quantizeStep(v, step float64) float64 {
	return math.Round(v/step) * step
}

func parseDisplayed(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return v
}
