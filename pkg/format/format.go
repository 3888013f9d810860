// Package format normalizes computed output values into the inline text
// representation used by tangle outputs. Results coming out of output thunks
// are classified once, at the boundary, into a small tagged variant; rendering
// then dispatches on the variant kind rather than inspecting runtime types.
package format

import (
	"fmt"
	"math"
	"strconv"
)

// Kind discriminates the output value variants.
type Kind int

const (
	// KindEmpty renders as nothing.
	KindEmpty Kind = iota
	// KindNumeric renders through the numeric formatting rule.
	KindNumeric
	// KindText renders as sanitized literal text.
	KindText
)

// Value is the tagged variant produced by Classify. The zero value is Empty.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Empty returns the absent value.
func Empty() Value {
	return Value{kind: KindEmpty}
}

// Number wraps a numeric result.
func Number(v float64) Value {
	return Value{kind: KindNumeric, num: v}
}

// Text wraps a textual result.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Kind reports the variant kind.
func (v Value) Kind() Kind {
	return v.kind
}

// Float returns the numeric payload and whether the value is numeric.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumeric
}

// Classify converts an arbitrary thunk result into a Value. Nil results map to
// Empty, Go numeric kinds map to Numeric, and everything else goes through its
// canonical textual conversion.
func Classify(result any) Value {
	switch v := result.(type) {
	case nil:
		return Empty()
	case float64:
		return Number(v)
	case float32:
		return Number(float64(v))
	case int:
		return Number(float64(v))
	case int8:
		return Number(float64(v))
	case int16:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case uint:
		return Number(float64(v))
	case uint8:
		return Number(float64(v))
	case uint16:
		return Number(float64(v))
	case uint32:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	case string:
		return Text(v)
	case fmt.Stringer:
		return Text(v.String())
	default:
		return Text(fmt.Sprint(v))
	}
}

// Render produces the inline text for the value.
//
// The numeric rule: integral values (v == floor(v)) render as a rounded
// integer with no decimal point; everything else rounds half away from zero to
// exactly one digit after the decimal point. Text values are sanitized so
// markup never reaches the surrounding page; Empty renders as "".
func (v Value) Render() string {
	switch v.kind {
	case KindNumeric:
		return Numeric(v.num)
	case KindText:
		return Sanitize(v.text)
	default:
		return ""
	}
}

// Numeric applies the inline numeric formatting rule to v. Values that round
// to zero keep a positive sign; "-0" and "-0.0" never render.
func Numeric(v float64) string {
	if v == math.Floor(v) {
		r := math.Round(v)
		if r == 0 {
			r = 0
		}
		return strconv.FormatFloat(r, 'f', -1, 64)
	}
	rounded := math.Round(v*10) / 10
	if rounded == 0 {
		rounded = 0
	}
	return strconv.FormatFloat(rounded, 'f', 1, 64)
}
