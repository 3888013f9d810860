package format

import (
	"fmt"
	"math"
	"testing"
)

func TestNumericFormattingLaw(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{6, "6"},
		{0, "0"},
		{-3, "-3"},
		{42.123, "42.1"},
		{7.37, "7.4"},
		{6.04, "6.0"},
		{-2.55, "-2.5"},
		{0.15, "0.1"},
		{19.999, "20.0"},
		{-0.04, "0.0"},
		{math.Copysign(0, -1), "0"},
		{100000, "100000"},
	}
	for _, tc := range cases {
		if got := Numeric(tc.in); got != tc.want {
			t.Errorf("Numeric(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type stamp struct{}

func (stamp) String() string { return "noon" }

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil is empty", nil, ""},
		{"float", 42.123, "42.1"},
		{"integral float", 6.0, "6"},
		{"int", 7, "7"},
		{"uint", uint16(12), "12"},
		{"string", "hello", "hello"},
		{"stringer", stamp{}, "noon"},
		{"bool falls back to text", true, "true"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.in).Render(); got != tc.want {
				t.Fatalf("Classify(%v).Render() = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestClassifyKinds(t *testing.T) {
	if Classify(nil).Kind() != KindEmpty {
		t.Fatal("nil should classify as empty")
	}
	v, ok := Classify(3.5).Float()
	if !ok || v != 3.5 {
		t.Fatalf("numeric payload lost: %v %v", v, ok)
	}
	if _, ok := Classify("3.5").Float(); ok {
		t.Fatal("strings must stay textual, not parsed")
	}
}

func TestRenderSanitizesText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"<b>bold</b>", "bold"},
		{"<script>alert(1)</script>", ""},
		{"  spaced  ", "spaced"},
		// Plain text comes back as plain text, not entity-escaped; the
		// embedding surface escapes exactly once.
		{"fish & chips", "fish & chips"},
		{"5 < 7", "5 < 7"},
	}
	for _, tc := range cases {
		if got := Text(tc.in).Render(); got != tc.want {
			t.Errorf("Text(%q).Render() = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderErrorsStayTextual(t *testing.T) {
	got := Classify(fmt.Errorf("boom")).Render()
	if got != "boom" {
		t.Fatalf("error result = %q, want %q", got, "boom")
	}
}
