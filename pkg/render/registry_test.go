package render

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coatless-rpkg/shinytangle/pkg/document"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, document.Document, Options) ([]byte, error) {
	return nil, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(stubRenderer{name: "html"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer, err := registry.Get("html")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if renderer.Name() != "html" {
		t.Fatalf("name = %q", renderer.Name())
	}
	if !registry.Has("html") || registry.Has("tui") {
		t.Fatal("Has reports wrong membership")
	}
}

func TestRegistryRejectsDuplicatesAndNil(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "html"})

	err := registry.Register(stubRenderer{name: "html"})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("duplicate error = %v", err)
	}
	if err := registry.Register(nil); err == nil {
		t.Fatal("nil renderer must be rejected")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatal("unnamed renderer must be rejected")
	}
}

func TestRegistryList(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(stubRenderer{name: "tui"})
	registry.MustRegister(stubRenderer{name: "html"})

	if diff := cmp.Diff([]string{"html", "tui"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionsValue(t *testing.T) {
	options := Options{Values: map[string]float64{"cookies": 7}}
	if got := options.Value("cookies", 3); got != 7 {
		t.Fatalf("override not applied: %v", got)
	}
	if got := options.Value("other", 3); got != 3 {
		t.Fatalf("declared value not kept: %v", got)
	}
}
