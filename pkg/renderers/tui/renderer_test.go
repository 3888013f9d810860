package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/coatless-rpkg/shinytangle/pkg/control"
	"github.com/coatless-rpkg/shinytangle/pkg/document"
	"github.com/coatless-rpkg/shinytangle/pkg/reactive"
	"github.com/coatless-rpkg/shinytangle/pkg/render"
)

// scriptedDriver answers prompts from a fixed map and records what it was
// asked, standing in for a live terminal.
type scriptedDriver struct {
	answers map[string]string
	asked   []InputConfig
	err     error
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	d.asked = append(d.asked, cfg)
	if d.err != nil {
		return "", d.err
	}
	if answer, ok := d.answers[cfg.Message]; ok {
		return answer, nil
	}
	return cfg.Default, nil
}

func mustControl(t *testing.T, id string, value float64, options ...control.Option) control.Spec {
	t.Helper()
	spec, err := control.New(id, value, options...)
	if err != nil {
		t.Fatalf("control %q: %v", id, err)
	}
	return spec
}

func cookieDocument(t *testing.T) document.Document {
	t.Helper()
	cookies := mustControl(t, "cookies", 3,
		control.WithMin(1), control.WithMax(20), control.WithStep(1))
	doc, err := document.New("Snacks",
		document.Text("Eating "),
		document.Control(cookies),
		document.Text(" cookies gives you "),
		document.Output("calories"),
		document.Text(" calories."),
	)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	return doc
}

func cookieThunks() *document.Thunks {
	thunks := document.NewThunks()
	thunks.MustRegister("calories", func(in reactive.Inputs) (any, error) {
		return in.Float("cookies") * 50, nil
	})
	return thunks
}

func TestRenderComputesOutputsFromAnswers(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{"cookies": "5"}}
	r, err := New(WithDriver(driver), WithThunks(cookieThunks()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := r.Render(context.Background(), cookieDocument(t), render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	got := string(out)
	want := "Snacks\n\nEating 5 cookies gives you 250 calories.\n"
	if got != want {
		t.Fatalf("rendered = %q, want %q", got, want)
	}
}

func TestRenderClampsAndQuantizesAnswers(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{"cookies": "7.37"}}
	r, err := New(WithDriver(driver), WithThunks(cookieThunks()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := r.Render(context.Background(), cookieDocument(t), render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	// Step 1 snaps 7.37 to 7; calories follow the quantized value.
	if got := string(out); !strings.Contains(got, "Eating 7 cookies gives you 350 calories.") {
		t.Fatalf("rendered = %q", got)
	}
}

func TestRenderDefaultsComeFromDeclaredValues(t *testing.T) {
	driver := &scriptedDriver{}
	r, err := New(WithDriver(driver), WithThunks(cookieThunks()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := r.Render(context.Background(), cookieDocument(t), render.Options{
		Values: map[string]float64{"cookies": 10},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if len(driver.asked) != 1 {
		t.Fatalf("asked %d prompts, want 1", len(driver.asked))
	}
	if got := driver.asked[0].Default; got != "10" {
		t.Fatalf("default = %q, want %q", got, "10")
	}
	if got := driver.asked[0].Help; got != "min 1, max 20, step 1" {
		t.Fatalf("help = %q", got)
	}
	if got := string(out); !strings.Contains(got, "gives you 500 calories") {
		t.Fatalf("rendered = %q", got)
	}
}

func TestRenderUnparsableAnswerFallsBackToZero(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{"cookies": "banana"}}
	r, err := New(WithDriver(driver), WithThunks(cookieThunks()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := r.Render(context.Background(), cookieDocument(t), render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	// Zero clamps up to the minimum of 1.
	if got := string(out); !strings.Contains(got, "Eating 1 cookies gives you 50 calories.") {
		t.Fatalf("rendered = %q", got)
	}
}

func TestRenderUnboundOutputRendersEmpty(t *testing.T) {
	driver := &scriptedDriver{answers: map[string]string{"cookies": "5"}}
	r, err := New(WithDriver(driver))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := r.Render(context.Background(), cookieDocument(t), render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := string(out); !strings.Contains(got, "gives you  calories.") {
		t.Fatalf("rendered = %q", got)
	}
}

func TestRenderPropagatesDriverErrors(t *testing.T) {
	driver := &scriptedDriver{err: ErrAborted}
	r, err := New(WithDriver(driver), WithThunks(cookieThunks()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	_, err = r.Render(context.Background(), cookieDocument(t), render.Options{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("error = %v, want ErrAborted", err)
	}
}

func TestRenderRejectsInvalidDocuments(t *testing.T) {
	r, err := New(WithDriver(&scriptedDriver{}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	doc := document.Document{Segments: []document.Segment{
		document.Output("area"),
		document.Output("area"),
	}}
	if _, err := r.Render(context.Background(), doc, render.Options{}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateNumber(t *testing.T) {
	if err := validateNumber("7.37"); err != nil {
		t.Fatalf("numeric answer rejected: %v", err)
	}
	if err := validateNumber("  "); err != nil {
		t.Fatalf("blank answer rejected: %v", err)
	}
	if err := validateNumber("banana"); err == nil {
		t.Fatal("expected error for non-numeric answer")
	}
}

func TestRenderFailingThunkFailsTheRender(t *testing.T) {
	boom := errors.New("boom")
	thunks := document.NewThunks()
	thunks.MustRegister("calories", func(reactive.Inputs) (any, error) {
		return nil, boom
	})

	driver := &scriptedDriver{answers: map[string]string{"cookies": "5"}}
	r, err := New(WithDriver(driver), WithThunks(thunks))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	_, err = r.Render(context.Background(), cookieDocument(t), render.Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped boom", err)
	}
	if err == nil || !strings.Contains(err.Error(), `output "calories"`) {
		t.Fatalf("error should name the failing output, got %v", err)
	}
}
