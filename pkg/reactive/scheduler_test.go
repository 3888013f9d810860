package reactive

import (
	"errors"
	"strings"
	"testing"
)

type captureSink struct {
	ids  []string
	errs []error
}

func (c *captureSink) OutputError(id string, err error) {
	c.ids = append(c.ids, id)
	c.errs = append(c.errs, err)
}

func TestBindInitialRenderOnFirstFlush(t *testing.T) {
	sched := NewScheduler()
	rendered := map[string]string{}

	_, err := sched.Bind("area", func() (any, error) { return 42.123, nil },
		func(id, text string) { rendered[id] = text }, nil)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	if ran := sched.Flush(); ran != 1 {
		t.Fatalf("first flush ran %d bindings, want 1", ran)
	}
	if rendered["area"] != "42.1" {
		t.Fatalf("rendered = %q, want %q", rendered["area"], "42.1")
	}

	// Nothing stale, nothing runs.
	if ran := sched.Flush(); ran != 0 {
		t.Fatalf("idle flush ran %d bindings, want 0", ran)
	}
}

func TestSameTickInvalidationsCoalesce(t *testing.T) {
	sched := NewScheduler()
	runs := 0

	b, err := sched.Bind("sum", func() (any, error) { runs++; return runs, nil },
		func(string, string) {}, nil)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	sched.Flush() // initial render

	first := sched.NewToken()
	second := sched.NewToken()
	first.Attach(b)
	second.Attach(b)

	first.Invalidate()
	first.Invalidate()
	second.Invalidate()

	if ran := sched.Flush(); ran != 1 {
		t.Fatalf("flush ran %d bindings, want 1", ran)
	}
	if runs != 2 {
		t.Fatalf("thunk ran %d times total, want 2", runs)
	}
}

func TestDetachStopsReruns(t *testing.T) {
	sched := NewScheduler()
	b, _ := sched.Bind("x", func() (any, error) { return nil, nil }, func(string, string) {}, nil)
	sched.Flush()

	token := sched.NewToken()
	token.Attach(b)
	token.Detach(b)
	token.Invalidate()

	if ran := sched.Flush(); ran != 0 {
		t.Fatalf("detached binding still ran (%d)", ran)
	}
}

func TestThunkFailureGoesToSink(t *testing.T) {
	sched := NewScheduler()
	sink := &captureSink{}
	rendered := map[string]string{}

	boom := errors.New("bad input")
	_, err := sched.Bind("hyp", func() (any, error) { return nil, boom },
		func(id, text string) { rendered[id] = text }, sink)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	sched.Flush()

	if len(sink.ids) != 1 || sink.ids[0] != "hyp" || !errors.Is(sink.errs[0], boom) {
		t.Fatalf("sink got %v / %v", sink.ids, sink.errs)
	}
	if _, ok := rendered["hyp"]; ok {
		t.Fatal("failed thunk must not replace content")
	}
}

func TestBindDuplicate(t *testing.T) {
	sched := NewScheduler()
	thunk := func() (any, error) { return nil, nil }
	replace := func(string, string) {}

	if _, err := sched.Bind("a", thunk, replace, nil); err != nil {
		t.Fatalf("bind: %v", err)
	}
	_, err := sched.Bind("a", thunk, replace, nil)
	if err == nil || !strings.Contains(err.Error(), "already bound") {
		t.Fatalf("duplicate bind error = %v", err)
	}
}

func TestValuesWatchInvalidate(t *testing.T) {
	sched := NewScheduler()
	values := NewValues(sched)
	rendered := map[string]string{}

	b, err := sched.Bind("calories", func() (any, error) {
		return values.Float("cookies") * 50, nil
	}, func(id, text string) { rendered[id] = text }, nil)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	values.Watch("cookies").Attach(b)

	values.Seed("cookies", 3)
	sched.Flush()
	if rendered["calories"] != "150" {
		t.Fatalf("initial render = %q, want %q", rendered["calories"], "150")
	}

	values.SetValue("cookies", 4.5)
	if ran := sched.Flush(); ran != 1 {
		t.Fatalf("flush after SetValue ran %d, want 1", ran)
	}
	if rendered["calories"] != "225" {
		t.Fatalf("re-render = %q, want %q", rendered["calories"], "225")
	}
}

func TestSeedDoesNotInvalidate(t *testing.T) {
	sched := NewScheduler()
	values := NewValues(sched)

	b, _ := sched.Bind("o", func() (any, error) { return values.Float("n"), nil },
		func(string, string) {}, nil)
	values.Watch("n").Attach(b)
	sched.Flush()

	values.Seed("n", 9)
	if ran := sched.Flush(); ran != 0 {
		t.Fatalf("seed triggered %d re-runs, want 0", ran)
	}
	if values.Float("n") != 9 {
		t.Fatal("seed should still store the value")
	}
}
