package revealx_test

import (
	"testing"
	"time"

	. "github.com/avendel/revealx"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// Test empty registration is a silent no-op.
func TestRegisterEmptyIsNoop(t *testing.T) {
	e := newTestEngine(t)

	handles := e.Register(nil, KindReveal, KindConfig{})
	if handles != nil {
		t.Errorf("expected nil handles for empty registration, got %v", handles)
	}
	if e.Len() != 0 {
		t.Errorf("expected 0 entries, got %d", e.Len())
	}
}

// Test an entry activates at most once no matter how often the host
// re-reports it as visible.
func TestActivatesAtMostOnce(t *testing.T) {
	e := newTestEngine(t)
	handles := e.Register([]string{"hero"}, KindReveal, KindConfig{})
	if len(handles) != 1 {
		t.Fatalf("expected 1 handle, got %d", len(handles))
	}
	h := handles[0]

	batch := []Observation{{Handle: h, Ratio: 1.0}}

	first := e.OnVisibilityChanged(batch)
	if countOp(first, OpReveal) != 1 {
		t.Fatalf("expected 1 reveal action, got %d", countOp(first, OpReveal))
	}
	if countOp(first, OpUnobserve) != 1 {
		t.Errorf("expected unobserve alongside activation")
	}

	// Sloppy host keeps reporting after unobserve.
	for i := 0; i < 5; i++ {
		if again := e.OnVisibilityChanged(batch); len(again) != 0 {
			t.Fatalf("re-report %d produced actions: %v", i, again)
		}
	}

	entry, ok := e.Entry(h)
	if !ok {
		t.Fatal("entry not found")
	}
	if entry.State != StateActivated {
		t.Errorf("expected activated, got %v", entry.State)
	}
}

// Test observations below the threshold do not activate.
func TestBelowThresholdStaysIdle(t *testing.T) {
	e := newTestEngine(t)
	h := e.Register([]string{"stat"}, KindCounter, KindConfig{
		Targets: map[string]string{"stat": "42"},
	})[0]

	// Counter threshold defaults to 0.5.
	actions := e.OnVisibilityChanged([]Observation{{Handle: h, Ratio: 0.3}})
	if len(actions) != 0 {
		t.Fatalf("expected no actions below threshold, got %v", actions)
	}
	entry, _ := e.Entry(h)
	if entry.State != StateIdle {
		t.Errorf("expected idle, got %v", entry.State)
	}

	actions = e.OnVisibilityChanged([]Observation{{Handle: h, Ratio: 0.6}})
	if countOp(actions, OpStartCounter) != 1 {
		t.Errorf("expected counter start at 0.6 ratio, got %v", actions)
	}
}

// Test a valid counter target produces a StartCounter with the parsed
// goal and the fixed 2s duration.
func TestCounterTargetParsed(t *testing.T) {
	e := newTestEngine(t)
	h := e.Register([]string{"clients"}, KindCounter, KindConfig{
		Targets: map[string]string{"clients": "1280"},
	})[0]

	actions := e.OnVisibilityChanged([]Observation{{Handle: h, Ratio: 1}})
	start := findOp(t, actions, OpStartCounter)
	if start.Value != 1280 {
		t.Errorf("expected target 1280, got %d", start.Value)
	}
	if start.Duration != 2000*time.Millisecond {
		t.Errorf("expected 2s duration, got %v", start.Duration)
	}
}

// Test missing or unparsable counter targets degrade to an immediate
// zero display instead of an animation with no stopping point.
func TestInvalidCounterTargetDisplaysZero(t *testing.T) {
	e := newTestEngine(t)
	handles := e.Register([]string{"a", "b", "c"}, KindCounter, KindConfig{
		Targets: map[string]string{"a": "not-a-number", "c": "-7"},
		// "b" has no target at all.
	})

	for _, h := range handles {
		actions := e.OnVisibilityChanged([]Observation{{Handle: h, Ratio: 1}})
		if countOp(actions, OpStartCounter) != 0 {
			t.Errorf("handle %d: expected no animation for invalid target", h)
		}
		set := findOp(t, actions, OpSetCounter)
		if set.Value != 0 {
			t.Errorf("handle %d: expected immediate 0, got %d", h, set.Value)
		}
		entry, _ := e.Entry(h)
		if entry.State != StateActivated {
			t.Errorf("handle %d: invalid entry must still end activated", h)
		}
	}
}

// Test reveals activated in one batch get increasing stagger delays,
// 100ms apart, in batch order.
func TestRevealStaggerWithinBatch(t *testing.T) {
	e := newTestEngine(t)
	handles := e.Register([]string{"one", "two", "three"}, KindReveal, KindConfig{})

	batch := []Observation{
		{Handle: handles[0], Ratio: 1},
		{Handle: handles[1], Ratio: 1},
		{Handle: handles[2], Ratio: 1},
	}
	actions := e.OnVisibilityChanged(batch)

	var delays []time.Duration
	for _, a := range actions {
		if a.Op == OpReveal {
			delays = append(delays, a.Delay)
		}
	}
	if len(delays) != 3 {
		t.Fatalf("expected 3 reveals, got %d", len(delays))
	}
	for i, want := range []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond} {
		if delays[i] != want {
			t.Errorf("reveal %d: expected delay %v, got %v", i, want, delays[i])
		}
	}
}

// Test the stagger index resets between batches: a second batch starts
// again at zero delay.
func TestStaggerResetsAcrossBatches(t *testing.T) {
	e := newTestEngine(t)
	handles := e.Register([]string{"one", "two"}, KindReveal, KindConfig{})

	e.OnVisibilityChanged([]Observation{{Handle: handles[0], Ratio: 1}})
	actions := e.OnVisibilityChanged([]Observation{{Handle: handles[1], Ratio: 1}})
	reveal := findOp(t, actions, OpReveal)
	if reveal.Delay != 0 {
		t.Errorf("expected zero delay in fresh batch, got %v", reveal.Delay)
	}
}

// Test lazy media emits no swap before the first visibility report.
func TestLazyMediaSwapsOnlyOnVisibility(t *testing.T) {
	e := newTestEngine(t)
	h := e.Register([]string{"img-hero"}, KindLazyMedia, KindConfig{})[0]

	entry, _ := e.Entry(h)
	if entry.State != StateIdle {
		t.Fatalf("expected idle before any report")
	}

	actions := e.OnVisibilityChanged([]Observation{{Handle: h, Ratio: 0.5}})
	if countOp(actions, OpSwapSource) != 1 {
		t.Errorf("expected swap on first visibility, got %v", actions)
	}
}

// Test entries are independent: activating one leaves the others idle.
func TestEntriesAreIndependent(t *testing.T) {
	e := newTestEngine(t)
	handles := e.Register([]string{"a", "b", "c"}, KindReveal, KindConfig{})

	e.OnVisibilityChanged([]Observation{{Handle: handles[1], Ratio: 1}})

	for i, h := range handles {
		entry, _ := e.Entry(h)
		want := StateIdle
		if i == 1 {
			want = StateActivated
		}
		if entry.State != want {
			t.Errorf("handle %d: expected %v, got %v", h, want, entry.State)
		}
	}
}

// Test unknown handles in a batch are skipped without disturbing valid
// entries in the same batch.
func TestUnknownHandleIsSkipped(t *testing.T) {
	e := newTestEngine(t)
	h := e.Register([]string{"only"}, KindReveal, KindConfig{})[0]

	actions := e.OnVisibilityChanged([]Observation{
		{Handle: Handle(99), Ratio: 1},
		{Handle: NoHandle, Ratio: 1},
		{Handle: h, Ratio: 1},
	})
	if countOp(actions, OpReveal) != 1 {
		t.Errorf("expected the valid entry to activate, got %v", actions)
	}
}

func countOp(actions []Action, op ActionOp) int {
	n := 0
	for _, a := range actions {
		if a.Op == op {
			n++
		}
	}
	return n
}

func findOp(t *testing.T, actions []Action, op ActionOp) Action {
	t.Helper()
	for _, a := range actions {
		if a.Op == op {
			return a
		}
	}
	t.Fatalf("no %v action in %v", op, actions)
	return Action{}
}
