package revealx

import "strconv"

// Kind selects which activation effect runs when an entry first becomes
// visible.
type Kind int

const (
	// KindReveal fades the element in and clears its vertical offset.
	KindReveal Kind = iota
	// KindCounter animates a numeric display from 0 to a configured goal.
	KindCounter
	// KindLazyMedia promotes a staged source attribute to the live one.
	KindLazyMedia
)

func (k Kind) String() string {
	switch k {
	case KindReveal:
		return "reveal"
	case KindCounter:
		return "counter"
	case KindLazyMedia:
		return "lazy-media"
	}
	return "unknown"
}

// Handle is a dense index into the engine's entry arena. Handles are
// assigned sequentially by Register and never reused within an engine.
type Handle int

// NoHandle is returned where no entry exists.
const NoHandle Handle = -1

// EntryState is the per-entry lifecycle. The only transition is
// StateIdle -> StateActivated, and it happens at most once.
type EntryState int

const (
	StateIdle EntryState = iota
	StateActivated
)

func (s EntryState) String() string {
	if s == StateActivated {
		return "activated"
	}
	return "idle"
}

// Entry is one watched element. The element itself is borrowed from the
// host and identified only by Key; the engine owns the lifecycle state,
// nothing else.
type Entry struct {
	Handle Handle
	Key    string
	Kind   Kind
	State  EntryState

	// Counter goal. TargetValid is false when the configured raw value
	// was missing or unparsable; such entries activate immediately with
	// a zero display instead of animating.
	Target      int64
	TargetValid bool

	// Observer options resolved at registration time.
	Threshold        float64
	RootMarginBottom float64
}

// KindConfig carries per-registration options. Zero values fall back to
// the engine config's per-kind defaults.
type KindConfig struct {
	// Threshold is the fraction of the element that must be visible.
	Threshold float64
	// RootMarginBottomPx adjusts the viewport's bottom edge; negative
	// values require the element to be further inside the viewport
	// before it counts as visible.
	RootMarginBottomPx float64
	// Targets maps element keys to raw counter goals as read from
	// markup. Only consulted for KindCounter.
	Targets map[string]string
}

// parseTarget parses a raw counter goal. Negative and malformed values
// are both treated as invalid so the animation can never run away.
func parseTarget(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
