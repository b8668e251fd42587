package revealx

import "time"

// ActionOp discriminates the activation effects the engine can request
// from its host.
type ActionOp int

const (
	// OpReveal starts the fade/slide-in transition after Delay.
	OpReveal ActionOp = iota
	// OpStartCounter begins a 0..Value animation lasting Duration.
	OpStartCounter
	// OpSetCounter writes Value to the display immediately. Used for
	// entries whose goal could not be parsed.
	OpSetCounter
	// OpSwapSource promotes the staged source attribute to the live one.
	OpSwapSource
	// OpUnobserve tells the host to stop reporting visibility for the
	// entry. Emitted alongside every activation.
	OpUnobserve
)

func (op ActionOp) String() string {
	switch op {
	case OpReveal:
		return "reveal"
	case OpStartCounter:
		return "start-counter"
	case OpSetCounter:
		return "set-counter"
	case OpSwapSource:
		return "swap-source"
	case OpUnobserve:
		return "unobserve"
	}
	return "unknown"
}

// Action is one effect the host (or the realtime runtime) must apply.
// Fields beyond Op and Handle are populated per op: Reveal uses Delay,
// Duration and OffsetPx; StartCounter uses Value and Duration; SetCounter
// uses Value.
type Action struct {
	Op     ActionOp
	Handle Handle

	Delay    time.Duration
	Duration time.Duration
	OffsetPx float64
	Value    int64
}
