package revealx

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Observation is one visibility report from the host's observer: the
// entry's current intersection ratio in [0, 1].
type Observation struct {
	Handle Handle
	Ratio  float64
}

// Engine holds the entry arena and runs the idle -> activated transition.
// It is single-goroutine by design: all methods are expected to run on
// the host's event loop, mirroring the non-reentrant callbacks of a real
// visibility observer.
type Engine struct {
	cfg     Config
	entries []Entry
	log     *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a logger. The default is a nop logger; the engine
// never logs unless the host opts in.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEngine validates cfg and returns an empty engine.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	e := &Engine{
		cfg: cfg,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Register materializes entries for a set of element keys. An empty key
// set is a silent no-op and returns nil. Handles are assigned in input
// order. Counter goals come from cfg.Targets; a missing or unparsable
// goal marks the entry invalid so activation degrades to a zero display
// instead of a runaway animation.
func (e *Engine) Register(keys []string, kind Kind, cfg KindConfig) []Handle {
	if len(keys) == 0 {
		return nil
	}

	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = e.cfg.threshold(kind)
	}
	rootMargin := cfg.RootMarginBottomPx
	if rootMargin == 0 {
		rootMargin = e.cfg.rootMargin(kind)
	}

	handles := make([]Handle, 0, len(keys))
	for _, key := range keys {
		h := Handle(len(e.entries))
		entry := Entry{
			Handle:           h,
			Key:              key,
			Kind:             kind,
			State:            StateIdle,
			Threshold:        threshold,
			RootMarginBottom: rootMargin,
		}
		if kind == KindCounter {
			entry.Target, entry.TargetValid = parseTarget(cfg.Targets[key])
			if !entry.TargetValid {
				e.log.Debug("counter target missing or unparsable, will display 0",
					zap.String("key", key))
			}
		}
		e.entries = append(e.entries, entry)
		handles = append(handles, h)
	}
	e.log.Debug("registered entries",
		zap.Stringer("kind", kind),
		zap.Int("count", len(keys)))
	return handles
}

// OnVisibilityChanged is the host-facing transition function. For every
// reported entry that is still idle and whose ratio meets its threshold,
// it emits the kind's activation action plus an Unobserve, and marks the
// entry activated. Entries already activated are skipped even if the
// host keeps reporting them, so activation happens at most once no
// matter how sloppy the observer is.
//
// The reveal stagger delay is derived from the batch-local position
// among reveals activated in this call. That order follows whatever
// order the host reports in; it is visual polish, not an ordering
// guarantee.
func (e *Engine) OnVisibilityChanged(batch []Observation) []Action {
	if len(batch) == 0 {
		return nil
	}

	var actions []Action
	revealIdx := 0
	for _, ob := range batch {
		if ob.Handle < 0 || int(ob.Handle) >= len(e.entries) {
			e.log.Debug("observation for unknown handle", zap.Int("handle", int(ob.Handle)))
			continue
		}
		entry := &e.entries[ob.Handle]
		if entry.State == StateActivated {
			continue
		}
		if ob.Ratio < entry.Threshold {
			continue
		}

		switch entry.Kind {
		case KindReveal:
			actions = append(actions, Action{
				Op:       OpReveal,
				Handle:   entry.Handle,
				Delay:    time.Duration(revealIdx) * e.cfg.staggerStep(),
				Duration: e.cfg.revealDuration(),
				OffsetPx: e.cfg.RevealOffsetPx,
			})
			revealIdx++
		case KindCounter:
			if entry.TargetValid {
				actions = append(actions, Action{
					Op:       OpStartCounter,
					Handle:   entry.Handle,
					Value:    entry.Target,
					Duration: e.cfg.CounterDuration(),
				})
			} else {
				actions = append(actions, Action{
					Op:     OpSetCounter,
					Handle: entry.Handle,
					Value:  0,
				})
			}
		case KindLazyMedia:
			actions = append(actions, Action{
				Op:     OpSwapSource,
				Handle: entry.Handle,
			})
		}

		entry.State = StateActivated
		actions = append(actions, Action{Op: OpUnobserve, Handle: entry.Handle})
		e.log.Debug("entry activated",
			zap.Int("handle", int(entry.Handle)),
			zap.String("key", entry.Key),
			zap.Stringer("kind", entry.Kind))
	}
	return actions
}

// Entry returns a copy of the entry for a handle.
func (e *Engine) Entry(h Handle) (Entry, bool) {
	if h < 0 || int(h) >= len(e.entries) {
		return Entry{}, false
	}
	return e.entries[h], true
}

// Len reports how many entries are registered.
func (e *Engine) Len() int {
	return len(e.entries)
}

// Config returns the engine's tuning.
func (e *Engine) Config() Config {
	return e.cfg
}
