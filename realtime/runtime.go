package realtime

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/avendel/revealx"
)

// Host is the effect sink. dom.Document implements it; tests use
// recorders. Calls arrive on whichever goroutine advances the clock,
// never concurrently.
type Host interface {
	// BeginReveal starts the fade/slide-in transition for an element.
	BeginReveal(h revealx.Handle, duration time.Duration, offsetPx float64)
	// SetCounter writes the current animated value to the display.
	SetCounter(h revealx.Handle, value int64)
	// SwapSource promotes the element's staged source to the live one.
	SwapSource(h revealx.Handle)
}

// Config configures the runtime.
type Config struct {
	// TickRate is the fixed tick used by Start. Default 16.67ms (60 FPS).
	TickRate time.Duration
	// MaxPendingBatches caps the observation queue. Default 64.
	MaxPendingBatches int
}

// Runtime owns an engine and a host and turns engine actions into timed
// host effects. All effect processing happens at tick boundaries.
type Runtime struct {
	engine *revealx.Engine
	host   Host
	obs    *revealx.Observer
	log    *zap.Logger

	tickRate time.Duration

	mu        sync.Mutex
	queue     [][]revealx.Observation
	maxQ      int
	coalesced int

	// Virtual clock state, touched only from the advancing goroutine.
	now      time.Duration
	pending  []pendingReveal
	counters []counterAnim
	tickNum  uint64

	tickCancel context.CancelFunc
	stopped    chan struct{}
}

// pendingReveal is a scheduled reveal start.
type pendingReveal struct {
	at       time.Duration
	handle   revealx.Handle
	duration time.Duration
	offsetPx float64
}

// counterAnim is a running counter animation.
type counterAnim struct {
	handle   revealx.Handle
	target   int64
	start    time.Duration
	duration time.Duration
	last     int64
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithObserver wires the runtime to a synthetic observer so Unobserve
// actions detach the element immediately.
func WithObserver(obs *revealx.Observer) RuntimeOption {
	return func(rt *Runtime) { rt.obs = obs }
}

// WithLogger attaches a logger. Default is a nop logger.
func WithLogger(log *zap.Logger) RuntimeOption {
	return func(rt *Runtime) {
		if log != nil {
			rt.log = log
		}
	}
}

// NewRuntime creates a runtime over an engine and a host.
func NewRuntime(engine *revealx.Engine, host Host, cfg Config, opts ...RuntimeOption) *Runtime {
	if cfg.TickRate == 0 {
		cfg.TickRate = 16667 * time.Microsecond // 60 FPS
	}
	if cfg.MaxPendingBatches == 0 {
		cfg.MaxPendingBatches = 64
	}
	rt := &Runtime{
		engine:   engine,
		host:     host,
		log:      zap.NewNop(),
		tickRate: cfg.TickRate,
		maxQ:     cfg.MaxPendingBatches,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Enqueue queues a visibility batch for the next tick. Thread-safe.
// Empty batches are ignored. A full queue coalesces the batch into the
// newest queued one instead of dropping it: the observer reports each
// crossing only once while the element stays visible, so a dropped
// report would leave its entry idle forever. Observations are tiny and
// duplicates are idempotent through the engine's activated guard, so
// merging is always safe.
func (rt *Runtime) Enqueue(batch []revealx.Observation) {
	if len(batch) == 0 {
		return
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if len(rt.queue) >= rt.maxQ {
		last := len(rt.queue) - 1
		rt.queue[last] = append(rt.queue[last], batch...)
		rt.coalesced++
		rt.log.Debug("observation queue full, batch coalesced",
			zap.Int("coalesced_total", rt.coalesced))
		return
	}
	rt.queue = append(rt.queue, batch)
}

// Now returns the virtual clock.
func (rt *Runtime) Now() time.Duration {
	return rt.now
}

// TickNumber returns how many ticks have been processed.
func (rt *Runtime) TickNumber() uint64 {
	return rt.tickNum
}

// Start runs a ticker loop that advances the virtual clock by TickRate
// per tick until ctx is cancelled or Stop is called.
func (rt *Runtime) Start(ctx context.Context) {
	tickCtx, cancel := context.WithCancel(ctx)
	rt.tickCancel = cancel
	rt.stopped = make(chan struct{})
	go rt.tickLoop(tickCtx)
}

// Stop cancels the ticker loop and waits for it to exit. Safe to call
// only after Start.
func (rt *Runtime) Stop() {
	if rt.tickCancel != nil {
		rt.tickCancel()
	}
	if rt.stopped != nil {
		<-rt.stopped
	}
}

func (rt *Runtime) tickLoop(ctx context.Context) {
	defer close(rt.stopped)
	ticker := time.NewTicker(rt.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						// A panicking host effect must not kill the
						// loop; other entries keep animating.
						rt.log.Error("panic in tick processing", zap.Any("panic", r))
					}
				}()
				rt.Advance(rt.tickRate)
			}()
		}
	}
}
