package realtime

import (
	"sort"
	"time"

	"github.com/avendel/revealx"
)

// Advance moves the virtual clock forward by dt and processes one tick:
// drain queued batches through the engine, apply immediate effects,
// start scheduled reveals that have come due, and step running counter
// animations. Must not be called concurrently with itself; the Start
// loop is the only caller in ticker mode.
func (rt *Runtime) Advance(dt time.Duration) {
	if dt > 0 {
		rt.now += dt
	}

	rt.processBatches(rt.collectBatches())
	rt.firePendingReveals()
	rt.stepCounters()
	rt.tickNum++
}

// collectBatches atomically takes the queued observation batches.
func (rt *Runtime) collectBatches() [][]revealx.Observation {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	batches := rt.queue
	rt.queue = nil
	return batches
}

// processBatches runs each batch through the engine and dispatches the
// resulting actions. Batches keep their arrival order; actions within a
// batch keep the engine's emission order.
func (rt *Runtime) processBatches(batches [][]revealx.Observation) {
	for _, batch := range batches {
		for _, action := range rt.engine.OnVisibilityChanged(batch) {
			rt.dispatch(action)
		}
	}
}

func (rt *Runtime) dispatch(action revealx.Action) {
	switch action.Op {
	case revealx.OpReveal:
		rt.pending = append(rt.pending, pendingReveal{
			at:       rt.now + action.Delay,
			handle:   action.Handle,
			duration: action.Duration,
			offsetPx: action.OffsetPx,
		})
	case revealx.OpStartCounter:
		rt.host.SetCounter(action.Handle, 0)
		rt.counters = append(rt.counters, counterAnim{
			handle:   action.Handle,
			target:   action.Value,
			start:    rt.now,
			duration: action.Duration,
		})
	case revealx.OpSetCounter:
		rt.host.SetCounter(action.Handle, action.Value)
	case revealx.OpSwapSource:
		rt.host.SwapSource(action.Handle)
	case revealx.OpUnobserve:
		if rt.obs != nil {
			rt.obs.Unobserve(action.Handle)
		}
	}
}

// firePendingReveals starts every scheduled reveal whose time has come.
// Stable sort by due time keeps batch-local stagger order for equal
// deadlines.
func (rt *Runtime) firePendingReveals() {
	if len(rt.pending) == 0 {
		return
	}
	sort.SliceStable(rt.pending, func(i, j int) bool {
		return rt.pending[i].at < rt.pending[j].at
	})

	i := 0
	for ; i < len(rt.pending); i++ {
		p := rt.pending[i]
		if p.at > rt.now {
			break
		}
		rt.host.BeginReveal(p.handle, p.duration, p.offsetPx)
	}
	rt.pending = rt.pending[i:]
}

// stepCounters advances running counter animations. Intermediate frames
// are floor(target * progress), so the displayed value never decreases
// and never reaches the target early; the final frame writes the target
// itself.
func (rt *Runtime) stepCounters() {
	live := rt.counters[:0]
	for _, c := range rt.counters {
		elapsed := rt.now - c.start
		if elapsed >= c.duration {
			rt.host.SetCounter(c.handle, c.target)
			continue
		}
		v := int64(float64(c.target) * (float64(elapsed) / float64(c.duration)))
		if v > c.last {
			rt.host.SetCounter(c.handle, v)
			c.last = v
		}
		live = append(live, c)
	}
	rt.counters = live
}
