// Package realtime drives timed activation effects on a fixed tick.
//
// The engine itself is instantaneous: it maps visibility batches to
// actions. Two of those actions carry time — staggered reveal starts and
// the 2s counter animation — and this package owns that time. Visibility
// batches are queued under a mutex and drained at tick boundaries, so
// given the same sequence of Enqueue calls and the same tick schedule,
// effects always fire in the same order.
//
// Two ways to advance the clock:
//   - Advance(dt) steps the virtual clock directly. Deterministic,
//     wall-time free, what the tests use.
//   - Start(ctx) runs a ticker goroutine that calls Advance(TickRate)
//     per tick, for hosts that want real time.
//
// Counter frames are computed as floor(target * elapsed/duration), which
// is monotone non-decreasing, and the final frame snaps to exactly the
// target so no rounding residue is ever left on screen.
package realtime
