// Package revealx implements a one-shot visibility activation engine.
//
// Watched entries (reveal blocks, animated counters, lazily loaded media)
// are registered once at page-load time and activate exactly once, the
// first time they become sufficiently visible in a viewport. After
// activation an entry leaves observation permanently; re-entering the
// viewport never re-arms it.
//
// The engine is host-agnostic. Elements are identified by opaque string
// keys and dense integer handles into an entry arena; the engine never
// touches a rendering surface. Visibility reports go in through
// OnVisibilityChanged and activation effects come back out as Action
// values for the host to apply. The realtime subpackage drives timed
// effects (stagger, counter interpolation) on a fixed tick, and the dom
// subpackage provides a document model plus an HTML scanner that
// materializes registrations from markup markers.
package revealx
