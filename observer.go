package revealx

// Rect is an element's vertical extent in page coordinates. Horizontal
// position is irrelevant to the activation model.
type Rect struct {
	Top    float64
	Height float64
}

// Observer is a synthetic visibility observer: it tracks rects for
// watched handles and, on each viewport update, reports the entries that
// newly crossed their visibility threshold. It exists so the engine can
// run against scripted scroll timelines and in tests without a real
// display surface; a browser-backed host would fill the same role with a
// native intersection observer.
//
// Batches are reported in registration order. Real observers make no
// such promise, so nothing downstream may rely on it.
type Observer struct {
	order   []Handle
	watched map[Handle]*watchedRect
}

type watchedRect struct {
	rect             Rect
	threshold        float64
	rootMarginBottom float64
	intersecting     bool
}

// NewObserver returns an empty observer.
func NewObserver() *Observer {
	return &Observer{watched: make(map[Handle]*watchedRect)}
}

// Observe starts tracking a handle. Observing an already-watched handle
// replaces its rect and options and resets its crossing state.
func (o *Observer) Observe(h Handle, rect Rect, threshold, rootMarginBottom float64) {
	if _, ok := o.watched[h]; !ok {
		o.order = append(o.order, h)
	}
	o.watched[h] = &watchedRect{
		rect:             rect,
		threshold:        threshold,
		rootMarginBottom: rootMarginBottom,
	}
}

// ObserveEntry registers an entry using the options resolved at
// registration time.
func (o *Observer) ObserveEntry(entry Entry, rect Rect) {
	o.Observe(entry.Handle, rect, entry.Threshold, entry.RootMarginBottom)
}

// Unobserve stops tracking a handle. Unconditional and immediate; a
// handle that was never observed is ignored.
func (o *Observer) Unobserve(h Handle) {
	if _, ok := o.watched[h]; !ok {
		return
	}
	delete(o.watched, h)
	for i, other := range o.order {
		if other == h {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

// Len reports how many handles are being watched.
func (o *Observer) Len() int {
	return len(o.watched)
}

// SetViewport updates the viewport (scroll offset plus height) and
// returns observations for every handle that newly crossed its
// threshold. Handles that dropped back below threshold are re-armed so a
// later re-entry is reported again; the engine's activated guard is what
// makes re-reports harmless.
func (o *Observer) SetViewport(scrollY, height float64) []Observation {
	var batch []Observation
	for _, h := range o.order {
		w := o.watched[h]
		ratio := intersectionRatio(w.rect, scrollY, height, w.rootMarginBottom)
		crossed := ratio >= w.threshold
		if crossed && !w.intersecting {
			batch = append(batch, Observation{Handle: h, Ratio: ratio})
		}
		w.intersecting = crossed
	}
	return batch
}

// intersectionRatio computes the fraction of the element inside the
// viewport after applying the bottom root margin. A negative margin
// raises the effective bottom edge, so the element must scroll further
// in before it counts.
func intersectionRatio(r Rect, scrollY, height, rootMarginBottom float64) float64 {
	top := scrollY
	bottom := scrollY + height + rootMarginBottom
	if bottom <= top {
		return 0
	}

	elemTop := r.Top
	elemBottom := r.Top + r.Height
	if r.Height <= 0 {
		// Zero-height elements count as fully visible when their edge
		// is inside the viewport.
		if elemTop >= top && elemTop <= bottom {
			return 1
		}
		return 0
	}

	overlapTop := elemTop
	if top > overlapTop {
		overlapTop = top
	}
	overlapBottom := elemBottom
	if bottom < overlapBottom {
		overlapBottom = bottom
	}
	if overlapBottom <= overlapTop {
		return 0
	}
	return (overlapBottom - overlapTop) / r.Height
}
