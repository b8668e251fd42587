package dom

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/avendel/revealx"
)

// Layout constants for the synthetic vertical flow: every collected
// element gets a block of defaultBlockHeight px unless its height attr
// says otherwise, stacked top to bottom in document order.
const (
	defaultBlockHeight = 200.0
	blockGap           = 24.0
)

// Document holds the activation targets found in a page, in document
// order, with synthetic layout geometry. It implements the realtime
// Host interface so activations apply straight back to the elements.
type Document struct {
	markers  Markers
	elems    []*Element
	byKey    map[string]*Element
	byHandle map[revealx.Handle]*Element
}

// Registration is one kind's worth of scan output, ready to hand to
// Engine.Register.
type Registration struct {
	Kind revealx.Kind
	Keys []string
	// Targets maps keys to raw counter goals. Nil except for counters.
	Targets map[string]string
}

// Parse reads an HTML page and collects every element carrying an
// activation marker. Script, style and head subtrees are skipped the
// same way a visible-text extractor would skip them. Unmarked elements
// are not retained; the engine only ever sees watched entries.
func Parse(r io.Reader, markers Markers) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	d := &Document{
		markers:  markers.withDefaults(),
		byKey:    make(map[string]*Element),
		byHandle: make(map[revealx.Handle]*Element),
	}
	anon := make(map[string]int)
	d.collect(root, anon)
	d.layout()
	return d, nil
}

var skippedTags = map[string]bool{
	"script": true,
	"style":  true,
	"head":   true,
	"title":  true,
	"meta":   true,
}

func (d *Document) collect(n *html.Node, anon map[string]int) {
	if n.Type == html.ElementNode {
		if skippedTags[n.Data] {
			return
		}
		if el := d.elementFrom(n, anon); el != nil {
			d.elems = append(d.elems, el)
			d.byKey[el.Key] = el
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.collect(c, anon)
	}
}

// elementFrom builds an Element when the node carries any activation
// marker, nil otherwise.
func (d *Document) elementFrom(n *html.Node, anon map[string]int) *Element {
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[a.Key] = a.Val
	}
	classes := strings.Fields(attrs["class"])

	marked := false
	if _, ok := attrs[d.markers.CounterAttr]; ok {
		marked = true
	}
	if _, ok := attrs[d.markers.StagedAttr]; ok {
		marked = true
	}
	for _, c := range classes {
		if c == d.markers.RevealClass {
			marked = true
			break
		}
	}
	if !marked {
		return nil
	}

	key := attrs["id"]
	if key == "" {
		anon[n.Data]++
		key = fmt.Sprintf("%s#%d", n.Data, anon[n.Data])
	}
	// Duplicate ids get suffixed like anonymous keys, so every collected
	// element keeps its own identity instead of the last one winning.
	if _, taken := d.byKey[key]; taken {
		base := key
		for i := 2; ; i++ {
			key = fmt.Sprintf("%s#%d", base, i)
			if _, taken := d.byKey[key]; !taken {
				break
			}
		}
	}

	return &Element{
		Key:     key,
		Tag:     n.Data,
		Classes: classes,
		Attrs:   attrs,
		Text:    firstText(n),
	}
}

func firstText(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if s := strings.TrimSpace(c.Data); s != "" {
				return s
			}
		}
	}
	return ""
}

// layout assigns synthetic rects: collected elements stack vertically in
// document order. Good enough geometry for scripted scrolling; a real
// host would report measured rects instead.
func (d *Document) layout() {
	y := 0.0
	for _, el := range d.elems {
		h := defaultBlockHeight
		if raw, ok := el.Attrs[d.markers.HeightAttr]; ok {
			if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
				h = v
			}
		}
		el.Rect = revealx.Rect{Top: y, Height: h}
		y += h + blockGap
	}
}

// Scan materializes registrations from the collected elements, one per
// kind present, keys in document order. An element carrying several
// markers appears under each matching kind.
func (d *Document) Scan() []Registration {
	var (
		reveals  []string
		counters []string
		targets  map[string]string
		lazies   []string
	)
	for _, el := range d.elems {
		if el.HasClass(d.markers.RevealClass) {
			reveals = append(reveals, el.Key)
		}
		if raw, ok := el.Attrs[d.markers.CounterAttr]; ok {
			counters = append(counters, el.Key)
			if targets == nil {
				targets = make(map[string]string)
			}
			targets[el.Key] = raw
		}
		if _, ok := el.Attrs[d.markers.StagedAttr]; ok {
			lazies = append(lazies, el.Key)
		}
	}

	var regs []Registration
	if len(reveals) > 0 {
		regs = append(regs, Registration{Kind: revealx.KindReveal, Keys: reveals})
	}
	if len(counters) > 0 {
		regs = append(regs, Registration{Kind: revealx.KindCounter, Keys: counters, Targets: targets})
	}
	if len(lazies) > 0 {
		regs = append(regs, Registration{Kind: revealx.KindLazyMedia, Keys: lazies})
	}
	return regs
}

// Bind associates an engine handle with an element key so host effects
// can find the element. Unknown keys are ignored.
func (d *Document) Bind(key string, h revealx.Handle) {
	if el, ok := d.byKey[key]; ok {
		d.byHandle[h] = el
	}
}

// BindRegistration binds the handles returned by Engine.Register for a
// scanned registration, in key order.
func (d *Document) BindRegistration(reg Registration, handles []revealx.Handle) {
	for i, h := range handles {
		if i < len(reg.Keys) {
			d.Bind(reg.Keys[i], h)
		}
	}
}

// Element looks up an element by key.
func (d *Document) Element(key string) (*Element, bool) {
	el, ok := d.byKey[key]
	return el, ok
}

// Elements returns the collected elements in document order.
func (d *Document) Elements() []*Element {
	return d.elems
}

// Len reports how many elements were collected.
func (d *Document) Len() int {
	return len(d.elems)
}

// Height is the total synthetic page height.
func (d *Document) Height() float64 {
	if len(d.elems) == 0 {
		return 0
	}
	last := d.elems[len(d.elems)-1]
	return last.Rect.Top + last.Rect.Height
}

// Host interface: apply activation effects to the elements.

// BeginReveal adds the visible class and records the transition timing
// on the element so the effect is inspectable.
func (d *Document) BeginReveal(h revealx.Handle, duration time.Duration, offsetPx float64) {
	el, ok := d.byHandle[h]
	if !ok {
		return
	}
	el.AddClass(d.markers.VisibleClass)
	el.Attrs["style"] = fmt.Sprintf("opacity:1;transform:translateY(0);transition:all %dms ease", duration.Milliseconds())
}

// SetCounter writes the animated value as the element's text.
func (d *Document) SetCounter(h revealx.Handle, value int64) {
	el, ok := d.byHandle[h]
	if !ok {
		return
	}
	el.Text = strconv.FormatInt(value, 10)
}

// SwapSource promotes the staged source to the live attribute and drops
// the staging attribute. No-op when no staged source exists; the entry
// still ends activated, just with nothing to show.
func (d *Document) SwapSource(h revealx.Handle) {
	el, ok := d.byHandle[h]
	if !ok {
		return
	}
	staged, ok := el.Attrs[d.markers.StagedAttr]
	if !ok {
		return
	}
	el.Attrs[d.markers.LiveAttr] = staged
	delete(el.Attrs, d.markers.StagedAttr)
}
