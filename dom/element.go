package dom

import (
	"github.com/avendel/revealx"
)

// Element is one borrowed page element. Key is its stable identity: the
// id attribute when present, otherwise a synthesized tag#n key. Rect is
// synthetic vertical layout geometry for the scripted-scroll observer.
type Element struct {
	Key     string
	Tag     string
	Classes []string
	Attrs   map[string]string
	Text    string
	Rect    revealx.Rect
}

// HasClass reports whether the element carries a class.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends a class if not already present.
func (e *Element) AddClass(name string) {
	if !e.HasClass(name) {
		e.Classes = append(e.Classes, name)
	}
}

// Attr returns an attribute value and whether it exists.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}
