package ui

import (
	"sync"
)

// Element is an overlay element: a text line, the caption, the card or
// the text container. It is safe for concurrent use and implements both
// typing.Sink and tween.Target ("opacity", "scale").
type Element struct {
	ID string

	mu      sync.RWMutex
	text    string
	hidden  bool
	opacity float64
	scale   float64
}

// NewElement creates a visible, fully opaque Element.
func NewElement(id string, text string) *Element {
	e := new(Element)
	e.ID = id
	e.text = text
	e.opacity = 1
	e.scale = 1
	return e
}

// NewHiddenElement creates an Element that starts hidden.
func NewHiddenElement(id string, text string) *Element {
	e := NewElement(id, text)
	e.hidden = true
	return e
}

// SetText replaces the displayed text.
func (e *Element) SetText(text string) {
	e.mu.Lock()
	e.text = text
	e.mu.Unlock()
}

// Text returns the displayed text.
func (e *Element) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

// SetHidden toggles visibility.
func (e *Element) SetHidden(hidden bool) {
	e.mu.Lock()
	e.hidden = hidden
	e.mu.Unlock()
}

// Hidden reports whether the element is hidden.
func (e *Element) Hidden() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hidden
}

// Opacity returns the current opacity.
func (e *Element) Opacity() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.opacity
}

// Scale returns the current scale.
func (e *Element) Scale() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scale
}

// Get implements tween.Target.
func (e *Element) Get(field string) (float64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	switch field {
	case "opacity":
		return e.opacity, true
	case "scale":
		return e.scale, true
	}
	return 0, false
}

// Set implements tween.Target.
func (e *Element) Set(field string, value float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch field {
	case "opacity":
		e.opacity = value
	case "scale":
		e.scale = value
	}
}

// Snapshot is a consistent copy of an Element's state.
type Snapshot struct {
	ID      string
	Text    string
	Hidden  bool
	Opacity float64
	Scale   float64
}

// Visible reports whether anything of the element would be seen.
func (s Snapshot) Visible() bool {
	return !s.Hidden && s.Opacity > 0.01
}

// Snapshot copies the element's state under one lock.
func (e *Element) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{
		ID:      e.ID,
		Text:    e.text,
		Hidden:  e.hidden,
		Opacity: e.opacity,
		Scale:   e.scale,
	}
}
