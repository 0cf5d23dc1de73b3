package display

import (
	"sync"
	"time"
)

// State is a point-in-time copy of the result element.
type State struct {
	Text      string
	Visible   bool
	Updates   uint64
	UpdatedAt time.Time
}

// ResultElement holds the text and visibility of the result display.
//
// The mutex only keeps reads and writes memory-safe. It imposes no ordering
// between writers: whichever submission writes last is what the element shows.
type ResultElement struct {
	mu        sync.RWMutex
	text      string
	visible   bool
	updates   uint64
	updatedAt time.Time
	now       func() time.Time
}

// NewResultElement returns an empty, hidden element.
func NewResultElement() *ResultElement {
	return &ResultElement{now: time.Now}
}

// SetText replaces the element's text content.
func (r *ResultElement) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	r.updates++
	r.updatedAt = r.now()
}

// Show makes the element visible. It stays visible from then on.
func (r *ResultElement) Show() {
	r.mu.Lock()
	r.visible = true
	r.mu.Unlock()
}

// Snapshot returns the current state.
func (r *ResultElement) Snapshot() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return State{
		Text:      r.text,
		Visible:   r.visible,
		Updates:   r.updates,
		UpdatedAt: r.updatedAt,
	}
}
