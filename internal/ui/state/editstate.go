package state

import (
	"sync"

	"github.com/haoyun/fundwatch/internal/portfolio"
)

// EditState tracks whether the position form targets an existing holding.
// The zero value is the non-editing state. While editing, mutations address
// the captured target identity, never the form's identity fields.
type EditState struct {
	mu      sync.Mutex
	editing bool
	target  portfolio.Identity
	prefill portfolio.Position
}

// NewEditState returns a fresh non-editing state.
func NewEditState() *EditState {
	return &EditState{}
}

// Enter switches to edit mode targeting the given position and remembers its
// current values for form pre-fill.
func (e *EditState) Enter(pos portfolio.Position) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = true
	e.target = pos.Identity()
	e.prefill = pos
}

// Reset returns to the non-editing state.
func (e *EditState) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = false
	e.target = portfolio.Identity{}
	e.prefill = portfolio.Position{}
}

// Editing reports whether an existing position is being edited.
func (e *EditState) Editing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editing
}

// Target returns the identity under edit. Meaningless unless Editing.
func (e *EditState) Target() portfolio.Identity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.target
}

// Prefill returns the position values captured when edit mode was entered.
func (e *EditState) Prefill() portfolio.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prefill
}
