// Package undo keeps the undo and redo history of an editing surface.
package undo

import "errors"

// ErrReentrant is raised (as a panic) when Do is called while an undo or
// redo restoration is in progress. Restoration must never record itself.
var ErrReentrant = errors.New("undo: Do called during restoration")

// Memento records one reversible action.
type Memento interface {
	// Restore applies the recorded state and returns the memento that
	// reverses what Restore just did.
	Restore() Memento
	// Merge reports whether next is already represented by the receiver.
	// A merged memento is released by the stack.
	Merge(next Memento) bool
	// Release frees anything the memento owns. It is called exactly once,
	// when the memento leaves the history for good.
	Release()
}

// Stack holds the undo and redo histories. Capacity is unbounded.
type Stack struct {
	undo      []Memento
	redo      []Memento
	restoring bool
	subs      []func()
}

// New returns an empty Stack.
func New() *Stack { return &Stack{} }

// Do records m as the most recent action.
func (s *Stack) Do(m Memento, allowMerge bool) {
	if s.restoring {
		panic(ErrReentrant)
	}
	if m == nil {
		return
	}
	if allowMerge && len(s.undo) > 0 {
		if s.undo[len(s.undo)-1].Merge(m) {
			m.Release()
			s.changed()
			return
		}
	}
	s.clearRedo()
	s.undo = append(s.undo, m)
	s.changed()
}

// Undo reverts the most recent action. It does nothing when the history is empty.
func (s *Stack) Undo() {
	if len(s.undo) == 0 {
		return
	}
	top := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	if inv := s.restore(top); inv != nil {
		s.redo = append(s.redo, inv)
	}
	s.changed()
}

// Redo re-applies the most recently undone action.
func (s *Stack) Redo() {
	if len(s.redo) == 0 {
		return
	}
	top := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	if inv := s.restore(top); inv != nil {
		s.undo = append(s.undo, inv)
	}
	s.changed()
}

func (s *Stack) restore(m Memento) Memento {
	s.restoring = true
	defer func() { s.restoring = false }()
	return m.Restore()
}

func (s *Stack) clearRedo() {
	for i := len(s.redo) - 1; i >= 0; i-- {
		s.redo[i].Release()
	}
	s.redo = nil
}

// Clear releases every recorded memento. Used on surface teardown.
func (s *Stack) Clear() {
	s.clearRedo()
	for i := len(s.undo) - 1; i >= 0; i-- {
		s.undo[i].Release()
	}
	s.undo = nil
	s.changed()
}

// Restoring reports whether an undo or redo is being applied.
func (s *Stack) Restoring() bool { return s.restoring }

func (s *Stack) CanUndo() bool  { return len(s.undo) > 0 }
func (s *Stack) CanRedo() bool  { return len(s.redo) > 0 }
func (s *Stack) UndoDepth() int { return len(s.undo) }
func (s *Stack) RedoDepth() int { return len(s.redo) }

// Subscribe registers fn to run after every change to either history.
// The returned function removes the subscription.
func (s *Stack) Subscribe(fn func()) func() {
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1
	return func() {
		if idx < len(s.subs) {
			s.subs[idx] = nil
		}
	}
}

func (s *Stack) changed() {
	for _, fn := range s.subs {
		if fn != nil {
			fn()
		}
	}
}
