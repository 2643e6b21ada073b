package undo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter is a tiny model: each memento sets the value back to old.
type counter struct{ value int }

type setMemento struct {
	c        *counter
	old      int
	key      string
	released *int
}

func (m *setMemento) Restore() Memento {
	inv := &setMemento{c: m.c, old: m.c.value, key: m.key, released: m.released}
	m.c.value = m.old
	return inv
}

func (m *setMemento) Merge(next Memento) bool {
	o, ok := next.(*setMemento)
	return ok && m.key != "" && o.key == m.key
}

func (m *setMemento) Release() {
	if m.released != nil {
		*m.released++
	}
}

func set(s *Stack, c *counter, v int, key string, merge bool, released *int) {
	s.Do(&setMemento{c: c, old: c.value, key: key, released: released}, merge)
	c.value = v
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := New()
	c := &counter{}
	for i := 1; i <= 5; i++ {
		set(s, c, i*10, "", false, nil)
	}
	require.Equal(t, 5, s.UndoDepth())

	for n := 1; n <= 5; n++ {
		before := c.value
		for i := 0; i < n; i++ {
			s.Undo()
		}
		for i := 0; i < n; i++ {
			s.Redo()
		}
		assert.Equal(t, before, c.value, "n=%d", n)
	}
	s.Undo()
	assert.Equal(t, 40, c.value)
	assert.Equal(t, 1, s.RedoDepth())
}

func TestMergeDoesNotGrow(t *testing.T) {
	s := New()
	c := &counter{}
	released := 0
	set(s, c, 1, "drag", true, &released)
	set(s, c, 2, "drag", true, &released)
	set(s, c, 3, "drag", true, &released)
	assert.Equal(t, 1, s.UndoDepth())
	assert.Equal(t, 2, released)

	s.Undo()
	assert.Equal(t, 0, c.value)
}

func TestMergeOnlyWhenAllowed(t *testing.T) {
	s := New()
	c := &counter{}
	set(s, c, 1, "drag", true, nil)
	set(s, c, 2, "drag", false, nil)
	assert.Equal(t, 2, s.UndoDepth())
}

func TestDoClearsRedo(t *testing.T) {
	s := New()
	c := &counter{}
	released := 0
	set(s, c, 1, "", false, &released)
	set(s, c, 2, "", false, &released)
	s.Undo()
	s.Undo()
	require.Equal(t, 2, s.RedoDepth())

	set(s, c, 5, "", false, &released)
	assert.Equal(t, 0, s.RedoDepth())
	assert.Equal(t, 2, released)
	assert.False(t, s.CanRedo())
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	s := New()
	s.Undo()
	s.Redo()
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

type reentrant struct{ s *Stack }

func (r *reentrant) Restore() Memento {
	r.s.Do(&setMemento{c: &counter{}}, false)
	return r
}
func (r *reentrant) Merge(Memento) bool { return false }
func (r *reentrant) Release()           {}

func TestDoDuringRestorePanics(t *testing.T) {
	s := New()
	s.Do(&reentrant{s: s}, false)
	assert.PanicsWithValue(t, ErrReentrant, func() { s.Undo() })
	assert.False(t, s.Restoring())
}

func TestClearReleasesEverything(t *testing.T) {
	s := New()
	c := &counter{}
	released := 0
	set(s, c, 1, "", false, &released)
	set(s, c, 2, "", false, &released)
	s.Undo()
	s.Clear()
	assert.Equal(t, 2, released)
	assert.Equal(t, 0, s.UndoDepth())
}

func TestSubscribe(t *testing.T) {
	s := New()
	calls := 0
	stop := s.Subscribe(func() { calls++ })
	set(s, &counter{}, 1, "", false, nil)
	s.Undo()
	stop()
	s.Redo()
	assert.Equal(t, 2, calls)
}
