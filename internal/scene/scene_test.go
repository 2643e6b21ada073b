package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/annotator/internal/geom"
	"github.com/example/annotator/internal/shape"
)

func rectAt(r image.Rectangle) *shape.Rect {
	e := shape.NewRect(shape.DefaultStyle())
	e.SetBounds(r)
	return e
}

func listOf(es ...shape.Element) *List {
	l := NewList()
	for _, e := range es {
		l.Add(e)
	}
	return l
}

func TestAddIgnoresDuplicates(t *testing.T) {
	a := rectAt(image.Rect(0, 0, 10, 10))
	l := listOf(a, a)
	assert.Equal(t, 1, l.Len())
}

func TestClickableElementAtPrefersTop(t *testing.T) {
	a := rectAt(image.Rect(0, 0, 50, 50))
	b := rectAt(image.Rect(25, 25, 75, 75))
	l := listOf(a, b)
	p := image.Pt(30, 30)
	assert.Same(t, b, l.ClickableElementAt(p))

	l.PushDown([]shape.Element{b})
	assert.Same(t, a, l.ClickableElementAt(p))
	assert.Nil(t, l.ClickableElementAt(image.Pt(200, 200)))
}

func TestReorderKeepsSubsetOrder(t *testing.T) {
	a, b, c, d := rectAt(image.Rect(0, 0, 1, 1)), rectAt(image.Rect(0, 0, 1, 1)), rectAt(image.Rect(0, 0, 1, 1)), rectAt(image.Rect(0, 0, 1, 1))
	l := listOf(a, b, c, d)
	sub := []shape.Element{a, c}

	assert.True(t, l.PullUp(sub))
	assert.Equal(t, []shape.Element{b, a, d, c}, l.Elements())
	assert.False(t, l.PullUp([]shape.Element{c}))

	assert.True(t, l.PullToTop(sub))
	assert.Equal(t, []shape.Element{b, d, a, c}, l.Elements())
	assert.False(t, l.CanPullUp(sub))
	assert.True(t, l.CanPushDown(sub))
	assert.False(t, l.PullToTop(sub))

	assert.True(t, l.PushToBottom(sub))
	assert.Equal(t, []shape.Element{a, c, b, d}, l.Elements())
	assert.False(t, l.CanPushDown(sub))
	assert.False(t, l.PushDown(sub))
}

func TestRemoveEvictsFromSelection(t *testing.T) {
	a := rectAt(image.Rect(0, 0, 10, 10))
	b := rectAt(image.Rect(0, 0, 10, 10))
	l := listOf(a, b)
	l.Selection().SelectAll()
	require.Equal(t, 2, l.Selection().Len())

	assert.Equal(t, 0, l.Remove(a))
	assert.False(t, l.Selection().Contains(a))
	assert.False(t, a.Selected())
	assert.Equal(t, -1, l.Remove(a))

	l.Insert(0, a)
	assert.Equal(t, []shape.Element{a, b}, l.Elements())
}

func TestBoundsUnion(t *testing.T) {
	assert.True(t, NewList().BoundsUnion().Empty())
	l := listOf(rectAt(image.Rect(10, 10, 20, 20)), rectAt(image.Rect(50, 5, 60, 15)))
	assert.Equal(t, image.Rect(10, 5, 60, 20), l.BoundsUnion())
}

func TestTransformTracksPixels(t *testing.T) {
	r := rectAt(image.Rect(10, 10, 20, 30))
	ln := shape.NewLine(shape.DefaultStyle())
	ln.SetPoints([]image.Point{{0, 0}, {10, 5}})
	l := listOf(r, ln)
	l.Transform(geom.Translate(-5, -5))
	assert.Equal(t, image.Rect(5, 5, 15, 25), r.Bounds())
	assert.Equal(t, []image.Point{{-5, -5}, {5, 0}}, ln.Points())
}

func TestHasIntersectingFilters(t *testing.T) {
	o := shape.NewObfuscate(shape.DefaultStyle())
	o.SetBounds(image.Rect(100, 100, 150, 150))
	l := listOf(rectAt(image.Rect(0, 0, 50, 50)), o)
	assert.False(t, l.HasIntersectingFilters(image.Rect(0, 0, 60, 60)))
	assert.True(t, l.HasIntersectingFilters(image.Rect(90, 90, 110, 110)))
}

func TestSelectionNotifiesFullSet(t *testing.T) {
	a := rectAt(image.Rect(0, 0, 10, 10))
	b := rectAt(image.Rect(20, 0, 30, 10))
	l := listOf(a, b)
	s := l.Selection()
	var got [][]shape.Element
	cancel := s.Subscribe(func(sel []shape.Element) { got = append(got, sel) })

	s.Select(a)
	s.Select(a)
	s.Select(b)
	s.Deselect(a)
	require.Len(t, got, 3)
	assert.Equal(t, []shape.Element{a}, got[0])
	assert.Equal(t, []shape.Element{a, b}, got[1])
	assert.Equal(t, []shape.Element{b}, got[2])

	got = nil
	s.DeselectAll()
	s.SelectAll()
	assert.Len(t, got, 2)

	cancel()
	s.DeselectAll()
	assert.Len(t, got, 2)
}

func TestSelectionRejectsNonMembers(t *testing.T) {
	l := NewList()
	s := l.Selection()
	s.Select(rectAt(image.Rect(0, 0, 1, 1)))
	assert.Zero(t, s.Len())
}

func TestSelectOnlyAndToggle(t *testing.T) {
	a := rectAt(image.Rect(0, 0, 10, 10))
	b := rectAt(image.Rect(20, 0, 30, 10))
	l := listOf(a, b)
	s := l.Selection()
	s.SelectAll()
	s.SelectOnly(b)
	assert.Equal(t, []shape.Element{b}, s.Elements())
	assert.False(t, a.Selected())
	s.Toggle(a)
	assert.Equal(t, []shape.Element{b, a}, s.Elements())
	s.Toggle(b)
	assert.Equal(t, []shape.Element{a}, s.Elements())
	s.SelectOnly(nil)
	assert.Zero(t, s.Len())
}

func TestBatchInvalidatesOnce(t *testing.T) {
	l := listOf(rectAt(image.Rect(0, 0, 10, 10)), rectAt(image.Rect(20, 0, 30, 10)))
	var calls int
	l.SetInvalidator(func(image.Rectangle) { calls++ })
	l.Selection().SelectAll()
	assert.Equal(t, 1, calls)
	l.Selection().DeselectAll()
	assert.Equal(t, 2, calls)
}

type recorder struct {
	bounds int
	fields []shape.FieldKey
}

func (r *recorder) MakeBoundsChangeUndoable([]shape.Element, bool) { r.bounds++ }
func (r *recorder) MakeFieldChangeUndoable(_ []shape.Element, k shape.FieldKey) {
	r.fields = append(r.fields, k)
}

func TestSelectionFieldMutators(t *testing.T) {
	a := rectAt(image.Rect(0, 0, 10, 10))
	st := shape.NewStepLabel(shape.DefaultStyle())
	l := listOf(a, st)
	s := l.Selection()
	rec := &recorder{}
	s.SetCheckpointer(rec)
	s.SelectAll()

	blue := color.RGBA{0, 0, 255, 255}
	assert.Equal(t, blue, s.SetForegroundColor(blue))
	v, _ := a.Field(shape.FieldLineColor)
	assert.Equal(t, blue, v)

	assert.Equal(t, 5, s.IncreaseLineThickness(3))
	assert.Equal(t, 0, s.IncreaseLineThickness(-10))

	assert.False(t, s.FlipShadow())
	v, _ = st.Field(shape.FieldShadow)
	assert.Equal(t, false, v)

	assert.Equal(t, []shape.FieldKey{
		shape.FieldLineColor, shape.FieldLineThickness, shape.FieldLineThickness, shape.FieldShadow,
	}, rec.fields)

	s.MakeBoundsChangeUndoable(true)
	s.MoveBy(10, 10)
	assert.Equal(t, 1, rec.bounds)
	assert.Equal(t, image.Rect(10, 10, 20, 20), a.Bounds())
}

func TestListEvents(t *testing.T) {
	a := rectAt(image.Rect(0, 0, 1, 1))
	l := NewList()
	var kinds []EventKind
	l.Subscribe(func(ev ListEvent) { kinds = append(kinds, ev.Kind) })
	l.Add(a)
	l.Add(rectAt(image.Rect(0, 0, 1, 1)))
	l.PullToTop([]shape.Element{a})
	l.Remove(a)
	assert.Equal(t, []EventKind{Added, Added, Reordered, Removed}, kinds)
}
