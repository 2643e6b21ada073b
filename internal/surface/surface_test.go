package surface

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/annotator/internal/geom"
	"github.com/example/annotator/internal/render"
	"github.com/example/annotator/internal/shape"
)

func newTestSurface(w, h int) *Surface {
	bg := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range bg.Pix {
		bg.Pix[i] = 0xff
	}
	return New(bg)
}

func addRect(s *Surface, r image.Rectangle) *shape.Rect {
	e := shape.NewRect(s.Style())
	e.SetBounds(r)
	s.AddElement(e)
	return e
}

func TestMoveUndoRedo(t *testing.T) {
	s := newTestSurface(800, 600)
	r := addRect(s, image.Rect(100, 100, 150, 150))
	s.Selection().SelectOnly(r)

	s.Selection().MakeBoundsChangeUndoable(false)
	s.Selection().MoveBy(10, 10)
	assert.Equal(t, image.Pt(110, 110), r.Bounds().Min)

	s.Undo()
	assert.Equal(t, image.Pt(100, 100), r.Bounds().Min)
	s.Redo()
	assert.Equal(t, image.Pt(110, 110), r.Bounds().Min)
	assert.Equal(t, image.Pt(50, 50), r.Bounds().Size())
}

func TestNudgesMerge(t *testing.T) {
	s := newTestSurface(100, 100)
	r := addRect(s, image.Rect(10, 10, 20, 20))
	s.Selection().SelectOnly(r)
	s.NudgeSelection(1, 0)
	s.NudgeSelection(1, 0)
	s.NudgeSelection(0, 1)
	assert.Equal(t, 2, s.History().UndoDepth())
	s.Undo()
	assert.Equal(t, image.Pt(10, 10), r.Bounds().Min)
}

func TestNudgeAfterDragIsSeparateStep(t *testing.T) {
	s := newTestSurface(200, 200)
	r := addRect(s, image.Rect(100, 100, 150, 150))
	s.Selection().SelectOnly(r)
	c := s.Controller()
	c.PointerDown(image.Pt(120, 120), ButtonLeft, 0)
	c.PointerMove(image.Pt(130, 130))
	c.PointerUp(image.Pt(130, 130))
	require.Equal(t, image.Pt(110, 110), r.Bounds().Min)

	s.NudgeSelection(1, 0)
	s.NudgeSelection(1, 0)
	assert.Equal(t, 3, s.History().UndoDepth())
	s.Undo()
	assert.Equal(t, image.Pt(110, 110), r.Bounds().Min)
	s.Undo()
	assert.Equal(t, image.Pt(100, 100), r.Bounds().Min)
}

func TestNewActionClearsRedo(t *testing.T) {
	s := newTestSurface(100, 100)
	addRect(s, image.Rect(0, 0, 10, 10))
	s.Undo()
	assert.True(t, s.History().CanRedo())
	addRect(s, image.Rect(5, 5, 10, 10))
	assert.False(t, s.History().CanRedo())
}

func TestCreateByDragging(t *testing.T) {
	s := newTestSurface(200, 200)
	s.SetDrawingMode(shape.ModeRect)
	c := s.Controller()
	c.PointerDown(image.Pt(10, 10), ButtonLeft, 0)
	assert.Equal(t, CreatingElement, c.State())
	c.PointerMove(image.Pt(60, 40))
	c.PointerUp(image.Pt(60, 40))
	assert.Equal(t, Idle, c.State())

	require.Equal(t, 1, s.Elements().Len())
	e := s.Elements().At(0)
	assert.Equal(t, image.Rect(10, 10, 60, 40), e.Bounds())
	assert.Equal(t, shape.StatusIdle, e.Status())
	assert.True(t, s.Selection().Contains(e))
	assert.Equal(t, 1, s.History().UndoDepth())

	s.Undo()
	assert.Zero(t, s.Elements().Len())
	assert.Zero(t, s.Selection().Len())
}

func TestTinyCreationSnaps(t *testing.T) {
	s := newTestSurface(200, 200)
	s.SetDrawingMode(shape.ModeEllipse)
	c := s.Controller()
	c.PointerDown(image.Pt(10, 10), ButtonLeft, 0)
	c.PointerUp(image.Pt(12, 11))
	require.Equal(t, 1, s.Elements().Len())
	assert.Equal(t, image.Rect(10, 10, 35, 35), s.Elements().At(0).Bounds())
}

func TestInvalidCreationLeavesNoTrace(t *testing.T) {
	for _, m := range []shape.DrawingMode{shape.ModePath, shape.ModeCrop} {
		t.Run(m.String(), func(t *testing.T) {
			s := newTestSurface(100, 100)
			s.SetDrawingMode(m)
			s.Controller().PointerDown(image.Pt(5, 5), ButtonLeft, 0)
			s.Controller().PointerUp(image.Pt(5, 5))
			assert.Zero(t, s.Elements().Len())
			assert.Zero(t, s.History().UndoDepth())
		})
	}
}

func TestCancelDropsCreation(t *testing.T) {
	s := newTestSurface(100, 100)
	s.SetDrawingMode(shape.ModeRect)
	s.Controller().PointerDown(image.Pt(5, 5), ButtonLeft, 0)
	s.Controller().PointerMove(image.Pt(50, 50))
	s.Controller().Cancel()
	assert.Zero(t, s.Elements().Len())
	assert.Zero(t, s.History().UndoDepth())
}

func TestClickSelectsWithoutHistory(t *testing.T) {
	s := newTestSurface(200, 200)
	a := addRect(s, image.Rect(10, 10, 50, 50))
	b := addRect(s, image.Rect(30, 30, 80, 80))
	depth := s.History().UndoDepth()
	c := s.Controller()

	c.PointerDown(image.Pt(40, 40), ButtonLeft, 0)
	c.PointerUp(image.Pt(40, 40))
	assert.Equal(t, []shape.Element{b}, s.Selection().Elements())

	c.PointerDown(image.Pt(15, 15), ButtonLeft, ModShift)
	c.PointerUp(image.Pt(15, 15))
	assert.ElementsMatch(t, []shape.Element{a, b}, s.Selection().Elements())

	c.PointerDown(image.Pt(150, 150), ButtonLeft, 0)
	c.PointerUp(image.Pt(150, 150))
	assert.Zero(t, s.Selection().Len())
	assert.Equal(t, depth, s.History().UndoDepth())
}

func TestDragElement(t *testing.T) {
	s := newTestSurface(200, 200)
	r := addRect(s, image.Rect(100, 100, 150, 150))
	c := s.Controller()
	c.PointerDown(image.Pt(120, 120), ButtonLeft, 0)
	c.PointerMove(image.Pt(125, 122))
	assert.Equal(t, DraggingElement, c.State())
	c.PointerMove(image.Pt(130, 125))
	c.PointerUp(image.Pt(130, 125))
	assert.Equal(t, image.Pt(110, 105), r.Bounds().Min)
	assert.Equal(t, 2, s.History().UndoDepth())
	s.Undo()
	assert.Equal(t, image.Pt(100, 100), r.Bounds().Min)
}

func TestDragSelectionMovesAll(t *testing.T) {
	s := newTestSurface(200, 200)
	a := addRect(s, image.Rect(10, 10, 30, 30))
	b := addRect(s, image.Rect(100, 100, 130, 130))
	s.SelectAll()
	c := s.Controller()
	c.PointerDown(image.Pt(20, 20), ButtonLeft, 0)
	c.PointerMove(image.Pt(25, 20))
	assert.Equal(t, DraggingSelection, c.State())
	c.PointerUp(image.Pt(25, 20))
	assert.Equal(t, image.Pt(15, 10), a.Bounds().Min)
	assert.Equal(t, image.Pt(105, 100), b.Bounds().Min)
}

func TestResizeThroughAdorner(t *testing.T) {
	s := newTestSurface(200, 200)
	r := addRect(s, image.Rect(10, 10, 50, 50))
	s.Selection().SelectOnly(r)
	c := s.Controller()
	c.PointerDown(image.Pt(50, 50), ButtonLeft, 0)
	assert.Equal(t, AdornerActive, c.State())
	c.PointerMove(image.Pt(70, 60))
	c.PointerUp(image.Pt(70, 60))
	assert.Equal(t, image.Rect(10, 10, 70, 60), r.Bounds())
	s.Undo()
	assert.Equal(t, image.Rect(10, 10, 50, 50), r.Bounds())
}

func TestAdornerClickWithoutMoveLeavesNoHistory(t *testing.T) {
	s := newTestSurface(200, 200)
	r := addRect(s, image.Rect(10, 10, 50, 50))
	s.Selection().SelectOnly(r)
	c := s.Controller()
	c.PointerDown(image.Pt(50, 50), ButtonLeft, 0)
	require.Equal(t, AdornerActive, c.State())
	c.PointerUp(image.Pt(50, 50))
	assert.Equal(t, 1, s.History().UndoDepth())
	assert.Equal(t, image.Rect(10, 10, 50, 50), r.Bounds())

	c.PointerDown(image.Pt(50, 50), ButtonLeft, 0)
	c.PointerMove(image.Pt(60, 55))
	c.PointerMove(image.Pt(70, 60))
	c.PointerUp(image.Pt(70, 60))
	assert.Equal(t, 2, s.History().UndoDepth())
	s.Undo()
	assert.Equal(t, image.Rect(10, 10, 50, 50), r.Bounds())
}

func TestContextMenu(t *testing.T) {
	s := newTestSurface(200, 200)
	r := addRect(s, image.Rect(10, 10, 50, 50))
	var got []ContextMenuRequest
	cancel := s.OnContextMenu(func(req ContextMenuRequest) { got = append(got, req) })

	s.Controller().PointerDown(image.Pt(20, 20), ButtonRight, 0)
	require.Len(t, got, 1)
	assert.Equal(t, []shape.Element{r}, got[0].Elements)
	assert.Equal(t, image.Pt(20, 20), got[0].At)

	cancel()
	s.Controller().PointerDown(image.Pt(20, 20), ButtonRight, 0)
	assert.Len(t, got, 1)
}

func TestTopElementIsClickable(t *testing.T) {
	s := newTestSurface(200, 200)
	a := addRect(s, image.Rect(0, 0, 50, 50))
	b := addRect(s, image.Rect(0, 0, 50, 50))
	assert.Equal(t, shape.Element(b), s.Elements().ClickableElementAt(image.Pt(25, 25)))

	s.Selection().SelectOnly(b)
	s.PushSelectionDown()
	assert.Equal(t, shape.Element(a), s.Elements().ClickableElementAt(image.Pt(25, 25)))
	s.Undo()
	assert.Equal(t, shape.Element(b), s.Elements().ClickableElementAt(image.Pt(25, 25)))

	s.Selection().SelectOnly(a)
	s.PullSelectionToTop()
	assert.False(t, s.CanPullSelectionUp())
	assert.True(t, s.CanPushSelectionDown())
}

func TestDeleteOwnership(t *testing.T) {
	s := newTestSurface(100, 100)
	bm := shape.NewBitmap(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	s.AddElement(bm)
	s.Selection().SelectOnly(bm)
	s.DeleteSelected()
	assert.Zero(t, s.Elements().Len())
	assert.NotNil(t, bm.Image())

	s.Undo()
	assert.Equal(t, 1, s.Elements().Len())
	s.Redo()
	assert.Zero(t, s.Elements().Len())

	s.History().Clear()
	assert.Nil(t, bm.Image())
}

func TestStepLabelNumbers(t *testing.T) {
	s := newTestSurface(200, 200)
	var labels []*shape.StepLabel
	for i := 0; i < 3; i++ {
		sl := shape.NewStepLabel(s.Style())
		sl.SetBounds(image.Rect(i*40, 0, i*40+30, 30))
		s.AddElement(sl)
		labels = append(labels, sl)
	}
	assert.Equal(t, 3, labels[2].Number())

	s.RemoveElements([]shape.Element{labels[1]})
	assert.Equal(t, 2, labels[2].Number())
	s.Undo()
	assert.Equal(t, 2, labels[1].Number())
	assert.Equal(t, 3, labels[2].Number())

	s.SetCounterStart(5)
	assert.Equal(t, 5, labels[0].Number())
	assert.Equal(t, 7, labels[2].Number())
}

func TestZoomRoundTrip(t *testing.T) {
	s := newTestSurface(100, 100)
	s.SetOrigin(image.Pt(7, 3))
	for _, z := range []geom.Zoom{geom.NewZoom(2, 3), geom.NewZoom(3, 1), geom.NewZoom(1, 8)} {
		s.SetZoom(z)
		for _, p := range []image.Point{{0, 0}, {13, 29}, {-5, 101}} {
			assert.Equal(t, p, s.ToSurfaceCoordinates(s.ToImageCoordinates(p)), "zoom %v point %v", z, p)
		}
	}
}

func TestZoomLadder(t *testing.T) {
	s := newTestSurface(10, 10)
	s.ZoomIn()
	assert.Equal(t, geom.NewZoom(3, 2), s.Zoom())
	s.ZoomOut()
	s.ZoomOut()
	assert.Equal(t, geom.NewZoom(2, 3), s.Zoom())
}

func TestCropError(t *testing.T) {
	s := newTestSurface(800, 600)
	err := s.Crop(image.Rect(700, 500, 900, 700))
	var ce *render.CropError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, image.Pt(800, 600), s.Size())
	assert.Zero(t, s.History().UndoDepth())
}

func TestCropMovesElements(t *testing.T) {
	s := newTestSurface(800, 600)
	r := addRect(s, image.Rect(100, 100, 150, 150))
	require.NoError(t, s.Crop(image.Rect(50, 50, 450, 350)))
	assert.Equal(t, image.Pt(400, 300), s.Size())
	assert.Equal(t, image.Rect(50, 50, 100, 100), r.Bounds())

	s.Undo()
	assert.Equal(t, image.Pt(800, 600), s.Size())
	assert.Equal(t, image.Rect(100, 100, 150, 150), r.Bounds())
}

func TestCropGesture(t *testing.T) {
	s := newTestSurface(100, 100)
	s.SetDrawingMode(shape.ModeCrop)
	s.Controller().PointerDown(image.Pt(10, 10), ButtonLeft, 0)
	s.Controller().PointerMove(image.Pt(60, 40))
	s.Controller().PointerUp(image.Pt(60, 40))
	r, ok := s.PendingCrop()
	require.True(t, ok)
	assert.Equal(t, image.Rect(10, 10, 60, 40), r)
	assert.Zero(t, s.History().UndoDepth())

	require.NoError(t, s.ConfirmCrop())
	assert.Equal(t, image.Pt(50, 30), s.Size())
	assert.Zero(t, s.Elements().Len())
	assert.Equal(t, shape.ModeNone, s.DrawingMode())
	assert.ErrorIs(t, s.ConfirmCrop(), ErrNoCrop)
}

func TestDeletingPendingCropCancelsIt(t *testing.T) {
	s := newTestSurface(100, 100)
	s.SetDrawingMode(shape.ModeCrop)
	c := s.Controller()
	c.PointerDown(image.Pt(10, 10), ButtonLeft, 0)
	c.PointerMove(image.Pt(60, 60))
	c.PointerUp(image.Pt(60, 60))
	_, ok := s.PendingCrop()
	require.True(t, ok)

	s.DeleteSelected()
	_, ok = s.PendingCrop()
	assert.False(t, ok)
	assert.Zero(t, s.Elements().Len())
	assert.Zero(t, s.History().UndoDepth())
	assert.ErrorIs(t, s.ConfirmCrop(), ErrNoCrop)
	assert.Equal(t, image.Pt(100, 100), s.Size())
}

func TestEffectFailureLeavesSurface(t *testing.T) {
	s := newTestSurface(10, 10)
	err := s.ApplyEffect(render.Resize{Width: 0, Height: 5})
	assert.Error(t, err)
	assert.Equal(t, image.Pt(10, 10), s.Size())
	assert.Zero(t, s.History().UndoDepth())
}

func TestRotateMovesElements(t *testing.T) {
	s := newTestSurface(100, 50)
	r := addRect(s, image.Rect(0, 0, 10, 20))
	require.NoError(t, s.ApplyEffect(render.Rotate90{}))
	assert.Equal(t, image.Pt(50, 100), s.Size())
	assert.Equal(t, image.Pt(20, 10), r.Bounds().Size())
}

func TestTextEditing(t *testing.T) {
	s := newTestSurface(200, 200)
	s.SetDrawingMode(shape.ModeText)
	s.Controller().PointerDown(image.Pt(20, 20), ButtonLeft, 0)
	s.Controller().PointerUp(image.Pt(20, 20))
	ed := s.EditingText()
	require.NotNil(t, ed)
	assert.True(t, ed.Editing())
	assert.Zero(t, s.History().UndoDepth())

	s.TypeRune('h')
	s.TypeRune('i')
	s.EndTextEdit()
	assert.Nil(t, s.EditingText())
	assert.False(t, ed.Editing())
	assert.Equal(t, "hi", ed.Text())
	assert.Equal(t, 1, s.History().UndoDepth())

	require.True(t, s.EditText(ed))
	s.Backspace()
	s.EndTextEdit()
	assert.Equal(t, "h", ed.Text())
	s.Undo()
	assert.Equal(t, "hi", ed.Text())
	s.Undo()
	assert.Zero(t, s.Elements().Len())
}

func TestEmptyNewTextIsDropped(t *testing.T) {
	s := newTestSurface(200, 200)
	s.SetDrawingMode(shape.ModeText)
	s.Controller().PointerDown(image.Pt(20, 20), ButtonLeft, 0)
	s.Controller().PointerUp(image.Pt(20, 20))
	require.NotNil(t, s.EditingText())
	s.EndTextEdit()
	assert.Zero(t, s.Elements().Len())
	assert.Zero(t, s.History().UndoDepth())
}

type testPayload struct {
	id    uuid.UUID
	elems []shape.Element
	img   image.Image
	text  string
}

func (p testPayload) ID() uuid.UUID             { return p.id }
func (p testPayload) ContainsElements() bool    { return len(p.elems) > 0 }
func (p testPayload) Elements() []shape.Element { return p.elems }
func (p testPayload) ContainsImage() bool       { return p.img != nil }
func (p testPayload) Image() image.Image        { return p.img }
func (p testPayload) ContainsText() bool        { return p.text != "" }
func (p testPayload) Text() string              { return p.text }

func TestPasteOffsetsRepeats(t *testing.T) {
	s := newTestSurface(300, 300)
	src := shape.NewRect(s.Style())
	src.SetBounds(image.Rect(100, 100, 150, 150))
	p := testPayload{id: uuid.New(), elems: []shape.Element{src}}

	first, err := s.Paste(p, nil)
	require.NoError(t, err)
	second, err := s.Paste(p, nil)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.NotEqual(t, src.ID(), first[0].ID())
	assert.Equal(t, image.Pt(100, 100), first[0].Bounds().Min)
	assert.Equal(t, image.Pt(110, 110), second[0].Bounds().Min)
	assert.Equal(t, second, s.Selection().Elements())
	assert.Equal(t, 2, s.History().UndoDepth())

	s.Undo()
	assert.Equal(t, 1, s.Elements().Len())
}

func TestPasteImageCentres(t *testing.T) {
	s := newTestSurface(300, 300)
	at := image.Pt(100, 100)
	out, err := s.Paste(testPayload{id: uuid.New(), img: image.NewRGBA(image.Rect(0, 0, 20, 10))}, &at)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, image.Rect(90, 95, 110, 105), out[0].Bounds())

	_, err = s.Paste(testPayload{id: uuid.New()}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedPayload)
}

func TestDropAtPointer(t *testing.T) {
	s := newTestSurface(300, 300)
	s.SetZoom(geom.NewZoom(2, 1))
	out, err := s.Drop(testPayload{id: uuid.New(), text: "note"}, image.Pt(40, 60))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, image.Pt(20, 30), out[0].Bounds().Min)
	assert.Equal(t, "note", out[0].(*shape.Text).Text())
}

func TestSaveLoad(t *testing.T) {
	s := newTestSurface(200, 200)
	s.SetCounterStart(3)
	r := addRect(s, image.Rect(10, 10, 40, 40))
	sl := shape.NewStepLabel(s.Style())
	sl.SetBounds(image.Rect(50, 50, 80, 80))
	s.AddElement(sl)

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))

	o := newTestSurface(200, 200)
	addRect(o, image.Rect(0, 0, 5, 5))
	require.NoError(t, o.Load(&buf))
	require.Equal(t, 2, o.Elements().Len())
	assert.Equal(t, r.ID(), o.Elements().At(0).ID())
	assert.Equal(t, 3, o.CounterStart())
	assert.Equal(t, 3, o.Elements().At(1).(*shape.StepLabel).Number())
	assert.Zero(t, o.History().UndoDepth())
}

func TestLoadErrorLeavesState(t *testing.T) {
	s := newTestSurface(100, 100)
	r := addRect(s, image.Rect(0, 0, 10, 10))
	err := s.Load(strings.NewReader("version: 99\n"))
	assert.Error(t, err)
	assert.Equal(t, []shape.Element{r}, s.Elements().Elements())
	assert.Equal(t, 1, s.History().UndoDepth())
}

func TestPaintPaths(t *testing.T) {
	bg := image.NewRGBA(image.Rect(0, 0, 10, 10))
	red := color.RGBA{255, 0, 0, 255}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			bg.SetRGBA(x, y, red)
		}
	}
	s := New(bg)
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))

	s.Compositor().Paint(dst, dst.Bounds())
	assert.False(t, s.Compositor().UsedBuffer())
	assert.Equal(t, red, dst.RGBAAt(5, 5))
	assert.NotEqual(t, red, dst.RGBAAt(15, 15))

	s.SetZoom(geom.NewZoom(2, 1))
	s.Compositor().Paint(dst, dst.Bounds())
	assert.True(t, s.Compositor().UsedBuffer())
	assert.Equal(t, red, dst.RGBAAt(19, 19))

	s.SetZoom(geom.Unity)
	o := shape.NewObfuscate(s.Style())
	o.SetBounds(image.Rect(0, 0, 4, 4))
	s.AddElement(o)
	s.Compositor().Paint(dst, image.Rect(0, 0, 8, 8))
	assert.True(t, s.Compositor().UsedBuffer())
}

func TestScalingBufferFollowsBackground(t *testing.T) {
	s := newTestSurface(40, 30)
	s.SetZoom(geom.NewZoom(2, 1))
	dst := image.NewRGBA(image.Rect(0, 0, 80, 60))
	c := s.Compositor()

	c.Paint(dst, image.Rect(0, 0, 10, 10))
	buf := c.buf
	require.NotNil(t, buf)
	assert.Equal(t, image.Rect(0, 0, 40, 30), buf.Rect)
	c.Paint(dst, image.Rect(30, 30, 60, 50))
	assert.Same(t, buf, c.buf)

	require.NoError(t, s.Crop(image.Rect(0, 0, 20, 10)))
	c.Paint(dst, dst.Bounds())
	assert.Equal(t, image.Rect(0, 0, 20, 10), c.buf.Rect)
}

func TestDamageTracking(t *testing.T) {
	s := newTestSurface(100, 100)
	s.Compositor().Damage()
	r := addRect(s, image.Rect(10, 10, 20, 20))
	d, _ := s.Compositor().Damage()
	assert.True(t, r.Bounds().In(d))
	d, full := s.Compositor().Damage()
	assert.True(t, d.Empty())
	assert.False(t, full)

	s.SetZoom(geom.NewZoom(2, 1))
	_, full = s.Compositor().Damage()
	assert.True(t, full)
}

func TestExportHidesCrop(t *testing.T) {
	s := newTestSurface(20, 20)
	s.SetDrawingMode(shape.ModeCrop)
	s.Controller().PointerDown(image.Pt(2, 2), ButtonLeft, 0)
	s.Controller().PointerUp(image.Pt(12, 12))
	out := s.Compositor().Export()
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(2, 2))
}

func TestClose(t *testing.T) {
	s := newTestSurface(10, 10)
	bm := shape.NewBitmap(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	s.AddElement(bm)
	s.Close()
	assert.True(t, s.Closed())
	assert.Nil(t, bm.Image())
	_, err := s.Paste(testPayload{id: uuid.New(), text: "x"}, nil)
	assert.ErrorIs(t, err, ErrClosed)
	s.Close()
}
