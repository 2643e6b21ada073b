package editor

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"

	"github.com/example/annotator/internal/clipboard"
	"github.com/example/annotator/internal/shape"
	"github.com/example/annotator/internal/surface"
	"github.com/example/annotator/internal/theme"
)

func newTestEditor(t *testing.T, w, h int) *Editor {
	t.Helper()
	bg := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range bg.Pix {
		bg.Pix[i] = 0xff
	}
	ed := New(surface.New(bg), Options{Output: filepath.Join(t.TempDir(), "out.png")})
	ed.readClip = func() (*clipboard.Payload, error) { return nil, clipboard.ErrEmpty }
	ed.copyElems = func([]shape.Element) error { return nil }
	ed.copyImage = func(image.Image) error { return nil }
	return ed
}

func addRect(ed *Editor, r image.Rectangle) *shape.Rect {
	e := shape.NewRect(ed.surf.Style())
	e.SetBounds(r)
	ed.surf.AddElement(e)
	return e
}

func TestLookupKey(t *testing.T) {
	a, _, isTool, _ := lookupKey(key.Event{Code: key.CodeZ, Modifiers: key.ModControl})
	assert.Equal(t, actionUndo, a)
	assert.False(t, isTool)

	a, _, _, _ = lookupKey(key.Event{Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift})
	assert.Equal(t, actionRedo, a)

	a, _, _, big := lookupKey(key.Event{Code: key.CodeLeftArrow, Modifiers: key.ModShift})
	assert.Equal(t, actionNudgeLeft, a)
	assert.True(t, big)

	_, mode, isTool, _ := lookupKey(key.Event{Rune: 'R', Code: key.CodeR, Modifiers: key.ModShift})
	assert.True(t, isTool)
	assert.Equal(t, shape.ModeRect, mode)

	a, _, _, _ = lookupKey(key.Event{Rune: 'r', Code: key.CodeR, Modifiers: key.ModControl})
	assert.Equal(t, actionRotate, a)

	a, _, isTool, _ = lookupKey(key.Event{Rune: 'z', Code: key.CodeZ, Modifiers: key.ModAlt})
	assert.Empty(t, a)
	assert.False(t, isTool)
}

func TestToolLabels(t *testing.T) {
	assert.Equal(t, "M:select", toolLabel(shape.ModeNone))
	assert.Equal(t, "C:crop", toolLabel(shape.ModeCrop))
	for _, m := range tools {
		assert.NotEqual(t, m.String(), toolLabel(m), "tool %s has no key", m)
	}
}

func TestDeleteAndUndoKeys(t *testing.T) {
	ed := newTestEditor(t, 100, 100)
	r := addRect(ed, image.Rect(10, 10, 40, 40))
	ed.surf.Selection().SelectOnly(r)

	changed, err := ed.key(0, actionDelete, 0, false, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Zero(t, ed.surf.Elements().Len())

	_, err = ed.key(0, actionUndo, 0, false, false)
	require.NoError(t, err)
	assert.True(t, ed.surf.Elements().Contains(r))
}

func TestNudgeKeys(t *testing.T) {
	ed := newTestEditor(t, 100, 100)
	r := addRect(ed, image.Rect(10, 10, 40, 40))
	ed.surf.Selection().SelectOnly(r)
	require.NoError(t, ed.perform(actionNudgeRight, false))
	require.NoError(t, ed.perform(actionNudgeDown, true))
	assert.Equal(t, image.Pt(11, 20), r.Bounds().Min)
}

func TestToolKeyAndTyping(t *testing.T) {
	ed := newTestEditor(t, 200, 200)
	_, err := ed.key('t', "", shape.ModeText, true, false)
	require.NoError(t, err)
	assert.Equal(t, shape.ModeText, ed.surf.DrawingMode())

	ctl := ed.surf.Controller()
	ctl.PointerDown(image.Pt(20, 20), surface.ButtonLeft, 0)
	ctl.PointerUp(image.Pt(20, 20))
	txt := ed.surf.EditingText()
	require.NotNil(t, txt)

	// Letters type into the text instead of switching tools.
	_, _ = ed.key('h', "", shape.ModeHighlight, true, false)
	_, _ = ed.key('i', "", 0, false, false)
	_, _ = ed.key(0, actionDelete, 0, false, false)
	_, _ = ed.key('o', "", shape.ModeObfuscate, true, false)
	assert.Equal(t, shape.ModeText, ed.surf.DrawingMode())

	_, err = ed.key(0, actionCancel, 0, false, false)
	require.NoError(t, err)
	assert.Nil(t, ed.surf.EditingText())
	assert.Equal(t, "ho", txt.Text())
	assert.Equal(t, 1, ed.surf.History().UndoDepth())
}

func TestCancelDeselects(t *testing.T) {
	ed := newTestEditor(t, 100, 100)
	r := addRect(ed, image.Rect(10, 10, 40, 40))
	ed.surf.Selection().SelectOnly(r)
	require.NoError(t, ed.perform(actionCancel, false))
	assert.Zero(t, ed.surf.Selection().Len())
}

func TestSaveWritesPNG(t *testing.T) {
	ed := newTestEditor(t, 64, 48)
	addRect(ed, image.Rect(10, 10, 40, 40))
	require.NoError(t, ed.perform(actionSave, false))

	f, err := os.Open(ed.opts.Output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())
	assert.Contains(t, ed.activeMessage(), "saved")
}

func TestSaveDocumentRoundTrip(t *testing.T) {
	ed := newTestEditor(t, 64, 48)
	addRect(ed, image.Rect(10, 10, 40, 40))
	require.NoError(t, ed.perform(actionSaveDoc, false))

	path := filepath.Join(filepath.Dir(ed.opts.Output), "out.yaml")
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	other := newTestEditor(t, 64, 48)
	require.NoError(t, other.surf.Load(f))
	require.Equal(t, 1, other.surf.Elements().Len())
	assert.Equal(t, image.Rect(10, 10, 40, 40), other.surf.Elements().At(0).Bounds())
}

func TestSaveFailureIsReported(t *testing.T) {
	ed := newTestEditor(t, 10, 10)
	ed.createFile = func(string) (*os.File, error) { return nil, os.ErrPermission }
	err := ed.perform(actionSave, false)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, ed.activeMessage(), "save failed")
}

func TestCopySelectionOrImage(t *testing.T) {
	ed := newTestEditor(t, 50, 50)
	var elems []shape.Element
	var img image.Image
	ed.copyElems = func(e []shape.Element) error { elems = e; return nil }
	ed.copyImage = func(i image.Image) error { img = i; return nil }

	require.NoError(t, ed.perform(actionCopy, false))
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 50, 50), img.Bounds())
	assert.Nil(t, elems)

	r := addRect(ed, image.Rect(1, 1, 20, 20))
	ed.surf.Selection().SelectOnly(r)
	require.NoError(t, ed.perform(actionCopy, false))
	assert.Equal(t, []shape.Element{r}, elems)
}

func TestPaste(t *testing.T) {
	ed := newTestEditor(t, 200, 200)
	require.NoError(t, ed.perform(actionPaste, false))
	assert.Equal(t, "clipboard is empty", ed.activeMessage())

	ed.readClip = func() (*clipboard.Payload, error) { return clipboard.FromText("hello") }
	require.NoError(t, ed.perform(actionPaste, false))
	require.Equal(t, 1, ed.surf.Elements().Len())
	assert.Equal(t, shape.ModeText, ed.surf.Elements().At(0).Mode())

	boom := errors.New("boom")
	ed.readClip = func() (*clipboard.Payload, error) { return nil, boom }
	assert.ErrorIs(t, ed.perform(actionPaste, false), boom)
}

func TestEffectKeys(t *testing.T) {
	ed := newTestEditor(t, 40, 20)
	require.NoError(t, ed.perform(actionRotate, false))
	assert.Equal(t, image.Pt(20, 40), ed.surf.Size())
	require.NoError(t, ed.perform(actionGrayscale, false))
	assert.Equal(t, 2, ed.surf.History().UndoDepth())
}

func TestQuit(t *testing.T) {
	ed := newTestEditor(t, 10, 10)
	assert.ErrorIs(t, ed.perform(actionQuit, false), errQuit)
}

func TestDoubleClickEditsText(t *testing.T) {
	ed := newTestEditor(t, 200, 200)
	now := time.Unix(1000, 0)
	ed.now = func() time.Time { return now }
	_, err := ed.surf.Paste(mustText(t, "note"), &image.Point{X: 30, Y: 30})
	require.NoError(t, err)

	at := image.Pt(32, 32)
	ed.click(at)
	assert.Nil(t, ed.surf.EditingText())
	now = now.Add(100 * time.Millisecond)
	ed.click(at)
	assert.NotNil(t, ed.surf.EditingText())
}

func mustText(t *testing.T, s string) *clipboard.Payload {
	t.Helper()
	p, err := clipboard.FromText(s)
	require.NoError(t, err)
	return p
}

func TestMessageExpires(t *testing.T) {
	ed := newTestEditor(t, 10, 10)
	now := time.Unix(0, 0)
	ed.now = func() time.Time { return now }
	ed.flash("hello %d", 1)
	assert.Equal(t, "hello 1", ed.activeMessage())
	now = now.Add(messageDuration)
	assert.Empty(t, ed.activeMessage())
}

func TestPaintLayout(t *testing.T) {
	ed := newTestEditor(t, 100, 80)
	th := theme.Default()
	w, h := ed.ui.width+300, 200
	canvas := ed.ui.canvas(w, h)
	ed.surf.SetOrigin(canvas.Min)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	ed.paint(dst, w, h, true)

	assert.Equal(t, th.Background, dst.RGBAAt(canvas.Max.X-1, canvas.Min.Y+1))
	assert.Equal(t, uint8(0xff), dst.RGBAAt(canvas.Min.X+50, canvas.Min.Y+5).R)
	assert.Equal(t, th.ToolbarBackground, dst.RGBAAt(w-1, h-1))
}

func TestCanvasColors(t *testing.T) {
	th := theme.Default()
	c := CanvasColors(th)
	assert.Equal(t, th.CheckerDark, c.CheckerDark)
	assert.Equal(t, th.Selection2, c.Selection2)
}

func TestThicknessKeys(t *testing.T) {
	ed := newTestEditor(t, 100, 100)
	r := addRect(ed, image.Rect(10, 10, 40, 40))
	ed.surf.Selection().SelectOnly(r)
	before, _ := r.Field(shape.FieldLineThickness)

	require.NoError(t, ed.perform(actionThicker, false))
	require.NoError(t, ed.perform(actionThicker, false))
	after, _ := r.Field(shape.FieldLineThickness)
	assert.Equal(t, before.(int)+2, after.(int))

	ed.surf.Undo()
	undone, _ := r.Field(shape.FieldLineThickness)
	assert.Equal(t, before, undone)
}
