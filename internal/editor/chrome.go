package editor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/annotator/internal/shape"
	"github.com/example/annotator/internal/surface"
	"github.com/example/annotator/internal/theme"
)

const (
	buttonHeight = 24
	statusHeight = 24
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button is a clickable area of the window chrome.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// labelButton is a flat button with a text caption.
type labelButton struct {
	label    string
	rect     image.Rectangle
	theme    *theme.Theme
	onSelect func()
}

func (b *labelButton) Draw(dst *image.RGBA, state ButtonState) {
	c := b.theme.ButtonBackground
	switch state {
	case StateHover:
		c = b.theme.ButtonBackgroundHover
	case StatePressed:
		c = b.theme.ButtonBackgroundPress
	}
	draw.Draw(dst, b.rect, image.NewUniform(c), image.Point{}, draw.Src)
	outline(dst, b.rect, b.theme.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(b.theme.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(b.rect.Min.X+4, b.rect.Min.Y+16)}
	d.DrawString(b.label)
}

func (b *labelButton) Rect() image.Rectangle     { return b.rect }
func (b *labelButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *labelButton) Activate() {
	if b.onSelect != nil {
		b.onSelect()
	}
}

// toolButton selects a drawing mode.
type toolButton struct {
	*CacheButton
	mode shape.DrawingMode
}

// chrome is the toolbar on the left and the status line at the bottom.
type chrome struct {
	theme   *theme.Theme
	width   int
	buttons []toolButton
	hover   int
}

func newChrome(t *theme.Theme, selectMode func(shape.DrawingMode)) *chrome {
	c := &chrome{theme: t, hover: -1}
	meas := &font.Drawer{Face: basicfont.Face7x13}
	c.width = meas.MeasureString("Annotator").Ceil() + 8
	for _, m := range tools {
		lbl := toolLabel(m)
		if w := meas.MeasureString(lbl).Ceil() + 8; w > c.width {
			c.width = w
		}
		m := m
		c.buttons = append(c.buttons, toolButton{
			CacheButton: &CacheButton{Button: &labelButton{label: lbl, theme: t, onSelect: func() { selectMode(m) }}},
			mode:        m,
		})
	}
	return c
}

// canvas is the part of a w×h window left for the image.
func (c *chrome) canvas(w, h int) image.Rectangle {
	return image.Rect(c.width, 0, w, h-statusHeight)
}

func (c *chrome) layout() {
	y := 0
	for _, b := range c.buttons {
		b.SetRect(image.Rect(0, y, c.width, y+buttonHeight))
		y += buttonHeight
	}
}

// buttonAt returns the index of the button under p, or -1.
func (c *chrome) buttonAt(p image.Point) int {
	for i, b := range c.buttons {
		if p.In(b.Rect()) {
			return i
		}
	}
	return -1
}

func (c *chrome) drawToolbar(dst *image.RGBA, h int, mode shape.DrawingMode) {
	c.layout()
	draw.Draw(dst, image.Rect(0, 0, c.width, h-statusHeight), image.NewUniform(c.theme.ToolbarBackground), image.Point{}, draw.Src)
	for i, b := range c.buttons {
		state := StateDefault
		if b.mode == mode {
			state = StatePressed
		} else if i == c.hover {
			state = StateHover
		}
		b.Draw(dst, state)
	}
}

func (c *chrome) drawStatus(dst *image.RGBA, w, h int, s *surface.Surface) {
	r := image.Rect(0, h-statusHeight, w, h)
	draw.Draw(dst, r, image.NewUniform(c.theme.ToolbarBackground), image.Point{}, draw.Src)
	status := fmt.Sprintf("%d%%  %s  %d element(s)  %d selected  undo %d  redo %d",
		s.Zoom().Percent(), toolLabel(s.DrawingMode()), s.Elements().Len(), s.Selection().Len(),
		s.History().UndoDepth(), s.History().RedoDepth())
	if _, ok := s.PendingCrop(); ok {
		status += "  Enter:crop Esc:cancel"
	}
	if s.EditingText() != nil {
		status += "  Esc:finish text"
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c.theme.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(r.Min.X+4, r.Min.Y+16)}
	d.DrawString(status)
}

// drawMessage centres msg over the canvas.
func drawMessage(dst *image.RGBA, canvas image.Rectangle, msg string, t *theme.Theme) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(t.MessageText), Face: face}
	w := d.MeasureString(msg).Ceil()
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	px := canvas.Min.X + (canvas.Dx()-w)/2
	py := canvas.Min.Y + (canvas.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+w+8, py+descent+8)
	draw.Draw(dst, rect, image.NewUniform(t.MessageBackground), image.Point{}, draw.Over)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

func outline(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	u := image.NewUniform(c)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// CanvasColors maps a theme onto the surface decorations.
func CanvasColors(t *theme.Theme) surface.Colors {
	return surface.Colors{
		CheckerLight: t.CheckerLight,
		CheckerDark:  t.CheckerDark,
		HandleFill:   t.HandleFill,
		HandleBorder: t.HandleBorder,
		Selection1:   t.Selection1,
		Selection2:   t.Selection2,
	}
}
