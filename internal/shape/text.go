package shape

import (
	"image"
	"image/color"
	"log"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/math/f64"
)

const textPadding = 4

func textFields(d Defaults) Fields {
	return Fields{
		FieldLineColor: d.LineColor,
		FieldFillColor: d.FillColor,
		FieldFontSize:  d.FontSize,
		FieldText:      "",
		FieldShadow:    d.Shadow,
	}
}

// Text is a block of typed text with an optional background.
type Text struct {
	Base
	editing bool
}

func NewText(d Defaults) *Text {
	t := &Text{}
	t.init(t, ModeText, textFields(d))
	return t
}

func (t *Text) DefaultEditMode() EditMode { return EditText }

func (t *Text) Text() string { return t.fields.String(FieldText) }

func (t *Text) SetText(s string) {
	t.fields[FieldText] = s
	t.fit()
}

// InsertRune appends r at the end of the text.
func (t *Text) InsertRune(r rune) { t.SetText(t.Text() + string(r)) }

// Backspace removes the last rune and reports whether anything was removed.
func (t *Text) Backspace() bool {
	s := t.Text()
	if s == "" {
		return false
	}
	_, n := utf8.DecodeLastRuneInString(s)
	t.SetText(s[:len(s)-n])
	return true
}

func (t *Text) Editing() bool     { return t.editing }
func (t *Text) SetEditing(v bool) { t.editing = v }

func (t *Text) SetField(key FieldKey, v any) bool {
	if !t.Base.SetField(key, v) {
		return false
	}
	if key == FieldText || key == FieldFontSize {
		t.fit()
	}
	return true
}

// fit grows the bounds until the text and its padding fit. It never shrinks.
func (t *Text) fit() {
	s := t.Text()
	if s == "" {
		s = " "
	}
	w, h, err := MeasureText(s, t.fields.Int(FieldFontSize))
	if err != nil {
		log.Printf("measure text: %v", err)
		return
	}
	if need := w + 2*textPadding; t.bounds.Dx() < need {
		t.bounds.Max.X = t.bounds.Min.X + need
	}
	if need := h + 2*textPadding; t.bounds.Dy() < need {
		t.bounds.Max.Y = t.bounds.Min.Y + need
	}
}

func (t *Text) MouseDown(p image.Point) bool {
	t.origin = p
	t.status = StatusDrawing
	t.bounds = image.Rectangle{Min: p, Max: p}
	t.fit()
	return true
}

func (t *Text) MouseMove(p image.Point) bool {
	if t.status != StatusDrawing {
		return false
	}
	t.bounds = image.Rectangle{Min: t.origin, Max: p}.Canon()
	t.fit()
	return true
}

func (t *Text) drawBody(dst *image.RGBA, mode RenderMode) {
	b := t.bounds
	inner := b.Inset(textPadding)
	size := t.fields.Int(FieldFontSize)
	if t.shadow() {
		if t.fillColor().A == 0 {
			drawText(dst, inner.Add(image.Pt(1, 1)), t.Text(), shadowColor, size)
		}
	}
	drawText(dst, inner, t.Text(), t.lineColor(), size)
	if !t.editing || mode != RenderEdit {
		return
	}
	lines := strings.Split(t.Text(), "\n")
	lw, lh, err := MeasureText(lines[len(lines)-1], size)
	if err != nil {
		return
	}
	x := inner.Min.X + lw + 1
	y := inner.Min.Y + lh*(len(lines)-1)
	drawLine(dst, x, y, x, y+lh-1, t.lineColor(), 1)
	drawDashedRect(dst, b, 3, 1, color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})
}

func (t *Text) Draw(dst *image.RGBA, _ image.Image, mode RenderMode, clip image.Rectangle) {
	c := clipTo(dst, clip)
	if t.shadow() && t.fillColor().A != 0 {
		fillRect(c, t.bounds.Add(image.Pt(shadowOffset, shadowOffset)), shadowColor)
	}
	fillRect(c, t.bounds, t.fillColor())
	t.drawBody(c, mode)
}

func (t *Text) Clone() Element {
	c := &Text{}
	c.Base = t.Base.clone(c)
	return c
}

const tailLength = 24

// SpeechBubble is text in an outlined box with a tail pointing at something.
type SpeechBubble struct {
	Text
	tail image.Point
}

func NewSpeechBubble(d Defaults) *SpeechBubble {
	s := &SpeechBubble{}
	f := textFields(d)
	if d.FillColor.A == 0 {
		f[FieldFillColor] = color.RGBA{255, 255, 255, 255}
	}
	f[FieldLineThickness] = d.LineThickness
	s.init(s, ModeSpeechBubble, f)
	s.adorners = append(s.adorners, &tailAdorner{owner: s})
	return s
}

func (s *SpeechBubble) Tail() image.Point     { return s.tail }
func (s *SpeechBubble) SetTail(p image.Point) { s.tail = p }

func (s *SpeechBubble) placeTail() {
	b := s.bounds
	s.tail = image.Pt(b.Min.X+b.Dx()/4, b.Max.Y+tailLength)
}

func (s *SpeechBubble) MouseDown(p image.Point) bool {
	s.Text.MouseDown(p)
	s.placeTail()
	return true
}

func (s *SpeechBubble) MouseMove(p image.Point) bool {
	if !s.Text.MouseMove(p) {
		return false
	}
	s.placeTail()
	return true
}

// SetBounds carries the tail along, scaling its offset with the box.
func (s *SpeechBubble) SetBounds(r image.Rectangle) {
	old := s.bounds
	r = r.Canon()
	if old.Dx() == 0 || old.Dy() == 0 {
		s.tail = s.tail.Add(r.Min.Sub(old.Min))
	} else {
		s.tail = remapPoints([]image.Point{{}, s.tail}, old, r)[1]
	}
	s.bounds = r
}

func (s *SpeechBubble) Transform(m f64.Aff3) {
	pts := []image.Point{s.bounds.Min, s.bounds.Max, s.tail}
	transformPoints(pts, m)
	s.bounds = boundsOf(pts[:2])
	s.tail = pts[2]
}

// tailBase returns the two points where the tail meets the box.
func (s *SpeechBubble) tailBase() (image.Point, image.Point) {
	b := s.bounds
	w := max(min(b.Dx()/8, 12), 3)
	cx := min(max(s.tail.X, b.Min.X+w), b.Max.X-w)
	y := b.Max.Y - 1
	if s.tail.Y < (b.Min.Y+b.Max.Y)/2 {
		y = b.Min.Y
	}
	return image.Pt(cx-w, y), image.Pt(cx+w, y)
}

func (s *SpeechBubble) DrawingBounds() image.Rectangle {
	pad := s.thickness() + 2
	if s.shadow() {
		pad += shadowOffset
	}
	tail := image.Rectangle{Min: s.tail, Max: s.tail.Add(image.Pt(1, 1))}
	return s.bounds.Union(tail).Inset(-pad)
}

func (s *SpeechBubble) HitTest(p image.Point) bool {
	if s.Base.HitTest(p) {
		return true
	}
	a, b := s.tailBase()
	return pointInTriangle(p, a, b, s.tail)
}

func (s *SpeechBubble) Draw(dst *image.RGBA, _ image.Image, mode RenderMode, clip image.Rectangle) {
	c := clipTo(dst, clip)
	a, b := s.tailBase()
	th := max(s.thickness(), 1)
	if s.shadow() {
		off := image.Pt(shadowOffset, shadowOffset)
		fillRect(c, s.bounds.Add(off), shadowColor)
		fillTriangle(c, a.Add(off), b.Add(off), s.tail.Add(off), shadowColor)
	}
	fillRect(c, s.bounds, s.fillColor())
	drawRect(c, s.bounds, s.lineColor(), th)
	fillTriangle(c, a, b, s.tail, s.fillColor())
	drawLine(c, a.X, a.Y, s.tail.X, s.tail.Y, s.lineColor(), th)
	drawLine(c, b.X, b.Y, s.tail.X, s.tail.Y, s.lineColor(), th)
	s.drawBody(c, mode)
}

func (s *SpeechBubble) Clone() Element {
	c := &SpeechBubble{tail: s.tail}
	c.Base = s.Base.clone(c)
	c.adorners = append(c.adorners, &tailAdorner{owner: c})
	return c
}

// tailAdorner drags the tip of a speech bubble's tail.
type tailAdorner struct {
	owner  *SpeechBubble
	active bool
}

func (a *tailAdorner) Owner() Element { return a.owner }

func (a *tailAdorner) Handles() []image.Point { return []image.Point{a.owner.tail} }

func (a *tailAdorner) HitTest(p image.Point, tol int) bool {
	return handleAt(a.Handles(), p, tol) >= 0
}

func (a *tailAdorner) Active() bool { return a.active }

func (a *tailAdorner) MouseDown(p image.Point, tol int) bool {
	a.active = a.HitTest(p, tol)
	if a.active {
		a.owner.SetStatus(StatusResizing)
	}
	return a.active
}

func (a *tailAdorner) MouseMove(p image.Point) bool {
	if !a.active {
		return false
	}
	a.owner.tail = p
	return true
}

func (a *tailAdorner) MouseUp(p image.Point) bool {
	if !a.active {
		return false
	}
	a.owner.tail = p
	a.active = false
	a.owner.SetStatus(StatusIdle)
	return true
}
