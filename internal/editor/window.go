package editor

import (
	"errors"
	"image"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/annotator/internal/render"
	"github.com/example/annotator/internal/surface"
)

// effectEvent applies an effect after the "please wait" frame is shown.
type effectEvent struct{ effect render.Effect }

// Run opens the window and blocks until it is closed. The surface is
// closed on return.
func (ed *Editor) Run() { driver.Main(ed.Main) }

// Main is the shiny entry point.
func (ed *Editor) Main(s screen.Screen) {
	defer ed.surf.Close()

	size0 := ed.surf.Size()
	width := size0.X + ed.ui.width
	height := size0.Y + statusHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: ed.opts.Title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()

	var buf screen.Buffer
	defer func() {
		if buf != nil {
			buf.Release()
		}
	}()
	var pan image.Point
	var panning bool
	var panStart image.Point
	full := true

	layout := func() {
		ed.surf.SetOrigin(ed.ui.canvas(width, height).Min.Add(pan))
	}
	layout()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			if buf != nil {
				buf.Release()
				buf = nil
			}
			layout()
			full = true
			w.Send(paint.Event{})
		case paint.Event:
			if width <= 0 || height <= 0 {
				continue
			}
			if buf == nil {
				if buf, err = s.NewBuffer(image.Pt(width, height)); err != nil {
					log.Printf("new buffer: %v", err)
					continue
				}
				full = true
			}
			ed.paint(buf.RGBA(), width, height, full)
			full = false
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()
		case effectEvent:
			if err := ed.applyEffect(e.effect); err == nil {
				ed.message = ""
			}
			w.Send(paint.Event{})
		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			canvas := ed.ui.canvas(width, height)
			switch {
			case panning:
				pan = pan.Add(p.Sub(panStart))
				panStart = p
				layout()
				if e.Direction == mouse.DirRelease {
					panning = false
				}
			case e.Button == mouse.ButtonMiddle && e.Direction == mouse.DirPress:
				panning, panStart = true, p
			case e.Button == mouse.ButtonWheelUp || e.Button == mouse.ButtonWheelDown:
				if e.Direction == mouse.DirRelease {
					continue
				}
				ed.wheel(e, &pan)
				layout()
			case !p.In(canvas) && ed.surf.Controller().State() == surface.Idle:
				ed.chromeMouse(e, p)
			default:
				ed.canvasMouse(e, p)
			}
			w.Send(paint.Event{})
		case key.Event:
			if e.Direction == key.DirRelease {
				continue
			}
			a, mode, isTool, big := lookupKey(e)
			switch a {
			case actionRotate, actionGrayscale:
				if ed.surf.EditingText() == nil {
					ed.flash("please wait")
					w.Send(paint.Event{})
					w.Send(effectEvent{effect: effectFor(a)})
					continue
				}
			}
			changed, err := ed.key(e.Rune, a, mode, isTool, big)
			if errors.Is(err, errQuit) {
				return
			}
			if changed || err != nil {
				w.Send(paint.Event{})
			}
		}
	}
}

func effectFor(a action) render.Effect {
	if a == actionRotate {
		return render.Rotate90{}
	}
	return render.Grayscale{}
}

func (ed *Editor) wheel(e mouse.Event, pan *image.Point) {
	up := e.Button == mouse.ButtonWheelUp
	if e.Modifiers&key.ModControl != 0 {
		if up {
			ed.surf.ZoomIn()
		} else {
			ed.surf.ZoomOut()
		}
		return
	}
	d := 32
	if !up {
		d = -d
	}
	if e.Modifiers&key.ModShift != 0 {
		pan.X += d
	} else {
		pan.Y += d
	}
}

func (ed *Editor) chromeMouse(e mouse.Event, p image.Point) {
	ed.ui.hover = ed.ui.buttonAt(p)
	if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress && ed.ui.hover >= 0 {
		ed.ui.buttons[ed.ui.hover].Activate()
	}
}

func (ed *Editor) canvasMouse(e mouse.Event, p image.Point) {
	ctl := ed.surf.Controller()
	ed.ui.hover = -1
	switch e.Direction {
	case mouse.DirPress:
		ctl.PointerDown(p, pointerButton(e.Button), modifiers(e.Modifiers))
	case mouse.DirRelease:
		ctl.PointerUp(p)
		if e.Button == mouse.ButtonLeft {
			ed.click(p)
		}
	case mouse.DirNone:
		ctl.PointerMove(p)
	}
}

func pointerButton(b mouse.Button) surface.Button {
	switch b {
	case mouse.ButtonRight:
		return surface.ButtonRight
	case mouse.ButtonMiddle:
		return surface.ButtonMiddle
	}
	return surface.ButtonLeft
}

func modifiers(m key.Modifiers) surface.Modifiers {
	var out surface.Modifiers
	if m&key.ModShift != 0 {
		out |= surface.ModShift
	}
	if m&key.ModControl != 0 {
		out |= surface.ModControl
	}
	if m&key.ModAlt != 0 {
		out |= surface.ModAlt
	}
	return out
}

// paint redraws the damaged part of the canvas and the chrome into dst.
func (ed *Editor) paint(dst *image.RGBA, width, height int, full bool) {
	canvas := ed.ui.canvas(width, height)
	comp := ed.surf.Compositor()
	damage, all := comp.Damage()
	if full || all {
		damage = canvas
	}
	// The message overlay covers the middle of the canvas.
	damage = damage.Union(messageRect(canvas)).Intersect(canvas)
	if !damage.Empty() {
		draw.Draw(dst, damage, image.NewUniform(ed.theme.Background), image.Point{}, draw.Src)
		comp.Paint(dst, damage)
	}
	ed.ui.drawToolbar(dst, height, ed.surf.DrawingMode())
	ed.ui.drawStatus(dst, width, height, ed.surf)
	if msg := ed.activeMessage(); msg != "" {
		drawMessage(dst, canvas, msg, ed.theme)
	}
}

func messageRect(canvas image.Rectangle) image.Rectangle {
	c := canvas.Min.Add(canvas.Size().Div(2))
	return image.Rect(canvas.Min.X, c.Y-24, canvas.Max.X, c.Y+24)
}
