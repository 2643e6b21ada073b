// Package shape defines the drawable elements placed on an annotation surface.
package shape

import (
	"image"
	"image/color"

	"github.com/google/uuid"
	"golang.org/x/image/math/f64"
)

// Status is the lifecycle state of an element.
type Status int

const (
	StatusUndrawn Status = iota
	StatusIdle
	StatusDrawing
	StatusMoving
	StatusResizing
)

// RenderMode tells an element whether it is painted for the editor or for export.
type RenderMode int

const (
	RenderEdit RenderMode = iota
	RenderExport
)

// EditMode is what a freshly created element expects the user to do next.
type EditMode int

const (
	EditResize EditMode = iota
	EditText
	EditNone
)

// Parent is the non-owning back reference from an element to its surface.
type Parent interface {
	StepLabelNumber(stop Element) int
}

// Element is the capability every shape on a surface provides.
type Element interface {
	ID() uuid.UUID
	Mode() DrawingMode

	Bounds() image.Rectangle
	SetBounds(r image.Rectangle)
	// DrawingBounds covers everything Draw may touch, including strokes and shadow.
	DrawingBounds() image.Rectangle

	HitTest(p image.Point) bool
	Draw(dst *image.RGBA, bg image.Image, mode RenderMode, clip image.Rectangle)
	// NeedsPixels reports whether Draw reads the pixels beneath the element.
	NeedsPixels() bool

	MouseDown(p image.Point) bool
	MouseMove(p image.Point) bool
	MouseUp(p image.Point) bool
	DefaultEditMode() EditMode
	FinalizeContent() bool

	Field(key FieldKey) (any, bool)
	SetField(key FieldKey, v any) bool
	FieldKeys() []FieldKey

	Adorners() []Adorner
	Status() Status
	SetStatus(s Status)
	Selected() bool
	SetSelected(v bool)
	Parent() Parent
	SetParent(p Parent)

	// Clone returns an unparented copy with a new identity.
	Clone() Element
	Release()
}

// Transformer is implemented by elements that keep geometry beyond their
// bounds rectangle and want the exact matrix rather than the mapped bounds.
type Transformer interface {
	Transform(m f64.Aff3)
}

// Base carries the state shared by every element. Concrete shapes embed it
// and call init with themselves so adorners can reach the outer element.
type Base struct {
	id       uuid.UUID
	mode     DrawingMode
	bounds   image.Rectangle
	status   Status
	selected bool
	parent   Parent
	fields   Fields
	adorners []Adorner
	origin   image.Point
}

func (b *Base) init(self Element, mode DrawingMode, fields Fields) {
	b.id = uuid.New()
	b.mode = mode
	b.fields = fields
	b.status = StatusUndrawn
	b.adorners = []Adorner{NewResizeAdorner(self)}
}

func (b *Base) ID() uuid.UUID { return b.id }

// SetID replaces the identity; used when a document is loaded.
func (b *Base) SetID(id uuid.UUID) { b.id = id }

func (b *Base) Mode() DrawingMode { return b.mode }

func (b *Base) Bounds() image.Rectangle { return b.bounds }

func (b *Base) SetBounds(r image.Rectangle) { b.bounds = r.Canon() }

func (b *Base) DrawingBounds() image.Rectangle {
	pad := b.fields.Int(FieldLineThickness) + 2
	if b.fields.Bool(FieldShadow) {
		pad += shadowOffset
	}
	return b.bounds.Inset(-pad)
}

func (b *Base) HitTest(p image.Point) bool {
	tol := b.fields.Int(FieldLineThickness)/2 + hitTolerance
	return p.In(b.bounds.Inset(-tol))
}

func (b *Base) NeedsPixels() bool { return false }

// MouseDown records the gesture origin; the controller places the element.
func (b *Base) MouseDown(p image.Point) bool {
	b.origin = p
	b.status = StatusDrawing
	return false
}

// MouseMove stretches the bounds from the gesture origin to p.
func (b *Base) MouseMove(p image.Point) bool {
	if b.status != StatusDrawing {
		return false
	}
	b.bounds = image.Rectangle{Min: b.origin, Max: p}.Canon()
	return true
}

func (b *Base) MouseUp(p image.Point) bool {
	b.status = StatusIdle
	return true
}

func (b *Base) DefaultEditMode() EditMode { return EditResize }

func (b *Base) FinalizeContent() bool { return true }

func (b *Base) Field(key FieldKey) (any, bool) {
	v, ok := b.fields[key]
	return v, ok
}

func (b *Base) SetField(key FieldKey, v any) bool {
	if _, ok := b.fields[key]; !ok {
		return false
	}
	b.fields[key] = v
	return true
}

func (b *Base) FieldKeys() []FieldKey { return b.fields.Keys() }

func (b *Base) Adorners() []Adorner { return b.adorners }

func (b *Base) Status() Status     { return b.status }
func (b *Base) SetStatus(s Status) { b.status = s }

func (b *Base) Selected() bool     { return b.selected }
func (b *Base) SetSelected(v bool) { b.selected = v }

func (b *Base) Parent() Parent     { return b.parent }
func (b *Base) SetParent(p Parent) { b.parent = p }

func (b *Base) Release() {}

// clone copies b for a new outer element.
func (b *Base) clone(self Element) Base {
	c := Base{
		mode:   b.mode,
		bounds: b.bounds,
		status: StatusIdle,
		fields: b.fields.Clone(),
	}
	c.init(self, b.mode, c.fields)
	c.status = StatusIdle
	return c
}

func (b *Base) lineColor() color.RGBA { return b.fields.Color(FieldLineColor) }
func (b *Base) fillColor() color.RGBA { return b.fields.Color(FieldFillColor) }
func (b *Base) thickness() int        { return b.fields.Int(FieldLineThickness) }
func (b *Base) shadow() bool          { return b.fields.Bool(FieldShadow) }

const (
	hitTolerance = 3
	shadowOffset = 3
)

var shadowColor = color.RGBA{0, 0, 0, 90}
