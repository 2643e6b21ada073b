// Package codec reads and writes annotation documents as YAML.
package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/example/annotator/internal/shape"
)

// Version is the document format written by Encode.
const Version = 1

// Document is the persisted part of a surface.
type Document struct {
	CounterStart int
	Elements     []shape.Element
}

// ErrEmpty is returned when the input holds no document.
var ErrEmpty = errors.New("codec: empty document")

type fileDoc struct {
	Version      int          `yaml:"version"`
	CounterStart int          `yaml:"counter_start"`
	Elements     []elementDoc `yaml:"elements"`
}

type elementDoc struct {
	ID     string         `yaml:"id"`
	Kind   string         `yaml:"kind"`
	Bounds [4]int         `yaml:"bounds,flow"`
	Fields map[string]any `yaml:"fields,omitempty"`
	Points [][2]int       `yaml:"points,omitempty,flow"`
	Tail   *[2]int        `yaml:"tail,omitempty,flow"`
	Number int            `yaml:"number,omitempty"`
	Image  string         `yaml:"image,omitempty"`
}

type pointHolder interface {
	Points() []image.Point
	SetPoints(pts []image.Point)
}

type identified interface {
	SetID(id uuid.UUID)
}

// Marshal encodes d. Crop regions are transient and never written.
func Marshal(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes d to w.
func Encode(w io.Writer, d Document) error {
	doc := fileDoc{Version: Version, CounterStart: d.CounterStart}
	for i, e := range d.Elements {
		if e.Mode() == shape.ModeCrop {
			continue
		}
		ed, err := encodeElement(e)
		if err != nil {
			return fmt.Errorf("codec: element %d: %w", i, err)
		}
		doc.Elements = append(doc.Elements, ed)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("codec: encode: %w", err)
	}
	return enc.Close()
}

func encodeElement(e shape.Element) (elementDoc, error) {
	b := e.Bounds()
	ed := elementDoc{
		ID:     e.ID().String(),
		Kind:   e.Mode().String(),
		Bounds: [4]int{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y},
		Fields: map[string]any{},
	}
	for _, k := range e.FieldKeys() {
		v, _ := e.Field(k)
		if c, ok := v.(color.RGBA); ok {
			v = FormatColor(c)
		}
		ed.Fields[k.String()] = v
	}
	if ph, ok := e.(pointHolder); ok {
		for _, p := range ph.Points() {
			ed.Points = append(ed.Points, [2]int{p.X, p.Y})
		}
	}
	switch x := e.(type) {
	case *shape.SpeechBubble:
		t := x.Tail()
		ed.Tail = &[2]int{t.X, t.Y}
	case *shape.StepLabel:
		ed.Number = x.Number()
	case *shape.Bitmap:
		if x.Image() == nil {
			return ed, errors.New("bitmap has no pixels")
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, x.Image()); err != nil {
			return ed, fmt.Errorf("encode bitmap: %w", err)
		}
		ed.Image = base64.StdEncoding.EncodeToString(buf.Bytes())
	}
	return ed, nil
}

// Unmarshal decodes a document from data.
func Unmarshal(data []byte) (Document, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a document from r. Either every element decodes or an error
// is returned and nothing is produced.
func Decode(r io.Reader) (Document, error) {
	var doc fileDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, ErrEmpty
		}
		return Document{}, fmt.Errorf("codec: decode: %w", err)
	}
	if doc.Version > Version {
		return Document{}, fmt.Errorf("codec: document version %d is newer than %d", doc.Version, Version)
	}
	out := Document{CounterStart: doc.CounterStart}
	for i, ed := range doc.Elements {
		e, err := decodeElement(ed)
		if err != nil {
			for _, done := range out.Elements {
				done.Release()
			}
			return Document{}, fmt.Errorf("codec: element %d: %w", i, err)
		}
		out.Elements = append(out.Elements, e)
	}
	return out, nil
}

func decodeElement(ed elementDoc) (shape.Element, error) {
	mode, err := shape.ParseMode(ed.Kind)
	if err != nil {
		return nil, err
	}
	var e shape.Element
	switch mode {
	case shape.ModeNone, shape.ModeCrop:
		return nil, fmt.Errorf("kind %q cannot be stored", ed.Kind)
	case shape.ModeBitmap:
		raw, err := base64.StdEncoding.DecodeString(ed.Image)
		if err != nil {
			return nil, fmt.Errorf("bitmap data: %w", err)
		}
		img, err := png.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("bitmap data: %w", err)
		}
		e = shape.NewBitmap(img)
	default:
		e = shape.New(mode, shape.DefaultStyle())
	}
	if ed.ID != "" {
		id, err := uuid.Parse(ed.ID)
		if err != nil {
			return nil, fmt.Errorf("id: %w", err)
		}
		if x, ok := e.(identified); ok {
			x.SetID(id)
		}
	}
	for name, raw := range ed.Fields {
		k, ok := shape.ParseFieldKey(name)
		if !ok {
			continue
		}
		v, err := fieldValue(k, raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		e.SetField(k, v)
	}
	if ph, ok := e.(pointHolder); ok && len(ed.Points) > 0 {
		pts := make([]image.Point, len(ed.Points))
		for i, p := range ed.Points {
			pts[i] = image.Pt(p[0], p[1])
		}
		ph.SetPoints(pts)
	} else {
		e.SetBounds(image.Rect(ed.Bounds[0], ed.Bounds[1], ed.Bounds[2], ed.Bounds[3]))
	}
	switch x := e.(type) {
	case *shape.SpeechBubble:
		if ed.Tail != nil {
			x.SetTail(image.Pt(ed.Tail[0], ed.Tail[1]))
		}
	case *shape.StepLabel:
		x.SetNumber(ed.Number)
	}
	e.SetStatus(shape.StatusIdle)
	return e, nil
}

func fieldValue(k shape.FieldKey, raw any) (any, error) {
	switch k {
	case shape.FieldLineColor, shape.FieldFillColor, shape.FieldHighlightColor:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("want colour string, got %T", raw)
		}
		return ParseColor(s)
	case shape.FieldShadow:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("want bool, got %T", raw)
		}
		return b, nil
	case shape.FieldText:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("want string, got %T", raw)
		}
		return s, nil
	default:
		n, ok := raw.(int)
		if !ok {
			return nil, fmt.Errorf("want integer, got %T", raw)
		}
		return n, nil
	}
}

// FormatColor writes c as #rrggbbaa using its stored (premultiplied) channels.
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor reads #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.RGBA, error) {
	var c color.RGBA
	c.A = 255
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("bad colour %q", s)
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return c, nil
}
