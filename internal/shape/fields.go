package shape

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// FieldKey names a typed style field.
type FieldKey int

const (
	FieldLineColor FieldKey = iota
	FieldFillColor
	FieldLineThickness
	FieldShadow
	FieldFontSize
	FieldText
	FieldPixelSize
	FieldBlurRadius
	FieldHighlightColor
)

var fieldNames = map[FieldKey]string{
	FieldLineColor:      "line_color",
	FieldFillColor:      "fill_color",
	FieldLineThickness:  "line_thickness",
	FieldShadow:         "shadow",
	FieldFontSize:       "font_size",
	FieldText:           "text",
	FieldPixelSize:      "pixel_size",
	FieldBlurRadius:     "blur_radius",
	FieldHighlightColor: "highlight_color",
}

func (k FieldKey) String() string {
	if n, ok := fieldNames[k]; ok {
		return n
	}
	return fmt.Sprintf("field(%d)", int(k))
}

// ParseFieldKey resolves a field name produced by String.
func ParseFieldKey(name string) (FieldKey, bool) {
	for k, n := range fieldNames {
		if strings.EqualFold(n, name) {
			return k, true
		}
	}
	return 0, false
}

// Fields holds the style values of one element. The set of keys is fixed
// when the element is created; SetField never adds keys.
type Fields map[FieldKey]any

// Keys returns the keys in a stable order.
func (f Fields) Keys() []FieldKey {
	out := make([]FieldKey, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func (f Fields) Color(k FieldKey) color.RGBA {
	c, _ := f[k].(color.RGBA)
	return c
}

func (f Fields) Int(k FieldKey) int {
	n, _ := f[k].(int)
	return n
}

func (f Fields) Bool(k FieldKey) bool {
	b, _ := f[k].(bool)
	return b
}

func (f Fields) String(k FieldKey) string {
	s, _ := f[k].(string)
	return s
}

// Defaults are the style values applied to newly created elements.
type Defaults struct {
	LineColor      color.RGBA
	FillColor      color.RGBA
	LineThickness  int
	Shadow         bool
	FontSize       int
	PixelSize      int
	BlurRadius     int
	HighlightColor color.RGBA
}

// DefaultStyle returns the built-in defaults.
func DefaultStyle() Defaults {
	return Defaults{
		LineColor:      color.RGBA{255, 0, 0, 255},
		FillColor:      color.RGBA{},
		LineThickness:  2,
		Shadow:         true,
		FontSize:       16,
		PixelSize:      8,
		BlurRadius:     6,
		HighlightColor: color.RGBA{255, 255, 0, 255},
	}
}
