package shape

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	fontOnce    sync.Once
	regularFont *opentype.Font
	faces       sync.Map // map[int]font.Face
)

func loadFont() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("parse font: %v", err)
		return
	}
	regularFont = f
}

func faceForSize(size int) (font.Face, error) {
	if size <= 0 {
		size = DefaultStyle().FontSize
	}
	if face, ok := faces.Load(size); ok {
		return face.(font.Face), nil
	}
	fontOnce.Do(loadFont)
	if regularFont == nil {
		return nil, fmt.Errorf("text font not initialised")
	}
	face, err := opentype.NewFace(regularFont, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	faces.Store(size, face)
	return face, nil
}

// MeasureText returns the bounding box of text at size. Lines are split on '\n'.
func MeasureText(text string, size int) (width, height int, err error) {
	face, err := faceForSize(size)
	if err != nil {
		return 0, 0, err
	}
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	lineH := m.Height.Ceil()
	lines := strings.Split(text, "\n")
	for _, l := range lines {
		if w := d.MeasureString(l).Ceil(); w > width {
			width = w
		}
	}
	return width, lineH * len(lines), nil
}

// drawText renders text with its top-left corner at r.Min, one line per '\n',
// clipped to r.
func drawText(dst *image.RGBA, r image.Rectangle, text string, col color.RGBA, size int) {
	face, err := faceForSize(size)
	if err != nil {
		log.Printf("draw text: %v", err)
		return
	}
	area := r.Intersect(dst.Bounds())
	if area.Empty() {
		return
	}
	target := clipTo(dst, area)
	m := face.Metrics()
	d := &font.Drawer{Dst: target, Src: image.NewUniform(col), Face: face}
	y := r.Min.Y + m.Ascent.Ceil()
	for _, line := range strings.Split(text, "\n") {
		d.Dot = fixed.P(r.Min.X, y)
		d.DrawString(line)
		y += m.Height.Ceil()
	}
}
