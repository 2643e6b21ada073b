package shape

import (
	"fmt"
	"strings"
)

// DrawingMode selects which element a creation gesture produces.
type DrawingMode int

const (
	ModeNone DrawingMode = iota
	ModeRect
	ModeEllipse
	ModeText
	ModeSpeechBubble
	ModeStepLabel
	ModeLine
	ModeArrow
	ModeHighlight
	ModeObfuscate
	ModeCrop
	ModeBitmap
	ModePath
)

var modeNames = []string{
	ModeNone:         "none",
	ModeRect:         "rect",
	ModeEllipse:      "ellipse",
	ModeText:         "text",
	ModeSpeechBubble: "speechbubble",
	ModeStepLabel:    "steplabel",
	ModeLine:         "line",
	ModeArrow:        "arrow",
	ModeHighlight:    "highlight",
	ModeObfuscate:    "obfuscate",
	ModeCrop:         "crop",
	ModeBitmap:       "bitmap",
	ModePath:         "path",
}

func (m DrawingMode) String() string {
	if int(m) >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode resolves a mode name produced by String.
func ParseMode(name string) (DrawingMode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(n, name) {
			return DrawingMode(i), nil
		}
	}
	return ModeNone, fmt.Errorf("unknown drawing mode %q", name)
}

// New returns a fresh element for mode styled with d. ModeNone yields nil.
func New(mode DrawingMode, d Defaults) Element {
	switch mode {
	case ModeRect:
		return NewRect(d)
	case ModeEllipse:
		return NewEllipse(d)
	case ModeText:
		return NewText(d)
	case ModeSpeechBubble:
		return NewSpeechBubble(d)
	case ModeStepLabel:
		return NewStepLabel(d)
	case ModeLine:
		return NewLine(d)
	case ModeArrow:
		return NewArrow(d)
	case ModeHighlight:
		return NewHighlight(d)
	case ModeObfuscate:
		return NewObfuscate(d)
	case ModeCrop:
		return NewCrop()
	case ModeBitmap:
		return NewBitmap(nil)
	case ModePath:
		return NewPath(d)
	default:
		return nil
	}
}

func strokeFields(d Defaults) Fields {
	return Fields{
		FieldLineColor:     d.LineColor,
		FieldLineThickness: d.LineThickness,
		FieldShadow:        d.Shadow,
	}
}
