// Package theme holds the colour palettes of the editor window.
package theme

import (
	"image/color"
)

// Theme defines the colours of the editor chrome and canvas decorations.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // behind the canvas
	Foreground color.RGBA // toolbar text

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA
	MessageBackground     color.RGBA
	MessageText           color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
	HandleFill   color.RGBA
	HandleBorder color.RGBA
	Selection1   color.RGBA
	Selection2   color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{96, 96, 96, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		MessageBackground:     color.RGBA{0, 0, 0, 200},
		MessageText:           color.RGBA{255, 255, 255, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
		HandleFill:            color.RGBA{255, 255, 255, 255},
		HandleBorder:          color.RGBA{0, 0, 0, 255},
		Selection1:            color.RGBA{255, 255, 255, 255},
		Selection2:            color.RGBA{0, 0, 0, 255},
	}
}
