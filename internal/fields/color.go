package fields

import (
	"image/color"

	"github.com/keystorm/keystorm/internal/device/core"
)

// toStdColor adapts a renderer core.Color to image/color.Color so it
// can be handed to go-colorful, which operates on the standard
// library's color interfaces rather than a bespoke RGB triple.
func toStdColor(c core.Color) color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
