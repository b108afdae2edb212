package colour

import (
	"fmt"
	"math"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// RGB is an 8-bit display colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

var swatches = map[Colour]RGB{
	Red:     {R: 0xd7, G: 0x26, B: 0x1e},
	Green:   {R: 0x2e, G: 0x9e, B: 0x44},
	Blue:    {R: 0x1f, G: 0x5f, B: 0xbf},
	Yellow:  {R: 0xf2, G: 0xc9, B: 0x1c},
	Unknown: {R: 0x80, G: 0x80, B: 0x80},
}

// Swatch returns the display colour used when rendering c.
func (c Colour) Swatch() RGB {
	if rgb, ok := swatches[c]; ok {
		return rgb
	}
	return swatches[Unknown]
}

// Preview returns a solid ANSI background block of the given width.
func Preview(rgb RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, rgb.R, rgb.G, rgb.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// PreviewWithText returns a swatch block with text centred over it. The text
// is black or white, whichever contrasts better with the background.
func PreviewWithText(rgb RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	var fg RGB
	if luminance(rgb) <= 0.5 {
		fg = RGB{R: 255, G: 255, B: 255}
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, rgb.R, rgb.G, rgb.B, ansiSuffix)
	fgCode := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix)

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		pad := (width - len(text)) / 2
		display = strings.Repeat(" ", pad) + text + strings.Repeat(" ", width-len(text)-pad)
	}

	return bg + fgCode + display + ansiReset
}

// luminance approximates WCAG relative luminance.
func luminance(rgb RGB) float64 {
	lin := func(v uint8) float64 {
		f := float64(v) / 255.0
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(rgb.R) + 0.7152*lin(rgb.G) + 0.0722*lin(rgb.B)
}
