package component

import "fmt"

// Color is a 24-bit RGB colour.
type Color struct {
	R, G, B uint8
}

// RGB builds a colour from channel intensities in [0, 1].
func RGB(r, g, b float64) Color {
	return Color{R: channel(r), G: channel(g), B: channel(b)}
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

// ParseColor accepts "#rrggbb".
func ParseColor(s string) (Color, error) {
	var c Color
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("colour %q: want #rrggbb", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%2x%2x%2x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("colour %q: %w", s, err)
	}
	return c, nil
}

func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

var (
	Black  = Color{}
	Yellow = Color{R: 255, G: 255}

	// terrain colours
	FloorGrey = RGB(0.5, 0.5, 0.5)
	WallGreen = RGB(0.0, 0.5, 0.0)
)

// Renderable is presentation data. Glyph is a code page 437 code point.
type Renderable struct {
	Glyph      int
	Foreground Color
	Background Color
}
