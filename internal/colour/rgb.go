package colour

import (
	"fmt"
	"image/color"

	"github.com/jmylchreest/colourgrid/internal/security"
)

// RGB represents a colour as 8-bit red, green and blue channels, the form
// terminals and stylesheets understand.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a CSS hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// RGBA implements color.Color.
func (rgb RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 0xff}.RGBA()
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255].
	return RGB{
		R: security.SafeUint8FromUint32(r >> 8),
		G: security.SafeUint8FromUint32(g >> 8),
		B: security.SafeUint8FromUint32(b >> 8),
	}
}

// RGBA implements color.Color so that colours can be drawn and measured.
// Components 0, 1 and 2 become red, green and blue; a single component is a
// grey and a missing blue component is zero. Any further components are
// ignored.
func (c Colour) RGBA() (r, g, b, a uint32) {
	scaled := func(i int) uint32 {
		if i >= len(c.comps) {
			return 0
		}
		return uint32(c.comps[i]) * 0xffff / uint32(c.space.MaxValue())
	}

	r, g, b = scaled(0), scaled(1), scaled(2)
	if len(c.comps) == 1 {
		g, b = r, r
	}
	return r, g, b, 0xffff
}

// RGB returns the colour reduced to 8-bit channels.
func (c Colour) RGB() RGB {
	return ToRGB(c)
}
