package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Palette is the sequence of colors assigned to data that doesn't carry
// its own.
var Palette = []color.NRGBA{
	{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}, //#2196f3
	{R: 0xa4, G: 0x63, B: 0x3a, A: 0xff}, //#a4633a
	{R: 0x51, G: 0x85, B: 0x4d, A: 0xff}, //#51854d
	{R: 0x72, G: 0x6c, B: 0xae, A: 0xff}, //#726cae
	{R: 0x85, G: 0x76, B: 0x25, A: 0xff}, //#857625
	{R: 0x97, G: 0x5f, B: 0x91, A: 0xff}, //#975f91
	{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff}, //#2b7fa8
	{R: 0xe9, G: 0x1e, B: 0x63, A: 0xff}, //#e91e63
	{R: 0xff, G: 0x98, B: 0x00, A: 0xff}, //#ff9800
	{R: 0x60, G: 0x7d, B: 0x8b, A: 0xff}, //#607d8b
}

// PaletteColor returns the i'th palette entry, wrapping around.
func PaletteColor(i int) color.NRGBA {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// WithAlpha returns c with its alpha scaled by a in [0,1].
func WithAlpha(c color.NRGBA, a float32) color.NRGBA {
	c.A = uint8(float32(c.A)*Clamp(a, 0, 1) + .5)
	return c
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is
// optional.
func ParseHex(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: expected 3, 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
