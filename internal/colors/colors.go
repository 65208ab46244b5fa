// Package colors converts between the packed COLORREF values the desktop
// service uses and the RGB colours shown to users.
package colors

import (
	"fmt"
	"strconv"
	"strings"
)

// Packed is a 24-bit colour in Windows COLORREF layout (0x00BBGGRR).
type Packed uint32

// Color represents an RGB color.
type Color struct {
	R, G, B uint8
}

// White is the solid fallback colour.
var White = Color{R: 0xff, G: 0xff, B: 0xff}

// Hex returns the hex representation of the color.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Packed returns the COLORREF encoding of c.
func (c Color) Packed() Packed {
	return Packed(uint32(c.B)<<16 | uint32(c.G)<<8 | uint32(c.R))
}

// Color unpacks a COLORREF. Bits above 24 are ignored.
func (p Packed) Color() Color {
	return Color{
		R: uint8(p),
		G: uint8(p >> 8),
		B: uint8(p >> 16),
	}
}

// Hex formats the packed value as #RRGGBB.
func (p Packed) Hex() string {
	return p.Color().Hex()
}

// ParseHex parses "#RRGGBB", "RRGGBB" or the short "#RGB" form.
func ParseHex(s string) (Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")

	if len(raw) == 3 {
		raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
	}
	if len(raw) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: expected #RRGGBB", s)
	}

	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}
