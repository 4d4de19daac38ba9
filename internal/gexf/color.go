package gexf

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor accepts "#rrggbb", "rrggbb", "#rgb" or "rgb".
func ParseColor(s string) (*Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return nil, fmt.Errorf("invalid colour %q: want 3 or 6 hex digits", s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return newColor(c), nil
}

// MustParseColor is ParseColor for constants.
func MustParseColor(s string) *Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func newColor(c colorful.Color) *Color {
	r, g, b := c.Clamped().RGB255()
	return &Color{R: r, G: g, B: b, Hex: c.Clamped().Hex()}
}
