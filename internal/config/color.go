package config

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

type RGB struct {
	R, G, B uint8
}

// ParseHexColor accepts "#rrggbb" or "#rgb"; the leading '#' is optional.
func ParseHexColor(s string) (RGB, error) {
	hex := "#" + strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 4 && len(hex) != 7 {
		return RGB{}, fmt.Errorf("invalid color %q", s)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
