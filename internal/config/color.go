package config

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

var namedColors = map[string]color.NRGBA{
	"":            {},
	"transparent": {},
	"black":       {A: 255},
	"white":       {R: 255, G: 255, B: 255, A: 255},
	"red":         {R: 255, A: 255},
	"green":       {G: 255, A: 255},
	"blue":        {B: 255, A: 255},
	"yellow":      {R: 255, G: 255, A: 255},
	"gray":        {R: 128, G: 128, B: 128, A: 255},
}

// ParseColor accepts a color name, "#rrggbb" or "#rrggbbaa". The empty
// string is transparent.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "#"))
	if err != nil || !strings.HasPrefix(s, "#") || (len(raw) != 3 && len(raw) != 4) {
		return color.NRGBA{}, fmt.Errorf("config: color %q (want a name, #rrggbb or #rrggbbaa)", s)
	}
	c := color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 255}
	if len(raw) == 4 {
		c.A = raw[3]
	}
	return c, nil
}
