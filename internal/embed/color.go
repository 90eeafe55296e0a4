package embed

import (
	"fmt"
	"strconv"
	"strings"
)

// namedColors matches the palette the original plugin accepted by name.
var namedColors = map[string]int{
	"default":     0x000000,
	"black":       0x000000,
	"white":       0xffffff,
	"teal":        0x1abc9c,
	"dark_teal":   0x11806a,
	"green":       0x2ecc71,
	"dark_green":  0x1f8b4c,
	"blue":        0x3498db,
	"dark_blue":   0x206694,
	"purple":      0x9b59b6,
	"dark_purple": 0x71368a,
	"magenta":     0xe91e63,
	"gold":        0xf1c40f,
	"dark_gold":   0xc27c0e,
	"orange":      0xe67e22,
	"dark_orange": 0xa84300,
	"red":         0xe74c3c,
	"dark_red":    0x992d22,
	"grey":        0x95a5a6,
	"gray":        0x95a5a6,
	"dark_grey":   0x607d8b,
	"dark_gray":   0x607d8b,
	"blurple":     0x5865f2,
	"greyple":     0x99aab5,
	"fuchsia":     0xeb459e,
	"yellow":      0xfee75c,
}

// ParseColor parses a color from a hex string ("#rrggbb", "0xrrggbb" or bare
// "rrggbb") or a named color. Invalid input yields a *ValidationError naming
// the color field.
func ParseColor(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return NullColor, &ValidationError{Field: "color", Msg: "empty color"}
	}

	if c, ok := namedColors[strings.ReplaceAll(s, " ", "_")]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	if len(hex) != 6 {
		return NullColor, &ValidationError{
			Field: "color",
			Msg:   fmt.Sprintf("%q is not a hex color or known color name", s),
		}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return NullColor, &ValidationError{
			Field: "color",
			Msg:   fmt.Sprintf("%q is not a hex color or known color name", s),
		}
	}
	return int(v), nil
}

// FormatColor renders a color value as "#rrggbb". NullColor formats as "".
func FormatColor(c int) string {
	if c == NullColor {
		return ""
	}
	return fmt.Sprintf("#%06x", c)
}
