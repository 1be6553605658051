package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned for color strings that cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa, rgb(r,g,b), rgba(r,g,b,a) with
// alpha in [0,1], and SVG color names such as "slategray".
func ParseColor(s string) (color.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return color.RGBA{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:], s)
	case strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")"):
		return parseFunc(v[len("rgba("):len(v)-1], true, s)
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		return parseFunc(v[len("rgb("):len(v)-1], false, s)
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHex(hex, orig string) (color.RGBA, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	return premultiply(uint8(n>>24), uint8(n>>16), uint8(n>>8), uint8(n)), nil
}

func parseFunc(args string, alpha bool, orig string) (color.RGBA, error) {
	parts := strings.Split(args, ",")
	want := 3
	if alpha {
		want = 4
	}
	if len(parts) != want {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		ch[i] = uint8(n)
	}
	a := uint8(255)
	if alpha {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || f < 0 || f > 1 {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		a = uint8(f*255 + 0.5)
	}
	return premultiply(ch[0], ch[1], ch[2], a), nil
}

func premultiply(r, g, b, a uint8) color.RGBA {
	c := color.NRGBA{R: r, G: g, B: b, A: a}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// ColorValue is a flag.Value holding an optional color.
type ColorValue struct {
	c   color.Color
	raw string
}

// NewColorValue wraps a default color. A nil color leaves the value unset.
func NewColorValue(c color.Color, raw string) *ColorValue {
	return &ColorValue{c: c, raw: raw}
}

// String returns the text the value was set from.
func (v *ColorValue) String() string {
	if v == nil {
		return ""
	}
	return v.raw
}

// Set parses s. "none" clears the value.
func (v *ColorValue) Set(s string) error {
	if strings.EqualFold(strings.TrimSpace(s), "none") {
		v.c, v.raw = nil, s
		return nil
	}
	c, err := ParseColor(s)
	if err != nil {
		return err
	}
	v.c, v.raw = c, s
	return nil
}

// Color returns the parsed color, or nil when unset.
func (v *ColorValue) Color() color.Color {
	if v == nil {
		return nil
	}
	return v.c
}
