package render

import (
	"errors"
	"flag"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#fff", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#14141e", color.RGBA{R: 20, G: 20, B: 30, A: 255}},
		{"#00000000", color.RGBA{}},
		{"rgb(170, 190, 180)", color.RGBA{R: 170, G: 190, B: 180, A: 255}},
		{"rgba(20, 20, 30, 1)", color.RGBA{R: 20, G: 20, B: 30, A: 255}},
		{"rgba(255,0,0,0)", color.RGBA{}},
		{"SlateGray", color.RGBA{R: 112, G: 128, B: 144, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "#12", "#gggggg", "rgb(1,2)", "rgb(1,2,300)", "rgba(1,2,3,2)", "notacolor"} {
		_, err := ParseColor(in)
		assert.True(t, errors.Is(err, ErrInvalidColor), "%q: %v", in, err)
	}
}

func TestColorValueAsFlag(t *testing.T) {
	v := NewColorValue(color.RGBA{A: 255}, "black")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(v, "fill", "fill color")

	require.NoError(t, fs.Parse([]string{"-fill", "#ff0000"}))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, v.Color())
	assert.Equal(t, "#ff0000", v.String())

	require.NoError(t, v.Set("none"))
	assert.Nil(t, v.Color())

	assert.Error(t, v.Set("bogus"))
}
