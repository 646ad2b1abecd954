package flairsync

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
)

// Channel weights approximating luminance sensitivity.
var luminanceWeights = []float64{0.3, 0.59, 0.11}

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Black is the background color of a flair cell.
var Black = RGB{}

// RGBOf drops alpha from c. Fully transparent colors become Black.
func RGBOf(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return Black
	}
	return RGB{n.R, n.G, n.B}
}

// RGBFromColorful rounds a colorful color to 8 bits per channel.
func RGBFromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// RGBA implements color.Color with full opacity.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 255}.RGBA()
}

// Colorful converts c for go-colorful math and formatting.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Hex renders the color as lowercase #rrggbb.
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// Distance is the luminance-weighted euclidean distance between two colors.
func Distance(a, b RGB) float64 {
	d := []float64{
		float64(b.R) - float64(a.R),
		float64(b.G) - float64(a.G),
		float64(b.B) - float64(a.B),
	}
	floats.Mul(d, luminanceWeights)
	return floats.Norm(d, 2)
}

// Nearest returns the index of the palette color closest to c.
// When several colors are equally close the lowest index wins.
func Nearest(c RGB, palette []RGB) (int, error) {
	if len(palette) == 0 {
		return 0, ErrEmptyPalette
	}
	dist := make([]float64, len(palette))
	for i, p := range palette {
		dist[i] = Distance(c, p)
	}
	return floats.MinIdx(dist), nil
}
