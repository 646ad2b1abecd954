package flairsync

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Swatch is a named palette entry with its light accent variant.
type Swatch struct {
	Name    string
	Primary RGB
	Light   RGB
}

// Palette is an ordered list of swatches. Index order is significant for ties.
type Palette []Swatch

// DefaultPalette is the fixed set flairs are classified into.
var DefaultPalette = Palette{
	swatch("Red", "#ef5350", "#ef9a9a"),
	swatch("Orange", "#ffa726", "#ffcc80"),
	swatch("Yellow", "#ffee58", "#fff59d"),
	swatch("Blue", "#42a5f5", "#90caf9"),
	swatch("Green", "#66bb6a", "#a5d6a7"),
	swatch("Purple", "#ab47bc", "#ce93d8"),
	swatch("Pink", "#ec407a", "#f48fb1"),
	swatch("Brown", "#8d6e63", "#bcaaa4"),
	swatch("Grey", "#bdbdbd", "#eeeeee"),
}

func swatch(name, primary, light string) Swatch {
	return Swatch{Name: name, Primary: mustHex(primary), Light: mustHex(light)}
}

func mustHex(s string) RGB {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return RGBFromColorful(c)
}

// Primaries returns the primary colors in palette order.
func (p Palette) Primaries() []RGB {
	out := make([]RGB, len(p))
	for i, s := range p {
		out[i] = s.Primary
	}
	return out
}

// Lights returns the light variants in palette order.
func (p Palette) Lights() []RGB {
	out := make([]RGB, len(p))
	for i, s := range p {
		out[i] = s.Light
	}
	return out
}

// Nearest returns the swatch whose primary color is closest to c.
func (p Palette) Nearest(c RGB) (Swatch, int, error) {
	i, err := Nearest(c, p.Primaries())
	if err != nil {
		return Swatch{}, 0, err
	}
	return p[i], i, nil
}
