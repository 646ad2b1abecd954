package flairsync

import (
	"image"
	"image/color"
	"slices"

	"github.com/setanarut/flairsync/utils"
	"golang.org/x/image/draw"
)

// QuantizeColors is the size of the reduced palette an icon is mapped onto.
const QuantizeColors = 4

// Extractor finds the representative color of a single flair icon.
type Extractor struct {
	Method utils.PaletteMethod
}

// DominantColor extracts with the default dominantcolor quantizer, which gives
// the same answer for the same icon on every call.
func DominantColor(icon image.Image) RGB {
	return Extractor{Method: utils.PaletteMethodDominantColor}.Extract(icon)
}

// Extract quantizes icon to QuantizeColors colors and returns the most
// frequent one that is not pure black. Black is the empty cell background, so
// an icon without any other color yields Black.
//
// Equal pixel counts keep quantized palette order, which for icons with few
// colors is their first appearance in row-major order.
func (e Extractor) Extract(icon image.Image) RGB {
	flat := flatten(icon)
	pal := utils.ExtractPalette(flat, QuantizeColors, e.Method)
	if len(pal) == 0 {
		return Black
	}

	cp := make(color.Palette, len(pal))
	for i, c := range pal {
		cp[i] = RGBFromColorful(c)
	}
	counts := countByPalette(flat, cp)

	order := make([]int, len(cp))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return counts[b] - counts[a]
	})

	for _, i := range order {
		if c := cp[i].(RGB); c != Black && counts[i] > 0 {
			return c
		}
	}
	return Black
}

// flatten drops alpha: transparent pixels become opaque black, all others keep
// their straight RGB.
func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := range b.Dy() {
		for x := range b.Dx() {
			c := RGBOf(img.At(b.Min.X+x, b.Min.Y+y))
			out.SetRGBA(x, y, color.RGBA{c.R, c.G, c.B, 255})
		}
	}
	return out
}

// countByPalette maps every pixel to its nearest palette entry and counts them.
func countByPalette(img *image.RGBA, cp color.Palette) []int {
	b := img.Bounds()
	dst := image.NewPaletted(b, cp)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	counts := make([]int, len(cp))
	for _, ix := range dst.Pix {
		counts[ix]++
	}
	return counts
}
