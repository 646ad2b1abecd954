package flairsync

import (
	"image"
	"image/color"
	"testing"

	"github.com/setanarut/flairsync/utils"
)

func solidIcon(c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, TileSize, TileSize))
	for y := range TileSize {
		for x := range TileSize {
			img.Set(x, y, c)
		}
	}
	return img
}

// fillRect paints the half-open rectangle r of img.
func fillRect(img *image.NRGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func TestDominantColorBlackIcon(t *testing.T) {
	if got := DominantColor(solidIcon(color.NRGBA{0, 0, 0, 255})); got != Black {
		t.Errorf("DominantColor(black) = %v, want black", got)
	}
}

func TestDominantColorTransparentIcon(t *testing.T) {
	icon := image.NewNRGBA(image.Rect(0, 0, TileSize, TileSize))
	if got := DominantColor(icon); got != Black {
		t.Errorf("DominantColor(transparent) = %v, want black", got)
	}

	// Color channels of fully transparent pixels are ignored.
	hidden := solidIcon(color.NRGBA{255, 0, 0, 0})
	if got := DominantColor(hidden); got != Black {
		t.Errorf("DominantColor(hidden red) = %v, want black", got)
	}
}

func TestDominantColorSolid(t *testing.T) {
	red := RGB{239, 83, 80}
	if got := DominantColor(solidIcon(red)); got != red {
		t.Errorf("DominantColor(solid) = %v, want %v", got, red)
	}
}

func TestDominantColorSkipsBackground(t *testing.T) {
	icon := image.NewNRGBA(image.Rect(0, 0, TileSize, TileSize))
	blue := color.NRGBA{66, 165, 245, 255}
	// 4x4 of blue on a transparent 16x16 cell: black outnumbers blue 15 to 1.
	fillRect(icon, image.Rect(6, 6, 10, 10), blue)
	if got := DominantColor(icon); got != (RGB{66, 165, 245}) {
		t.Errorf("DominantColor = %v, want blue", got)
	}
}

func TestDominantColorMostFrequent(t *testing.T) {
	icon := solidIcon(color.NRGBA{0, 0, 0, 255})
	fillRect(icon, image.Rect(0, 0, 16, 2), color.NRGBA{255, 167, 38, 255}) // 32 px
	fillRect(icon, image.Rect(0, 2, 16, 8), color.NRGBA{102, 187, 106, 255}) // 96 px
	fillRect(icon, image.Rect(0, 8, 16, 9), color.NRGBA{171, 71, 188, 255}) // 16 px
	if got := DominantColor(icon); got != (RGB{102, 187, 106}) {
		t.Errorf("DominantColor = %v, want green", got)
	}
}

func TestDominantColorTieKeepsFirstAppearance(t *testing.T) {
	icon := image.NewNRGBA(image.Rect(0, 0, TileSize, TileSize))
	fillRect(icon, image.Rect(0, 0, 16, 8), color.NRGBA{236, 64, 122, 255})
	fillRect(icon, image.Rect(0, 8, 16, 16), color.NRGBA{141, 110, 99, 255})
	if got := DominantColor(icon); got != (RGB{236, 64, 122}) {
		t.Errorf("DominantColor = %v, want the top half color", got)
	}
}

func TestExtractManyColors(t *testing.T) {
	icon := solidIcon(color.NRGBA{239, 83, 80, 255})
	// Six extra colors force the quantizer past the exact path.
	extras := []color.NRGBA{
		{0, 0, 0, 255}, {10, 10, 10, 255}, {20, 20, 20, 255},
		{240, 90, 85, 255}, {230, 80, 75, 255}, {245, 85, 90, 255},
	}
	for i, c := range extras {
		icon.Set(i, 0, c)
	}

	for _, m := range []utils.PaletteMethod{utils.PaletteMethodKMeans, utils.PaletteMethodDominantColor} {
		got := Extractor{Method: m}.Extract(icon)
		if got == Black {
			t.Errorf("%s: Extract = black, want a red shade", m)
			continue
		}
		if _, i, _ := DefaultPalette.Nearest(got); i != 0 {
			t.Errorf("%s: Extract = %v, nearest swatch %d, want 0", m, got, i)
		}
	}
}

func TestDominantColorRepeatable(t *testing.T) {
	// Seven horizontal bands, so the icon always goes through the quantizer.
	bands := []color.NRGBA{
		{141, 110, 99, 255}, {171, 71, 188, 255}, {66, 165, 245, 255},
		{239, 83, 80, 255}, {120, 95, 90, 255}, {0, 0, 0, 255}, {160, 120, 105, 255},
	}
	icon := image.NewNRGBA(image.Rect(0, 0, TileSize, TileSize))
	for y := range TileSize {
		fillRect(icon, image.Rect(0, y, TileSize, y+1), bands[y%len(bands)])
	}

	want := DominantColor(icon)
	for i := range 50 {
		if got := DominantColor(icon); got != want {
			t.Fatalf("call %d: DominantColor = %v, first call gave %v", i, got, want)
		}
	}

	sheet := image.NewNRGBA(image.Rect(0, 0, 2*TileSize, TileSize))
	fillRect(sheet, sheet.Bounds(), color.NRGBA{66, 165, 245, 255})
	for y := range TileSize {
		for x := range TileSize {
			sheet.Set(x, y, icon.At(x, y))
		}
	}
	first, err := ClassifySheet(sheet)
	if err != nil {
		t.Fatal(err)
	}
	for range 10 {
		again, _ := ClassifySheet(sheet)
		if again["0_0"] != first["0_0"] || again["-16_0"] != first["-16_0"] {
			t.Fatalf("ClassifySheet = %v, first call gave %v", again, first)
		}
	}
}

func TestCountByPalette(t *testing.T) {
	icon := flatten(solidIcon(color.NRGBA{0, 0, 0, 255}))
	icon.Set(0, 0, color.RGBA{250, 250, 250, 255})
	counts := countByPalette(icon, color.Palette{Black, RGB{255, 255, 255}})
	if counts[0] != 255 || counts[1] != 1 {
		t.Errorf("counts = %v, want [255 1]", counts)
	}
}
