package flairsync

import (
	"image"
	"iter"

	"golang.org/x/image/draw"
)

const (
	// TileSize is the edge length of one flair cell in the sprite sheet.
	TileSize = 16
	// UpscaleFactor is applied to the published copy of the sheet.
	UpscaleFactor = 3
)

// GridSize returns the number of whole cells across and down the sheet.
func GridSize(sheet image.Image) (cols, rows int) {
	b := sheet.Bounds()
	return b.Dx() / TileSize, b.Dy() / TileSize
}

// Partition slices sheet into TileSize cells, row-major from the top-left.
// Each cell is yielded with its pixel offset from the sheet origin and a copy
// of its pixels anchored at (0, 0). Trailing partial cells are skipped.
func Partition(sheet image.Image) iter.Seq2[image.Point, image.Image] {
	return func(yield func(image.Point, image.Image) bool) {
		b := sheet.Bounds()
		cols, rows := GridSize(sheet)
		for row := range rows {
			for col := range cols {
				off := image.Pt(col*TileSize, row*TileSize)
				icon := image.NewNRGBA(image.Rect(0, 0, TileSize, TileSize))
				draw.Draw(icon, icon.Bounds(), sheet, b.Min.Add(off), draw.Src)
				if !yield(off, icon) {
					return
				}
			}
		}
	}
}
