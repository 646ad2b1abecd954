package flairsync

import (
	"encoding/json"
	"fmt"
	"image"
)

// FlairRecord locates one named flair in the sprite sheet.
type FlairRecord struct {
	// Offset is the CSS background-position of the flair, both values <= 0.
	Offset      [2]int `json:"offset"`
	Description string `json:"description"`
}

// FlairRecords maps a flair name to its record.
type FlairRecords map[string]FlairRecord

// ColorPairs maps a ColorKey to the primary and light hex colors of the cell.
type ColorPairs map[string][2]string

// ColorKey formats a cell's sprite sheet offset in background-position form,
// so the cell at column 16, row 0 is "-16_0".
func ColorKey(off image.Point) string {
	return fmt.Sprintf("%d_%d", -off.X, -off.Y)
}

// Classifier assigns every sprite sheet cell a palette swatch.
type Classifier struct {
	Palette   Palette
	Extractor Extractor
}

// NewClassifier uses DefaultPalette and the dominantcolor extractor.
func NewClassifier() Classifier {
	return Classifier{Palette: DefaultPalette}
}

// Classify returns a fresh ColorPairs for sheet, one entry per whole cell.
func (c Classifier) Classify(sheet image.Image) (ColorPairs, error) {
	cols, rows := GridSize(sheet)
	pairs := make(ColorPairs, cols*rows)
	for off, icon := range Partition(sheet) {
		sw, _, err := c.Palette.Nearest(c.Extractor.Extract(icon))
		if err != nil {
			return nil, err
		}
		pairs[ColorKey(off)] = [2]string{sw.Primary.Hex(), sw.Light.Hex()}
	}
	return pairs, nil
}

// ClassifySheet classifies sheet with the default classifier.
func ClassifySheet(sheet image.Image) (ColorPairs, error) {
	return NewClassifier().Classify(sheet)
}

// Marshal encodes records as the JSON object written to disk.
func (r FlairRecords) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (p ColorPairs) Marshal() ([]byte, error) {
	return json.Marshal(p)
}
