package main

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/setanarut/flairsync"
	"github.com/setanarut/flairsync/utils"
)

var flagTileSize int

var paletteCmd = &cobra.Command{
	Use:   "palette <output.png>",
	Short: "Render the classification palette, primary row above light row",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return utils.SavePalette(paletteRows(flairsync.DefaultPalette), flagTileSize, args[0])
	},
}

func init() {
	paletteCmd.Flags().IntVar(&flagTileSize, "tile", 64, "Swatch edge length in pixels")
}

func paletteRows(p flairsync.Palette) [][]colorful.Color {
	rows := [][]colorful.Color{
		make([]colorful.Color, len(p)),
		make([]colorful.Color, len(p)),
	}
	for i, s := range p {
		rows[0][i] = s.Primary.Colorful()
		rows[1][i] = s.Light.Colorful()
	}
	return rows
}
