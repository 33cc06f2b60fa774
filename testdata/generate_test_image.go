// Test image generator: writes a grid of reference colours for trying out
// `figerout pick`, and prints the centre of each block.
package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/figerout/figerout/internal/colour"
)

func main() {
	const (
		columns = 8
		block   = 50
	)

	palette := colour.ReferencePalette()
	rows := (len(palette) + columns - 1) / columns
	img := image.NewRGBA(image.Rect(0, 0, columns*block, rows*block))

	for i, entry := range palette {
		x0 := (i % columns) * block
		y0 := (i / columns) * block
		for y := y0; y < y0+block; y++ {
			for x := x0; x < x0+block; x++ {
				img.SetRGBA(x, y, entry.RGB.Color())
			}
		}
		fmt.Printf("figerout pick --x %d --y %d testdata/reference_grid.png  # %s %s\n",
			x0+block/2, y0+block/2, entry.Hex, entry.Name)
	}

	file, err := os.Create("testdata/reference_grid.png")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding PNG: %v\n", err)
		os.Exit(1)
	}
}
