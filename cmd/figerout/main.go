// Figerout - pick, name and explore colours from images
//
// Figerout reads the colour under a point of an image, names it after the
// nearest reference colour, and generates lighter and darker shades.
package main

import (
	"os"

	"github.com/figerout/figerout/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
