package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/figerout/figerout/internal/collection"
	"github.com/figerout/figerout/internal/colour"
	"github.com/figerout/figerout/internal/describe"
	"github.com/figerout/figerout/internal/image"
	"github.com/figerout/figerout/internal/sampler"
	"github.com/figerout/figerout/internal/util/imagecache"
)

type pickOptions struct {
	x, y     int
	radius   int
	maxSize  int
	backdrop hexValue
	shades   int
	step     float64
	describe bool
	history  bool
	save     bool
	note     string
	format   string
	refresh  bool
	source   bool
}

// pickResult is the JSON form of a pick.
type pickResult struct {
	Image       string                `json:"image"`
	Point       sampler.Point         `json:"point"`
	Source      sampler.Point         `json:"source"`
	Hex         string                `json:"hex"`
	Name        string                `json:"name"`
	Distance    float64               `json:"distance"`
	RGB         colour.RGB            `json:"rgb"`
	HSL         colour.HSL            `json:"hsl"`
	Shades      *colour.ShadeSet      `json:"shades,omitempty"`
	Description *describe.Description `json:"description,omitempty"`
	Saved       *collection.Colour    `json:"saved,omitempty"`
}

func newPickCmd(a *app) *cobra.Command {
	opts := &pickOptions{}

	cmd := &cobra.Command{
		Use:   "pick <image>",
		Short: "Pick the colour at a point of an image",
		Long: `Pick the colour at a point of an image and name it.

The image is drawn onto a surface (scaled down to --max-size if set) and
the pixel at (--x, --y) in surface coordinates is read. With
--source-coords the point is given in original image coordinates instead.
Points outside the surface are clamped to the nearest edge.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF. The image may be
a local path or an http(s) URL; downloads are cached.

Examples:
  # Pick the pixel at (120, 80)
  figerout pick --x 120 --y 80 photo.jpg

  # Average a 5x5 area and show four shades either side
  figerout pick --x 120 --y 80 --radius 2 --shades 4 photo.jpg

  # Pick, describe and save to the collection as JSON
  figerout pick --x 10 --y 10 --describe --save --note "door" -f json photo.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPick(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.x, "x", 0, "x coordinate on the surface")
	f.IntVar(&opts.y, "y", 0, "y coordinate on the surface")
	f.IntVarP(&opts.radius, "radius", "r", 0, "average a square of this radius around the point")
	f.IntVar(&opts.maxSize, "max-size", 0, "scale the image to fit this many pixels per side (0: no scaling)")
	f.Var(&opts.backdrop, "backdrop", "colour behind transparent pixels (default #FFFFFF)")
	f.IntVarP(&opts.shades, "shades", "s", 0, "number of lighter and darker shades to show")
	f.Float64Var(&opts.step, "step", colour.DefaultShadeStep, "lightness step between shades, in percent")
	f.BoolVarP(&opts.describe, "describe", "d", false, "ask the AI model to describe the colour")
	f.BoolVar(&opts.history, "history", false, "with --describe, ask for the history of the colour name")
	f.BoolVar(&opts.save, "save", false, "save the colour to the collection")
	f.StringVar(&opts.note, "note", "", "note to store with --save")
	f.StringVarP(&opts.format, "format", "f", formatText, "output format (text, json)")
	f.BoolVar(&opts.refresh, "refresh", false, "download remote images even when cached")
	f.BoolVar(&opts.source, "source-coords", false, "read --x and --y in original image coordinates")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}

func (a *app) runPick(cmd *cobra.Command, path string, opts *pickOptions) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}
	if opts.radius < 0 {
		return fmt.Errorf("--radius must not be negative")
	}
	ctx := cmd.Context()

	cache, err := imagecache.New(a.cfg.CacheDir)
	if err != nil {
		return err
	}
	cache.Refresh = opts.refresh

	a.logger.Debug("loading image", "path", path)
	img, err := image.NewSmartLoader(cache).Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	surfaceOpts := []sampler.SurfaceOption{sampler.WithMaxSize(opts.maxSize, opts.maxSize)}
	if opts.backdrop.set {
		surfaceOpts = append(surfaceOpts, sampler.WithBackdrop(opts.backdrop.rgb.Color()))
	}
	surface := sampler.NewImageSurface(surfaceOpts...)
	surface.Draw(img)
	a.logger.Debug("image drawn", "source", img.Bounds().Size(), "surface", surface.Bounds().Size(), "scale", surface.Scale())

	point := sampler.Point{X: opts.x, Y: opts.y}
	if opts.source {
		point = surface.FromSource(point)
		a.logger.Debug("mapped source point", "x", opts.x, "y", opts.y, "surface_x", point.X, "surface_y", point.Y)
	}

	sample, err := sampler.New(surface).SampleArea(point.X, point.Y, opts.radius)
	if err != nil {
		return err
	}
	if sample.Point != point {
		a.logger.Info("point clamped to surface", "requested_x", point.X, "requested_y", point.Y, "x", sample.Point.X, "y", sample.Point.Y)
	}

	match := colour.Nearest(sample.RGB)
	result := pickResult{
		Image:    path,
		Point:    sample.Point,
		Source:   surface.ToSource(sample.Point),
		Hex:      sample.Hex,
		Name:     match.Entry.Name,
		Distance: match.Distance,
		RGB:      sample.RGB,
		HSL:      sample.RGB.HSL(),
	}

	if opts.shades > 0 {
		result.Shades, err = colour.GenerateShades(sample.Hex, opts.shades, opts.step)
		if err != nil {
			return err
		}
	}

	if opts.describe {
		mode := describe.ModeDescribe
		if opts.history {
			mode = describe.ModeHistory
		}
		result.Description, err = a.newDescriber(ctx, "").Describe(ctx, describe.Request{
			Hex:  sample.Hex,
			Name: result.Name,
			Mode: mode,
		})
		if err != nil {
			return err
		}
	}

	if opts.save {
		svc, err := a.openCollection()
		if err != nil {
			return err
		}
		defer svc.Close()

		result.Saved, err = svc.Save(ctx, sample.Hex, opts.note)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if opts.format == formatJSON {
		return writeJSON(out, result)
	}

	sw := a.swatcher(cmd)
	fmt.Fprintln(out, sw.Line(sample.RGB, result.Name))
	fmt.Fprintf(out, "Point:  (%d, %d)\n", result.Point.X, result.Point.Y)
	fmt.Fprintf(out, "RGB:    %s\n", result.RGB)
	fmt.Fprintf(out, "HSL:    %s\n", result.HSL)
	if result.Shades != nil {
		fmt.Fprintf(out, "Shades: %s\n", rampLine(sw, result.Shades))
	}
	if result.Description != nil {
		fmt.Fprintf(out, "\n%s\n", result.Description.Text)
	}
	if result.Saved != nil {
		fmt.Fprintf(out, "Saved as %s\n", result.Saved.ID)
	}
	return nil
}
