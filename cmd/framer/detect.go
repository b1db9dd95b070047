package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/gogpu/framer"
)

func (a *app) detect(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var (
		frameRef = fs.String("frame", framer.DefaultFrameID, "frame PNG file or library ID")
		outline  = fs.String("outline", "", "write a copy of the frame with the cutout outlined to this PNG file")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	asset, err := a.loadFrame(ctx, *frameRef)
	if err != nil {
		return err
	}
	c := asset.Cutout()
	w, h := asset.Size()
	fmt.Fprintf(a.stdout, "frame\t%dx%d\ncutout\t%d %d %d %d\nsize\t%dx%d\ndetected\t%t\n",
		w, h, c.Left, c.Top, c.Right, c.Bottom, c.Dx(), c.Dy(), asset.Detected())

	if *outline != "" {
		if err := saveOutline(*outline, asset); err != nil {
			return fmt.Errorf("outline: %w", err)
		}
	}
	return nil
}

// saveOutline draws the cutout rectangle and its diagonals over the frame.
func saveOutline(path string, asset *framer.FrameAsset) error {
	dc := gg.NewContextForImage(asset.Frame().NRGBA())
	c := asset.Cutout()
	x, y := float64(c.Left)+0.5, float64(c.Top)+0.5
	w, h := float64(c.Dx())-1, float64(c.Dy())-1

	dc.SetRGBA(1, 0, 0.4, 0.9)
	dc.SetLineWidth(2)
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()

	dc.SetDash(6, 4)
	dc.SetLineWidth(1)
	dc.DrawLine(x, y, x+w, y+h)
	dc.DrawLine(x+w, y, x, y+h)
	dc.Stroke()

	return dc.SavePNG(path)
}
