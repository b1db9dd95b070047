package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/gogpu/framer"
)

func (a *app) compose(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("compose", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var (
		frameRef  = fs.String("frame", framer.DefaultFrameID, "frame PNG file or library ID")
		photoPath = fs.String("photo", "", "photo file (PNG, JPEG, GIF, BMP, TIFF, WebP)")
		outDir    = fs.String("out", a.cfg.OutputDir, `output directory, or "-" for stdout`)
		envName   = fs.String("env", a.cfg.Environment, "export strategy: desktop or mobile")
		userAgent = fs.String("ua", "", "pick the export strategy from a user agent string")
		interp    = fs.String("interp", a.cfg.Interpolation, "scaling filter: nearest, approx-bilinear, bilinear, bicubic")
		name      = fs.String("name", "", "title used to derive the download file name")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *photoPath == "" {
		fmt.Fprintln(a.stderr, "compose: -photo is required")
		fs.Usage()
		return errUsage
	}

	mode, ok := framer.ParseInterpolation(*interp)
	if !ok {
		return fmt.Errorf("%w: unknown interpolation %q", errUsage, *interp)
	}
	env, ok := framer.ParseEnvironment(*envName)
	if !ok {
		return fmt.Errorf("%w: unknown environment %q", errUsage, *envName)
	}
	if *userAgent != "" {
		env = framer.DetectEnvironment(*userAgent)
	}

	if *outDir == "-" {
		if f, ok := a.stdout.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			return fmt.Errorf("%w: refusing to write PNG data to a terminal", errUsage)
		}
	}

	asset, err := a.loadFrame(ctx, *frameRef)
	if err != nil {
		return err
	}
	photoData, err := os.ReadFile(*photoPath)
	if err != nil {
		return err
	}

	encOpts := []framer.EncoderOption{}
	if *name != "" {
		encOpts = append(encOpts, framer.WithDownloadName(framer.DownloadName(*name)))
	}
	session := framer.NewSession(
		framer.WithEncoder(framer.NewEncoder(env, encOpts...)),
		framer.WithComposeOptions(framer.WithInterpolation(mode)),
	)
	defer session.Close()

	if _, err := session.SetFrame(ctx, asset); err != nil {
		return err
	}
	if _, err := session.SetPhoto(ctx, photoData); err != nil {
		return err
	}
	exp, err := session.Export(ctx)
	if err != nil {
		return err
	}

	if *outDir == "-" {
		_, err := a.stdout.Write(exp.Data)
		return err
	}
	path, err := framer.Save(*outDir, exp)
	if err != nil {
		return err
	}
	w, h := asset.Size()
	fmt.Fprintf(a.stdout, "%s\t%dx%d\t%s\t%s\n", path, w, h, humanize.Bytes(uint64(len(exp.Data))), env)
	return nil
}
