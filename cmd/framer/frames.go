package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

func (a *app) frames(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, "usage: framer frames <add|list|rm> [args]")
		return errUsage
	}
	switch args[0] {
	case "add":
		return a.framesAdd(ctx, args[1:])
	case "list", "ls":
		return a.framesList(ctx)
	case "rm", "remove":
		return a.framesRemove(ctx, args[1:])
	default:
		fmt.Fprintf(a.stderr, "frames: unknown subcommand %q\n", args[0])
		return errUsage
	}
}

func (a *app) framesAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("frames add", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	name := fs.String("name", "", "display name (default: file name)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.stderr, "usage: framer frames add [-name title] <frame.png>")
		return errUsage
	}
	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if *name == "" {
		*name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	lib, s, err := a.openLibrary(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := lib.Add(ctx, *name, data)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, id)
	return nil
}

func (a *app) framesList(ctx context.Context) error {
	lib, s, err := a.openLibrary(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	frames, err := lib.Frames(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tADDED")
	for _, f := range frames {
		added := "built-in"
		if !f.Builtin {
			added = humanize.Time(f.Created)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.ID, f.Name, added)
	}
	return tw.Flush()
}

func (a *app) framesRemove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.stderr, "usage: framer frames rm <id>...")
		return errUsage
	}
	lib, s, err := a.openLibrary(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, id := range args {
		if err := lib.Remove(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
