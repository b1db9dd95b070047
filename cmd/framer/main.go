// Command framer composites a photo into a frame with a transparent cutout.
//
// Usage:
//
//	framer [-config file] [-db file] [-v] <command> [flags]
//
// Commands:
//
//	compose      render a photo into a frame and write the PNG
//	detect       print the cutout of a frame
//	frames       manage the custom frame library (add, list, rm)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/gogpu/framer"
	"github.com/gogpu/framer/internal/config"
	"github.com/gogpu/framer/internal/store"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

// app carries what every subcommand needs.
type app struct {
	cfg    *config.Config
	dbPath string
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("framer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "config file (default: XDG config home)")
		dbPath     = fs.String("db", "", "frame library database (default: XDG data home)")
		verbose    = fs.Bool("v", false, "verbose logging")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: framer [-config file] [-db file] [-v] <compose|detect|frames> [flags]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "framer: %v\n", err)
		return exitError
	}
	if *dbPath != "" {
		cfg.Database = *dbPath
	}
	setupLogging(stderr, cfg.Debug || *verbose)

	a := &app{cfg: cfg, stdout: stdout, stderr: stderr}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "compose":
		err = a.compose(ctx, rest)
	case "detect":
		err = a.detect(ctx, rest)
	case "frames":
		err = a.frames(ctx, rest)
	default:
		fmt.Fprintf(stderr, "framer: unknown command %q\n", cmd)
		fs.Usage()
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitUsage
	case errors.Is(err, errUsage):
		if err != errUsage {
			fmt.Fprintf(stderr, "framer %s: %v\n", cmd, err)
		}
		return exitUsage
	default:
		fmt.Fprintf(stderr, "framer %s: %v\n", cmd, err)
		return exitError
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		p, err := config.SearchPath()
		if err != nil {
			return config.DefaultConfig(), nil
		}
		path = p
	}
	return config.Load(path)
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	framer.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// openLibrary opens the SQLite frame store. The caller closes the store.
func (a *app) openLibrary(ctx context.Context) (*framer.Library, store.Store, error) {
	path, err := a.cfg.DatabasePath()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	lib, err := framer.NewLibrary(s,
		framer.WithCacheSize(a.cfg.CacheSize),
		framer.WithLibraryDetectOptions(a.detectOptions()...))
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return lib, s, nil
}

func (a *app) detectOptions() []framer.DetectOption {
	return []framer.DetectOption{
		framer.WithAlphaThreshold(uint8(a.cfg.AlphaThreshold)),
		framer.WithWorkers(a.cfg.Workers),
	}
}

// loadFrame resolves ref as a library ID when it is "default" or carries
// the custom prefix, as a file path otherwise, and as a bare library ID if
// no such file exists.
func (a *app) loadFrame(ctx context.Context, ref string) (*framer.FrameAsset, error) {
	if ref == "" {
		ref = framer.DefaultFrameID
	}
	if ref != framer.DefaultFrameID && !strings.HasPrefix(ref, store.Prefix) {
		data, err := os.ReadFile(ref)
		if err == nil {
			return framer.LoadFrameAsset(data, a.detectOptions()...)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if ref == framer.DefaultFrameID {
		lib, err := framer.NewLibrary(store.NewMemoryStore())
		if err != nil {
			return nil, err
		}
		return lib.Asset(ctx, ref)
	}

	lib, s, err := a.openLibrary(ctx)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return lib.Asset(ctx, ref)
}
