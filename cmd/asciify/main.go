package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/ironsheep/asciify/internal/export"
	"github.com/ironsheep/asciify/internal/imaging"
	"github.com/ironsheep/asciify/internal/palette"
	"github.com/ironsheep/asciify/internal/render"
	"github.com/ironsheep/asciify/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Size used when no size is given and stdout is not a terminal.
const (
	defaultWidth  = 100
	defaultHeight = 100
)

// options holds the parsed command line.
type options struct {
	paletteName string
	filterName  string

	palette palette.Kind
	filter  imaging.Filter
	color   bool
	profile string
	width   int
	height  int
	region  string
	save    bool
	output  string
	serve   bool
	inputs  []string
}

func main() {
	// Handle --version and --help before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("asciify %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-help", "help":
			printUsage(os.Stdout, newFlagSet(&options{}, io.Discard))
			return
		}
	}

	// Configure logging to stderr (stdout carries the art or MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "asciify: %v\n", err)
		os.Exit(2)
	}

	if os.Getenv("ASCIIFY_LOG_LEVEL") == "debug" {
		log.Printf("asciify v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("palette=%s filter=%s color=%v profile=%s size=%dx%d region=%q inputs=%d",
			opts.palette, opts.filter, opts.color, opts.profile, opts.width, opts.height, opts.region, len(opts.inputs))
	}

	if opts.serve {
		srv := server.New(Version)
		if err := srv.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	applyTerminalDefaults(opts)
	os.Exit(run(opts, os.Stdout))
}

// newFlagSet binds every command line flag to opts. Palette and filter names
// are resolved by parseArgs.
func newFlagSet(opts *options, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("asciify", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() { printUsage(fs.Output(), fs) }

	fs.StringVar(&opts.paletteName, "palette", palette.Point.String(), "glyph palette: "+strings.Join(palette.Names(), ", "))
	fs.StringVar(&opts.filterName, "filter", imaging.FilterNone.String(), "filter applied before rendering: none, edge, sharpen")
	fs.BoolVar(&opts.color, "color", false, "color each glyph with its source pixel")
	fs.StringVar(&opts.profile, "profile", "auto", "color depth: auto, "+strings.Join(render.ProfileNames(), ", "))
	fs.IntVar(&opts.width, "width", 0, "output width for landscape images (0: terminal width or 100)")
	fs.IntVar(&opts.height, "height", 0, "output height for portrait images (0: terminal height or 100)")
	fs.StringVar(&opts.region, "region", "", "render only part of the image: "+strings.Join(imaging.Regions(), ", "))
	fs.BoolVar(&opts.save, "save", false, "also write the art to "+export.DefaultPath)
	fs.StringVar(&opts.output, "output", "", "also write the art to this file")
	fs.BoolVar(&opts.serve, "serve", false, "run as an MCP server on stdin/stdout")
	return fs
}

// parseArgs parses the command line into options.
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := newFlagSet(opts, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var err error
	if opts.palette, err = palette.Parse(opts.paletteName); err != nil {
		return nil, err
	}
	if opts.filter, err = imaging.ParseFilter(opts.filterName); err != nil {
		return nil, err
	}
	if opts.profile != "auto" {
		if _, err := render.ParseProfile(opts.profile); err != nil {
			return nil, err
		}
	}
	if opts.width < 0 || opts.height < 0 {
		return nil, errors.New("width and height must not be negative")
	}

	opts.inputs = fs.Args()
	if !opts.serve && len(opts.inputs) == 0 {
		return nil, errors.New("no input images (see asciify --help)")
	}
	return opts, nil
}

// applyTerminalDefaults fills in a zero width or height from the terminal
// size, or from the fixed defaults when stdout is not a terminal.
func applyTerminalDefaults(opts *options) {
	cols, rows := defaultWidth, defaultHeight
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 1 {
			// Wide glyphs take two columns each.
			cols = w / glyphColumns(opts.palette)
			rows = h - 1
		}
	}
	if opts.width == 0 {
		opts.width = cols
	}
	if opts.height == 0 {
		opts.height = rows
	}
}

// glyphColumns returns the display width of the widest glyph in a palette.
func glyphColumns(kind palette.Kind) int {
	widest := 1
	for _, g := range kind.Glyphs() {
		if w := runewidth.RuneWidth(g); w > widest {
			widest = w
		}
	}
	return widest
}

// colorProfile resolves the -profile flag. "auto" asks termenv, which looks at
// the environment and whether stdout is a terminal.
func colorProfile(name string) termenv.Profile {
	if name == "auto" {
		return termenv.EnvColorProfile()
	}
	p, err := render.ParseProfile(name)
	if err != nil {
		return termenv.Ascii
	}
	return p
}

// run renders every input to stdout and returns the process exit code.
// A failing input is logged and the remaining inputs are still rendered.
func run(opts *options, stdout io.Writer) int {
	profile := colorProfile(opts.profile)
	r := render.New()
	r.SetPalette(opts.palette)
	if opts.color {
		r.EnableColor()
	}

	failed := false
	var saved strings.Builder
	for _, path := range opts.inputs {
		text, err := renderFile(r, path, opts, profile)
		if err != nil {
			log.Printf("Error rendering %s: %v", path, err)
			failed = true
			continue
		}
		if err := export.Write(stdout, text); err != nil {
			log.Printf("Error writing output: %v", err)
			return 1
		}
		saved.WriteString(text)
	}

	if saved.Len() > 0 {
		if err := saveArt(opts, saved.String()); err != nil {
			log.Printf("Error saving art: %v", err)
			failed = true
		}
	}

	if failed {
		return 1
	}
	return 0
}

// renderFile loads one image into r and returns its formatted art.
func renderFile(r *render.Renderer, path string, opts *options, profile termenv.Profile) (string, error) {
	if err := r.Load(path); err != nil {
		return "", err
	}
	if err := r.Crop(opts.region); err != nil {
		return "", err
	}
	art, err := r.Render(opts.width, opts.height, opts.filter)
	if err != nil {
		return "", err
	}
	return art.Format(profile), nil
}

// saveArt writes text to the files requested by -save and -output.
func saveArt(opts *options, text string) error {
	if opts.save {
		if err := export.Save(text); err != nil {
			return err
		}
	}
	if opts.output != "" {
		if err := export.SaveTo(opts.output, text); err != nil {
			return err
		}
	}
	return nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "asciify - render images as text art")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: asciify [options] image [image...]")
	fmt.Fprintln(w, "       asciify -serve")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w, "  --version, -v")
	fmt.Fprintln(w, "    \tprint version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  ASCIIFY_LOG_LEVEL=debug    Enable debug logging")
}
