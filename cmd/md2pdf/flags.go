package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	md2pdf "github.com/alnah/md2pdf-angebot"
)

// cliFlags holds every command line flag.
type cliFlags struct {
	angebot   bool
	noOpen    bool
	saveHTML  bool
	noHeader  bool
	output    string
	config    string
	timeout   time.Duration
	engine    string
	assetPath string
	quiet     bool
	verbose   bool
	version   bool
	help      bool
}

// parseFlags parses args (without the program name) and returns the
// positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("md2pdf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	f := &cliFlags{}

	// Mode flags
	fs.BoolVar(&f.angebot, "angebot", false, "quotation layout with banner and branded footer")
	fs.BoolVar(&f.noOpen, "no-open", false, "do not open the PDF after conversion")
	fs.BoolVar(&f.saveHTML, "save-html", false, "write md2pdf-debug.html instead of a PDF")
	fs.BoolVar(&f.noHeader, "no-header", false, "no running title header and page footer")

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (single input only)")
	fs.StringVarP(&f.config, "config", "c", "", "branding config file")
	fs.DurationVarP(&f.timeout, "timeout", "t", md2pdf.DefaultTimeout, "render timeout per file (e.g. 30s, 2m)")
	fs.StringVar(&f.engine, "engine", md2pdf.EngineRod, "browser driver: rod or chromedp")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding styles/ and templates/")

	// Common flags
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output and timing")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return f, fs.Args(), nil
}

// runOptions are the switches of one CLI run. Only Angebot and
// ShowHeaderFooter reach the library, through md2pdf.Input; Timeout and
// Engine become converter options.
type runOptions struct {
	OpenAfter        bool
	Angebot          bool
	SaveHTML         bool
	ShowHeaderFooter bool
	Timeout          time.Duration
	Engine           string
}

// validate checks the engine and timeout before a converter is built, since
// md2pdf.WithTimeout panics on a non-positive duration.
func (o runOptions) validate() error {
	switch o.Engine {
	case md2pdf.EngineRod, md2pdf.EngineChromedp:
	default:
		return fmt.Errorf("%w: %q (want %q or %q)", md2pdf.ErrInvalidEngine, o.Engine, md2pdf.EngineRod, md2pdf.EngineChromedp)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("%w: %s (must be positive)", md2pdf.ErrInvalidTimeout, o.Timeout)
	}
	return nil
}

// options converts flags into validated run options.
func (f *cliFlags) options() (runOptions, error) {
	opts := runOptions{
		OpenAfter:        !f.noOpen,
		Angebot:          f.angebot,
		SaveHTML:         f.saveHTML,
		ShowHeaderFooter: !f.noHeader,
		Timeout:          f.timeout,
		Engine:           strings.ToLower(f.engine),
	}
	if err := opts.validate(); err != nil {
		return opts, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return opts, nil
}

// splitOutputArg recognizes `md2pdf in.md out.pdf`: a second positional
// argument ending in .pdf names the output of the first.
func splitOutputArg(args []string) (inputs []string, output string) {
	if len(args) == 2 && strings.EqualFold(filepath.Ext(args[1]), ".pdf") {
		return args[:1], args[1]
	}
	return args, ""
}
