package main

import (
	"io"

	flag "github.com/spf13/pflag"

	tex2img "github.com/alnah/go-tex2img"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// convertFlags holds flags for the convert command.
// changed records which flags were given explicitly, so that config file
// and environment values are only overridden on purpose.
type convertFlags struct {
	common     commonFlags
	format     string
	scale      string
	outputDir  string
	workDir    string
	debug      bool
	rasterizer string
	latex      string
	dvisvgm    string
	chromeBin  string
	changed    map[string]bool
}

// sourceFlags holds flags for the source command.
type sourceFlags struct {
	common commonFlags
	plain  bool
	style  string
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-record diagnostics")
}

func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{changed: map[string]bool{}}

	fs.StringVarP(&f.format, "format", "f", string(tex2img.DefaultFormat), "output format: svg, png, jpg")
	fs.StringVarP(&f.scale, "scale", "s", tex2img.DefaultScaleText, "scale as percentage or factor")
	fs.StringVarP(&f.outputDir, "output-dir", "o", tex2img.DefaultOutputDir, "output directory")
	fs.StringVar(&f.workDir, "work-dir", "", "scratch directory (default: system temp)")
	fs.BoolVar(&f.debug, "debug", false, "keep scratch files, .tex sources and tool logs")
	fs.StringVar(&f.rasterizer, "rasterizer", tex2img.RasterizerNative, "png/jpg backend: native, chrome")
	fs.StringVar(&f.latex, "latex", "", "latex binary")
	fs.StringVar(&f.dvisvgm, "dvisvgm", "", "dvisvgm binary")
	fs.StringVar(&f.chromeBin, "chrome-bin", "", "Chrome binary for --rasterizer chrome")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.changed[fl.Name] = true })

	return f, fs.Args(), nil
}

func parseSourceFlags(args []string, usage io.Writer) (*sourceFlags, []string, error) {
	fs := flag.NewFlagSet("source", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &sourceFlags{}

	fs.BoolVar(&f.plain, "plain", false, "disable syntax highlighting")
	fs.StringVar(&f.style, "style", defaultHighlightStyle, "highlighting style")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printSourceUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
