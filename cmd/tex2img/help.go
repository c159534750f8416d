package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2img <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Render equations or pseudocode to images (default)")
	fmt.Fprintln(w, "  source     Print the LaTeX documents that convert would compile")
	fmt.Fprintln(w, "  doctor     Check latex, dvisvgm and Chrome availability")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'tex2img help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2img convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every record of a collection file to an image.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .json, .yaml or .md file holding either an \"equations\"")
	fmt.Fprintln(w, "           or a \"pseudocode\" group")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -f, --format <s>          Image format: svg, png, jpg (default png)")
	fmt.Fprintln(w, "  -s, --scale <s>           Scale: 100%, 125%, 150%, 200%, 250%, 300%, 400%, 500%,")
	fmt.Fprintln(w, "                            any N%, or a factor such as 1.8 (default 125%)")
	fmt.Fprintln(w, "  -o, --output-dir <path>   Output directory (default output)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tools:")
	fmt.Fprintln(w, "      --latex <path>        latex binary")
	fmt.Fprintln(w, "      --dvisvgm <path>      dvisvgm binary")
	fmt.Fprintln(w, "      --rasterizer <s>      PNG/JPG backend: native, chrome (default native)")
	fmt.Fprintln(w, "      --chrome-bin <path>   Chrome binary for the chrome rasterizer")
	fmt.Fprintln(w, "      --work-dir <path>     Scratch directory (default: system temp)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagnostics:")
	fmt.Fprintln(w, "      --debug               Keep .tex sources, tool logs and scratch files")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-record diagnostics")
}

// printSourceUsage prints usage for the source command.
func printSourceUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tex2img source <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the complete LaTeX document generated for each record.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --plain               Disable syntax highlighting")
	fmt.Fprintf(w, "      --style <s>           Highlighting style (default %s)\n", defaultHighlightStyle)
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (for extra preamble)")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "source":
		printSourceUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: tex2img doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that the external tools are installed and report their versions.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: tex2img version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: tex2img help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitGeneral
	}
	return ExitSuccess
}
