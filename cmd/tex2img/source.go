package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	tex2img "github.com/alnah/go-tex2img"
)

// defaultHighlightStyle is the chroma style used by the source command.
const defaultHighlightStyle = "monokai"

// runSourceCmd prints the LaTeX document of every record in the input,
// highlighted for the terminal unless --plain is given.
func runSourceCmd(args []string, env *Environment) error {
	flags, positional, err := parseSourceFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return ErrNoInput
	}

	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}

	col, err := tex2img.LoadCollection(positional[0])
	if err != nil {
		return fmt.Errorf("%w%s", err, hintFor(err))
	}
	records, skipped := col.Records()
	for _, issue := range skipped {
		fmt.Fprintf(env.Stderr, "SKIPPED %s\n", issue)
	}

	var sb strings.Builder
	for i, rec := range records {
		if i > 0 {
			sb.WriteString("\n")
		}
		id := rec.ID
		if id == "" {
			id = fmt.Sprintf("#%d", rec.Index)
		}
		fmt.Fprintf(&sb, "%% --- %s (%s)\n", id, rec.Kind)
		sb.WriteString(tex2img.Document(rec, cfg.Render.ExtraPreamble))
	}

	if flags.plain {
		_, err = fmt.Fprint(env.Stdout, sb.String())
		return err
	}
	return quick.Highlight(env.Stdout, sb.String(), "tex", "terminal256", flags.style)
}
