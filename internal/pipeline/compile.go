package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-tex2img/internal/fileutil"
)

// Scratch file names shared by the compile and extract stages.
const (
	DocumentFile   = "equation.tex"
	DVIFile        = "equation.dvi"
	SVGFile        = "equation.svg"
	LatexLogFile   = "latex_output.log"
	DvisvgmLogFile = "dvisvgm_output.log"
)

// Default binaries and time budgets.
const (
	DefaultLatexBin       = "latex"
	DefaultDvisvgmBin     = "dvisvgm"
	DefaultCompileTimeout = 30 * time.Second
	DefaultExtractTimeout = 20 * time.Second
)

// DocumentCompiler turns a LaTeX document into a DVI file.
type DocumentCompiler interface {
	Compile(ctx context.Context, workDir, document string) (dviPath string, err error)
}

// LatexCompiler runs latex non-interactively with shell escape disabled.
type LatexCompiler struct {
	Runner  CommandRunner
	Bin     string
	Timeout time.Duration
}

// Compile-time interface check.
var _ DocumentCompiler = (*LatexCompiler)(nil)

// NewLatexCompiler creates a LatexCompiler, applying defaults for an empty
// binary name or a non-positive timeout.
func NewLatexCompiler(runner CommandRunner, bin string, timeout time.Duration) *LatexCompiler {
	if bin == "" {
		bin = DefaultLatexBin
	}
	if timeout <= 0 {
		timeout = DefaultCompileTimeout
	}
	return &LatexCompiler{Runner: runner, Bin: bin, Timeout: timeout}
}

// Compile writes the document into workDir and compiles it to DVI.
// Failures are returned as *StageError wrapping ErrTimeout, ErrProcessExit
// or ErrArtifactMissing.
func (c *LatexCompiler) Compile(ctx context.Context, workDir, document string) (string, error) {
	texPath := filepath.Join(workDir, DocumentFile)
	if err := os.WriteFile(texPath, []byte(document), 0o600); err != nil {
		return "", fmt.Errorf("writing %s: %w", DocumentFile, err)
	}

	logPath := filepath.Join(workDir, LatexLogFile)
	err := c.Runner.Run(ctx, Command{
		Name:    c.Bin,
		Args:    []string{"-no-shell-escape", "-interaction=nonstopmode", DocumentFile},
		Dir:     workDir,
		LogPath: logPath,
		Timeout: c.Timeout,
	})
	if err != nil {
		return "", &StageError{Stage: StageCompile, LogPath: logPath, Err: err}
	}

	dviPath := filepath.Join(workDir, DVIFile)
	if !fileutil.FileExists(dviPath) {
		return "", &StageError{
			Stage:   StageCompile,
			LogPath: logPath,
			Err:     fmt.Errorf("%w: %s", ErrArtifactMissing, DVIFile),
		}
	}

	return dviPath, nil
}
