package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alnah/go-tex2img/internal/fileutil"
)

// VectorExtractor turns a DVI file into an SVG file.
type VectorExtractor interface {
	Extract(ctx context.Context, workDir, dviPath, scale string) (svgPath string, err error)
}

// SVGExtractor runs dvisvgm without embedded fonts and with exact bounding
// boxes.
type SVGExtractor struct {
	Runner  CommandRunner
	Bin     string
	Timeout time.Duration
}

// Compile-time interface check.
var _ VectorExtractor = (*SVGExtractor)(nil)

// NewSVGExtractor creates an SVGExtractor, applying defaults for an empty
// binary name or a non-positive timeout.
func NewSVGExtractor(runner CommandRunner, bin string, timeout time.Duration) *SVGExtractor {
	if bin == "" {
		bin = DefaultDvisvgmBin
	}
	if timeout <= 0 {
		timeout = DefaultExtractTimeout
	}
	return &SVGExtractor{Runner: runner, Bin: bin, Timeout: timeout}
}

// Extract converts dviPath to SVG at the given scale (decimal factor).
// Failures are returned as *StageError wrapping ErrTimeout, ErrProcessExit
// or ErrArtifactMissing.
func (e *SVGExtractor) Extract(ctx context.Context, workDir, dviPath, scale string) (string, error) {
	logPath := filepath.Join(workDir, DvisvgmLogFile)
	err := e.Runner.Run(ctx, Command{
		Name:    e.Bin,
		Args:    []string{"--no-fonts", "--scale=" + scale, "--exact", filepath.Base(dviPath)},
		Dir:     workDir,
		LogPath: logPath,
		Timeout: e.Timeout,
	})
	if err != nil {
		return "", &StageError{Stage: StageExtract, LogPath: logPath, Err: err}
	}

	svgPath := filepath.Join(workDir, SVGFile)
	if !fileutil.FileExists(svgPath) {
		return "", &StageError{
			Stage:   StageExtract,
			LogPath: logPath,
			Err:     fmt.Errorf("%w: %s", ErrArtifactMissing, SVGFile),
		}
	}

	return svgPath, nil
}
