package pipeline

import (
	"errors"
	"fmt"

	"github.com/alnah/go-tex2img/internal/fileutil"
)

// Sentinel errors for external process outcomes.
var (
	ErrTimeout         = errors.New("process exceeded its time budget")
	ErrProcessExit     = errors.New("process exited with non-zero status")
	ErrArtifactMissing = errors.New("expected artifact was not produced")
	ErrConversion      = errors.New("output format conversion failed")
	ErrEmptyImage      = errors.New("rasterized image has no area")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrUnknownFormat   = errors.New("unknown output format")
)

// Stage names reported in StageError.
const (
	StageCompile = "latex"
	StageExtract = "dvisvgm"
)

// StageError reports an external process failure for one pipeline stage.
// LogPath points at the captured stdout/stderr of the process, inside the
// scratch directory; it is only readable until the directory is removed.
type StageError struct {
	Stage   string
	LogPath string
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// LogTail returns at most the last n bytes of the captured process log.
func (e *StageError) LogTail(n int64) string {
	if e.LogPath == "" {
		return ""
	}
	return fileutil.ReadTail(e.LogPath, n)
}
