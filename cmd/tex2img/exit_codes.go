package main

import (
	"errors"
	"os/exec"
	"path/filepath"

	tex2img "github.com/alnah/go-tex2img"
	"github.com/alnah/go-tex2img/internal/config"
	"github.com/alnah/go-tex2img/internal/hints"
)

// Exit codes for the tex2img CLI. A run that completes is a success even
// when some records failed; those are reported on stderr.
const (
	ExitSuccess = 0 // Run completed
	ExitGeneral = 1 // Invalid input, config or flags, or an unexpected error
)

// exitCodeFor returns the appropriate exit code for an error.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "" when none applies.
func hintFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, exec.ErrNotFound):
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return hints.ForMissingTool(filepath.Base(execErr.Name))
		}
		return hints.ForMissingTool("latex")
	case errors.Is(err, tex2img.ErrTimeout):
		return hints.ForTimeout()
	case errors.Is(err, tex2img.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, tex2img.ErrCompile), errors.Is(err, tex2img.ErrVectorExtract):
		return hints.ForCompileError()
	case errors.Is(err, tex2img.ErrNoRecordGroup),
		errors.Is(err, tex2img.ErrEmptyRecordGroup),
		errors.Is(err, tex2img.ErrAmbiguousRecordGroup):
		return hints.ForRecordGroup()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	}
	return ""
}
