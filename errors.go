package tex2img

import (
	"errors"

	"github.com/alnah/go-tex2img/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyContent   = errors.New("record content cannot be empty")
	ErrCompile        = errors.New("LaTeX compilation failed")
	ErrVectorExtract  = errors.New("DVI to SVG conversion failed")
	ErrBrowserConnect = pipeline.ErrBrowserConnect

	// Finishing stage errors, wrapping the underlying cause.
	ErrConversion = pipeline.ErrConversion

	// External process outcomes, matched through ErrCompile and
	// ErrVectorExtract chains.
	ErrTimeout         = pipeline.ErrTimeout
	ErrProcessExit     = pipeline.ErrProcessExit
	ErrArtifactMissing = pipeline.ErrArtifactMissing

	// Configuration validation errors.
	ErrInvalidFormat     = errors.New("invalid output format")
	ErrInvalidScale      = errors.New("invalid scale")
	ErrInvalidRasterizer = errors.New("invalid rasterizer")
	ErrInvalidTimeout    = errors.New("invalid timeout")

	// Record collection errors.
	ErrNoRecordGroup        = errors.New(`input has neither "equations" nor "pseudocode"`)
	ErrEmptyRecordGroup     = errors.New("record group is empty")
	ErrAmbiguousRecordGroup = errors.New(`input has both "equations" and "pseudocode"`)
	ErrUnsupportedInput     = errors.New("unsupported input file type")
	ErrCollectionParse      = errors.New("failed to parse input")
)
