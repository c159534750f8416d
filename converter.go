package tex2img

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alnah/go-tex2img/internal/fileutil"
	"github.com/alnah/go-tex2img/internal/pipeline"
)

// Pipeline extension points, re-exported so callers can substitute them.
type (
	// CommandRunner executes latex and dvisvgm.
	CommandRunner = pipeline.CommandRunner
	// Command is one external program invocation.
	Command = pipeline.Command
	// Rasterizer renders an SVG file to an image for png and jpg output.
	Rasterizer = pipeline.Rasterizer
	// StageError carries the log of a failed latex or dvisvgm run.
	StageError = pipeline.StageError
)

// LogTailBytes is how much of a failed tool's log is kept in RecordError.
const LogTailBytes = 500

const (
	debugDir       = "debug"
	scratchDir     = "scratch"
	outputPrefix   = "img-"
	generatedIDLen = 8
)

// RecordError reports a record that produced no image.
type RecordError struct {
	ID       string
	Stage    string // "latex", "dvisvgm" or empty for the finishing stage
	LogTail  string // end of the tool output, empty when debug keeps the log
	DebugLog string // copy of the full tool output, debug mode only
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %s: %v", e.ID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Converter runs records through latex, dvisvgm and the format finisher.
// Create with NewConverter, use Convert or ConvertCollection, and Close when
// done. A Converter processes one record at a time and is not safe for
// concurrent use.
type Converter struct {
	cfg          Config
	scale        string
	workRoot     string
	ownsWorkRoot bool

	runner     CommandRunner
	rasterizer Rasterizer
	compiler   pipeline.DocumentCompiler
	extractor  pipeline.VectorExtractor
	finisher   pipeline.FormatFinisher
	logger     *zap.Logger
	newID      func() string
}

// WithRunner replaces the subprocess runner (tests, sandboxes).
func WithRunner(r CommandRunner) Option {
	return func(c *Converter) {
		c.runner = r
	}
}

// WithRasterizer replaces the rasterizer selected by Config.Rasterizer.
func WithRasterizer(r Rasterizer) Option {
	return func(c *Converter) {
		c.rasterizer = r
	}
}

// WithLogger sets the logger for per-record diagnostics.
// A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l
	}
}

// NewConverter validates cfg, applies defaults and creates the output
// directory and scratch root.
func NewConverter(cfg Config, opts ...Option) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = withDefaults(cfg)

	scale, err := cfg.ScaleFactor()
	if err != nil {
		return nil, err
	}

	c := &Converter{
		cfg:    cfg,
		scale:  scale,
		logger: zap.NewNop(),
		newID:  shortID,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := os.MkdirAll(cfg.OutputDir, fileutil.DirPermissions); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := c.initWorkRoot(); err != nil {
		return nil, err
	}

	if c.runner == nil {
		c.runner = &pipeline.ExecRunner{}
	}
	if c.rasterizer == nil {
		if cfg.Rasterizer == RasterizerChrome {
			c.rasterizer = pipeline.NewChromeRasterizer(cfg.ChromeBin, 0)
		} else {
			c.rasterizer = pipeline.NewSVGRasterizer()
		}
	}
	c.compiler = pipeline.NewLatexCompiler(c.runner, cfg.LatexBin, cfg.CompileTimeout)
	c.extractor = pipeline.NewSVGExtractor(c.runner, cfg.DvisvgmBin, cfg.ExtractTimeout)
	c.finisher = pipeline.NewFinisher(c.rasterizer)

	return c, nil
}

func withDefaults(cfg Config) Config {
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	cfg.Format, _ = ParseFormat(string(cfg.Format))
	if cfg.Scale == "" {
		cfg.Scale = DefaultScaleText
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.Rasterizer == "" {
		cfg.Rasterizer = RasterizerNative
	}
	cfg.ExtraPreamble = append([]string(nil), cfg.ExtraPreamble...)
	return cfg
}

func (c *Converter) initWorkRoot() error {
	if c.cfg.WorkDir != "" {
		if err := os.MkdirAll(c.cfg.WorkDir, fileutil.DirPermissions); err != nil {
			return fmt.Errorf("creating work directory: %w", err)
		}
		c.workRoot = c.cfg.WorkDir
		return nil
	}

	dir, err := os.MkdirTemp("", "tex2img-")
	if err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}
	c.workRoot = dir
	c.ownsWorkRoot = true
	return nil
}

// Config returns the effective configuration, defaults applied.
func (c *Converter) Config() Config {
	return c.cfg
}

// WorkRoot returns the directory holding scratch and debug files.
func (c *Converter) WorkRoot() string {
	return c.workRoot
}

// OutputPath returns where the image for id is written.
func (c *Converter) OutputPath(id string) string {
	return filepath.Join(c.cfg.OutputDir, outputPrefix+id+"."+c.cfg.Format.Ext())
}

// Convert renders one record and returns the output path.
// Failures are returned as *RecordError wrapping ErrCompile,
// ErrVectorExtract or ErrConversion. Recovers from internal panics to
// prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, rec Record) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(rec.Content) == "" {
		return "", ErrEmptyContent
	}

	id := rec.ID
	if id == "" {
		id = c.newID()
	}
	if err := fileutil.ValidateName(id); err != nil {
		return "", fmt.Errorf("record id %q: %w", id, err)
	}
	log := c.logger.With(zap.String("id", id))

	// Scratch directories live apart from debug copies so that no record id
	// can name, and clear, the debug directory.
	scratch := filepath.Join(c.workRoot, scratchDir, id)
	if err := os.RemoveAll(scratch); err != nil {
		return "", fmt.Errorf("clearing scratch directory: %w", err)
	}
	if err := os.MkdirAll(scratch, fileutil.DirPermissions); err != nil {
		return "", fmt.Errorf("creating scratch directory: %w", err)
	}
	if !c.cfg.KeepIntermediates {
		defer func() {
			if rmErr := os.RemoveAll(scratch); rmErr != nil {
				log.Warn("removing scratch directory", zap.Error(rmErr))
			}
		}()
	}

	doc := Document(rec, c.cfg.ExtraPreamble)
	if c.cfg.KeepIntermediates {
		texCopy := filepath.Join(c.workRoot, debugDir, id+".tex")
		if err := writeDebugFile(texCopy, doc); err != nil {
			log.Warn("saving debug document", zap.Error(err))
		}
	}

	dvi, err := c.compiler.Compile(ctx, scratch, doc)
	if err != nil {
		return "", c.stageFailure(log, id, "_error.log", ErrCompile, err)
	}

	svg, err := c.extractor.Extract(ctx, scratch, dvi, c.scale)
	if err != nil {
		return "", c.stageFailure(log, id, "_dvisvgm_error.log", ErrVectorExtract, err)
	}

	dest := c.OutputPath(id)
	if err := c.finisher.Finish(ctx, svg, string(c.cfg.Format), dest); err != nil {
		log.Info("record failed", zap.String("format", string(c.cfg.Format)), zap.Error(err))
		return "", &RecordError{ID: id, Err: err}
	}

	log.Info("created image", zap.String("path", dest))
	return dest, nil
}

// stageFailure builds the RecordError for a latex or dvisvgm failure and
// applies the log policy: debug keeps a copy of the full log, otherwise the
// tail is captured before the scratch directory goes away.
func (c *Converter) stageFailure(log *zap.Logger, id, logSuffix string, sentinel, cause error) error {
	recErr := &RecordError{ID: id, Err: fmt.Errorf("%w: %w", sentinel, cause)}

	var se *StageError
	if !errors.As(cause, &se) {
		log.Info("record failed", zap.Error(cause))
		return recErr
	}
	recErr.Stage = se.Stage

	if c.cfg.KeepIntermediates && se.LogPath != "" {
		kept := filepath.Join(c.workRoot, debugDir, id+logSuffix)
		if err := fileutil.CopyFile(se.LogPath, kept); err != nil {
			log.Warn("saving debug log", zap.Error(err))
			recErr.LogTail = se.LogTail(LogTailBytes)
		} else {
			recErr.DebugLog = kept
		}
	} else {
		recErr.LogTail = se.LogTail(LogTailBytes)
	}

	log.Info("record failed",
		zap.String("stage", se.Stage),
		zap.String("log", recErr.LogTail),
		zap.Error(se.Err),
	)
	return recErr
}

// Close releases the rasterizer and removes the temporary scratch root.
// A scratch root given through Config.WorkDir, or any root in debug mode,
// is left in place.
func (c *Converter) Close() error {
	var errs []error
	if closer, ok := c.rasterizer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing rasterizer: %w", err))
		}
	}
	if c.ownsWorkRoot && !c.cfg.KeepIntermediates {
		if err := os.RemoveAll(c.workRoot); err != nil {
			errs = append(errs, fmt.Errorf("removing work directory: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Document returns the complete LaTeX document generated for rec.
func Document(rec Record, extraPreamble []string) string {
	pseudo := rec.Kind == KindPseudocode
	content := pipeline.WrapAlign(rec.Content, rec.AutoAlign, pseudo)
	return pipeline.BuildDocument(content, pseudo, pipeline.TemplateOptions{ExtraPreamble: extraPreamble})
}

func writeDebugFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), fileutil.DirPermissions); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), fileutil.FilePermissions) // #nosec G306 -- debug output
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:generatedIDLen]
}
