package tex2img

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-tex2img/internal/pipeline"
)

// Format is an output image format.
type Format string

// Supported output formats.
const (
	FormatSVG Format = pipeline.FormatSVG
	FormatPNG Format = pipeline.FormatPNG
	FormatJPG Format = pipeline.FormatJPG
)

// ParseFormat parses a format name case-insensitively. "jpeg" is accepted
// as an alias for jpg.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	default:
		return "", fmt.Errorf("%w: %q (must be svg, png, or jpg)", ErrInvalidFormat, s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Rasterizer backends for png and jpg output.
const (
	RasterizerNative = "native"
	RasterizerChrome = "chrome"
)

// Default configuration values.
const (
	DefaultFormat    = FormatPNG
	DefaultScaleText = "125%"
	DefaultOutputDir = "output"
)

// Config holds render settings. It is copied by NewConverter and must not
// be changed afterwards.
type Config struct {
	Format            Format
	Scale             string // "125%" or a decimal factor such as "1.25"
	OutputDir         string
	KeepIntermediates bool   // debug: keep scratch directories and logs
	WorkDir           string // scratch root, empty = system temp

	ExtraPreamble []string // lines appended after the base preamble

	LatexBin       string
	DvisvgmBin     string
	CompileTimeout time.Duration
	ExtractTimeout time.Duration

	Rasterizer string // RasterizerNative (default) or RasterizerChrome
	ChromeBin  string
}

// NewConfig builds a validated Config with default binaries and budgets.
func NewConfig(format, scale, outputDir string, debug bool) (Config, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Format:            f,
		Scale:             scale,
		OutputDir:         outputDir,
		KeepIntermediates: debug,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration. Zero-valued optional fields are valid
// and resolve to defaults in NewConverter.
func (c *Config) Validate() error {
	if c.Format != "" {
		if _, err := ParseFormat(string(c.Format)); err != nil {
			return err
		}
	}
	if _, err := c.ScaleFactor(); err != nil {
		return err
	}
	if c.CompileTimeout < 0 {
		return fmt.Errorf("%w: compile timeout %s", ErrInvalidTimeout, c.CompileTimeout)
	}
	if c.ExtractTimeout < 0 {
		return fmt.Errorf("%w: extract timeout %s", ErrInvalidTimeout, c.ExtractTimeout)
	}
	switch c.Rasterizer {
	case "", RasterizerNative, RasterizerChrome:
	default:
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidRasterizer, c.Rasterizer, RasterizerNative, RasterizerChrome)
	}
	return nil
}

// ScaleFactor returns the dvisvgm scale for c.Scale, applying ParseScale.
// An empty scale means DefaultScaleText.
func (c *Config) ScaleFactor() (string, error) {
	raw := c.Scale
	if raw == "" {
		raw = DefaultScaleText
	}
	factor := ParseScale(raw)
	v, err := strconv.ParseFloat(factor, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return "", fmt.Errorf("%w: %q (must be a positive percentage or decimal)", ErrInvalidScale, c.Scale)
	}
	return factor, nil
}

// Kind tells how a record's content is wrapped into a document.
type Kind int

// Record kinds.
const (
	KindEquation Kind = iota
	KindPseudocode
)

func (k Kind) String() string {
	switch k {
	case KindEquation:
		return "equation"
	case KindPseudocode:
		return "pseudocode"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Record is one unit of work: a LaTeX fragment and the name of its output.
type Record struct {
	Kind      Kind
	ID        string // output file is img-<ID>.<ext>, generated when empty
	Content   string
	AutoAlign bool // wrap bare equations in align*
	Index     int  // position in the source collection
}

// Option configures a Converter.
type Option func(*Converter)
