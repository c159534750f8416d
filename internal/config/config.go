// Package config loads tex2img settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-tex2img/internal/fileutil"
	"github.com/alnah/go-tex2img/internal/yamlutil"
)

// AppDir is the directory name under the user config directory.
const AppDir = "go-tex2img"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound    = errors.New("config file not found")
	ErrEmptyConfigName   = errors.New("config name cannot be empty")
	ErrConfigParse       = errors.New("failed to parse config")
	ErrFieldTooLong      = errors.New("field exceeds maximum length")
	ErrInvalidFormat     = errors.New("invalid output format")
	ErrInvalidRasterizer = errors.New("invalid rasterizer")
	ErrInvalidTimeout    = errors.New("invalid timeout")
)

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxScaleLength    = 16 // "1000%", "1.25"
	MaxPreambleLength = 500
	MaxPreambleLines  = 50
)

// Rasterizer names accepted in render.rasterizer.
const (
	RasterizerNative = "native"
	RasterizerChrome = "chrome"
)

// Config holds all file-level settings. Empty fields mean "use the default".
type Config struct {
	Output  OutputConfig `yaml:"output"`
	Tools   ToolsConfig  `yaml:"tools"`
	Render  RenderConfig `yaml:"render"`
	WorkDir string       `yaml:"workDir"` // scratch root, empty = system temp
	Debug   bool         `yaml:"debug"`
}

// OutputConfig selects the image format, scale and destination.
type OutputConfig struct {
	Format string `yaml:"format"` // svg, png, jpg
	Scale  string `yaml:"scale"`  // "125%" or "1.25"
	Dir    string `yaml:"dir"`
}

// ToolsConfig locates the TeX programs and bounds their run time.
type ToolsConfig struct {
	Latex          string `yaml:"latex"`
	Dvisvgm        string `yaml:"dvisvgm"`
	LatexTimeout   string `yaml:"latexTimeout"`   // Go duration, e.g. "30s"
	DvisvgmTimeout string `yaml:"dvisvgmTimeout"` // Go duration, e.g. "20s"
}

// RenderConfig controls rasterization and document construction.
type RenderConfig struct {
	Rasterizer    string   `yaml:"rasterizer"` // native (default) or chrome
	ChromeBin     string   `yaml:"chromeBin"`
	ExtraPreamble []string `yaml:"extraPreamble"`
}

// Validate checks field values and lengths. Scale syntax is lenient here;
// percentages are resolved and checked by the converter.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "", "svg", "png", "jpg", "jpeg":
	default:
		return fmt.Errorf("%w: %q (valid: svg, png, jpg)", ErrInvalidFormat, c.Output.Format)
	}
	if err := validateFieldLength("output.scale", c.Output.Scale, MaxScaleLength); err != nil {
		return err
	}

	paths := []struct{ name, value string }{
		{"output.dir", c.Output.Dir},
		{"workDir", c.WorkDir},
		{"tools.latex", c.Tools.Latex},
		{"tools.dvisvgm", c.Tools.Dvisvgm},
		{"render.chromeBin", c.Render.ChromeBin},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.name, p.value, MaxPathLength); err != nil {
			return err
		}
	}

	if _, err := parseTimeout("tools.latexTimeout", c.Tools.LatexTimeout); err != nil {
		return err
	}
	if _, err := parseTimeout("tools.dvisvgmTimeout", c.Tools.DvisvgmTimeout); err != nil {
		return err
	}

	switch c.Render.Rasterizer {
	case "", RasterizerNative, RasterizerChrome:
	default:
		return fmt.Errorf("%w: %q (valid: %s, %s)", ErrInvalidRasterizer, c.Render.Rasterizer, RasterizerNative, RasterizerChrome)
	}

	if len(c.Render.ExtraPreamble) > MaxPreambleLines {
		return fmt.Errorf("%w: render.extraPreamble (%d lines, max %d)", ErrFieldTooLong, len(c.Render.ExtraPreamble), MaxPreambleLines)
	}
	for i, line := range c.Render.ExtraPreamble {
		if err := validateFieldLength(fmt.Sprintf("render.extraPreamble[%d]", i), line, MaxPreambleLength); err != nil {
			return err
		}
	}

	return nil
}

// LatexTimeout returns the configured latex budget, or zero when unset.
func (c *Config) LatexTimeout() time.Duration {
	d, _ := parseTimeout("", c.Tools.LatexTimeout)
	return d
}

// DvisvgmTimeout returns the configured dvisvgm budget, or zero when unset.
func (c *Config) DvisvgmTimeout() time.Duration {
	d, _ := parseTimeout("", c.Tools.DvisvgmTimeout)
	return d
}

func parseTimeout(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidTimeout, field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidTimeout, field, value)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration: every setting falls back to
// the converter defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the files tried for a config name, in lookup order:
// current directory first, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
