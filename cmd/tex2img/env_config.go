package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-tex2img/internal/config"
)

// envPrefix marks the variables read by tex2img.
const envPrefix = "TEX2IMG_"

// envConfig holds configuration from environment variables, typically
// kept in a project .env file.
type envConfig struct {
	ConfigPath     string // TEX2IMG_CONFIG
	Format         string // TEX2IMG_FORMAT
	Scale          string // TEX2IMG_SCALE
	OutputDir      string // TEX2IMG_OUTPUT_DIR
	WorkDir        string // TEX2IMG_WORK_DIR
	Debug          bool   // TEX2IMG_DEBUG
	Latex          string // TEX2IMG_LATEX
	Dvisvgm        string // TEX2IMG_DVISVGM
	LatexTimeout   string // TEX2IMG_LATEX_TIMEOUT
	DvisvgmTimeout string // TEX2IMG_DVISVGM_TIMEOUT
	Rasterizer     string // TEX2IMG_RASTERIZER
	ChromeBin      string // TEX2IMG_CHROME_BIN
}

// knownEnvVars lists valid TEX2IMG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TEX2IMG_CONFIG":          true,
	"TEX2IMG_FORMAT":          true,
	"TEX2IMG_SCALE":           true,
	"TEX2IMG_OUTPUT_DIR":      true,
	"TEX2IMG_WORK_DIR":        true,
	"TEX2IMG_DEBUG":           true,
	"TEX2IMG_LATEX":           true,
	"TEX2IMG_DVISVGM":         true,
	"TEX2IMG_LATEX_TIMEOUT":   true,
	"TEX2IMG_DVISVGM_TIMEOUT": true,
	"TEX2IMG_RASTERIZER":      true,
	"TEX2IMG_CHROME_BIN":      true,
	"TEX2IMG_NO_SANDBOX":      true, // read by the Chrome rasterizer
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("TEX2IMG_CONFIG"),
		Format:         os.Getenv("TEX2IMG_FORMAT"),
		Scale:          os.Getenv("TEX2IMG_SCALE"),
		OutputDir:      os.Getenv("TEX2IMG_OUTPUT_DIR"),
		WorkDir:        os.Getenv("TEX2IMG_WORK_DIR"),
		Latex:          os.Getenv("TEX2IMG_LATEX"),
		Dvisvgm:        os.Getenv("TEX2IMG_DVISVGM"),
		LatexTimeout:   os.Getenv("TEX2IMG_LATEX_TIMEOUT"),
		DvisvgmTimeout: os.Getenv("TEX2IMG_DVISVGM_TIMEOUT"),
		Rasterizer:     os.Getenv("TEX2IMG_RASTERIZER"),
		ChromeBin:      os.Getenv("TEX2IMG_CHROME_BIN"),
	}

	if v := os.Getenv("TEX2IMG_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized TEX2IMG_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with the variables that are
// set. Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	override(&cfg.Output.Format, env.Format)
	override(&cfg.Output.Scale, env.Scale)
	override(&cfg.Output.Dir, env.OutputDir)
	override(&cfg.WorkDir, env.WorkDir)
	override(&cfg.Tools.Latex, env.Latex)
	override(&cfg.Tools.Dvisvgm, env.Dvisvgm)
	override(&cfg.Tools.LatexTimeout, env.LatexTimeout)
	override(&cfg.Tools.DvisvgmTimeout, env.DvisvgmTimeout)
	override(&cfg.Render.Rasterizer, env.Rasterizer)
	override(&cfg.Render.ChromeBin, env.ChromeBin)
	if env.Debug {
		cfg.Debug = true
	}
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
