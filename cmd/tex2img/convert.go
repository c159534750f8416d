package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	tex2img "github.com/alnah/go-tex2img"
	"github.com/alnah/go-tex2img/internal/config"
	"github.com/alnah/go-tex2img/internal/hints"
)

// ErrNoInput is returned when no input file is given.
var ErrNoInput = errors.New("no input file given")

// runConvert loads configuration, converts the input file and prints the
// results. Per-record failures are printed, not returned.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if len(positionalArgs) == 0 {
		return ErrNoInput
	}
	if len(positionalArgs) > 1 {
		return fmt.Errorf("expected one input file, got %d", len(positionalArgs))
	}
	inputPath := positionalArgs[0]

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	libCfg, err := buildLibConfig(cfg)
	if err != nil {
		return err
	}

	// Structural input errors surface before the output directory exists.
	col, err := tex2img.LoadCollection(inputPath)
	if err != nil {
		return fmt.Errorf("%w%s", err, hintFor(err))
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	defer func() { _ = logger.Sync() }()

	opts := append([]tex2img.Option{tex2img.WithLogger(logger)}, env.ConverterOptions...)
	conv, err := tex2img.NewConverter(libCfg, opts...)
	if err != nil {
		// Settings were validated above, so this is a directory failure.
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	}
	defer func() { _ = conv.Close() }()

	res := conv.ConvertCollection(ctx, col)
	printResults(res, conv.Config().OutputDir, flags.common.quiet, env)
	if libCfg.KeepIntermediates && !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Debug files kept in %s\n", conv.WorkRoot())
	}
	return nil
}

// loadConfig reads the config file named by the flag or TEX2IMG_CONFIG.
// No name means an empty config.
func loadConfig(name string, envCfg *envConfig) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags over cfg (CLI wins).
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.changed["format"] {
		cfg.Output.Format = flags.format
	}
	if flags.changed["scale"] {
		cfg.Output.Scale = flags.scale
	}
	if flags.changed["output-dir"] {
		cfg.Output.Dir = flags.outputDir
	}
	if flags.changed["work-dir"] {
		cfg.WorkDir = flags.workDir
	}
	if flags.changed["debug"] {
		cfg.Debug = flags.debug
	}
	if flags.changed["rasterizer"] {
		cfg.Render.Rasterizer = flags.rasterizer
	}
	if flags.changed["latex"] {
		cfg.Tools.Latex = flags.latex
	}
	if flags.changed["dvisvgm"] {
		cfg.Tools.Dvisvgm = flags.dvisvgm
	}
	if flags.changed["chrome-bin"] {
		cfg.Render.ChromeBin = flags.chromeBin
	}
}

// buildLibConfig validates the merged settings and converts them into the
// library configuration. Empty fields keep the library defaults.
func buildLibConfig(cfg *config.Config) (tex2img.Config, error) {
	if err := cfg.Validate(); err != nil {
		return tex2img.Config{}, err
	}

	lib := tex2img.Config{
		Scale:             cfg.Output.Scale,
		OutputDir:         cfg.Output.Dir,
		KeepIntermediates: cfg.Debug,
		WorkDir:           cfg.WorkDir,
		ExtraPreamble:     cfg.Render.ExtraPreamble,
		LatexBin:          cfg.Tools.Latex,
		DvisvgmBin:        cfg.Tools.Dvisvgm,
		CompileTimeout:    cfg.LatexTimeout(),
		ExtractTimeout:    cfg.DvisvgmTimeout(),
		Rasterizer:        cfg.Render.Rasterizer,
		ChromeBin:         cfg.Render.ChromeBin,
	}
	if cfg.Output.Format != "" {
		f, err := tex2img.ParseFormat(cfg.Output.Format)
		if err != nil {
			return tex2img.Config{}, err
		}
		lib.Format = f
	}

	if err := lib.Validate(); err != nil {
		return tex2img.Config{}, err
	}
	return lib, nil
}

// printResults reports created files, failures and the summary line.
func printResults(res *tex2img.BatchResult, outputDir string, quiet bool, env *Environment) {
	for _, issue := range res.Skipped {
		fmt.Fprintf(env.Stderr, "SKIPPED %s\n", issue)
	}

	for _, f := range res.Failures {
		fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", f.ID, f.Err, hintFor(f.Err))
		var recErr *tex2img.RecordError
		if errors.As(f.Err, &recErr) {
			switch {
			case recErr.DebugLog != "":
				fmt.Fprintf(env.Stderr, "  log: %s\n", recErr.DebugLog)
			case recErr.LogTail != "":
				fmt.Fprintf(env.Stderr, "  ...%s\n", recErr.LogTail)
			}
		}
	}

	if quiet {
		return
	}

	for _, out := range res.Outputs {
		fmt.Fprintf(env.Stdout, "Created %s\n", out)
	}

	fmt.Fprintf(env.Stdout, "\nProcessed %d items in %.2fs\n", len(res.Outputs), res.Elapsed.Round(10*time.Millisecond).Seconds())
	if len(res.Failures) > 0 {
		fmt.Fprintf(env.Stdout, "%d succeeded, %d failed\n", len(res.Outputs), len(res.Failures))
	}
	if abs, err := filepath.Abs(outputDir); err == nil {
		fmt.Fprintf(env.Stdout, "Images saved to %s\n", abs)
	}
}
