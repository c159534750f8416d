package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestIsCommand - Command name detection
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"convert", true},
		{"source", true},
		{"doctor", true},
		{"version", true},
		{"help", true},
		{"foo", false},
		{"", false},
		{"eq.json", false},
		{"Convert", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.input); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage",
			args:         []string{"tex2img"},
			wantCode:     ExitGeneral,
			wantInStderr: []string{"Usage: tex2img"},
		},
		{
			name:         "version",
			args:         []string{"tex2img", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"tex2img " + Version},
		},
		{
			name:         "--version",
			args:         []string{"tex2img", "--version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"tex2img"},
		},
		{
			name:         "help",
			args:         []string{"tex2img", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: tex2img", "Commands:"},
		},
		{
			name:         "-h is help",
			args:         []string{"tex2img", "-h"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Commands:"},
		},
		{
			name:         "help convert",
			args:         []string{"tex2img", "help", "convert"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: tex2img convert", "--scale"},
		},
		{
			name:         "convert -h",
			args:         []string{"tex2img", "convert", "-h"},
			wantCode:     ExitSuccess,
			wantInStderr: []string{"Usage: tex2img convert"},
		},
		{
			name:         "unknown command",
			args:         []string{"tex2img", "frobnicate"},
			wantCode:     ExitGeneral,
			wantInStderr: []string{"unknown command: frobnicate"},
		},
		{
			name:         "convert without input",
			args:         []string{"tex2img", "convert"},
			wantCode:     ExitGeneral,
			wantInStderr: []string{ErrNoInput.Error()},
		},
		{
			name:         "missing input file",
			args:         []string{"tex2img", "does-not-exist.json"},
			wantCode:     ExitGeneral,
			wantInStderr: []string{"reading input"},
		},
		{
			name:         "unknown flag",
			args:         []string{"tex2img", "convert", "--nope", "eq.json"},
			wantCode:     ExitGeneral,
			wantInStderr: []string{"nope"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv(nil)
			code := runMain(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout)
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Convert - End to end through the CLI with fake TeX tools
// ---------------------------------------------------------------------------

func TestRunMain_Convert(t *testing.T) {
	t.Parallel()

	t.Run("implicit convert writes images and summary", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "eq.json", `{"equations": ["a+b", {"latex": "c", "id": "named"}]}`)
		outDir := filepath.Join(dir, "out")

		env, stdout, stderr := newTestEnv(&fakeTools{})
		code := runMain(context.Background(), []string{
			"tex2img", input, "-f", "svg", "-o", outDir, "--work-dir", filepath.Join(dir, "work"),
		}, env)

		if code != ExitSuccess {
			t.Fatalf("runMain() = %d, want %d (stderr: %s)", code, ExitSuccess, stderr)
		}
		for _, name := range []string{"img-equation0.svg", "img-named.svg"} {
			if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
				t.Errorf("expected %s: %v", name, err)
			}
		}
		out := stdout.String()
		if !strings.Contains(out, "Created ") {
			t.Errorf("stdout should list created files, got %q", out)
		}
		if !strings.Contains(out, "Processed 2 items in ") {
			t.Errorf("stdout should contain summary, got %q", out)
		}
	})

	t.Run("record failure is reported but exit is success", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "eq.yaml", "equations:\n  - ok\n  - latex: '\\broken'\n    id: bad\n")
		outDir := filepath.Join(dir, "out")

		env, stdout, stderr := newTestEnv(&fakeTools{fail: `\broken`})
		code := runMain(context.Background(), []string{
			"tex2img", "convert", input, "--format", "png", "--output-dir", outDir,
			"--work-dir", filepath.Join(dir, "work"),
		}, env)

		if code != ExitSuccess {
			t.Fatalf("runMain() = %d, want %d", code, ExitSuccess)
		}
		if !strings.Contains(stderr.String(), "FAILED bad") {
			t.Errorf("stderr should report the failed record, got %q", stderr)
		}
		if !strings.Contains(stderr.String(), "Undefined control sequence") {
			t.Errorf("stderr should include the log tail, got %q", stderr)
		}
		if !strings.Contains(stdout.String(), "Processed 1 items in ") {
			t.Errorf("summary should count only written images, got %q", stdout)
		}
		if !strings.Contains(stdout.String(), "1 succeeded, 1 failed") {
			t.Errorf("stdout should count failures, got %q", stdout)
		}
		if _, err := os.Stat(filepath.Join(outDir, "img-equation0.png")); err != nil {
			t.Errorf("expected png for the valid record: %v", err)
		}
	})

	t.Run("quiet prints nothing on success", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "eq.json", `{"equations": ["x"]}`)

		env, stdout, _ := newTestEnv(&fakeTools{})
		code := runMain(context.Background(), []string{
			"tex2img", "convert", "-q", "-f", "svg", input,
			"-o", filepath.Join(dir, "out"), "--work-dir", filepath.Join(dir, "work"),
		}, env)

		if code != ExitSuccess {
			t.Fatalf("runMain() = %d, want %d", code, ExitSuccess)
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout should be empty with -q, got %q", stdout)
		}
	})

	t.Run("ambiguous collection exits with error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "both.json", `{"equations": ["x"], "pseudocode": ["y"]}`)

		env, _, stderr := newTestEnv(&fakeTools{})
		code := runMain(context.Background(), []string{
			"tex2img", "convert", input, "-o", filepath.Join(dir, "out"), "--work-dir", filepath.Join(dir, "work"),
		}, env)

		if code != ExitGeneral {
			t.Fatalf("runMain() = %d, want %d", code, ExitGeneral)
		}
		if !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr should carry a hint, got %q", stderr)
		}
	})

	t.Run("invalid scale flag", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "eq.json", `{"equations": ["x"]}`)

		env, _, _ := newTestEnv(&fakeTools{})
		code := runMain(context.Background(), []string{
			"tex2img", "convert", input, "-s", "0", "-o", filepath.Join(dir, "out"),
		}, env)

		if code != ExitGeneral {
			t.Errorf("runMain() = %d, want %d", code, ExitGeneral)
		}
	})

	t.Run("config file supplies format", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "eq.json", `{"equations": ["x"]}`)
		outDir := filepath.Join(dir, "out")
		cfgPath := writeFile(t, dir, "cfg/tex2img.yaml", "output:\n  format: svg\n  dir: "+outDir+"\n")

		env, _, stderr := newTestEnv(&fakeTools{})
		code := runMain(context.Background(), []string{
			"tex2img", "convert", input, "-c", cfgPath, "--work-dir", filepath.Join(dir, "work"),
		}, env)

		if code != ExitSuccess {
			t.Fatalf("runMain() = %d, want %d (stderr: %s)", code, ExitSuccess, stderr)
		}
		if _, err := os.Stat(filepath.Join(outDir, "img-equation0.svg")); err != nil {
			t.Errorf("expected svg from config format: %v", err)
		}
	})
}
