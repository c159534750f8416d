package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable
// These are acceptable gaps: we test observable behavior through environment manipulation.

import (
	"strings"
	"testing"
)

func TestForBrowserConnect_InCI(t *testing.T) {
	// Save and restore IsInContainer (not parallel-safe, see package notes)
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return false }

	t.Setenv("CI", "true")
	t.Setenv("TEX2IMG_NO_SANDBOX", "")
	t.Setenv("TEX2IMG_CHROME_BIN", "")

	hint := ForBrowserConnect()

	if !strings.Contains(hint, "hint:") {
		t.Error("expected hint prefix")
	}
	if !strings.Contains(hint, "TEX2IMG_NO_SANDBOX") {
		t.Error("expected TEX2IMG_NO_SANDBOX suggestion in CI")
	}
	if !strings.Contains(hint, "TEX2IMG_CHROME_BIN") {
		t.Error("expected TEX2IMG_CHROME_BIN suggestion")
	}
}

func TestForBrowserConnect_InDocker(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("TEX2IMG_NO_SANDBOX", "")
	t.Setenv("TEX2IMG_CHROME_BIN", "")

	hint := ForBrowserConnect()

	if !strings.Contains(hint, "TEX2IMG_NO_SANDBOX") {
		t.Error("expected TEX2IMG_NO_SANDBOX suggestion in Docker")
	}
}

func TestForBrowserConnect_AllConfigured(t *testing.T) {
	orig := IsInContainer
	defer func() { IsInContainer = orig }()
	IsInContainer = func() bool { return true }

	t.Setenv("CI", "true")
	t.Setenv("TEX2IMG_NO_SANDBOX", "1")
	t.Setenv("TEX2IMG_CHROME_BIN", "/usr/bin/chrome")

	hint := ForBrowserConnect()

	if strings.Contains(hint, "TEX2IMG_NO_SANDBOX") || strings.Contains(hint, "TEX2IMG_CHROME_BIN") {
		t.Errorf("should not suggest variables already set, got %q", hint)
	}
	if !strings.Contains(hint, "--rasterizer native") {
		t.Errorf("expected native rasterizer fallback, got %q", hint)
	}
}

func TestSingleHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hint     string
		contains string
	}{
		{"missing latex", ForMissingTool("latex"), "--latex"},
		{"missing dvisvgm", ForMissingTool("dvisvgm"), "--dvisvgm"},
		{"timeout", ForTimeout(), "latexTimeout"},
		{"compile error", ForCompileError(), "--debug"},
		{"output directory", ForOutputDirectory(), "parent directory"},
		{"record group", ForRecordGroup(), `"equations"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("expected hint prefix, got %q", tt.hint)
			}
			if !strings.Contains(tt.hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, tt.hint)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			contains: "--config",
		},
		{
			name:     "with paths",
			paths:    []string{"foo.yaml", "/home/u/.config/go-tex2img/foo.yaml"},
			contains: "create /home/u/.config/go-tex2img/foo.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)

			if !strings.Contains(hint, "hint:") {
				t.Error("expected hint prefix")
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestFormat_Empty(t *testing.T) {
	t.Parallel()

	if format("") != "" {
		t.Error("empty hint should format to empty string")
	}
	if formatHints(nil) != "" {
		t.Error("no hints should format to empty string")
	}
}
