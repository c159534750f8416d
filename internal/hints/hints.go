// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-tex2img/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("TEX2IMG_NO_SANDBOX") != "1" {
		hints = append(hints, "set TEX2IMG_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("TEX2IMG_CHROME_BIN") == "" {
		hints = append(hints, "set TEX2IMG_CHROME_BIN to use custom Chrome")
	}
	hints = append(hints, "or use --rasterizer native")

	return formatHints(hints)
}

// ForMissingTool returns a hint when latex or dvisvgm cannot be found.
func ForMissingTool(name string) string {
	return format("install a TeX distribution providing " + name + " (TeX Live, MiKTeX) or point --" + name + " at the binary")
}

// ForTimeout returns a hint about raising the per-stage time budgets.
func ForTimeout() string {
	return format("raise tools.latexTimeout or tools.dvisvgmTimeout in the config file")
}

// ForCompileError returns a hint for records that fail in latex or dvisvgm.
func ForCompileError() string {
	return format("rerun with --debug to keep the generated .tex and the full log")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-tex2img/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-tex2img") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForRecordGroup returns a hint describing the expected input layout.
func ForRecordGroup() string {
	return format(`input must hold exactly one of "equations" or "pseudocode" with at least one entry`)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
