package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-tex2img/internal/assets"
)

// Document markers and the caption label used for pseudocode.
const (
	BeginDocument = `\begin{document}`
	EndDocument   = `\end{document}`
	CaptionLabel  = "Algorithm: "
)

var (
	basePreamble      = assets.MustLoadPreamble(assets.BasePreamble)
	algorithmPreamble = assets.MustLoadPreamble(assets.AlgorithmPreamble)

	// captionPattern matches the shortest \caption{...} (no nested braces).
	captionPattern = regexp.MustCompile(`\\caption\{(.*?)\}`)
)

// TemplateOptions customizes document construction.
type TemplateOptions struct {
	// ExtraPreamble is inserted after the base preamble, one line per entry
	// (e.g. \usepackage{bm}).
	ExtraPreamble []string
}

// BasePreamble returns the fixed preamble every document starts with.
func BasePreamble() string {
	return basePreamble
}

// AlgorithmPreamble returns the preamble block added for pseudocode.
func AlgorithmPreamble() string {
	return algorithmPreamble
}

// BuildDocument wraps content into a complete LaTeX document.
// Pseudocode adds the algorithm packages and labels the algorithm caption.
func BuildDocument(content string, pseudocode bool, opts TemplateOptions) string {
	var b strings.Builder

	b.WriteString(basePreamble)
	for _, line := range opts.ExtraPreamble {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if pseudocode {
		b.WriteString(algorithmPreamble)
		content = LabelCaption(content)
	}

	b.WriteString(BeginDocument)
	b.WriteString("\n")
	b.WriteString(content)
	b.WriteString("\n")
	b.WriteString(EndDocument)

	return b.String()
}

// LabelCaption prefixes CaptionLabel to the first algorithm caption.
// Only applies when content holds an algorithm environment with a caption;
// every occurrence of that exact caption is relabeled, other captions are
// left alone.
func LabelCaption(content string) string {
	if !strings.Contains(content, `\begin{algorithm}`) || !strings.Contains(content, `\caption{`) {
		return content
	}

	m := captionPattern.FindStringSubmatch(content)
	if m == nil {
		return content
	}

	caption := m[1]
	return strings.ReplaceAll(content, `\caption{`+caption+`}`, `\caption{`+CaptionLabel+caption+`}`)
}

// WrapAlign wraps bare math in an align* environment.
// Content that already opens or closes an environment is left as is, and
// pseudocode is never wrapped.
func WrapAlign(content string, autoAlign, pseudocode bool) string {
	if !autoAlign || pseudocode {
		return content
	}
	if strings.Contains(content, `\begin{`) || strings.Contains(content, `\end{`) {
		return content
	}
	return `\begin{align*}` + content + `\end{align*}`
}
