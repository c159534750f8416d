// Package mdsource extracts LaTeX records from fenced code blocks in Markdown.
//
// Blocks tagged latex, math or tex become equations; blocks tagged algorithm
// or pseudocode become pseudocode. The info string may carry an id and the
// noalign flag after the language:
//
//	```latex id=euler noalign
//	e^{i\pi} + 1 &= 0
//	```
package mdsource

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Kind classifies an extracted block.
type Kind int

const (
	Equation Kind = iota
	Pseudocode
)

func (k Kind) String() string {
	if k == Pseudocode {
		return "pseudocode"
	}
	return "equation"
}

// Block is one fenced LaTeX block found in a Markdown document.
type Block struct {
	Kind      Kind
	Content   string
	ID        string // empty when the info string names none
	AutoAlign bool   // true unless the info string says noalign
}

var languages = map[string]Kind{
	"latex":      Equation,
	"math":       Equation,
	"tex":        Equation,
	"algorithm":  Pseudocode,
	"pseudocode": Pseudocode,
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Extract returns the LaTeX blocks of src in document order.
// Fenced blocks in other languages, indented code and empty blocks are
// ignored.
func Extract(src []byte) []Block {
	doc := md.Parser().Parse(text.NewReader(src))

	var blocks []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok || fenced.Info == nil {
			return ast.WalkContinue, nil
		}

		fields := strings.Fields(string(fenced.Info.Segment.Value(src)))
		if len(fields) == 0 {
			return ast.WalkSkipChildren, nil
		}
		kind, ok := languages[strings.ToLower(fields[0])]
		if !ok {
			return ast.WalkSkipChildren, nil
		}

		content := strings.TrimSpace(blockText(fenced, src))
		if content == "" {
			return ast.WalkSkipChildren, nil
		}

		b := Block{Kind: kind, Content: content, AutoAlign: true}
		for _, f := range fields[1:] {
			switch {
			case f == "noalign":
				b.AutoAlign = false
			case strings.HasPrefix(f, "id="):
				b.ID = strings.Trim(strings.TrimPrefix(f, "id="), `"'`)
			}
		}
		blocks = append(blocks, b)
		return ast.WalkSkipChildren, nil
	})

	return blocks
}

func blockText(n *ast.FencedCodeBlock, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}
