// Package assets provides the LaTeX preamble blocks used to build documents.
//
// Preambles are plain .tex fragments embedded at compile time:
//
//	preambles/
//	├── base.tex        # document class and math packages (every document)
//	└── algorithm.tex   # algorithm float packages (pseudocode only)
//
// Each fragment ends with a newline so fragments can be concatenated
// directly. Names are validated before lookup to keep callers from reaching
// outside the preambles directory.
package assets
