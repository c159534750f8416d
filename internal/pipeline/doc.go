// Package pipeline implements the LaTeX-to-image conversion stages.
//
// Each stage works inside a scratch directory owned by the caller:
//   - Template building (preamble + content into a complete document)
//   - Compilation to DVI via the latex binary
//   - DVI to SVG extraction via dvisvgm
//   - Format finishing (copy SVG, rasterize to PNG, flatten to JPG)
//
// External programs are reached through CommandRunner so tests can stand in
// for a TeX installation. Rasterization is behind Rasterizer: the default
// implementation is pure Go (oksvg), the alternative drives headless Chrome.
//
// The pipeline never deletes scratch directories; cleanup and debug-log
// policy belong to the root tex2img package, which owns the workspace.
package pipeline
