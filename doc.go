// Package tex2img renders LaTeX equations and pseudocode to SVG, PNG or JPG
// images using the latex and dvisvgm programs.
//
// # Quick Start
//
// Build a configuration, create a converter, and close it when done:
//
//	cfg, err := tex2img.NewConfig("png", "150%", "images", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	conv, err := tex2img.NewConverter(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	res, err := conv.ConvertFile(ctx, "equations.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range res.Failures {
//	    log.Printf("%s: %v", f.ID, f.Err)
//	}
//
// # Input
//
// A collection holds exactly one group, "equations" or "pseudocode". Each
// entry is a LaTeX string or an object:
//
//	{"equations": [
//	    "x^2 + y^2 = 1",
//	    {"latex": "a &= b \\\\ c &= d", "id": "system", "auto_align": true}
//	]}
//
// JSON, YAML and Markdown (fenced latex, math, tex, algorithm and pseudocode
// blocks) are accepted.
//
// # Conversion Pipeline
//
// Each record goes through these stages inside its own scratch directory:
//
//  1. Document building (base preamble, optional align*, algorithm packages)
//  2. latex -no-shell-escape -interaction=nonstopmode to DVI
//  3. dvisvgm --no-fonts --exact at the configured scale to SVG
//  4. Finishing: copy the SVG, or rasterize it to PNG, or flatten it over
//     white for JPG
//
// Records run strictly one after another. A failing record is reported in
// BatchResult.Failures and the batch continues. Images are written to
// <OutputDir>/img-<id>.<ext>.
//
// # Debugging
//
// With Config.KeepIntermediates, scratch directories are kept and the
// generated .tex plus the log of any failed tool are copied to
// <work root>/debug. Otherwise RecordError.LogTail holds the end of the log.
package tex2img
