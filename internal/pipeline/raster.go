package pipeline

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// DefaultPixelsPerPoint converts dvisvgm's point-based user units to pixels
// at 96 DPI.
const DefaultPixelsPerPoint = 96.0 / 72.0

// Rasterizer renders an SVG file to an in-memory image.
type Rasterizer interface {
	Rasterize(ctx context.Context, svgPath string) (image.Image, error)
}

// SVGRasterizer rasterizes SVG in process with oksvg and rasterx.
// dvisvgm --no-fonts emits glyphs as path definitions referenced by <use>,
// which oksvg resolves.
type SVGRasterizer struct {
	PixelsPerPoint float64
}

// Compile-time interface check.
var _ Rasterizer = (*SVGRasterizer)(nil)

// NewSVGRasterizer creates an SVGRasterizer at 96 DPI.
func NewSVGRasterizer() *SVGRasterizer {
	return &SVGRasterizer{PixelsPerPoint: DefaultPixelsPerPoint}
}

// Rasterize renders svgPath to an RGBA image on a transparent background.
func (r *SVGRasterizer) Rasterize(ctx context.Context, svgPath string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(svgPath) // #nosec G304 -- path built inside the scratch directory
	if err != nil {
		return nil, fmt.Errorf("opening SVG: %w", err)
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing SVG: %w", err)
	}

	ppp := r.PixelsPerPoint
	if ppp <= 0 {
		ppp = DefaultPixelsPerPoint
	}
	w := int(math.Ceil(icon.ViewBox.W * ppp))
	h := int(math.Ceil(icon.ViewBox.H * ppp))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, w, h)
	}

	// dvisvgm --exact emits a viewBox with a non-zero origin. Shift by the
	// origin in user space, then scale, so the content fills the canvas.
	sx := float64(w) / icon.ViewBox.W
	sy := float64(h) / icon.ViewBox.H
	icon.Transform = rasterx.Identity.Scale(sx, sy).Translate(-icon.ViewBox.X, -icon.ViewBox.Y)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}
