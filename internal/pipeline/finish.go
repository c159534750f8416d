package pipeline

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/alnah/go-tex2img/internal/fileutil"
)

// Output format names understood by Finisher.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatJPG = "jpg"
)

// DefaultJPEGQuality matches the quality used for opaque output.
const DefaultJPEGQuality = 95

// FormatFinisher produces the final image file from the extracted SVG.
type FormatFinisher interface {
	Finish(ctx context.Context, svgPath, format, dest string) error
}

// Finisher copies SVG output or rasterizes it for PNG and JPG.
type Finisher struct {
	Rasterizer  Rasterizer
	JPEGQuality int
}

// Compile-time interface check.
var _ FormatFinisher = (*Finisher)(nil)

// NewFinisher creates a Finisher using the given rasterizer.
func NewFinisher(r Rasterizer) *Finisher {
	return &Finisher{Rasterizer: r, JPEGQuality: DefaultJPEGQuality}
}

// Finish writes dest in the requested format.
// Any failure, including a panic inside the rasterizer, is returned wrapped
// in ErrConversion with the original cause attached.
func (f *Finisher) Finish(ctx context.Context, svgPath, format, dest string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrConversion, r)
		}
	}()

	if err := f.finish(ctx, svgPath, format, dest); err != nil {
		return fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return nil
}

func (f *Finisher) finish(ctx context.Context, svgPath, format, dest string) error {
	switch format {
	case FormatSVG:
		return fileutil.CopyFile(svgPath, dest)
	case FormatPNG:
		img, err := f.Rasterizer.Rasterize(ctx, svgPath)
		if err != nil {
			return err
		}
		return writeImage(dest, func(w io.Writer) error {
			return png.Encode(w, img)
		})
	case FormatJPG:
		img, err := f.Rasterizer.Rasterize(ctx, svgPath)
		if err != nil {
			return err
		}
		quality := f.JPEGQuality
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		flat := Flatten(img)
		return writeImage(dest, func(w io.Writer) error {
			return jpeg.Encode(w, flat, &jpeg.Options{Quality: quality})
		})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Flatten composites img over an opaque white canvas of the same bounds,
// using img's alpha as the mask. The result has no transparency.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	canvas := image.NewRGBA(b)
	draw.Draw(canvas, b, image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, b, img, b.Min, draw.Over)
	return canvas
}

// writeImage encodes into dest, removing a partial file on failure.
func writeImage(dest string, encode func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(dest), fileutil.DirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	// #nosec G302 G304 -- output images are meant to be readable
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fileutil.FilePermissions)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", dest, closeErr)
		}
		if err != nil {
			_ = os.Remove(dest)
		}
	}()

	if err := encode(out); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(dest), err)
	}
	return nil
}
