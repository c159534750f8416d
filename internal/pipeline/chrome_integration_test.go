//go:build integration

package pipeline

import (
	"context"
	"testing"
	"time"
)

func TestChromeRasterizer_Rasterize_Integration(t *testing.T) {
	path := writeSVG(t, `<svg xmlns="http://www.w3.org/2000/svg" width="72pt" height="36pt" viewBox="0 0 72 36">
<rect x="0" y="0" width="36" height="36" fill="#000000"/>
</svg>`)

	c := NewChromeRasterizer("", 30*time.Second)
	defer c.Close()

	img, err := c.Rasterize(context.Background(), path)
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}

	b := img.Bounds()
	if b.Dx() != 96 || b.Dy() != 48 {
		t.Errorf("size = %dx%d, want 96x48", b.Dx(), b.Dy())
	}
	if _, _, _, a := img.At(90, 24).RGBA(); a != 0 {
		t.Errorf("unfilled pixel alpha = %#x, want transparent", a)
	}
}
