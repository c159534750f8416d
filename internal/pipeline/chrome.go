package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-tex2img/internal/fileutil"
	"github.com/alnah/go-tex2img/internal/process"
)

// DefaultChromeTimeout bounds page load and capture for one record.
const DefaultChromeTimeout = 20 * time.Second

// chromePageFile is the HTML wrapper written next to the SVG.
const chromePageFile = "equation.html"

// ChromeRasterizer renders SVG through headless Chrome.
// The browser is launched lazily on first use and reused until Close.
// Rod downloads Chromium on first run if none is found.
type ChromeRasterizer struct {
	Bin       string
	NoSandbox bool
	Timeout   time.Duration

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// Compile-time interface check.
var _ Rasterizer = (*ChromeRasterizer)(nil)

// NewChromeRasterizer creates a ChromeRasterizer. An empty bin lets rod
// locate or download a browser. The sandbox is off in CI and whenever a
// custom binary or TEX2IMG_NO_SANDBOX=1 is given.
func NewChromeRasterizer(bin string, timeout time.Duration) *ChromeRasterizer {
	if timeout <= 0 {
		timeout = DefaultChromeTimeout
	}
	return &ChromeRasterizer{
		Bin:       bin,
		NoSandbox: os.Getenv("CI") == "true" || os.Getenv("TEX2IMG_NO_SANDBOX") == "1" || bin != "",
		Timeout:   timeout,
	}
}

func (c *ChromeRasterizer) ensureBrowser() error {
	if c.browser != nil {
		return nil
	}

	l := launcher.New().Headless(true)
	if c.Bin != "" {
		l = l.Bin(c.Bin)
	}
	if c.NoSandbox {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	c.launcher = l
	c.browser = browser
	return nil
}

// Rasterize loads the SVG in a transparent page and captures it as PNG.
func (c *ChromeRasterizer) Rasterize(ctx context.Context, svgPath string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureBrowser(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(svgPath)
	if err != nil {
		return nil, fmt.Errorf("resolving SVG path: %w", err)
	}
	pagePath := filepath.Join(filepath.Dir(abs), chromePageFile)
	if err := os.WriteFile(pagePath, []byte(chromePage(filepath.Base(abs))), fileutil.FilePermissions); err != nil { // #nosec G306 -- scratch file
		return nil, fmt.Errorf("writing page: %w", err)
	}

	page, err := c.browser.Page(proto.TargetCreateTarget{URL: "file://" + pagePath})
	if err != nil {
		return nil, fmt.Errorf("%w: opening page: %v", ErrBrowserConnect, err)
	}
	defer page.Close()

	timeout := c.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx).Timeout(timeout)

	err = proto.EmulationSetDefaultBackgroundColorOverride{
		Color: &proto.DOMRGBA{A: floatPtr(0)},
	}.Call(page)
	if err != nil {
		return nil, fmt.Errorf("clearing page background: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("loading page: %w", err)
	}

	el, err := page.Element("#equation")
	if err != nil {
		return nil, fmt.Errorf("locating image: %w", err)
	}
	shot, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("capturing image: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("decoding capture: %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrEmptyImage
	}
	return img, nil
}

// Close shuts the browser down and kills its process group.
func (c *ChromeRasterizer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.browser != nil {
		err = c.browser.Close()
		c.browser = nil
	}
	if c.launcher != nil {
		if pid := c.launcher.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		c.launcher.Kill()
		c.launcher = nil
	}
	return err
}

func chromePage(svgName string) string {
	return `<!DOCTYPE html>
<html><head><style>html,body{margin:0;padding:0;background:transparent}img{display:block}</style></head>
<body><img id="equation" src="` + html.EscapeString(svgName) + `"></body></html>
`
}

func floatPtr(v float64) *float64 {
	return &v
}
