package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tex2img "github.com/alnah/go-tex2img"
	"github.com/alnah/go-tex2img/internal/pipeline"
)

const testSVG = `<svg xmlns='http://www.w3.org/2000/svg' xmlns:xlink='http://www.w3.org/1999/xlink' width='36pt' height='18pt' viewBox='56.4 -61.2 36 18'><defs><path id='g0-1' d='M56.4 -61.2H74.4V-43.2H56.4Z'/></defs><use xlink:href='#g0-1'/></svg>`

// fakeTools stands in for latex and dvisvgm. Documents containing fail make
// latex exit non-zero after writing a log.
type fakeTools struct {
	fail string
}

func (f *fakeTools) Run(_ context.Context, c tex2img.Command) error {
	doc, _ := os.ReadFile(filepath.Join(c.Dir, pipeline.DocumentFile))
	failing := f.fail != "" && strings.Contains(string(doc), f.fail) && c.Name == pipeline.DefaultLatexBin

	if c.LogPath != "" {
		msg := "This is " + c.Name + "\n"
		if failing {
			msg += "! Undefined control sequence.\n"
		}
		if err := os.WriteFile(c.LogPath, []byte(msg), 0o600); err != nil {
			return err
		}
	}
	if failing {
		return fmt.Errorf("%w: %s: exit code 1", pipeline.ErrProcessExit, c.Name)
	}

	switch c.Name {
	case pipeline.DefaultLatexBin:
		return os.WriteFile(filepath.Join(c.Dir, pipeline.DVIFile), []byte("dvi"), 0o600)
	case pipeline.DefaultDvisvgmBin:
		return os.WriteFile(filepath.Join(c.Dir, pipeline.SVGFile), []byte(testSVG), 0o600)
	}
	return nil
}

// newTestEnv returns an Environment writing to buffers and using fakeTools.
func newTestEnv(tools *fakeTools) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
	}
	if tools != nil {
		env.ConverterOptions = []tex2img.Option{tex2img.WithRunner(tools)}
	}
	return env, &stdout, &stderr
}

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
