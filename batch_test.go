package tex2img

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-tex2img/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestConverter_ConvertFile - End to End with fake TeX
// ---------------------------------------------------------------------------

func TestConverter_ConvertFile(t *testing.T) {
	t.Parallel()

	writeInput := func(t *testing.T, name, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("single equation to svg", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, Config{Format: FormatSVG}, WithRunner(&fakeTeX{}))
		input := writeInput(t, "eq.json", `{"equations": ["x^2+y^2=1"]}`)

		res, err := conv.ConvertFile(context.Background(), input)
		if err != nil {
			t.Fatalf("ConvertFile() error = %v", err)
		}
		if len(res.Outputs) != 1 || len(res.Failures) != 0 {
			t.Fatalf("outputs=%v failures=%v", res.Outputs, res.Failures)
		}
		if filepath.Base(res.Outputs[0]) != "img-equation0.svg" {
			t.Errorf("output = %q, want img-equation0.svg", res.Outputs[0])
		}
		if res.Processed() != 1 {
			t.Errorf("Processed() = %d, want 1", res.Processed())
		}
	})

	t.Run("failing record does not stop the batch", func(t *testing.T) {
		t.Parallel()

		runner := &fakeTeX{failMarker: `\oops`, failStage: pipeline.DefaultLatexBin}
		conv := newTestConverter(t, Config{Format: FormatPNG}, WithRunner(runner))
		input := writeInput(t, "eq.yaml", "equations:\n  - a\n  - '\\oops'\n  - c\n")

		res, err := conv.ConvertFile(context.Background(), input)
		if err != nil {
			t.Fatalf("ConvertFile() error = %v", err)
		}

		if len(res.Outputs) != 2 {
			t.Fatalf("outputs = %v, want 2", res.Outputs)
		}
		if filepath.Base(res.Outputs[0]) != "img-equation0.png" || filepath.Base(res.Outputs[1]) != "img-equation2.png" {
			t.Errorf("outputs out of order: %v", res.Outputs)
		}
		if len(res.Failures) != 1 {
			t.Fatalf("failures = %v, want 1", res.Failures)
		}
		f := res.Failures[0]
		if f.ID != "equation1" || f.Index != 1 || !errors.Is(f.Err, ErrCompile) {
			t.Errorf("failure = %+v", f)
		}
		if _, err := os.Stat(conv.OutputPath("equation1")); !os.IsNotExist(err) {
			t.Error("failed record should produce no output")
		}
	})

	t.Run("structural errors before any program runs", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			content string
			wantErr error
		}{
			{"no group", `{}`, ErrNoRecordGroup},
			{"empty group", `{"pseudocode": []}`, ErrEmptyRecordGroup},
			{"both groups", `{"equations": ["a"], "pseudocode": ["b"]}`, ErrAmbiguousRecordGroup},
		}

		for _, tt := range tests {
			runner := &fakeTeX{}
			conv := newTestConverter(t, Config{}, WithRunner(runner))

			_, err := conv.ConvertFile(context.Background(), writeInput(t, "in.json", tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("%s: error = %v, want %v", tt.name, err, tt.wantErr)
			}
			if len(runner.calls) != 0 {
				t.Errorf("%s: %d programs ran before validation", tt.name, len(runner.calls))
			}
		}
	})

	t.Run("skipped entries reported", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, Config{Format: FormatSVG}, WithRunner(&fakeTeX{}))
		input := writeInput(t, "eq.json", `{"equations": [{"id": "x"}, "b"]}`)

		res, err := conv.ConvertFile(context.Background(), input)
		if err != nil {
			t.Fatalf("ConvertFile() error = %v", err)
		}
		if len(res.Skipped) != 1 || res.Skipped[0].Index != 0 {
			t.Errorf("Skipped = %v", res.Skipped)
		}
		if len(res.Outputs) != 1 || filepath.Base(res.Outputs[0]) != "img-equation1.svg" {
			t.Errorf("Outputs = %v", res.Outputs)
		}
	})
}

func TestConverter_ConvertRecords_PanicIsolated(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, Config{Format: FormatPNG}, WithRunner(&fakeTeX{}), WithRasterizer(panicRasterizer{}))

	res := conv.ConvertRecords(context.Background(), []Record{
		{ID: "a", Content: "x"},
		{ID: "b", Content: "y", Index: 1},
	})

	if len(res.Failures) != 2 {
		t.Fatalf("failures = %v, want 2", res.Failures)
	}
	if res.Failures[1].ID != "b" || res.Failures[1].Index != 1 {
		t.Errorf("second failure = %+v", res.Failures[1])
	}
}
