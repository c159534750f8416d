package mdsource

import (
	"testing"
)

// ---------------------------------------------------------------------------
// TestExtract - Fenced Block Selection
// ---------------------------------------------------------------------------

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []Block
	}{
		{
			name: "latex block becomes equation",
			src:  "# Title\n\n```latex\nx^2 + y^2 = z^2\n```\n",
			want: []Block{{Kind: Equation, Content: "x^2 + y^2 = z^2", AutoAlign: true}},
		},
		{
			name: "math and tex aliases",
			src:  "```math\na\n```\n\n```TeX\nb\n```\n",
			want: []Block{
				{Kind: Equation, Content: "a", AutoAlign: true},
				{Kind: Equation, Content: "b", AutoAlign: true},
			},
		},
		{
			name: "algorithm block becomes pseudocode",
			src:  "```algorithm\n\\begin{algorithm}\n\\caption{Sort}\n\\end{algorithm}\n```\n",
			want: []Block{{Kind: Pseudocode, Content: "\\begin{algorithm}\n\\caption{Sort}\n\\end{algorithm}", AutoAlign: true}},
		},
		{
			name: "info string id and noalign",
			src:  "```latex id=euler noalign\ne^{i\\pi} &= -1\n```\n",
			want: []Block{{Kind: Equation, Content: "e^{i\\pi} &= -1", ID: "euler"}},
		},
		{
			name: "other languages ignored",
			src:  "```go\nfunc main() {}\n```\n\n```\nplain\n```\n",
		},
		{
			name: "empty latex block ignored",
			src:  "```latex\n\n```\n",
		},
		{
			name: "indented code ignored",
			src:  "para\n\n    x^2\n",
		},
		{
			name: "order preserved across kinds",
			src:  "```pseudocode\nP\n```\n\ntext\n\n```latex\nE\n```\n",
			want: []Block{
				{Kind: Pseudocode, Content: "P", AutoAlign: true},
				{Kind: Equation, Content: "E", AutoAlign: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Extract([]byte(tt.src))

			if len(got) != len(tt.want) {
				t.Fatalf("got %d blocks, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("block %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	if Equation.String() != "equation" || Pseudocode.String() != "pseudocode" {
		t.Errorf("unexpected kind names: %s, %s", Equation, Pseudocode)
	}
}
