package assets

import (
	"embed"
	"fmt"
)

// Preamble names.
const (
	BasePreamble      = "base"
	AlgorithmPreamble = "algorithm"
)

//go:embed preambles/*.tex
var preambles embed.FS

// LoadPreamble loads a preamble fragment from embedded assets by name.
// The name should not include the .tex extension.
func LoadPreamble(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := preambles.ReadFile("preambles/" + name + ".tex")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrPreambleNotFound, name)
	}

	return string(content), nil
}

// MustLoadPreamble is like LoadPreamble but panics on error.
// Only used for the built-in names, which are embedded at compile time.
func MustLoadPreamble(name string) string {
	content, err := LoadPreamble(name)
	if err != nil {
		panic(err)
	}
	return content
}
