package main

import (
	"io"
	"os"

	tex2img "github.com/alnah/go-tex2img"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// ConverterOptions are appended when the converter is built.
	// Tests use them to stand in for the TeX tools.
	ConverterOptions []tex2img.Option
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
