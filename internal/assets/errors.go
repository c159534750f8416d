package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrPreambleNotFound indicates the requested preamble does not exist.
	ErrPreambleNotFound = errors.New("preamble not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")
)
