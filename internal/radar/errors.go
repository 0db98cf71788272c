package radar

import "errors"

var (
	// ErrConfig flags non-physical or inconsistent simulation parameters.
	// Errors wrapping it are fatal and abort the pipeline.
	ErrConfig = errors.New("invalid configuration")

	// ErrShape flags operand length mismatches between pipeline stages.
	ErrShape = errors.New("operand length mismatch")
)
