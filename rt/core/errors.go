package core

import "errors"

// Startup failures. All of them are fatal; nothing retries.
var (
	ErrInitialization = errors.New("initialization failure")
	ErrShaderCompile  = errors.New("shader compile failure")
	ErrLink           = errors.New("pipeline link failure")
	ErrAllocation     = errors.New("gpu allocation failure")
	ErrInstanceLimit  = errors.New("instance count exceeds configured maximum")
	ErrInvalidConfig  = errors.New("invalid configuration")
)
