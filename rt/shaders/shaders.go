package shaders

import (
	_ "embed"
)

//go:embed instancing.wgsl
var InstancingWGSL string
