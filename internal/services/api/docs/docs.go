// Package docs embeds the OpenAPI document served under /api/docs
package docs

import _ "embed"

//go:embed openapi.json
var openapi string

// ReadDoc returns the raw OpenAPI document
func ReadDoc() string { return openapi }
