// Package api holds the OpenAPI description of the thoughts HTTP surface.
package api

import _ "embed"

// OpenAPISpec is the OpenAPI 3 document served by the request validator
//
//go:embed openapi.yaml
var OpenAPISpec []byte
