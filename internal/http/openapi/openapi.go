// Package openapi embeds the API description served at /openapi.yaml.
package openapi

import _ "embed"

// YAML is the OpenAPI 3 document for the HTTP API.
//
//go:embed openapi.yaml
var YAML []byte
