// Package schemas embeds the JSON Schemas for adeval documents.
package schemas

import _ "embed"

// ResultsSchemaJSON is the schema of an evaluation result document.
//
//go:embed results.schema.json
var ResultsSchemaJSON string

// ConfigSchemaJSON is the schema of a .adeval.yaml project config.
//
//go:embed config.schema.json
var ConfigSchemaJSON string
