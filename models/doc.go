// Package models holds the table tennis rating records the fixtures build.
// The shapes follow the generated OpenAPI models: pointer fields for
// required values and strfmt types for formatted strings.
package models
