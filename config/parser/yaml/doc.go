// Package yaml provides YAML parse functions for file sources.
//
// This package uses github.com/goccy/go-yaml for YAML parsing with native
// PathString support for efficient path navigation. Colon-separated paths
// (e.g., "api:permissions") are converted to YAML path format
// (e.g., "$.api.permissions") internally.
//
// Usage:
//
//	src := filesource.NewRequired("/etc/app/config.yaml", yaml.Parse[APIConfig]("api"))
//	cfg, err := src.Value()
//
// Path Conversion:
//   - Empty path "" -> unmarshal entire document
//   - Single key "key" -> "$.key"
//   - Nested path "api:permissions" -> "$.api.permissions"
package yaml
