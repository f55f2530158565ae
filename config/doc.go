// Package config provides the configuration hooks used by file source parse functions.
//
// The package keeps two extension points for parsed configuration types:
//   - Defaulter: applies default values after parsing
//   - Validator: validates the value once defaults are in place
//
// Checked adapts any parse function to run both hooks, so a structured file
// (see config/parser/yaml) can be defaulted and validated before a source
// caches it. Scalar parse functions live in config/parser.
//
// # Example
//
// A typical usage pattern:
//
//	type APIConfig struct {
//	    Timeout int    `yaml:"timeout"`
//	    BaseURL string `yaml:"base_url"`
//	}
//
//	parse := config.Checked(yamlparser.Parse[APIConfig]("services:api"))
//	src := filesource.NewRequired("config.yaml", parse).SetRefreshInterval(time.Minute)
//	cfg, err := src.Value()
package config
