package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// Parse returns a parse function that decodes a YAML document into T.
// The path selects a section of the document using colon (:) as separator;
// an empty path decodes the entire document.
func Parse[T any](path string) func(string) (T, error) {
	return func(text string) (T, error) {
		var target T

		err := Decode([]byte(text), &target, path)
		if err != nil {
			var zero T

			return zero, err
		}

		return target, nil
	}
}

// Strict is like Parse but rejects keys that do not map to a field of T.
// Strict decoding only applies to whole documents, so it takes no path.
func Strict[T any]() func(string) (T, error) {
	return func(text string) (T, error) {
		var target T

		if strings.TrimSpace(text) == "" {
			return target, ErrEmptyData
		}

		err := yaml.UnmarshalWithOptions([]byte(text), &target, yaml.DisallowUnknownField())
		if err != nil {
			var zero T

			return zero, fmt.Errorf("unmarshal error: %w", err)
		}

		return target, nil
	}
}

// Decode parses YAML data and unmarshals it into the target.
// The path parameter specifies a navigation path using colon (:) as separator.
// Empty path parses the entire document.
func Decode(data []byte, target any, path string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	yamlPath := convertToYAMLPath(path)

	pathObj, err := yaml.PathString(yamlPath)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	err = pathObj.Read(bytes.NewReader(data), target)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}

// convertToYAMLPath converts a colon-separated path to goccy/go-yaml PathString format.
// Examples:
//   - "key" -> "$.key"
//   - "api:permissions" -> "$.api.permissions"
func convertToYAMLPath(path string) string {
	parts := strings.Split(path, ":")

	return "$." + strings.Join(parts, ".")
}
