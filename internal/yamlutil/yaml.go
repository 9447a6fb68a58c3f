// Package yamlutil decodes the YAML used by front matter and config files.
// Callers depend on this package rather than on the YAML library directly.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrSyntax         = errors.New("yamlutil: invalid YAML")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	return wrap(yaml.Unmarshal(data, v))
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	return wrap(yaml.UnmarshalWithOptions(data, v, yaml.Strict()))
}

// UnmarshalOptional is Unmarshal for blocks that may legitimately be empty,
// like a front matter block with nothing between its delimiters.
// Blank input leaves v untouched.
func UnmarshalOptional(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		if v == nil {
			return ErrNilDestination
		}
		return nil
	}
	return Unmarshal(data, v)
}

// wrap marks decode failures with ErrSyntax. The message keeps the
// line:column position reported by the parser, without source excerpts.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrSyntax, yaml.FormatError(err, false, false))
}
