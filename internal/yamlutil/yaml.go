// Package yamlutil isolates the YAML library behind the two operations the
// CLI needs: strict decoding of config files and encoding of line listings.
package yamlutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits decoded YAML to 1MB.
var MaxInputSize = 1 << 20

// listingIndent is the indentation used by Encode.
const listingIndent = 2

var (
	ErrEmptyInput     = errors.New("yamlutil: empty input")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// DecodeStrict unmarshals data into v and rejects fields v does not declare.
func DecodeStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode writes v to w as a block-style YAML document with indented sequences.
func Encode(w io.Writer, v any) error {
	data, err := yaml.MarshalWithOptions(v, yaml.Indent(listingIndent), yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("yamlutil: writing: %w", err)
	}
	return nil
}
