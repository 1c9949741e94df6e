// Package yamlutil decodes branding files with goccy/go-yaml. JSON is
// accepted too since it is a subset of YAML.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps the accepted document size in bytes.
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrUnknownField   = errors.New("yamlutil: unknown field")
)

// Unmarshal decodes data into v. Unknown keys are ignored.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// CheckKnownFields decodes data into v and reports the first key that has
// no matching struct field, wrapped in ErrUnknownField. Typos such as
// "ustid" for "ustId" are otherwise silently dropped by Unmarshal.
func CheckKnownFields(data []byte, v any) error {
	err := decode(data, v, yaml.DisallowUnknownField())
	if err == nil || errors.Is(err, ErrNilData) || errors.Is(err, ErrNilDestination) || errors.Is(err, ErrInputTooLarge) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnknownField, errors.Unwrap(err))
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
