// Package dateutil formats dates from human-readable patterns such as
// "DD.MM.YYYY" instead of Go reference-time layouts.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// Formats used for quotation defaults.
const (
	QuoteNumberFormat = "YYYY-MM-DD"
	GermanDateFormat  = "DD.MM.YYYY"
)

// Presets are named shortcuts accepted by Format.
var Presets = map[string]string{
	"iso":    QuoteNumberFormat,
	"german": GermanDateFormat,
	"us":     "MM/DD/YYYY",
}

// tokens is tried in argument order at each position, so longer tokens
// must come first.
var tokens = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"M", "1",
	"D", "2",
)

// ParseDateFormat converts a pattern to a Go time layout.
// Tokens: YYYY, YY, MM, M, DD, D. Text in [brackets] is copied without
// token substitution.
func ParseDateFormat(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	case len(format) > MaxDateFormatLength:
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	rest := format
	for rest != "" {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			layout.WriteString(tokens.Replace(rest))
			break
		}
		layout.WriteString(tokens.Replace(rest[:open]))

		literal, after, ok := strings.Cut(rest[open+1:], "]")
		if !ok {
			pos := len(format) - len(rest) + open
			return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, pos)
		}
		layout.WriteString(literal)
		rest = after
	}
	return layout.String(), nil
}

// Format renders t with a pattern or a preset name (case-insensitive).
func Format(t time.Time, format string) (string, error) {
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}
	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
