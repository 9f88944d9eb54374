// Package textcase implements the case transforms offered by the service.
package textcase

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sentinel error kinds. Callers match them with errors.Is.
var (
	ErrInvalidMethod    = errors.New("invalid method")
	ErrTransformFailure = errors.New("transform failure")
)

// Method is the closed set of supported transforms.
type Method int

const (
	// Uppercase maps every character to its uppercase form.
	Uppercase Method = iota + 1
	// Lowercase maps every character to its lowercase form.
	Lowercase
)

// Wire names of the methods.
const (
	uppercaseName = "uppercase"
	lowercaseName = "lowercase"
)

// Methods lists every supported method.
func Methods() []Method { return []Method{Uppercase, Lowercase} }

func (m Method) String() string {
	switch m {
	case Uppercase:
		return uppercaseName
	case Lowercase:
		return lowercaseName
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Valid reports whether m is one of the declared methods.
func (m Method) Valid() bool {
	return m == Uppercase || m == Lowercase
}

// ParseMethod resolves a decoded JSON value to a Method. Matching is exact and
// case-sensitive; anything else, including a missing or non-string value,
// yields ErrInvalidMethod.
func ParseMethod(v any) (Method, error) {
	s, ok := v.(string)
	if !ok {
		if v == nil {
			return 0, fmt.Errorf("%w: method is missing", ErrInvalidMethod)
		}
		return 0, fmt.Errorf("%w: method has type %T", ErrInvalidMethod, v)
	}
	switch s {
	case uppercaseName:
		return Uppercase, nil
	case lowercaseName:
		return Lowercase, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
}

// Apply runs m over input. input must be a string; a missing (nil) or
// differently typed value is reported as ErrTransformFailure before any
// transform runs.
func Apply(m Method, input any) (string, error) {
	text, err := textInput(input)
	if err != nil {
		return "", err
	}
	return Transform(m, text)
}

// Transform runs m over text using full Unicode case mappings, so that for
// example "ß" uppercases to "SS".
func Transform(m Method, text string) (string, error) {
	// A Caser carries state and must not be shared between goroutines.
	switch m {
	case Uppercase:
		return cases.Upper(language.Und).String(text), nil
	case Lowercase:
		return cases.Lower(language.Und).String(text), nil
	default:
		return "", fmt.Errorf("%w: unsupported method %s", ErrTransformFailure, m)
	}
}

func textInput(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case nil:
		return "", fmt.Errorf("%w: text_input is missing", ErrTransformFailure)
	default:
		return "", fmt.Errorf("%w: text_input has unsupported type %T", ErrTransformFailure, v)
	}
}
