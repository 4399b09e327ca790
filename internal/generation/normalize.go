package generation

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyOutput indicates the backend returned nothing usable.
	ErrEmptyOutput = errors.New("no output received from image generation")

	// ErrInvalidOutput indicates the backend returned a value that does not
	// resolve to an image locator.
	ErrInvalidOutput = errors.New("invalid image URL generated")
)

// Normalize reduces the backend's polymorphic output to a single image
// locator. The output shape is not contractually fixed across model
// versions, so every case falls through to a string coercion before the
// final validity check.
func Normalize(output any) (string, error) {
	if output == nil {
		return "", ErrEmptyOutput
	}

	var locator string
	switch v := output.(type) {
	case string:
		locator = v
	case []string:
		if len(v) == 0 {
			return "", ErrEmptyOutput
		}
		locator = v[0]
	case []any:
		if len(v) == 0 {
			return "", ErrEmptyOutput
		}
		locator = fmt.Sprint(v[0])
	default:
		// Unanticipated shape; coerce the whole value.
		locator = fmt.Sprint(v)
	}

	if locator == "" || locator == "None" {
		return "", ErrInvalidOutput
	}
	return locator, nil
}
