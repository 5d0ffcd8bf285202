package column

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks against the typed errors below.
var (
	ErrMissingName = errors.New("column name is required")
	ErrWidthParse  = errors.New("cannot parse column width")
)

// MissingNameError is returned when a description has no name.
type MissingNameError struct {
	Index int
}

func (e *MissingNameError) Error() string {
	return fmt.Sprintf("%s for column at index %d", ErrMissingName, e.Index)
}

// Is makes errors.Is(err, ErrMissingName) true.
func (e *MissingNameError) Is(target error) bool {
	return target == ErrMissingName
}

// WidthParseError is returned when a width value matches none of the
// accepted forms. Value is the raw value as supplied.
type WidthParseError struct {
	Name  string
	Value any
}

func (e *WidthParseError) Error() string {
	return fmt.Sprintf("%s '%v' for column named '%s'", ErrWidthParse, e.Value, e.Name)
}

// Is makes errors.Is(err, ErrWidthParse) true.
func (e *WidthParseError) Is(target error) bool {
	return target == ErrWidthParse
}
