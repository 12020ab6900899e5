// Package csverr holds the typed errors surfaced to the command boundary.
package csverr

import (
	"fmt"
	"strings"
)

// ColumnNotFoundError reports a column name missing from the header.
// Suggestion is empty when no header name is close enough.
type ColumnNotFoundError struct {
	Name       string
	Suggestion string
}

func (e *ColumnNotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("column not found: %s (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("column not found: %s", e.Name)
}

// ColumnIndexOutOfRangeError reports a numeric column reference past the header.
type ColumnIndexOutOfRangeError struct {
	Index int
	Max   int
}

func (e *ColumnIndexOutOfRangeError) Error() string {
	if e.Max < 0 {
		return fmt.Sprintf("column index %d out of range: file has no columns", e.Index)
	}
	return fmt.Sprintf("column index %d out of range (max: %d)", e.Index, e.Max)
}

// InvalidFilterError covers filter syntax problems and bad column range bounds.
type InvalidFilterError struct {
	Msg string
	Err error
}

func (e *InvalidFilterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid filter expression: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("invalid filter expression: %s", e.Msg)
}

func (e *InvalidFilterError) Unwrap() error { return e.Err }

// FileNotFoundError indicates the input path does not exist.
type FileNotFoundError struct{ Path string }

func (e *FileNotFoundError) Error() string { return fmt.Sprintf("file not found: %s", e.Path) }

// UnknownEncodingError indicates an --encoding value no decoder exists for.
type UnknownEncodingError struct{ Name string }

func (e *UnknownEncodingError) Error() string {
	return fmt.Sprintf("unknown encoding: %s", e.Name)
}

// UnknownFormatError indicates an unsupported output format.
type UnknownFormatError struct {
	Name      string
	Supported []string
}

func (e *UnknownFormatError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("unknown output format: %s", e.Name)
	}
	return fmt.Sprintf("unknown output format: %s (supported: %s)", e.Name, strings.Join(e.Supported, ", "))
}

// Filterf builds an InvalidFilterError with a formatted message.
func Filterf(format string, args ...any) error {
	return &InvalidFilterError{Msg: fmt.Sprintf(format, args...)}
}
