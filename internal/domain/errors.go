package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFetchFailed marks any failure reaching or reading the source sheet.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrColumnNotFound marks a sheet that lacks a required column.
	ErrColumnNotFound = errors.New("column not found")
)

// FetchError wraps a transport or parse failure from a source loader.
type FetchError struct {
	SheetID string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch sheet %s: %v", e.SheetID, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetchFailed, e.Err}
}

// ColumnNotFoundError names the field that could not be resolved and the
// label fragments that were tried.
type ColumnNotFoundError struct {
	Field    string
	Patterns []string
}

func (e *ColumnNotFoundError) Error() string {
	quoted := make([]string, len(e.Patterns))
	for i, p := range e.Patterns {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return fmt.Sprintf("column not found: %s (want label containing %s)", e.Field, strings.Join(quoted, " or "))
}

func (e *ColumnNotFoundError) Unwrap() error {
	return ErrColumnNotFound
}
