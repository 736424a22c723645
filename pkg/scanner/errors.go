package scanner

import (
	"errors"
	"fmt"
)

var errInvalidJSON = errors.New("content is not valid JSON")

func errTooLarge(size int64, limit int64) error {
	return fmt.Errorf("metadata file size %d exceeds limit %d", size, limit)
}

// NotFoundError indicates the target metadata path does not exist. It is
// surfaced for single-file scans and absorbed during tree walks.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("package metadata not found: %s", e.Path)
}

// ParseError indicates metadata content that is not well-formed JSON. Same
// propagation split as NotFoundError.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse package metadata %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
