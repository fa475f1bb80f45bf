package loader

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is wrapped by ParseError when a required column is absent.
var ErrMissingColumn = errors.New("missing required column")

// FetchError reports a transport failure or a non-2xx answer from the source.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports malformed CSV content. Line is 1-based and 0 when the
// failure is not tied to a single line.
type ParseError struct {
	URL  string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	src := e.URL
	if src == "" {
		src = "csv"
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", src, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", src, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UserMessage renders a load failure as the single message shown to users.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return "Failed to load data: " + err.Error()
}
