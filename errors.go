package siteloc

import (
	"errors"
	"fmt"
)

// ErrPageNotFound signals that a page, or its variant in one locale, does
// not exist. Collaborators translate HTTP 404s into this soft signal so
// callers can distinguish absence from failure with errors.Is.
var ErrPageNotFound = errors.New("page not found")

// FetchError indicates a content API or page fetch failure.
type FetchError struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
	Retryable  bool // whether the fetch can be retried
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error: %s (%s): %v", e.Message, e.URL, e.Cause)
	}
	return fmt.Sprintf("fetch error: %s (%s)", e.Message, e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a translation-map cache operation failure. Cache
// failures are soft: callers rebuild the map instead of failing the page.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// OutputError indicates a failure writing a localized document or asset.
type OutputError struct {
	Path    string
	Message string
	Cause   error
}

func (e *OutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("output error: %s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("output error: %s (%s)", e.Message, e.Path)
}

func (e *OutputError) Unwrap() error {
	return e.Cause
}
