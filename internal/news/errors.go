package news

import (
	"errors"
	"fmt"
)

// FetchErrorCode categorizes news fetch failures.
type FetchErrorCode string

const (
	// ErrCodeTransport indicates the request could not be sent or the body could not be read.
	ErrCodeTransport FetchErrorCode = "TRANSPORT"

	// ErrCodeStatus indicates a non-2xx response.
	ErrCodeStatus FetchErrorCode = "STATUS"

	// ErrCodeDecode indicates the body was not a JSON array of posts.
	ErrCodeDecode FetchErrorCode = "DECODE"
)

// FetchError is the single error kind meaningful to the store: the news
// endpoint could not be read. The store logs it and keeps its prior posts.
type FetchError struct {
	Code   FetchErrorCode
	URL    string
	Status int // HTTP status for ErrCodeStatus
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	switch {
	case e.Code == ErrCodeStatus:
		return fmt.Sprintf("%s: %s returned %d", e.Code, e.URL, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.URL)
	}
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err is a FetchError with the given code.
// An empty code matches any FetchError. Uses errors.As to handle wrapped errors.
func IsFetchError(err error, code FetchErrorCode) bool {
	var fe *FetchError
	if !errors.As(err, &fe) {
		return false
	}
	return code == "" || fe.Code == code
}

var errNoFetcher = errors.New("news: no fetcher configured")
