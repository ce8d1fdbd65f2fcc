package feedreader

import (
	"errors"
	"fmt"
)

// FeedError marks failures that are expected when talking to remote feeds:
// the network flaked, the server answered badly, or the document would not
// parse. The ingestion pipeline absorbs these and only adjusts the feed's
// health; anything else escalates to the caller.
type FeedError interface {
	error
	feedError()
}

// IsFeedError reports whether err is (or wraps) an expected feed failure.
func IsFeedError(err error) bool {
	var fe FeedError
	return errors.As(err, &fe)
}

// TransportError wraps a network-level failure: timeout, DNS, connection
// reset. Not retried here; the next scheduled cycle retries naturally.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("fetch transport failure: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }
func (e *TransportError) feedError()    {}

// UnsuccessfulRequestError is returned for any HTTP status other than
// 200 or 304.
type UnsuccessfulRequestError struct {
	StatusCode int
}

func (e *UnsuccessfulRequestError) Error() string {
	return fmt.Sprintf("response with status code %d", e.StatusCode)
}
func (e *UnsuccessfulRequestError) feedError() {}

// MalformedFeedError wraps the parser diagnostic for a document that could
// not be interpreted as RSS/Atom.
type MalformedFeedError struct {
	Err error
}

func (e *MalformedFeedError) Error() string { return fmt.Sprintf("malformed feed: %v", e.Err) }
func (e *MalformedFeedError) Unwrap() error { return e.Err }
func (e *MalformedFeedError) feedError()    {}
