package feedreader

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/carlmjohnson/requests"
)

// RawDocument is the body of a fetched feed. NotModified is set on a 304
// response, in which case Body is empty.
type RawDocument struct {
	Body        []byte
	NotModified bool
}

// Fetcher retrieves a remote feed document. The HTTP implementation is the
// default; tests supply doubles.
type Fetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration, since *time.Time) (*RawDocument, error)
}

type httpFetcher struct {
	transport http.RoundTripper
}

// NewFetcher returns a Fetcher backed by the given transport.
func NewFetcher(transport http.RoundTripper) Fetcher {
	return &httpFetcher{transport}
}

// Fetch performs a GET with the given timeout. When since is set it is sent
// as If-Modified-Since, so an unchanged feed answers 304 with no body.
// Statuses other than 200/304 fail with UnsuccessfulRequestError; anything
// below HTTP (timeout, DNS, reset) fails with TransportError.
func (f *httpFetcher) Fetch(ctx context.Context, url string, timeout time.Duration, since *time.Time) (*RawDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	doc := &RawDocument{}

	builder := requests.URL(url).
		Transport(f.transport).
		AddValidator(nil). // status handling below, not the default 2xx check
		Handle(func(resp *http.Response) error {
			switch resp.StatusCode {
			case http.StatusOK:
				body, err := io.ReadAll(resp.Body)
				if err != nil {
					return err
				}
				doc.Body = body
				return nil

			case http.StatusNotModified:
				doc.NotModified = true
				return nil

			default:
				return &UnsuccessfulRequestError{StatusCode: resp.StatusCode}
			}
		})

	if since != nil {
		builder = builder.Header("If-Modified-Since", since.UTC().Format(http.TimeFormat))
	}

	if err := builder.Fetch(ctx); err != nil {
		var unsuccessful *UnsuccessfulRequestError
		if errors.As(err, &unsuccessful) {
			return nil, unsuccessful
		}
		return nil, &TransportError{Err: err}
	}
	return doc, nil
}
