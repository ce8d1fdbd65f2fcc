// Package feedreader fetches and parses remote RSS/Atom documents,
// incrementally when a last-seen timestamp is known.
package feedreader

import (
	"context"
	"net/http"
	"time"
)

// Reader composes fetch and parse for one feed document.
type Reader struct {
	fetcher Fetcher
	parser  Parser
}

// NewReader returns a Reader using the HTTP fetcher on the given transport
// and the gofeed parser.
func NewReader(transport http.RoundTripper) *Reader {
	return &Reader{fetcher: NewFetcher(transport), parser: NewParser()}
}

// NewReaderWithAgents assembles a Reader from explicit agents, for tests.
func NewReaderWithAgents(fetcher Fetcher, parser Parser) *Reader {
	return &Reader{fetcher: fetcher, parser: parser}
}

// Read fetches url and parses the result. A 304 response parses to an empty
// ParsedFeed; fetch and parse failures surface per the package error types.
func (r *Reader) Read(ctx context.Context, url string, timeout time.Duration, since *time.Time) (*ParsedFeed, error) {
	doc, err := r.fetcher.Fetch(ctx, url, timeout, since)
	if err != nil {
		return nil, err
	}
	if doc.NotModified || len(doc.Body) == 0 {
		return &ParsedFeed{}, nil
	}
	return r.parser.Parse(doc.Body)
}
