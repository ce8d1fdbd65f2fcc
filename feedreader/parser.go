package feedreader

import (
	"bytes"
	"time"

	"github.com/mmcdole/gofeed"
)

// FeedInfo is the feed-level metadata extracted from a document.
type FeedInfo struct {
	Title string
}

// Entry is one item of a parsed document, in document order.
type Entry struct {
	Title       string
	URL         string
	Summary     string
	PublishedAt time.Time
}

// ParsedFeed is the result of parsing one document. Info is nil when the
// document carries no feed-level metadata. Entries keep the order of the
// source document, which feed formats conventionally emit newest-first.
type ParsedFeed struct {
	Info    *FeedInfo
	Entries []Entry
}

// Parser turns a raw document into a ParsedFeed. Tests inject doubles.
type Parser interface {
	Parse(doc []byte) (*ParsedFeed, error)
}

type gofeedParser struct{}

// NewParser returns the gofeed-backed RSS/Atom parser.
func NewParser() Parser {
	return gofeedParser{}
}

func (gofeedParser) Parse(doc []byte) (*ParsedFeed, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, &MalformedFeedError{Err: err}
	}

	parsed := &ParsedFeed{
		Entries: make([]Entry, 0, len(feed.Items)),
	}
	if feed.Title != "" {
		parsed.Info = &FeedInfo{Title: feed.Title}
	}

	for _, item := range feed.Items {
		parsed.Entries = append(parsed.Entries, Entry{
			Title:       item.Title,
			URL:         item.Link,
			Summary:     item.Description,
			PublishedAt: publishedTime(item),
		})
	}
	return parsed, nil
}

// publishedTime falls back to the updated timestamp for feeds (mostly Atom)
// that omit a publish time. Items with neither get the zero time and age out
// of incremental fetches once a last-seen timestamp exists.
func publishedTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}
