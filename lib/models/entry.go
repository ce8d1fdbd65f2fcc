package models

import "time"

// Field limits applied at persistence time.
const (
	MaxEntryTitleLen   = 200
	MaxEntrySummaryLen = 2000
)

// Entry is one ingested feed item. Entries are created once by the ingestion
// pipeline and never updated afterwards, so there is no UpdatedAt column.
type Entry struct {
	ID          uint      `gorm:"primarykey"`
	FeedID      uint      `gorm:"index"`
	Title       string    `gorm:"size:200"`
	Link        string    `gorm:"size:500;uniqueIndex"`
	Summary     string    `gorm:"size:2000"`
	PublishedAt time.Time `gorm:"index"`
	CreatedAt   time.Time
}

type Entries []Entry

// TruncateRunes shortens s to at most max code points.
func TruncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
