package models

import (
	"database/sql"

	"gorm.io/gorm"
)

// FeedStatus is stored as a single-character code.
type FeedStatus string

const (
	StatusPending FeedStatus = "P"
	StatusActive  FeedStatus = "A"
	StatusError   FeedStatus = "E"
)

func (s FeedStatus) Name() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusActive:
		return "ACTIVE"
	case StatusError:
		return "ERROR"
	}
	return string(s)
}

// Priority tiers. The scheduler polls HIGH feeds on a short cycle, LOW feeds
// on a longer cycle, and never selects STOP feeds.
const (
	PriorityStop = 0
	PriorityLow  = 1
	PriorityHigh = 2
)

// Fetch timeout bounds, in seconds.
const (
	MinTimeoutSeconds     = 1
	MaxTimeoutSeconds     = 10
	DefaultTimeoutSeconds = 2
)

const MaxFeedTitleLen = 100

type Feed struct {
	gorm.Model
	Title    sql.NullString `gorm:"size:100"` // null until backfilled from the first successful parse
	Link     string         `gorm:"size:200;uniqueIndex"`
	Status   FeedStatus     `gorm:"size:1;index;default:P"`
	Priority int            `gorm:"index;default:2"`
	Timeout  int            `gorm:"default:2"`

	Entries []Entry `gorm:"constraint:OnDelete:CASCADE"`
}

type Feeds []Feed
