package app

import (
	"database/sql"
	"testing"
	"time"

	"github.com/Jahankohan/FeedCloud/lib/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedViewFrom(t *testing.T) {
	created := time.Date(2021, 9, 22, 7, 0, 0, 0, time.UTC)
	feed := models.Feed{
		Link:     "https://example.com/feed",
		Status:   models.StatusPending,
		Priority: models.PriorityHigh,
		Timeout:  2,
	}
	feed.ID = 3
	feed.CreatedAt = created
	feed.UpdatedAt = created

	view := FeedView{}.From(feed)
	assert.Nil(t, view.Title, "unset title serializes as null")
	assert.Equal(t, "PENDING", view.Status)
	assert.Equal(t, "2021-09-22T07:00:00Z", view.CreatedAt)

	feed.Title = sql.NullString{String: "Example Blog", Valid: true}
	feed.Status = models.StatusActive
	view = FeedView{}.From(feed)
	require.NotNil(t, view.Title)
	assert.Equal(t, "Example Blog", *view.Title)
	assert.Equal(t, "ACTIVE", view.Status)
}

func TestFromMany(t *testing.T) {
	entries := models.Entries{
		{ID: 1, FeedID: 2, Title: "a", Link: "https://example.com/a"},
		{ID: 2, FeedID: 2, Title: "b", Link: "https://example.com/b"},
	}

	views := FromMany[models.Entry, EntryView](entries)
	require.Len(t, views, 2)
	assert.Equal(t, "a", views[0].Title)
	assert.Equal(t, uint(2), views[1].ID)
}
