package lib

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jahankohan/FeedCloud/config"
	"github.com/Jahankohan/FeedCloud/feedreader"
	"github.com/Jahankohan/FeedCloud/lib/models"
	"github.com/Jahankohan/FeedCloud/lib/poller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *poller.Dispatcher, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.sqlite")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Feed{}, &models.Entry{}))

	cfg := &config.Config{WorkerCount: 1, QueueDepth: 16}
	log := zap.NewNop()

	// The lifecycle is never started, so dispatched jobs stay queued and the
	// tests can observe them without running ingestion.
	lc := fxtest.NewLifecycle(t)
	ingester := poller.NewIngester(db, log, feedreader.NewReader(http.DefaultTransport))
	dispatcher := poller.NewDispatcher(lc, cfg, log, ingester)
	svc := NewService(lc, cfg, log, db, dispatcher)

	return svc, dispatcher, db
}

func TestCreateFeed(t *testing.T) {
	svc, dispatcher, _ := newTestService(t)

	feed, err := svc.CreateFeed(context.Background(), "https://example.com/feed", 0)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, feed.Status)
	assert.Equal(t, models.PriorityHigh, feed.Priority)
	assert.Equal(t, models.DefaultTimeoutSeconds, feed.Timeout)
	assert.False(t, feed.Title.Valid)

	assert.Equal(t, 1, dispatcher.Pending(), "creation dispatches one immediate ingestion")
}

func TestCreateFeedInvalidTimeout(t *testing.T) {
	svc, dispatcher, _ := newTestService(t)

	_, err := svc.CreateFeed(context.Background(), "https://example.com/feed", 11)
	require.Error(t, err)
	assert.Zero(t, dispatcher.Pending())
}

func TestUpdateFeedLinkResetsToPending(t *testing.T) {
	svc, dispatcher, db := newTestService(t)

	feed := &models.Feed{
		Link:     "https://example.com/old",
		Timeout:  models.DefaultTimeoutSeconds,
		Status:   models.StatusActive,
		Priority: models.PriorityLow,
	}
	require.NoError(t, db.Create(feed).Error)

	updated, err := svc.UpdateFeed(context.Background(), feed.ID, "https://example.com/new", 0, false)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, updated.Status)
	assert.Equal(t, "https://example.com/new", updated.Link)
	assert.Equal(t, 1, dispatcher.Pending())
}

func TestUpdateFeedForceUpdate(t *testing.T) {
	svc, dispatcher, db := newTestService(t)

	feed := &models.Feed{
		Link:     "https://example.com/feed",
		Timeout:  models.DefaultTimeoutSeconds,
		Status:   models.StatusActive,
		Priority: models.PriorityHigh,
	}
	require.NoError(t, db.Create(feed).Error)

	updated, err := svc.UpdateFeed(context.Background(), feed.ID, "", 0, true)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, updated.Status)
	assert.Equal(t, 1, dispatcher.Pending())
}

func TestUpdateFeedTimeoutOnly(t *testing.T) {
	svc, dispatcher, db := newTestService(t)

	feed := &models.Feed{
		Link:     "https://example.com/feed",
		Timeout:  models.DefaultTimeoutSeconds,
		Status:   models.StatusActive,
		Priority: models.PriorityHigh,
	}
	require.NoError(t, db.Create(feed).Error)

	updated, err := svc.UpdateFeed(context.Background(), feed.ID, "", 9, false)
	require.NoError(t, err)

	assert.Equal(t, models.StatusActive, updated.Status, "timeout edits do not trigger a re-fetch")
	assert.Equal(t, 9, updated.Timeout)
	assert.Zero(t, dispatcher.Pending())
}

func TestUpdateFeedNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateFeed(context.Background(), 9999, "https://example.com/feed", 0, false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListEntriesNewestFirst(t *testing.T) {
	svc, _, db := newTestService(t)

	feed := &models.Feed{Link: "https://example.com/feed", Timeout: 2, Status: models.StatusActive, Priority: models.PriorityHigh}
	require.NoError(t, db.Create(feed).Error)

	base := time.Date(2021, 9, 22, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Entry{
			FeedID:      feed.ID,
			Title:       "entry",
			Link:        "https://example.com/" + string(rune('a'+i)),
			PublishedAt: base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	entries, err := svc.ListEntries(context.Background(), feed.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].PublishedAt.After(entries[1].PublishedAt))
	assert.True(t, entries[1].PublishedAt.After(entries[2].PublishedAt))
}
