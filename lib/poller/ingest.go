package poller

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Jahankohan/FeedCloud/feedreader"
	"github.com/Jahankohan/FeedCloud/lib/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ingester runs the fetch -> parse -> filter -> persist -> health-update
// pipeline for a single feed.
type Ingester struct {
	db     *gorm.DB
	log    *zap.Logger
	reader *feedreader.Reader
}

func NewIngester(db *gorm.DB, log *zap.Logger, reader *feedreader.Reader) *Ingester {
	return &Ingester{db, log, reader}
}

// Ingest fetches one feed and persists whatever is new, then moves the
// feed's health. Expected feed failures (remote down, bad status, malformed
// document) are recorded as a Failure outcome and absorbed; an unexpected
// error still records the Failure but is returned so the job layer can
// alert. Duplicate entry links make re-ingestion a no-op.
func (ing *Ingester) Ingest(ctx context.Context, feedID uint) error {
	var feed models.Feed
	tx := ing.db.First(&feed, feedID)
	if err := tx.Error; errors.Is(err, gorm.ErrRecordNotFound) {
		// The feed may have been deleted since the job was queued.
		ing.log.Sugar().Errorf("Feed %d does not exist", feedID)
		return nil
	} else if err != nil {
		ing.log.Sugar().Errorw("failed to load feed", "feed_id", feedID, "err", err)
		return nil
	}

	lastSeen, err := ing.maxPublishedAt(feed.ID)
	if err != nil {
		ing.log.Sugar().Errorw("failed to find last entry", "feed_id", feed.ID, "err", err)
		return nil
	}

	timeout := time.Duration(feed.Timeout) * time.Second
	parsed, err := ing.reader.Read(ctx, feed.Link, timeout, lastSeen)
	if err != nil {
		ing.recordOutcome(&feed, models.OutcomeFailure)
		if feedreader.IsFeedError(err) {
			ing.log.Sugar().Infow("feed fetch failed", "feed_id", feed.ID, "link", feed.Link, "err", err)
			return nil
		}
		ing.log.Sugar().Errorw("unexpected error reading feed", "feed_id", feed.ID, "link", feed.Link, "err", err)
		return err
	}

	fresh := feedreader.FilterNew(parsed.Entries, lastSeen)
	if len(fresh) > 0 {
		if err := ing.insertEntries(&feed, fresh); err != nil {
			// Storage rejected the batch for some non-duplicate reason.
			// Leave health untouched; the next cycle tries again.
			ing.log.Sugar().Errorw("failed to persist entries", "feed_id", feed.ID, "err", err)
			return nil
		}
		ing.log.Sugar().Infof("Ingested %d entries for feed %v", len(fresh), feed.ID)
	}

	if !feed.Title.Valid || feed.Title.String == "" {
		ing.backfillTitle(&feed, parsed.Info)
	}

	ing.recordOutcome(&feed, models.OutcomeSuccess)
	return nil
}

// maxPublishedAt is the publish time of the newest entry already stored for
// the feed, or nil when none exist yet.
func (ing *Ingester) maxPublishedAt(feedID uint) (*time.Time, error) {
	var latest models.Entry
	tx := ing.db.
		Where("feed_id = ?", feedID).
		Order("published_at desc").
		First(&latest)
	if err := tx.Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &latest.PublishedAt, nil
}

func (ing *Ingester) insertEntries(feed *models.Feed, fresh []feedreader.Entry) error {
	rows := make(models.Entries, len(fresh))
	for i, entry := range fresh {
		rows[i] = models.Entry{
			FeedID:      feed.ID,
			Title:       models.TruncateRunes(entry.Title, models.MaxEntryTitleLen),
			Link:        entry.URL,
			Summary:     models.TruncateRunes(entry.Summary, models.MaxEntrySummaryLen),
			PublishedAt: entry.PublishedAt,
		}
	}

	tx := ing.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	return tx.Error
}

func (ing *Ingester) backfillTitle(feed *models.Feed, info *feedreader.FeedInfo) {
	title := ""
	if info != nil {
		title = models.TruncateRunes(info.Title, models.MaxFeedTitleLen)
	}

	feed.Title = sql.NullString{String: title, Valid: true}
	tx := ing.db.Model(feed).Update("title", feed.Title)
	if err := tx.Error; err != nil {
		ing.log.Sugar().Errorw("failed to backfill title", "feed_id", feed.ID, "err", err)
	}
}

func (ing *Ingester) recordOutcome(feed *models.Feed, outcome models.Outcome) {
	changed := feed.ApplyOutcome(outcome)
	if len(changed) == 0 {
		return
	}

	updates := map[string]any{}
	for _, column := range changed {
		switch column {
		case "priority":
			updates[column] = feed.Priority
		case "status":
			updates[column] = feed.Status
		}
	}

	tx := ing.db.Model(feed).Updates(updates)
	if err := tx.Error; err != nil {
		ing.log.Sugar().Errorw("failed to update feed health", "feed_id", feed.ID, "err", err)
	}
}
