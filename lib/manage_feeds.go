package lib

import (
	"context"
	"fmt"

	"github.com/Jahankohan/FeedCloud/config"
	"github.com/Jahankohan/FeedCloud/lib/models"
	"github.com/Jahankohan/FeedCloud/lib/poller"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type manageFeeds struct {
	cfg        *config.Config
	log        *zap.Logger
	db         *gorm.DB
	dispatcher *poller.Dispatcher
}

// CreateFeed registers a feed in PENDING/HIGH and dispatches its first
// ingestion immediately, without waiting for a scheduling pass.
func (svc *manageFeeds) CreateFeed(ctx context.Context, link string, timeout int) (*models.Feed, error) {
	if timeout == 0 {
		timeout = models.DefaultTimeoutSeconds
	}
	if err := validateTimeout(timeout); err != nil {
		return nil, err
	}

	feed := &models.Feed{
		Link:     link,
		Timeout:  timeout,
		Status:   models.StatusPending,
		Priority: models.PriorityHigh,
	}
	tx := svc.db.Clauses(clause.Returning{}).Create(feed)
	if err := tx.Error; err != nil {
		return nil, err
	}

	svc.log.Sugar().Infof("Created feed %v (%s)", feed.ID, link)
	svc.dispatcher.Enqueue(feed.ID)
	return feed, nil
}

// UpdateFeed edits link and/or timeout. Changing the link, or passing
// forceUpdate, resets the feed to PENDING and dispatches a re-fetch.
func (svc *manageFeeds) UpdateFeed(ctx context.Context, id uint, link string, timeout int, forceUpdate bool) (*models.Feed, error) {
	feed := &models.Feed{}
	tx := svc.db.First(feed, id)
	if err := tx.Error; err != nil {
		return nil, err
	}

	updates := map[string]any{}
	refetch := forceUpdate

	if link != "" && link != feed.Link {
		updates["link"] = link
		refetch = true
	}
	if timeout != 0 && timeout != feed.Timeout {
		if err := validateTimeout(timeout); err != nil {
			return nil, err
		}
		updates["timeout"] = timeout
	}
	if refetch {
		updates["status"] = models.StatusPending
	}

	if len(updates) > 0 {
		tx = svc.db.Model(feed).Updates(updates)
		if err := tx.Error; err != nil {
			return nil, err
		}
	}

	if refetch {
		svc.log.Sugar().Infof("Feed %v reset to pending, dispatching re-fetch", feed.ID)
		svc.dispatcher.Enqueue(feed.ID)
	}
	return feed, nil
}

func validateTimeout(timeout int) error {
	if timeout < models.MinTimeoutSeconds || timeout > models.MaxTimeoutSeconds {
		return fmt.Errorf("timeout must be between %d and %d seconds", models.MinTimeoutSeconds, models.MaxTimeoutSeconds)
	}
	return nil
}
