// Package lib holds the feed CRUD service used by the HTTP layer. The
// interesting work (scheduling, ingestion, health) lives in lib/poller; this
// is the thin collaborator surface around it.
package lib

import (
	"context"

	"github.com/Jahankohan/FeedCloud/config"
	"github.com/Jahankohan/FeedCloud/lib/models"
	"github.com/Jahankohan/FeedCloud/lib/poller"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB

	*manageFeeds
}

func NewService(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, db *gorm.DB, dispatcher *poller.Dispatcher) *Service {
	return &Service{
		cfg, log, db,
		&manageFeeds{cfg, log, db, dispatcher},
	}
}

func (svc *Service) GetFeed(ctx context.Context, id uint) (*models.Feed, error) {
	feed := &models.Feed{}
	tx := svc.db.First(feed, id)
	if err := tx.Error; err != nil {
		return nil, err
	}
	return feed, nil
}

func (svc *Service) ListFeeds(ctx context.Context) (models.Feeds, error) {
	var feeds models.Feeds
	tx := svc.db.Order("title asc").Find(&feeds)
	if err := tx.Error; err != nil {
		return nil, err
	}
	return feeds, nil
}

func (svc *Service) ListEntries(ctx context.Context, feedID uint) (models.Entries, error) {
	var entries models.Entries
	tx := svc.db.
		Where("feed_id = ?", feedID).
		Order("published_at desc").
		Find(&entries)
	if err := tx.Error; err != nil {
		return nil, err
	}
	return entries, nil
}
