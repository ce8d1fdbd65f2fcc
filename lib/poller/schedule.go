package poller

import (
	"context"

	"github.com/Jahankohan/FeedCloud/lib/models"
)

// ScheduleBatches selects every ACTIVE feed in the given priority tier and
// enqueues one ingestion job per feed. Feeds are read in ascending-id pages
// of batchSize via offset pagination, lazily, stopping at the first empty
// page. PENDING feeds are not selected here; they get a direct dispatch from
// the CRUD service at creation or update.
func (p *Poller) ScheduleBatches(ctx context.Context, priority int) *pollMetrics {
	metrics := &pollMetrics{}

	offset := 0
	for {
		ids, err := p.eligibleFeedIDs(priority, offset, p.batchSize)
		if err != nil {
			p.log.Sugar().Errorw("failed to select eligible feeds", "priority", priority, "err", err)
			return metrics
		}
		if len(ids) == 0 {
			return metrics
		}

		metrics.batches++
		metrics.selected += len(ids)
		for _, id := range ids {
			p.dispatcher.Enqueue(id)
		}

		offset += p.batchSize
	}
}

func (p *Poller) eligibleFeedIDs(priority, offset, limit int) ([]uint, error) {
	var ids []uint
	tx := p.db.Model(&models.Feed{}).
		Where("status = ? AND priority = ?", models.StatusActive, priority).
		Order("id asc").
		Offset(offset).
		Limit(limit).
		Pluck("id", &ids)
	return ids, tx.Error
}
