// Package poller schedules and runs feed ingestion: a two-tier periodic
// trigger selects ACTIVE feeds in batches and dispatches one ingestion job
// per feed onto a worker pool.
package poller

import (
	"context"
	"time"

	"github.com/Jahankohan/FeedCloud/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Poller struct {
	db         *gorm.DB
	log        *zap.Logger
	dispatcher *Dispatcher

	batchSize int
	alarm     *alarmClock
}

func NewPoller(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, db *gorm.DB, dispatcher *Dispatcher) *Poller {
	p := &Poller{
		db:         db,
		log:        log,
		dispatcher: dispatcher,
		batchSize:  cfg.BatchSize,
		alarm:      newAlarmClock(cfg.HighTierInterval, cfg.LowTierInterval),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Start(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Sugar().Info("Trying to stop poller")
			p.Stop()
			return nil
		},
	})

	return p
}

func (p *Poller) Start(ctx context.Context) {
	c := p.alarm.Start(ctx)

	go func() {
		for w := range c {
			p.scheduleTier(context.Background(), w.priority, w.timestamp)
		}
	}()
}

func (p *Poller) Stop() {
	p.alarm.Stop()
	p.log.Sugar().Info("Poller stopped")
}

func (p *Poller) scheduleTier(ctx context.Context, priority int, wakeupTime time.Time) {
	m := p.ScheduleBatches(ctx, priority)
	if m.selected == 0 {
		return
	}

	elapsed := time.Now().UTC().Sub(wakeupTime)
	p.log.Sugar().Infow(
		"Scheduling pass completed",
		"priority", priority,
		"selected", m.selected,
		"batches", m.batches,
		"queued", p.dispatcher.Pending(),
		"elapsed_msecs", int(elapsed.Milliseconds()),
	)
}
