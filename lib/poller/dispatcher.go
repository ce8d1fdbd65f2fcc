package poller

import (
	"context"
	"sync"
	"time"

	"github.com/Jahankohan/FeedCloud/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// jobTimeout bounds one ingestion run: fetch (at most 10s) plus parse and
// persistence.
const jobTimeout = 30 * time.Second

// Job is one fire-and-forget ingestion unit of work.
type Job struct {
	FeedID uint
}

// Dispatcher runs ingestion jobs on a bounded worker pool fed by an
// in-process queue. Both the batch scheduler and the feed CRUD service
// enqueue into it; jobs for different feeds run concurrently with no
// ordering guarantee.
type Dispatcher struct {
	log      *zap.Logger
	ingester *Ingester

	workers int
	jobs    chan Job
	wg      sync.WaitGroup
}

func NewDispatcher(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, ingester *Ingester) *Dispatcher {
	d := &Dispatcher{
		log:      log,
		ingester: ingester,
		workers:  cfg.WorkerCount,
		jobs:     make(chan Job, cfg.QueueDepth),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			d.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Sugar().Info("Trying to stop dispatcher")
			d.Stop()
			return nil
		},
	})

	return d
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
	d.log.Sugar().Infof("Dispatcher started with %d workers", d.workers)
}

// Stop drains queued jobs and waits for in-flight ones to finish.
func (d *Dispatcher) Stop() {
	close(d.jobs)
	d.wg.Wait()
	d.log.Sugar().Info("Dispatcher stopped")
}

// Enqueue queues one ingestion job. Blocks while the queue is full, which
// backpressures the scheduler rather than dropping work.
func (d *Dispatcher) Enqueue(feedID uint) {
	d.jobs <- Job{FeedID: feedID}
}

// Pending reports how many jobs are queued but not yet picked up.
func (d *Dispatcher) Pending() int {
	return len(d.jobs)
}

func (d *Dispatcher) work() {
	defer d.wg.Done()

	for job := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		if err := d.ingester.Ingest(ctx, job.FeedID); err != nil {
			// Expected feed failures are absorbed inside Ingest; whatever
			// reaches here is unexpected and needs operator visibility.
			d.log.Sugar().Errorw("ingest job failed", "feed_id", job.FeedID, "err", err)
		}
		cancel()
	}
}
