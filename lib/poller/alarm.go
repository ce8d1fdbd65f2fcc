package poller

import (
	"context"
	"time"

	"github.com/Jahankohan/FeedCloud/lib/models"
)

// wakeup fires one scheduling pass for a priority tier.
type wakeup struct {
	priority  int
	timestamp time.Time
}

// alarmClock multiplexes the two tier tickers onto one channel. HIGH feeds
// wake on the short interval, LOW feeds on the long one.
type alarmClock struct {
	cancel func()
	high   *time.Ticker
	low    *time.Ticker
	C      chan wakeup
}

func newAlarmClock(highInterval, lowInterval time.Duration) *alarmClock {
	return &alarmClock{
		high: time.NewTicker(highInterval),
		low:  time.NewTicker(lowInterval),
		C:    make(chan wakeup),
	}
}

func (a *alarmClock) Start(ctx context.Context) <-chan wakeup {
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	go func() {
		defer close(a.C)
		for {
			select {
			case t := <-a.high.C:
				a.C <- wakeup{models.PriorityHigh, t}

			case t := <-a.low.C:
				a.C <- wakeup{models.PriorityLow, t}

			case <-ctx.Done():
				return
			}
		}
	}()

	return a.C
}

func (a *alarmClock) Stop() {
	a.high.Stop()
	a.low.Stop()
	if a.cancel != nil {
		a.cancel()
	}
}
