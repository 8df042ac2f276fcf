package publisher

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/anderskate/async-sms-sending/internal/domain"
	"github.com/anderskate/async-sms-sending/pkg/logger"
)

// snapshotSource produces a fresh status snapshot per tick; the aggregator
// satisfies it, tests use a fake.
type snapshotSource interface {
	Snapshot(ctx context.Context) (domain.StatusSnapshot, error)
}

// Subscriber receives snapshots. Implementations wrap a single viewer
// connection and are not shared between loops.
type Subscriber interface {
	SendSnapshot(ctx context.Context, snapshot domain.StatusSnapshot) error
}

// Publisher drives one publish loop per subscriber at a fixed cadence.
// Loops are independent: a failure on one connection never touches the
// others, and a failed aggregation tick is retried on the next one.
type Publisher struct {
	source      snapshotSource
	interval    time.Duration
	subscribers atomic.Int64
}

func NewPublisher(source snapshotSource, interval time.Duration) *Publisher {
	return &Publisher{
		source:   source,
		interval: interval,
	}
}

// Run publishes to one subscriber until its context is cancelled or a
// delivery fails. The first snapshot goes out immediately on connect; there
// is no initial empty frame. Returns nil on cancellation, the delivery
// error otherwise.
func (p *Publisher) Run(ctx context.Context, sub Subscriber) error {
	active := p.subscribers.Add(1)
	logger.Infof("Status subscriber connected (active: %d)", active)

	defer func() {
		logger.Infof("Status subscriber disconnected (active: %d)", p.subscribers.Add(-1))
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.publishTick(ctx, sub); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// publishTick runs one aggregate-and-deliver iteration. An aggregation
// failure is contained here so a transient store error degrades to a missed
// tick instead of a dropped connection.
func (p *Publisher) publishTick(ctx context.Context, sub Subscriber) error {
	snapshot, err := p.source.Snapshot(ctx)
	if err != nil {
		logger.Errorf("Failed to aggregate mailing status, retrying next tick: %v", err)
		return nil
	}

	if err := sub.SendSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to deliver status snapshot: %w", err)
	}

	return nil
}

// SubscriberCount reports how many publish loops are currently running.
func (p *Publisher) SubscriberCount() int64 {
	return p.subscribers.Load()
}
