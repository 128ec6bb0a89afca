package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"presence_relay_service/internal/relay/domain"
	"presence_relay_service/pkg/logger"

	"go.uber.org/zap"
)

const tapPublishTimeout = 5 * time.Second

// EventTap external sink for relay activity records
type EventTap interface {
	Publish(ctx context.Context, record domain.TapRecord) error
	Close() error
}

// NopTap discard every record
type NopTap struct{}

// Publish discard record
func (NopTap) Publish(context.Context, domain.TapRecord) error { return nil }

// Close nothing to release
func (NopTap) Close() error { return nil }

// AsyncTap bounded queue + single worker in front of an EventTap.
// Offer never blocks; records are dropped when the queue is full.
type AsyncTap struct {
	sink    EventTap
	queue   chan domain.TapRecord
	done    chan struct{}
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
	now     func() time.Time
}

// NewAsyncTap start the worker draining into sink
func NewAsyncTap(sink EventTap, buffer int) *AsyncTap {
	if buffer <= 0 {
		buffer = 1
	}
	t := &AsyncTap{
		sink:  sink,
		queue: make(chan domain.TapRecord, buffer),
		done:  make(chan struct{}),
		now:   time.Now,
	}
	go t.run()
	return t
}

// Offer queue record for publishing
func (t *AsyncTap) Offer(record domain.TapRecord) {
	if record.Timestamp == 0 {
		record.Timestamp = t.now().UnixMilli()
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return
	}
	select {
	case t.queue <- record:
	default:
		n := t.dropped.Add(1)
		logger.Log.Warn("event tap queue full, record dropped", zap.String("kind", string(record.Kind)), zap.Int64("dropped", n))
	}
}

// Dropped number of records dropped on a full queue
func (t *AsyncTap) Dropped() int64 {
	return t.dropped.Load()
}

// Close stop accepting, drain what is queued, then close the sink
func (t *AsyncTap) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	close(t.queue)
	t.mu.Unlock()

	<-t.done
	return t.sink.Close()
}

func (t *AsyncTap) run() {
	defer close(t.done)
	for record := range t.queue {
		ctx, cancel := context.WithTimeout(context.Background(), tapPublishTimeout)
		if err := t.sink.Publish(ctx, record); err != nil {
			logger.Log.Warn("event tap publish failed", zap.String("kind", string(record.Kind)), zap.Error(err))
		}
		cancel()
	}
}
