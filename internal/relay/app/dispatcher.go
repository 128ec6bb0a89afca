package app

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"presence_relay_service/internal/relay/domain"
	"presence_relay_service/pkg/logger"

	"go.uber.org/zap"
)

// ErrDispatcherStopped Submit after the loop has stopped
var ErrDispatcherStopped = errors.New("dispatcher stopped")

// Router turn one inbound event into outbound events
type Router interface {
	Dispatch(evt domain.InboundEvent) []domain.Outbound
}

// Deliverer hand outbound events to live connections
type Deliverer interface {
	Deliver(out domain.Outbound)
}

// Dispatcher single goroutine applying inbound events one at a time
type Dispatcher struct {
	router    Router
	deliverer Deliverer
	inbound   chan domain.InboundEvent
	stopped   chan struct{}
}

// NewDispatcher create Dispatcher, call Run to start the loop
func NewDispatcher(router Router, deliverer Deliverer, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		router:    router,
		deliverer: deliverer,
		inbound:   make(chan domain.InboundEvent, queueSize),
		stopped:   make(chan struct{}),
	}
}

// Run consume events until ctx is done
func (d *Dispatcher) Run(ctx context.Context) {
	defer close(d.stopped)
	logger.Log.Info("dispatcher started", zap.Int("queue", cap(d.inbound)))
	for {
		select {
		case evt := <-d.inbound:
			d.handle(evt)
		case <-ctx.Done():
			logger.Log.Info("dispatcher stopped", zap.Int("pending", len(d.inbound)))
			return
		}
	}
}

// Submit queue evt, blocks while the queue is full
func (d *Dispatcher) Submit(ctx context.Context, evt domain.InboundEvent) error {
	select {
	case <-d.stopped:
		return ErrDispatcherStopped
	default:
	}

	select {
	case d.inbound <- evt:
		return nil
	case <-d.stopped:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done closed once Run returns
func (d *Dispatcher) Done() <-chan struct{} {
	return d.stopped
}

func (d *Dispatcher) handle(evt domain.InboundEvent) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("dispatch panic recovered",
				zap.String("action", string(evt.Action())),
				zap.String("conn", string(evt.Origin())),
				zap.String("panic", fmt.Sprint(r)),
				zap.ByteString("stack", debug.Stack()),
			)
		}
	}()

	logger.Log.Debug("dispatch", zap.String("action", string(evt.Action())), zap.String("conn", string(evt.Origin())))
	for _, out := range d.router.Dispatch(evt) {
		d.deliverer.Deliver(out)
	}
}
