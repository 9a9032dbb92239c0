package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	tomb "gopkg.in/tomb.v2"
)

var (
	ErrRelayFull    = errors.New("event relay queue full")
	ErrRelayStopped = errors.New("event relay stopped")
)

const deliverTimeout = 15 * time.Second

// Relay decouples publishers from a slow Sink. Publish only enqueues; a
// single goroutine delivers events in order. Stop drains the queue.
type Relay struct {
	t     tomb.Tomb
	queue chan Event
	next  Sink
	log   *zap.Logger

	// mu orders Publish against Stop: once stopped is set no event enters
	// the queue, so everything accepted is delivered by the drain.
	mu      sync.RWMutex
	stopped bool
}

func NewRelay(next Sink, size int, log *zap.Logger) *Relay {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Relay{
		queue: make(chan Event, size),
		next:  next,
		log:   log,
	}
	r.t.Go(r.loop)
	return r
}

func (r *Relay) Publish(_ context.Context, e Event) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stopped {
		return ErrRelayStopped
	}

	select {
	case r.queue <- e:
		return nil
	default:
		return ErrRelayFull
	}
}

func (r *Relay) Stop() error {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	r.t.Kill(nil)
	return r.t.Wait()
}

func (r *Relay) loop() error {
	for {
		select {
		case e := <-r.queue:
			r.deliver(e)
		case <-r.t.Dying():
			for {
				select {
				case e := <-r.queue:
					r.deliver(e)
				default:
					return nil
				}
			}
		}
	}
}

func (r *Relay) deliver(e Event) {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	if err := r.next.Publish(ctx, e); err != nil {
		r.log.Error("event delivery failed",
			zap.Error(err),
			zap.String("event_id", e.EventID),
			zap.String("type", e.Type),
			zap.String("order_id", e.OrderID))
	}
}
