package events_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"MiniShop/internal/events"
	"MiniShop/internal/money"
)

type recordingSink struct {
	mu    sync.Mutex
	got   []events.Event
	block chan struct{}
}

func (s *recordingSink) Publish(ctx context.Context, e events.Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, e)
	return nil
}

func (s *recordingSink) events() []events.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]events.Event(nil), s.got...)
}

func TestRelay_DeliversInOrderAndDrainsOnStop(t *testing.T) {
	sink := &recordingSink{}
	r := events.NewRelay(sink, 16, zap.NewNop())

	for i := 0; i < 5; i++ {
		e := events.PaymentSucceeded("o_1", "c_1", money.FromInt(int64(i)), money.Zero)
		require.NoError(t, r.Publish(context.Background(), e))
	}
	require.NoError(t, r.Stop())

	got := sink.events()
	require.Len(t, got, 5)
	for i, e := range got {
		assert.Equal(t, int64(i), e.Amount.IntPart())
		assert.Equal(t, events.TypePaymentSucceeded, e.Type)
	}
}

func TestRelay_FullAndStopped(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	r := events.NewRelay(sink, 1, nil)

	e := events.PaymentSucceeded("o_1", "c_1", money.FromInt(1), money.Zero)

	// The first event is taken by the loop and blocks in the sink, the
	// second fills the queue.
	require.NoError(t, r.Publish(context.Background(), e))
	require.Eventually(t, func() bool {
		return r.Publish(context.Background(), e) == nil
	}, time.Second, time.Millisecond)
	assert.ErrorIs(t, r.Publish(context.Background(), e), events.ErrRelayFull)

	close(sink.block)
	require.NoError(t, r.Stop())
	assert.ErrorIs(t, r.Publish(context.Background(), e), events.ErrRelayStopped)
	assert.Len(t, sink.events(), 2)
}

func TestKafkaPublisher_DisabledWithoutBrokers(t *testing.T) {
	_, err := events.NewKafkaPublisher([]string{" ", ""}, "payments", nil)
	assert.ErrorIs(t, err, events.ErrDisabled)
}

func TestRelay_EveryAcceptedEventIsDeliveredAcrossStop(t *testing.T) {
	sink := &recordingSink{}
	r := events.NewRelay(sink, 4096, zap.NewNop())

	var (
		wg       sync.WaitGroup
		accepted atomic.Int64
		start    = make(chan struct{})
	)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for i := 0; i < 200; i++ {
				e := events.PaymentSucceeded("o_1", "c_1", money.FromInt(1), money.Zero)
				switch err := r.Publish(context.Background(), e); {
				case err == nil:
					accepted.Add(1)
				case errors.Is(err, events.ErrRelayStopped):
					return
				}
			}
		}()
	}

	close(start)
	require.NoError(t, r.Stop())
	wg.Wait()

	assert.Equal(t, int(accepted.Load()), len(sink.events()))
}
