package notification

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
)

type recordingSender struct {
	mu     sync.Mutex
	events []Event
	block  chan struct{}
	err    error
}

func (s *recordingSender) Send(ctx context.Context, event Event) error {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func testEvent(id string) Event {
	return Event{BookingID: id, RequesterID: "u-1", ResourceID: 1, Date: "2030-03-04", Status: "approved"}
}

func TestEvent_RoutingKey(t *testing.T) {
	assert.Equal(t, RKBookingApproved, testEvent("b").RoutingKey())
	assert.Equal(t, RKBookingCancelled, Event{Status: "cancelled"}.RoutingKey())
}

func TestDispatcher_DeliversAndDrains(t *testing.T) {
	sender := &recordingSender{}
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	d := NewDispatcher(sender, 16, 2, time.Second, m, logger.NewNop())

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, d.Dispatch(testEvent(id)))
	}

	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 3, sender.count())
	assert.Equal(t, float64(3), testutil.ToFloat64(m.Notifications.WithLabelValues("sent")))

	assert.ErrorIs(t, d.Dispatch(testEvent("late")), ErrClosed)
	assert.NoError(t, d.Close(context.Background()))
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sender := &recordingSender{block: make(chan struct{})}
	d := NewDispatcher(sender, 1, 1, time.Second, nil, logger.NewNop())

	// первое событие занимает worker, второе заполняет очередь
	require.NoError(t, d.Dispatch(testEvent("a")))
	require.Eventually(t, func() bool { return len(d.queue) == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, d.Dispatch(testEvent("b")))

	assert.ErrorIs(t, d.Dispatch(testEvent("c")), ErrQueueFull)

	close(sender.block)
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 2, sender.count())
}

func TestDispatcher_SenderFailureIsSwallowed(t *testing.T) {
	sender := &recordingSender{err: errors.New("broker down")}
	m := metrics.NewWithRegisterer("test", prometheus.NewRegistry())
	d := NewDispatcher(sender, 4, 1, time.Second, m, logger.NewNop())

	require.NoError(t, d.Dispatch(testEvent("a")))
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Notifications.WithLabelValues("failed")))
}

func TestDispatcher_CloseRespectsContext(t *testing.T) {
	sender := &recordingSender{block: make(chan struct{})}
	d := NewDispatcher(sender, 4, 1, time.Minute, nil, logger.NewNop())
	require.NoError(t, d.Dispatch(testEvent("a")))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)

	close(sender.block)
}

func TestWebhookClient_Send(t *testing.T) {
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("X-Event-Type")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewWebhookClient(srv.URL, time.Second)
	require.NoError(t, client.Send(context.Background(), testEvent("a")))
	assert.Equal(t, RKBookingApproved, gotType)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()

	err := NewWebhookClient(failing.URL, time.Second).Send(context.Background(), testEvent("a"))
	assert.ErrorIs(t, err, ErrPublish)
}
