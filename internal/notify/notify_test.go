package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"lostfound-registry/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	fail   map[string]bool
	got    chan struct{}
}

func newRecordingSink() *recordingSink {
	return &recordingSink{fail: map[string]bool{}, got: make(chan struct{}, 16)}
}

func (s *recordingSink) Deliver(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer func() {
		s.mu.Unlock()
		s.got <- struct{}{}
	}()
	if s.fail[event.Type] {
		return errors.New("sink unavailable")
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) delivered() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func waitDeliveries(t *testing.T, s *recordingSink, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.got:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d", i+1)
		}
	}
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	t.Parallel()

	sink := newRecordingSink()
	d := NewDispatcher(sink, 8, metrics.New(prometheus.NewRegistry()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	d.Notify(ctx, "userA", EventOutbid, map[string]any{"auction_id": "a1"})
	d.Notify(ctx, "userB", EventAuctionWon, map[string]any{"auction_id": "a1"})
	waitDeliveries(t, sink, 2)

	events := sink.delivered()
	require.Len(t, events, 2)
	require.Equal(t, "userA", events[0].UserID)
	require.Equal(t, EventOutbid, events[0].Type)
	require.Equal(t, EventAuctionWon, events[1].Type)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	t.Parallel()

	m := metrics.New(prometheus.NewRegistry())
	d := NewDispatcher(newRecordingSink(), 1, m)

	// nothing drains the queue, so the second call must return immediately
	d.Notify(context.Background(), "u1", EventOutbid, nil)
	d.Notify(context.Background(), "u2", EventOutbid, nil)

	require.Equal(t, 1, d.Pending())
	require.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsDropped))
}

func TestDispatcher_IgnoresAnonymousUser(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(newRecordingSink(), 4, nil)
	d.Notify(context.Background(), "", EventOutbid, nil)
	require.Equal(t, 0, d.Pending())
}

func TestDispatcher_SinkFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	sink := newRecordingSink()
	sink.fail[EventOutbid] = true
	m := metrics.New(prometheus.NewRegistry())
	d := NewDispatcher(sink, 4, m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.Run(ctx) }()

	d.Notify(ctx, "u1", EventOutbid, nil)
	d.Notify(ctx, "u1", EventMatchConfirmed, nil)
	waitDeliveries(t, sink, 2)

	events := sink.delivered()
	require.Len(t, events, 1)
	require.Equal(t, EventMatchConfirmed, events[0].Type)
	require.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsFailed))
}

type fakePublisher struct {
	subject string
	data    []byte
	err     error
}

func (p *fakePublisher) Publish(subject string, data []byte) error {
	p.subject = subject
	p.data = data
	return p.err
}

func TestNATSSink_Deliver(t *testing.T) {
	t.Parallel()

	pub := &fakePublisher{}
	sink := NewNATSSink(pub, "lostfound")
	event := Event{UserID: "u1", Type: EventAuctionWon, Payload: map[string]any{"amount": 150.0}}

	require.NoError(t, sink.Deliver(context.Background(), event))
	require.Equal(t, "lostfound.auction.won", pub.subject)

	var decoded Event
	require.NoError(t, json.Unmarshal(pub.data, &decoded))
	require.Equal(t, "u1", decoded.UserID)
	require.Equal(t, 150.0, decoded.Payload["amount"])

	pub.err = errors.New("nats: connection closed")
	require.Error(t, sink.Deliver(context.Background(), event))

	require.Equal(t, EventOutbid, NewNATSSink(pub, "").Subject(EventOutbid))
}

func TestLogSink_Deliver(t *testing.T) {
	t.Parallel()
	require.NoError(t, LogSink{}.Deliver(context.Background(), Event{UserID: "u1", Type: EventOutbid}))
}
