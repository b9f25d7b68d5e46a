// Package notify is the notification boundary. Notify never blocks the
// caller: events are queued and delivered by Dispatcher.Run, and delivery
// failures are logged and dropped.
package notify

import (
	"context"
	"time"

	"lostfound-registry/internal/metrics"
	"lostfound-registry/utils"
)

// Event types emitted by the core
const (
	EventOutbid         = "bid.outbid"
	EventMatchConfirmed = "match.confirmed"
	EventAuctionWon     = "auction.won"
)

// Notifier tells a user that something happened
type Notifier interface {
	Notify(ctx context.Context, userID, eventType string, payload map[string]any)
}

// Event is one queued notification
type Event struct {
	UserID  string         `json:"user_id"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
	At      time.Time      `json:"at"`
}

// Sink delivers one event to the outside world
type Sink interface {
	Deliver(ctx context.Context, event Event) error
}

// Dispatcher queues events on a bounded channel and hands them to a Sink
type Dispatcher struct {
	sink    Sink
	inbox   chan Event
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewDispatcher creates a dispatcher with room for buffer pending events
func NewDispatcher(sink Sink, buffer int, m *metrics.Metrics) *Dispatcher {
	if buffer < 1 {
		buffer = 1
	}
	return &Dispatcher{
		sink:    sink,
		inbox:   make(chan Event, buffer),
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Notify enqueues the event, dropping it when the queue is full
func (d *Dispatcher) Notify(ctx context.Context, userID, eventType string, payload map[string]any) {
	if userID == "" {
		return
	}
	event := Event{UserID: userID, Type: eventType, Payload: payload, At: d.now()}

	select {
	case d.inbox <- event:
	default:
		d.metrics.IncrementNotificationDropped()
		utils.Warn("Notification dropped, queue full", map[string]any{
			"user_id": userID,
			"event":   eventType,
		})
	}
}

// Run delivers queued events until ctx is cancelled
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-d.inbox:
			d.deliver(ctx, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event Event) {
	if err := d.sink.Deliver(ctx, event); err != nil {
		d.metrics.IncrementNotificationFailed()
		utils.Error("Notification delivery failed", map[string]any{
			"user_id": event.UserID,
			"event":   event.Type,
			"error":   err.Error(),
		})
	}
}

// Pending is the number of queued, undelivered events
func (d *Dispatcher) Pending() int {
	return len(d.inbox)
}

// Nop discards every notification
type Nop struct{}

// Notify does nothing
func (Nop) Notify(context.Context, string, string, map[string]any) {}

var (
	_ Notifier = (*Dispatcher)(nil)
	_ Notifier = Nop{}
)
