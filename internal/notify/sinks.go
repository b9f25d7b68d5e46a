package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"lostfound-registry/utils"

	"github.com/nats-io/nats.go"
)

// LogSink writes events to the structured log
type LogSink struct{}

// Deliver logs the event
func (LogSink) Deliver(ctx context.Context, event Event) error {
	utils.Info("Notification", map[string]any{
		"user_id": event.UserID,
		"event":   event.Type,
		"payload": event.Payload,
	})
	return nil
}

// Publisher is the subset of *nats.Conn used by NATSSink
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSSink publishes events as JSON to <prefix>.<event type>
type NATSSink struct {
	pub    Publisher
	prefix string
}

// NewNATSSink creates a sink publishing through pub
func NewNATSSink(pub Publisher, prefix string) *NATSSink {
	return &NATSSink{pub: pub, prefix: prefix}
}

// Subject returns the subject an event type is published on
func (s *NATSSink) Subject(eventType string) string {
	if s.prefix == "" {
		return eventType
	}
	return s.prefix + "." + eventType
}

// Deliver publishes the event
func (s *NATSSink) Deliver(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify: marshal %s: %w", event.Type, err)
	}
	if err := s.pub.Publish(s.Subject(event.Type), data); err != nil {
		return fmt.Errorf("notify: publish %s: %w", event.Type, err)
	}
	return nil
}

// ConnectNATS dials the NATS server at url with reconnects enabled
func ConnectNATS(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("lostfound-registry"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				utils.Warn("NATS disconnected", map[string]any{"error": err.Error()})
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			utils.Info("NATS reconnected", map[string]any{"url": c.ConnectedUrl()})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("notify: connect to NATS at %s: %w", url, err)
	}
	return conn, nil
}

var (
	_ Sink      = LogSink{}
	_ Sink      = (*NATSSink)(nil)
	_ Publisher = (*nats.Conn)(nil)
)
