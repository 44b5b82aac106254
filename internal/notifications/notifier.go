// Package notifications provides best-effort delivery of connection events.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectionEvent describes a change in the connection graph that a client
// may want to surface immediately.
type ConnectionEvent struct {
	Type       string    `json:"type"`
	RequestID  uint      `json:"request_id"`
	FromUserID uint      `json:"from_user_id"`
	ToUserID   uint      `json:"to_user_id"`
	Status     string    `json:"status"`
	Message    string    `json:"message,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Event types published on user channels.
const (
	EventRequestReceived = "connection_request_received"
	EventRequestReviewed = "connection_request_reviewed"
)

// Notifier publishes connection events into per-user Redis channels.
// All publishing is best-effort: a nil client or a publish failure never
// affects the operation that triggered the event.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

const userChannelPrefix = "connections:user:"

// UserChannel returns the pub/sub channel for a user's connection events.
func UserChannel(userID uint) string {
	return fmt.Sprintf("%s%d", userChannelPrefix, userID)
}

// PublishConnectionEvent sends an event to a user's channel.
func (n *Notifier) PublishConnectionEvent(ctx context.Context, userID uint, event ConnectionEvent) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// StartPatternSubscriber subscribes to all user connection channels and calls
// onMessage for each incoming message. The Hub uses this to fan events out to
// websocket sessions.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, userChannelPrefix+"*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
