package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserIDFromChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		channel string
		want    uint
		ok      bool
	}{
		{"connections:user:7", 7, true},
		{"connections:user:100", 100, true},
		{"connections:user:0", 0, false},
		{"connections:user:abc", 0, false},
		{"chat:room:7", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := UserIDFromChannel(tt.channel)
		assert.Equal(t, tt.ok, ok, tt.channel)
		assert.Equal(t, tt.want, got, tt.channel)
	}
}

func TestHubFanOut(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.Start(ctx, n))

	first := hub.Subscribe(2)
	second := hub.Subscribe(2)
	other := hub.Subscribe(3)
	defer hub.Unsubscribe(2, first)
	defer hub.Unsubscribe(2, second)
	defer hub.Unsubscribe(3, other)

	require.NoError(t, n.PublishConnectionEvent(context.Background(), 2, ConnectionEvent{
		Type:      EventRequestReceived,
		RequestID: 42,
	}))

	for _, ch := range []chan string{first, second} {
		select {
		case payload := <-ch:
			assert.Contains(t, payload, `"request_id":42`)
		case <-time.After(time.Second):
			t.Fatal("expected event on every channel registered for the user")
		}
	}
	select {
	case payload := <-other:
		t.Fatalf("unexpected event for another user: %s", payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()
	hub := NewHub()
	ch := hub.Subscribe(5)
	hub.Unsubscribe(5, ch)

	hub.dispatch(5, "late")
	select {
	case payload := <-ch:
		t.Fatalf("unexpected delivery after unsubscribe: %s", payload)
	default:
	}
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	t.Parallel()
	hub := NewHub()
	ch := hub.Subscribe(6)
	defer hub.Unsubscribe(6, ch)

	// One more dispatch than the channel buffers; the overflow is dropped
	// instead of blocking the pump.
	for i := 0; i <= cap(ch); i++ {
		hub.dispatch(6, "event")
	}
	assert.Equal(t, cap(ch), len(ch))
}
