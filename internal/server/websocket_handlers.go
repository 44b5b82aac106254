package server

import (
	"devmesh/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// UpgradeConnectionEvents gates the event stream behind a proper websocket
// upgrade. AuthRequired has already run, so Locals carries the user.
func (s *Server) UpgradeConnectionEvents(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// StreamConnectionEvents pushes the authenticated user's connection events
// over a websocket. Events arrive through the hub, which pumps the notifier's
// Redis channels; without Redis the socket stays open but silent until the
// client disconnects.
func (s *Server) StreamConnectionEvents() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		// A nil events channel blocks forever, so the loop below still exits
		// through the reader when there is no hub.
		var events chan string
		if s.hub != nil {
			events = s.hub.Subscribe(userID)
			defer s.hub.Unsubscribe(userID, events)
		}

		// Reader goroutine: the client sends nothing meaningful, but reading
		// is how we notice the peer going away.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case payload := <-events:
				if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
					observability.GlobalLogger.Warn("websocket write failed",
						"user_id", userID, "error", err.Error())
					return
				}
			}
		}
	})
}
