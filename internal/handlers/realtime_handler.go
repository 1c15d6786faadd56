package handlers

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/stafflink-app/stafflink-backend/internal/realtime"
	"github.com/stafflink-app/stafflink-backend/internal/tenant"
)

const wsIdentityKey = "ws_identity"

type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Upgrade gates the websocket handshake. The identity resolved by the HTTP
// middleware is stashed in locals because the websocket handler runs on a
// different context.
func (h *RealtimeHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	identity, err := tenant.GetIdentity(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	c.Locals(wsIdentityKey, identity)
	return c.Next()
}

// Stream pushes change events to the client until either side closes. Events
// carry row ids only; the client re-fetches through its scoped endpoints.
func (h *RealtimeHandler) Stream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		identity, ok := conn.Locals(wsIdentityKey).(*tenant.Identity)
		if !ok {
			conn.Close()
			return
		}

		sub := h.hub.Subscribe(identity)
		defer h.hub.Unsubscribe(sub.ID)

		slog.Debug("realtime subscriber connected", "user_id", identity.UserID)

		// Drain reads so close frames are processed; inbound payloads are
		// ignored, the socket is push-only.
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
			case event, open := <-sub.Events:
				if !open {
					return
				}
				if err := conn.WriteJSON(event); err != nil {
					slog.Debug("realtime write failed, dropping subscriber",
						"user_id", identity.UserID, "error", err)
					return
				}
			case <-done:
				return
			}
		}
	})
}
