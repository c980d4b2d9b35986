// websocket/handler.go
package websocket

import (
	"time"

	"habit-tracker-backend/config"
	"habit-tracker-backend/excel/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const pushInterval = 1 * time.Second

// ProgressHandler upgrades connections and runs the per-subscriber push
// loop for ingestion progress.
type ProgressHandler struct {
	hub     *Hub
	tracker *services.ProgressTracker
}

// NewProgressHandler creates a new progress publisher handler instance
func NewProgressHandler(hub *Hub, tracker *services.ProgressTracker) *ProgressHandler {
	return &ProgressHandler{
		hub:     hub,
		tracker: tracker,
	}
}

// HandleProgress pushes {progress, status} to the subscriber once per
// second. The loop never closes itself, not even after 100%: the channel
// stays open for future uploads and termination is always
// subscriber-driven. A transport error while pushing ends the loop and
// releases the connection.
func (h *ProgressHandler) HandleProgress(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:   uuid.New(),
			Conn: conn,
		}

		h.hub.register <- client
		config.Logger.Info("Progress subscriber connected",
			zap.String("clientID", client.ID.String()),
			zap.Int("subscribers", h.hub.SubscriberCount()),
		)

		defer func() {
			h.hub.unregister <- client
			config.Logger.Info("Progress subscriber disconnected",
				zap.String("clientID", client.ID.String()),
			)
		}()

		ticker := time.NewTicker(pushInterval)
		defer ticker.Stop()

		h.publish(client.Conn, ticker.C)
	})(c)
}

// progressWriter is the transport seam for one subscriber.
type progressWriter interface {
	WriteJSON(v interface{}) error
}

// publish pushes one snapshot per tick. Reaching 100% does not end the
// stream; only a failed write does, which is how a subscriber hanging up
// looks from this side.
func (h *ProgressHandler) publish(w progressWriter, ticks <-chan time.Time) {
	for range ticks {
		progress, status := h.tracker.Snapshot()
		err := w.WriteJSON(fiber.Map{
			"progress": progress,
			"status":   status,
		})
		if err != nil {
			return
		}
	}
}
