package handlers

import (
	"io"

	"github.com/TatyanaDev/task-management-api/internal/events"
	"github.com/gin-gonic/gin"
)

// EventsHandler streams broadcast events to clients over SSE.
type EventsHandler struct {
	broker *events.Broker
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(broker *events.Broker) *EventsHandler {
	return &EventsHandler{broker: broker}
}

// Stream subscribes the client and forwards every broadcast event until
// the client disconnects.
//
//	@Summary	Subscribe to real-time task update events
//	@Tags		events
//	@Produce	text/event-stream
//	@Router		/events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	ch := h.broker.Subscribe()
	defer h.broker.Unsubscribe(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(event.Name, event.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
