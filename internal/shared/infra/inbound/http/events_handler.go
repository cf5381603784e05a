package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
	"github.com/davicafu/infopanel/internal/shared/infra/platform/health"
	sharedUtils "github.com/davicafu/infopanel/internal/shared/infra/utils"
	"github.com/davicafu/infopanel/pkg/utils"
)

// EventsHandler expone el historial de eventos de un agregado.
type EventsHandler struct {
	history sharedEvents.EventHistory
	log     *zap.Logger
}

func NewEventsHandler(history sharedEvents.EventHistory, log *zap.Logger) *EventsHandler {
	return &EventsHandler{history: history, log: log}
}

// ListByAggregate endpoint GET /events/:aggregateId
// Devuelve los sobres tal y como se almacenaron.
func (h *EventsHandler) ListByAggregate(c *gin.Context) {
	if h.history == nil {
		utils.SendError(c, http.StatusNotImplemented, "the configured event store cannot be read")
		return
	}

	records, err := h.history.ListByAggregate(c.Request.Context(), c.Param("aggregateId"))
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	envelopes := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		if !json.Valid(r.Data) {
			h.log.Warn("Skipping stored event with invalid JSON", zap.String("event_id", r.EventID))
			continue
		}
		envelopes = append(envelopes, json.RawMessage(r.Data))
	}
	utils.SendSuccess(c, http.StatusOK, envelopes)
}

// HealthHandler endpoint GET /health
func HealthHandler(checks health.Checks) gin.HandlerFunc {
	return func(c *gin.Context) {
		healthy, results := checks.Run(c.Request.Context())
		status := sharedUtils.Ternary(healthy, http.StatusOK, http.StatusServiceUnavailable)

		body := gin.H{}
		for _, r := range results {
			if r.Err != nil {
				body[r.Name] = r.Err.Error()
				continue
			}
			body[r.Name] = "ok"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": body})
	}
}

func RegisterSharedRoutes(r gin.IRouter, events *EventsHandler, checks health.Checks) {
	r.GET("/events/:aggregateId", events.ListByAggregate)
	r.GET("/health", HealthHandler(checks))
}
