package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/infopanel/internal/countdown/application"
	"github.com/davicafu/infopanel/internal/countdown/domain"
	"github.com/davicafu/infopanel/pkg/utils"
)

type CountdownHandler struct {
	service *application.CountdownService
	now     func() time.Time
}

func NewCountdownHandler(service *application.CountdownService) *CountdownHandler {
	return &CountdownHandler{service: service, now: func() time.Time { return time.Now().UTC() }}
}

type countdownRequest struct {
	Title    string `json:"title" binding:"required"`
	TargetAt string `json:"target_at" binding:"required"`
}

// countdownView añade los segundos restantes para la pantalla.
type countdownView struct {
	*domain.Countdown
	RemainingSeconds int64 `json:"remaining_seconds"`
}

func (h *CountdownHandler) view(c *domain.Countdown) countdownView {
	return countdownView{Countdown: c, RemainingSeconds: int64(c.Remaining(h.now()).Seconds())}
}

// CreateCountdown endpoint POST /countdowns
func (h *CountdownHandler) CreateCountdown(c *gin.Context) {
	var req countdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	target, err := utils.ParseOptionalTime(req.TargetAt)
	if err != nil {
		utils.SendBadRequest(c, "invalid target_at format")
		return
	}

	cd, err := h.service.CreateCountdown(c.Request.Context(), req.Title, target)
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, h.view(cd))
}

// ListCountdowns endpoint GET /countdowns?active=true
func (h *CountdownHandler) ListCountdowns(c *gin.Context) {
	list, err := h.service.ListCountdowns(c.Request.Context(), h.now(), c.Query("active") == "true")
	if err != nil {
		sendError(c, err)
		return
	}
	views := make([]countdownView, 0, len(list))
	for _, cd := range list {
		views = append(views, h.view(cd))
	}
	utils.SendSuccess(c, http.StatusOK, views)
}

// GetCountdown endpoint GET /countdowns/:id
func (h *CountdownHandler) GetCountdown(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cd, err := h.service.GetCountdown(c.Request.Context(), id)
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, h.view(cd))
}

// UpdateCountdown endpoint PUT /countdowns/:id
func (h *CountdownHandler) UpdateCountdown(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req countdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	target, err := utils.ParseOptionalTime(req.TargetAt)
	if err != nil {
		utils.SendBadRequest(c, "invalid target_at format")
		return
	}

	cd, err := h.service.UpdateCountdown(c.Request.Context(), id, req.Title, target)
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, h.view(cd))
}

// DeleteCountdown endpoint DELETE /countdowns/:id
func (h *CountdownHandler) DeleteCountdown(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCountdown(c.Request.Context(), id); err != nil {
		sendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid countdown id")
		return uuid.Nil, false
	}
	return id, true
}

func sendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCountdownNotFound):
		utils.SendNotFound(c, "countdown not found")
	case errors.Is(err, domain.ErrInvalidCountdown):
		utils.SendUnprocessable(c, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}
