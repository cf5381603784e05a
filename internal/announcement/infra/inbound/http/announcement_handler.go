package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/davicafu/infopanel/internal/announcement/application"
	"github.com/davicafu/infopanel/internal/announcement/domain"
	"github.com/davicafu/infopanel/pkg/utils"
)

// AnnouncementHandler encapsula los endpoints HTTP de los anuncios
type AnnouncementHandler struct {
	service *application.AnnouncementService
}

func NewAnnouncementHandler(service *application.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

type announcementRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body"`
	Author   string `json:"author"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}

func (r announcementRequest) toInput() (application.AnnouncementInput, error) {
	startsAt, err := utils.ParseOptionalTime(r.StartsAt)
	if err != nil {
		return application.AnnouncementInput{}, errors.New("invalid starts_at format")
	}
	endsAt, err := utils.ParseOptionalTime(r.EndsAt)
	if err != nil {
		return application.AnnouncementInput{}, errors.New("invalid ends_at format")
	}
	return application.AnnouncementInput{Title: r.Title, Body: r.Body, StartsAt: startsAt, EndsAt: endsAt}, nil
}

// ---------------- Handlers ----------------

// CreateAnnouncement endpoint POST /announcements
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	author := req.Author
	if author == "" {
		author = "admin"
	}

	a, err := h.service.CreateAnnouncement(c.Request.Context(), author, in)
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusCreated, a)
}

// GetAnnouncement endpoint GET /announcements/:id
func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	a, err := h.service.GetAnnouncement(c.Request.Context(), id)
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, a)
}

// ListAnnouncements endpoint GET /announcements?status=&limit=&offset=
// Con visible=true devuelve sólo lo que se muestra ahora mismo en la pantalla.
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	if c.Query("visible") == "true" {
		list, err := h.service.ListVisible(c.Request.Context(), time.Now().UTC())
		if err != nil {
			sendError(c, err)
			return
		}
		utils.SendSuccess(c, http.StatusOK, list)
		return
	}

	f := domain.AnnouncementFilter{Status: domain.Status(c.Query("status"))}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil {
		f.Limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		f.Offset = v
	}

	list, err := h.service.ListAnnouncements(c.Request.Context(), f)
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, list)
}

// UpdateAnnouncement endpoint PUT /announcements/:id
func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	in, err := req.toInput()
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	a, err := h.service.UpdateAnnouncement(c.Request.Context(), id, in)
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, a)
}

// ApproveAnnouncement endpoint POST /announcements/:id/approve
func (h *AnnouncementHandler) ApproveAnnouncement(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Approver string `json:"approver" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	a, err := h.service.ApproveAnnouncement(c.Request.Context(), id, req.Approver)
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, a)
}

// RejectAnnouncement endpoint POST /announcements/:id/reject
func (h *AnnouncementHandler) RejectAnnouncement(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	// El motivo es opcional: un cuerpo vacío también vale.
	_ = c.ShouldBindJSON(&req)

	a, err := h.service.RejectAnnouncement(c.Request.Context(), id, req.Reason)
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, a)
}

// DeleteAnnouncement endpoint DELETE /announcements/:id
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAnnouncement(c.Request.Context(), id); err != nil {
		sendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid announcement id")
		return uuid.Nil, false
	}
	return id, true
}

func sendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAnnouncementNotFound):
		utils.SendNotFound(c, "announcement not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		utils.SendConflict(c, err.Error())
	case errors.Is(err, domain.ErrInvalidAnnouncement):
		utils.SendUnprocessable(c, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}
