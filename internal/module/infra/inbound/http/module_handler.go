package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/infopanel/internal/module/application"
	"github.com/davicafu/infopanel/internal/module/domain"
	"github.com/davicafu/infopanel/pkg/utils"
)

type ModuleHandler struct {
	service *application.ModuleService
}

func NewModuleHandler(service *application.ModuleService) *ModuleHandler {
	return &ModuleHandler{service: service}
}

// ListModules endpoint GET /modules
func (h *ModuleHandler) ListModules(c *gin.Context) {
	mods, err := h.service.ListModules(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, mods)
}

// UpdateModule endpoint PUT /modules/:key
// enabled es opcional; si viene, se aplica además del nombre y la posición.
func (h *ModuleHandler) UpdateModule(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Position *int   `json:"position" binding:"required"`
		Enabled  *bool  `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	key := c.Param("key")
	m, err := h.service.UpdateModule(c.Request.Context(), key, req.Name, *req.Position)
	if err == nil && req.Enabled != nil {
		m, err = h.service.SetEnabled(c.Request.Context(), key, *req.Enabled)
	}
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, m)
}

// ToggleModule endpoint POST /modules/:key/toggle
func (h *ModuleHandler) ToggleModule(c *gin.Context) {
	m, err := h.service.ToggleModule(c.Request.Context(), c.Param("key"))
	if err != nil {
		sendError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, m)
}

func sendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrModuleNotFound):
		utils.SendNotFound(c, "module not found")
	case errors.Is(err, domain.ErrInvalidModule):
		utils.SendUnprocessable(c, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}
