package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/apierror"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/dto"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/repository"
)

// SettingsHandler exposes the host-glue key/value table. The core never
// interprets these values; the host shell owns their meaning.
type SettingsHandler struct{ settings repository.SettingsRepository }

func NewSettingsHandler(settings repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	setting, err := h.settings.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to read setting"))
		return
	}
	if setting == nil {
		c.JSON(http.StatusNotFound, apierror.New("setting not found"))
		return
	}
	c.JSON(http.StatusOK, setting)
}

func (h *SettingsHandler) Put(c *gin.Context) {
	var req dto.SettingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	key := c.Param("key")
	if err := h.settings.Set(c.Request.Context(), key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to write setting"))
		return
	}
	c.Status(http.StatusNoContent)
}
