package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/apierror"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/dto"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/infra"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/repository"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/service"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/worker"
)

type SyncHandler struct {
	engine  *worker.SyncEngine
	catalog service.CatalogService
	syncLog repository.SyncLogRepository
}

func NewSyncHandler(
	engine *worker.SyncEngine,
	catalog service.CatalogService,
	syncLog repository.SyncLogRepository,
) *SyncHandler {
	return &SyncHandler{engine: engine, catalog: catalog, syncLog: syncLog}
}

// RunPass triggers one sync pass on demand. 409 means a pass (manual or cron)
// is already draining the queue.
func (h *SyncHandler) RunPass(c *gin.Context) {
	result, err := h.engine.RunPass(c.Request.Context())
	if err != nil {
		if errors.Is(err, worker.ErrPassInProgress) {
			c.JSON(http.StatusConflict, apierror.New("a sync pass is already in progress"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("sync pass failed to start"))
		return
	}
	c.JSON(http.StatusOK, dto.PassResponse{
		Processed: result.Processed,
		Synced:    result.Synced,
		Failed:    result.Failed,
		Status:    result.Status,
		LastError: result.LastError,
	})
}

// RefreshCatalog pulls fresh snapshots of every mirrored table. The partial
// summary accompanies the error so the caller can see how far the run got.
func (h *SyncHandler) RefreshCatalog(c *gin.Context) {
	summary, err := h.catalog.RefreshAll(c.Request.Context())
	if err != nil {
		status := http.StatusBadGateway
		if infra.IsRejection(err) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{
			"error":   "catalog refresh failed: " + err.Error(),
			"summary": summary,
		})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *SyncHandler) ListLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	records, err := h.syncLog.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list sync history"))
		return
	}
	c.JSON(http.StatusOK, records)
}
