package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/infra"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/repository"
)

type HealthHandler struct {
	db    *gorm.DB
	cb    *infra.CircuitBreaker
	sales repository.SaleRepository
}

func NewHealthHandler(db *gorm.DB, cb *infra.CircuitBreaker, sales repository.SaleRepository) *HealthHandler {
	return &HealthHandler{db: db, cb: cb, sales: sales}
}

// Check reports store health plus the two numbers a cashier-facing shell
// actually surfaces: link state and how many sales are waiting to sync.
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "up"

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	var pending int64
	if dbStatus == "up" {
		if pending, err = h.sales.CountPending(c.Request.Context()); err != nil {
			pending = -1
		}
	}

	c.JSON(status, gin.H{
		"status":        dbStatus,
		"circuit":       h.cb.State().String(),
		"pending_sales": pending,
	})
}
