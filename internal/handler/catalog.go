package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/apierror"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/service"
)

// CatalogHandler serves the secondary mirrors: clients, categories,
// warehouses and payment methods. Read-only — these tables change only via
// catalog refresh.
type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) ListClients(c *gin.Context) {
	clients, err := h.svc.ListClients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list clients"))
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list categories"))
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) ListWarehouses(c *gin.Context) {
	warehouses, err := h.svc.ListWarehouses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list warehouses"))
		return
	}
	c.JSON(http.StatusOK, warehouses)
}

func (h *CatalogHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.svc.ListPaymentMethods(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list payment methods"))
		return
	}
	c.JSON(http.StatusOK, methods)
}
