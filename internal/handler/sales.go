package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/apierror"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/dto"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/repository"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/service"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler {
	return &SalesHandler{svc: svc}
}

// Enqueue records a completed sale. 409 with detail "already recorded" tells a
// retrying caller the original enqueue succeeded.
func (h *SalesHandler) Enqueue(c *gin.Context) {
	var req dto.EnqueueSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sale, err := h.svc.Enqueue(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateLocalRef):
			c.JSON(http.StatusConflict, apierror.New("sale already recorded for this local_ref"))
		case errors.Is(err, service.ErrMalformedPayload):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("failed to record sale"))
		}
		return
	}
	c.JSON(http.StatusCreated, dto.MapSale(*sale))
}

func (h *SalesHandler) ListPending(c *gin.Context) {
	sales, err := h.svc.ListPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list pending sales"))
		return
	}
	resp := make([]dto.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		resp = append(resp, dto.MapSale(sale))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) PendingCount(c *gin.Context) {
	count, err := h.svc.CountPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to count pending sales"))
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list sales"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) Requeue(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid sale id"))
		return
	}
	if err := h.svc.Requeue(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, apierror.New("sale not found"))
		case errors.Is(err, repository.ErrInvalidTransition):
			c.JSON(http.StatusConflict, apierror.New("only failed sales can be requeued"))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("failed to requeue sale"))
		}
		return
	}
	c.Status(http.StatusNoContent)
}
