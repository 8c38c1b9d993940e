package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/apierror"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/dto"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/service"
)

type ProductsHandler struct{ svc service.CatalogService }

func NewProductsHandler(svc service.CatalogService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func (h *ProductsHandler) List(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list products"))
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductsHandler) GetByCode(c *gin.Context) {
	product, err := h.svc.FindProductByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to look up product"))
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, apierror.New("product not found"))
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductsHandler) Search(c *gin.Context) {
	var filter dto.SearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil || filter.Q == "" {
		c.JSON(http.StatusBadRequest, apierror.New("query parameter q is required"))
		return
	}
	products, err := h.svc.SearchProducts(c.Request.Context(), filter.Q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("search failed"))
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductsHandler) Count(c *gin.Context) {
	count, err := h.svc.CountProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to count products"))
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

func (h *ProductsHandler) UpdateStock(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product id"))
		return
	}
	var req dto.UpdateStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateStock(c.Request.Context(), id, req.Qty); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("failed to update stock"))
		return
	}
	c.Status(http.StatusNoContent)
}
