package handler

import (
	"net/http"

	"github.com/baikov/orders-backend/internal/apierror"
	"github.com/baikov/orders-backend/internal/dto"
	"github.com/baikov/orders-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerProductsHandler serves per-customer product aliases. Aliases are
// created by the parse pipeline; the API only reads them and manages the
// base-product link.
type CustomerProductsHandler struct{ svc service.CustomerProductService }

func NewCustomerProductsHandler(svc service.CustomerProductService) *CustomerProductsHandler {
	return &CustomerProductsHandler{svc: svc}
}

func (h *CustomerProductsHandler) List(c *gin.Context) {
	var filter dto.CustomerProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	data, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list customer products"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": data, "total": total, "page": filter.Page, "limit": filter.Limit,
	})
}

func (h *CustomerProductsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Customer product not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomerProductsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.UpdateCustomerProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CustomerProductsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
