package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/baikov/orders-backend/internal/apierror"
	"github.com/baikov/orders-backend/internal/dto"
	"github.com/baikov/orders-backend/internal/parser"
	"github.com/baikov/orders-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

// Upload godoc
// @Summary Upload a customer order file
// @Tags orders
// @Accept multipart/form-data
// @Produce json
// @Param customer formData string true "Customer ID"
// @Param file formData file true "Order spreadsheet or ZIP bundle"
// @Success 201 {object} dto.CustomerOrderResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/customer-orders [post]
func (h *OrdersHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Missing file"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Could not read uploaded file"))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Could not read uploaded file"))
		return
	}

	req := dto.CreateCustomerOrderRequest{
		CustomerID: c.PostForm("customer"),
		FileName:   filepath.Base(fileHeader.Filename),
		Data:       data,
	}
	if !validateStruct(c, &req) {
		return
	}

	resp, err := h.svc.ProcessUpload(c.Request.Context(), req)
	if err != nil {
		c.JSON(uploadErrorStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// uploadErrorStatus maps parse failures to response codes. All parse errors
// are client errors: the file, not the service, is at fault.
func uploadErrorStatus(err error) int {
	switch {
	case errors.Is(err, parser.ErrUnknownFormat),
		errors.Is(err, parser.ErrUnreadableFile),
		errors.Is(err, parser.ErrFileTooLarge),
		errors.Is(err, parser.ErrNotAnArchive):
		return http.StatusBadRequest
	case err.Error() == "customer not found":
		return http.StatusNotFound
	case err.Error() == "invalid customer id":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *OrdersHandler) ListCustomerOrders(c *gin.Context) {
	var filter dto.CustomerOrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListCustomerOrders(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list customer orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) GetCustomerOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.GetCustomerOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Customer order not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) ListOrders(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListOrders(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Could not list orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Order not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportPDF streams the picking sheet for one trade-point order.
func (h *OrdersHandler) ExportPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	path, err := h.svc.ExportOrderPDF(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
