// Package api serves the product catalog over HTTP.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pankajredekar/productsvc/internal/product"
	"github.com/sirupsen/logrus"
)

// ProductService is the subset of product.Service the handlers call.
type ProductService interface {
	Create(ctx context.Context, fields product.Fields) (*product.Product, error)
	FindAll(ctx context.Context, pagination product.Pagination) (*product.Page, error)
	FindOne(ctx context.Context, id uint) (*product.Product, error)
	Update(ctx context.Context, id uint, patch product.Patch) (*product.Product, error)
	Remove(ctx context.Context, id uint) (*product.Product, error)
}

type createProductRequest struct {
	Name  string   `json:"name" binding:"required"`
	Price *float64 `json:"price" binding:"required,min=0"`
}

type updateProductRequest struct {
	ID    *uint    `json:"id"`
	Name  *string  `json:"name" binding:"omitempty,min=1"`
	Price *float64 `json:"price" binding:"omitempty,min=0"`
}

type listProductsQuery struct {
	Page  *int `form:"page" binding:"omitempty,min=1"`
	Limit *int `form:"limit" binding:"omitempty,min=1"`
}

func (q listProductsQuery) pagination() product.Pagination {
	var p product.Pagination
	if q.Page != nil {
		p.Page = *q.Page
	}
	if q.Limit != nil {
		p.Limit = *q.Limit
	}
	return p
}

type ProductHandler struct {
	service ProductService
	log     logrus.FieldLogger
}

func NewProductHandler(service ProductService, logger logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PATCH("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.RemoveProduct)
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), product.Fields{Name: req.Name, Price: *req.Price})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	var query listProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.log.Warnf("Invalid pagination parameters: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid pagination parameters: "+err.Error())
		return
	}

	page, err := h.service.FindAll(c.Request.Context(), query.pagination())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	p, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for update product ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, product.Patch{
		ID:    req.ID,
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) RemoveProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	removed, err := h.service.Remove(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, removed)
}

// productID parses the :id path parameter and writes a 400 when it is not a
// positive integer.
func (h *ProductHandler) productID(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 0)
	if err != nil || id == 0 {
		h.log.Warnf("Invalid product ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return 0, false
	}
	return uint(id), true
}

func (h *ProductHandler) fail(c *gin.Context, err error) {
	statusCode := mapErrorToStatus(err)
	if statusCode >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	ErrorResponse(c, statusCode, errorMessage(err))
}
