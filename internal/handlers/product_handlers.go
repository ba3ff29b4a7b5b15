package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoirulmuhlisin/unitproduksi/internal/services"
	"github.com/khoirulmuhlisin/unitproduksi/internal/store"
	"github.com/khoirulmuhlisin/unitproduksi/pkg/utils"
)

// ProductHandler holds the product catalog service.
type ProductHandler struct {
	productService services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ps services.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

// CreateProduct handles catalog entry of a new product.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPricing) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Sell price must be greater than buy price.", err.Error()))
			return
		}
		respondStorageOrInternal(c, err, "CreateProduct")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// GetProducts lists the whole catalog.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.GetProducts(c.Request.Context())
	if err != nil {
		respondStorageOrInternal(c, err, "GetProducts")
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductByID retrieves a single product.
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	product, err := h.productService.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
			return
		}
		respondStorageOrInternal(c, err, "GetProductByID")
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct replaces a product's catalog fields.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidPricing):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Sell price must be greater than buy price.", err.Error()))
		default:
			respondStorageOrInternal(c, err, "UpdateProduct")
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product from the catalog.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", err.Error()))
			return
		}
		respondStorageOrInternal(c, err, "DeleteProduct")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// respondStorageOrInternal maps a storage failure to its own error code
// so callers can tell persistence problems from programming errors.
func respondStorageOrInternal(c *gin.Context, err error, op string) {
	utils.LogError(err, op+": unexpected error")
	if errors.Is(err, store.ErrStorageFailure) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeStorageFailure, "Record store read/write failed.", err.Error()))
		return
	}
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error.", "Internal error"))
}
