package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberpro-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barberpro-booking/internal/httperr"
	"github.com/BruksfildServices01/barberpro-booking/internal/httpresp"
	"github.com/BruksfildServices01/barberpro-booking/internal/models"
)

type ProductHandler struct {
	catalog catalog.Repository
}

func NewProductHandler(catalog catalog.Repository) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	SKU           string  `json:"sku"`
	ImageURL      string  `json:"image_url"`
	SalePrice     float64 `json:"sale_price" binding:"gte=0"`
	CostPrice     float64 `json:"cost_price" binding:"gte=0"`
	StockQuantity int     `json:"stock_quantity" binding:"gte=0"`
	MinStockAlert int     `json:"min_stock_alert" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	SKU           *string  `json:"sku"`
	ImageURL      *string  `json:"image_url"`
	SalePrice     *float64 `json:"sale_price" binding:"omitempty,gte=0"`
	CostPrice     *float64 `json:"cost_price" binding:"omitempty,gte=0"`
	StockQuantity *int     `json:"stock_quantity" binding:"omitempty,gte=0"`
	MinStockAlert *int     `json:"min_stock_alert" binding:"omitempty,gte=0"`
	Active        *bool    `json:"active"`
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	f := catalog.ProductFilter{
		Category: c.Query("category"),
		Query:    c.Query("query"),
		LowStock: c.Query("low_stock") == "true",
	}

	// "true", "false" ou vazio
	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		active := true
		f.Active = &active
	case "false":
		active := false
		f.Active = &active
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), tenantFrom(c), f)
	if err != nil {
		httperr.Internal(c, "failed_to_list_products", "Erro ao listar produtos.")
		return
	}
	httpresp.List(c, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "invalid_name", "Nome obrigatório.")
		return
	}

	product := &models.Product{
		TenantID:      tenantFrom(c),
		Name:          name,
		Description:   strings.TrimSpace(req.Description),
		Category:      strings.ToLower(strings.TrimSpace(req.Category)),
		SKU:           strings.TrimSpace(req.SKU),
		ImageURL:      strings.TrimSpace(req.ImageURL),
		SalePrice:     req.SalePrice,
		CostPrice:     req.CostPrice,
		StockQuantity: req.StockQuantity,
		MinStockAlert: req.MinStockAlert,
		Active:        true,
	}

	if err := h.catalog.CreateProduct(c.Request.Context(), product); err != nil {
		httperr.Internal(c, "failed_to_create_product", "Erro ao criar produto.")
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if product.TenantID != tenantFrom(c) {
		fail(c, httperr.TenantMismatch("product_tenant_mismatch"))
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome obrigatório.")
			return
		}
		product.Name = name
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		product.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.SKU != nil {
		product.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.SalePrice != nil {
		product.SalePrice = *req.SalePrice
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.MinStockAlert != nil {
		product.MinStockAlert = *req.MinStockAlert
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.catalog.SaveProduct(c.Request.Context(), product); err != nil {
		httperr.Internal(c, "failed_to_update_product", "Erro ao atualizar produto.")
		return
	}

	c.JSON(http.StatusOK, product)
}
