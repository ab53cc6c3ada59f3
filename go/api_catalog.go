package shopserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Apurer/go-shop-api/internal/domains/catalog/adapters/http/mapper"
	catalogapp "github.com/Apurer/go-shop-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-shop-api/internal/domains/catalog/ports"
)

// CatalogAPI implements the product management endpoints.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI wires dependencies.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Post /v2/product
// Add a new product to the catalog
func (api *CatalogAPI) AddProduct(c *gin.Context) {
	var payload cataloghttpmapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := cataloghttpmapper.ToDomainProduct(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateProduct(c.Request.Context(), product)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainProduct(saved))
}

// Put /v2/product/:productId
// Update an existing product
func (api *CatalogAPI) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload cataloghttpmapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	payload.ID = id
	product, err := cataloghttpmapper.ToDomainProduct(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(updated))
}

// Get /v2/product/:productId
// Find product by ID
func (api *CatalogAPI) GetProductById(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Get /v2/product
// List all products
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	result := make([]cataloghttpmapper.Product, 0, len(products))
	for _, product := range products {
		result = append(result, cataloghttpmapper.FromDomainProduct(product))
	}
	c.JSON(http.StatusOK, result)
}

// Delete /v2/product/:productId
// Remove a product from the catalog
func (api *CatalogAPI) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), id); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func respondCatalogError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, catalogports.ErrNotFound) {
		respondError(c, http.StatusNotFound, err)
		return
	}
	if errors.Is(err, catalogapp.ErrInvalidInput) {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	respondError(c, http.StatusInternalServerError, err)
}
