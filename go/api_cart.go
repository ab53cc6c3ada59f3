package shopserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartapp "github.com/Apurer/go-shop-api/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-shop-api/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-shop-api/internal/domains/cart/ports"
)

// CartAPI implements the shopping cart endpoints.
type CartAPI struct {
	service cartports.Service
}

// NewCartAPI wires dependencies.
func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

// AddItemRequest is the inbound payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// CartLineResponse is one raw cart line.
type CartLineResponse struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// CartResponse is the raw cart shape returned by mutations.
type CartResponse struct {
	UserID int64              `json:"userId"`
	Lines  []CartLineResponse `json:"lines"`
}

// PricedLineResponse is a cart line joined with catalog data.
type PricedLineResponse struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
}

// PricedCartResponse is the display cart with a running total.
type PricedCartResponse struct {
	Lines []PricedLineResponse `json:"lines"`
	Total float64              `json:"total"`
}

// Post /v2/cart/:userId/items
// Add a product to the user's cart
func (api *CartAPI) AddCartItem(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	var payload AddItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	cart, err := api.service.AddItem(c.Request.Context(), userID, payload.ProductID, payload.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainCart(cart))
}

// Delete /v2/cart/:userId/items/:productId
// Remove a product from the user's cart
func (api *CartAPI) RemoveCartItem(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	cart, err := api.service.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainCart(cart))
}

// Get /v2/cart/:userId
// View the user's cart with current prices
func (api *CartAPI) GetCart(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	priced, err := api.service.ViewCart(c.Request.Context(), userID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response := PricedCartResponse{Lines: make([]PricedLineResponse, 0, len(priced.Lines)), Total: priced.Total}
	for _, line := range priced.Lines {
		response.Lines = append(response.Lines, PricedLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}
	c.JSON(http.StatusOK, response)
}

func fromDomainCart(cart *cartdomain.Cart) CartResponse {
	if cart == nil {
		return CartResponse{}
	}
	response := CartResponse{UserID: cart.UserID, Lines: make([]CartLineResponse, 0, len(cart.Lines))}
	for _, line := range cart.Lines {
		response.Lines = append(response.Lines, CartLineResponse{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return response
}

func respondCartError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, cartapp.ErrInvalidInput) {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	respondError(c, http.StatusInternalServerError, err)
}
