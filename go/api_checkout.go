package shopserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	checkoutapp "github.com/Apurer/go-shop-api/internal/domains/checkout/application"
	checkoutdomain "github.com/Apurer/go-shop-api/internal/domains/checkout/domain"
	checkoutports "github.com/Apurer/go-shop-api/internal/domains/checkout/ports"
	apierrors "github.com/Apurer/go-shop-api/internal/shared/errors"
)

// CheckoutAPI implements the checkout and order endpoints.
type CheckoutAPI struct {
	service   checkoutports.Service
	workflows checkoutports.CheckoutOrchestrator
	responder *apierrors.ChainedResponder
}

// NewCheckoutAPI wires dependencies. workflows may be nil to run checkout in-process.
func NewCheckoutAPI(service checkoutports.Service, workflows checkoutports.CheckoutOrchestrator) CheckoutAPI {
	return CheckoutAPI{
		service:   service,
		workflows: workflows,
		responder: apierrors.NewChainedResponder("", mapCheckoutError),
	}
}

// OrderLineResponse is one purchased line with its captured price.
type OrderLineResponse struct {
	ProductID int64   `json:"productId"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
}

// OrderResponse is the outbound order shape.
type OrderResponse struct {
	ID        int64               `json:"id"`
	UserID    int64               `json:"userId"`
	Lines     []OrderLineResponse `json:"lines"`
	Total     float64             `json:"total"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Post /v2/cart/:userId/checkout
// Convert the user's cart into an order
func (api *CheckoutAPI) CheckoutCart(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	order, err := api.runCheckout(c, userID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainOrder(order))
}

func (api *CheckoutAPI) runCheckout(c *gin.Context, userID int64) (*checkoutdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.Run(c.Request.Context(), userID)
	}
	return api.service.Checkout(c.Request.Context(), userID)
}

// Get /v2/order/:orderId
// Find order by ID
func (api *CheckoutAPI) GetOrderById(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainOrder(order))
}

// Get /v2/user/:userId/orders
// List the user's orders
func (api *CheckoutAPI) ListUserOrders(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	orders, err := api.service.ListOrders(c.Request.Context(), userID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	result := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, fromDomainOrder(order))
	}
	c.JSON(http.StatusOK, result)
}

func fromDomainOrder(order *checkoutdomain.Order) OrderResponse {
	if order == nil {
		return OrderResponse{}
	}
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}
	return OrderResponse{
		ID:        order.ID,
		UserID:    order.UserID,
		Lines:     lines,
		Total:     order.Total,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}
}

// mapCheckoutError translates the checkout error taxonomy into problem responses.
func mapCheckoutError(err error) (apierrors.ProblemDetail, bool) {
	var productErr *checkoutapp.ProductError
	switch {
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return apierrors.ErrEmptyCart, true
	case errors.As(err, &productErr) && errors.Is(err, checkoutapp.ErrInsufficientStock):
		return apierrors.NewInsufficientStockProblem(productErr.ProductID), true
	case errors.As(err, &productErr) && errors.Is(err, checkoutapp.ErrProductUnavailable):
		return apierrors.NewProductUnavailableProblem(productErr.ProductID), true
	case errors.Is(err, checkoutports.ErrOrderNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, checkoutapp.ErrStorageFailure):
		return apierrors.ErrInternal.WithDetail(err.Error()), true
	default:
		return apierrors.ProblemDetail{}, false
	}
}
