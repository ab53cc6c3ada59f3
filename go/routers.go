// Package shopserver wires the HTTP transport for the shop API.
package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the API handlers per section.
type ApiHandleFunctions struct {
	UserAPI     UserAPI
	CatalogAPI  CatalogAPI
	CartAPI     CartAPI
	CheckoutAPI CheckoutAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// defaultHandleFunc is used when a route has no handler registered.
func defaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"RegisterUser",
			http.MethodPost,
			"/v2/user/register",
			handleFunctions.UserAPI.RegisterUser,
		},
		{
			"LoginUser",
			http.MethodPost,
			"/v2/user/login",
			handleFunctions.UserAPI.LoginUser,
		},
		{
			"LogoutUser",
			http.MethodPost,
			"/v2/user/logout",
			handleFunctions.UserAPI.LogoutUser,
		},
		{
			"GetUserById",
			http.MethodGet,
			"/v2/user/:userId",
			handleFunctions.UserAPI.GetUserById,
		},
		{
			"DeleteUser",
			http.MethodDelete,
			"/v2/user/:userId",
			handleFunctions.UserAPI.DeleteUser,
		},
		{
			"AddProduct",
			http.MethodPost,
			"/v2/product",
			handleFunctions.CatalogAPI.AddProduct,
		},
		{
			"ListProducts",
			http.MethodGet,
			"/v2/product",
			handleFunctions.CatalogAPI.ListProducts,
		},
		{
			"GetProductById",
			http.MethodGet,
			"/v2/product/:productId",
			handleFunctions.CatalogAPI.GetProductById,
		},
		{
			"UpdateProduct",
			http.MethodPut,
			"/v2/product/:productId",
			handleFunctions.CatalogAPI.UpdateProduct,
		},
		{
			"DeleteProduct",
			http.MethodDelete,
			"/v2/product/:productId",
			handleFunctions.CatalogAPI.DeleteProduct,
		},
		{
			"GetCart",
			http.MethodGet,
			"/v2/cart/:userId",
			handleFunctions.CartAPI.GetCart,
		},
		{
			"AddCartItem",
			http.MethodPost,
			"/v2/cart/:userId/items",
			handleFunctions.CartAPI.AddCartItem,
		},
		{
			"RemoveCartItem",
			http.MethodDelete,
			"/v2/cart/:userId/items/:productId",
			handleFunctions.CartAPI.RemoveCartItem,
		},
		{
			"CheckoutCart",
			http.MethodPost,
			"/v2/cart/:userId/checkout",
			handleFunctions.CheckoutAPI.CheckoutCart,
		},
		{
			"GetOrderById",
			http.MethodGet,
			"/v2/order/:orderId",
			handleFunctions.CheckoutAPI.GetOrderById,
		},
		{
			"ListUserOrders",
			http.MethodGet,
			"/v2/user/:userId/orders",
			handleFunctions.CheckoutAPI.ListUserOrders,
		},
	}
}
