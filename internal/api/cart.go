package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/qkart/internal/webserver"
)

type cartItemPayload struct {
	ProductID string `json:"productId" form:"productId"`
	Quantity  int    `json:"quantity" form:"quantity"`
}

func registerCartRoutes() {
	webserver.ApiGET("/cart", getCart)
	webserver.ApiPOST("/cart", addProductToCart)
	webserver.ApiPUT("/cart", updateProductInCart)
	webserver.ApiDELETE("/cart", deleteProductFromCart)
	webserver.ApiPUT("/cart/checkout", checkout)
}

func (p *cartItemPayload) productID() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(p.ProductID), 10, 64)
}

func getCart(c echo.Context) error {
	user := webserver.GetCurrentUser(c)
	cart, err := webserver.GetServices(c).Cart.GetCartByUser(c.Request().Context(), user)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, cart)
}

func addProductToCart(c echo.Context) error {
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart parameters", nil)
	}
	productID, err := payload.productID()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if payload.Quantity < 1 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Quantity must be a positive integer", nil)
	}

	user := webserver.GetCurrentUser(c)
	cart, err := webserver.GetServices(c).Cart.AddProductToCart(c.Request().Context(), user, productID, payload.Quantity)
	if err != nil {
		return failErr(c, err)
	}
	return created(c, cart)
}

func updateProductInCart(c echo.Context) error {
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart parameters", nil)
	}
	productID, err := payload.productID()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if payload.Quantity < 1 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Quantity must be a positive integer", nil)
	}

	user := webserver.GetCurrentUser(c)
	cart, err := webserver.GetServices(c).Cart.UpdateProductInCart(c.Request().Context(), user, productID, payload.Quantity)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, cart)
}

func deleteProductFromCart(c echo.Context) error {
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart parameters", nil)
	}
	if payload.ProductID == "" {
		payload.ProductID = c.QueryParam("productId")
	}
	productID, err := payload.productID()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	user := webserver.GetCurrentUser(c)
	if _, err := webserver.GetServices(c).Cart.DeleteProductFromCart(c.Request().Context(), user, productID); err != nil {
		return failErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func checkout(c echo.Context) error {
	user := webserver.GetCurrentUser(c)
	if _, err := webserver.GetServices(c).Cart.Checkout(c.Request().Context(), user); err != nil {
		return failErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
