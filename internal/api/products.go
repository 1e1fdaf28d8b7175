package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/qkart/internal/webserver"
)

func registerProductRoutes() {
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/:productId", getProduct)
}

func listProducts(c echo.Context) error {
	products, err := webserver.GetServices(c).Product.List(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, products)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "productId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	product, err := webserver.GetServices(c).Product.GetByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, product)
}
