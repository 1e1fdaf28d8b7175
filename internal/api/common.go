// Package api adapts HTTP semantics onto the qkart workflow services.
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/qkart/pkg/apierrors"
)

// Register wires every handler group onto the running web server
func Register() {
	registerAuthRoutes()
	registerUserRoutes()
	registerProductRoutes()
	registerCartRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	resp := echo.Map{"code": code, "message": message}
	if detail != nil {
		resp["detail"] = detail
	}
	return c.JSON(status, resp)
}

// failErr maps a service error onto the envelope, keeping the status
// the service chose
func failErr(c echo.Context, err error) error {
	if apiErr, isApi := apierrors.From(err); isApi {
		return fail(c, apiErr.Status, apiErr.Code, apiErr.Message, nil)
	}
	return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
