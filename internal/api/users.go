package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/qkart/internal/webserver"
)

type addressPayload struct {
	Address string `json:"address" form:"address"`
}

func registerUserRoutes() {
	webserver.ApiGET("/users/:userId", getUser)
	webserver.ApiPUT("/users/:userId", setUserAddress)
}

func getUser(c echo.Context) error {
	id, err := parseIDParam(c, "userId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}

	user := webserver.GetCurrentUser(c)
	// Users may only read their own record
	if user.ID != id {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
	}

	if c.QueryParam("q") == "address" {
		return ok(c, echo.Map{"address": user.Address})
	}
	return ok(c, user)
}

func setUserAddress(c echo.Context) error {
	id, err := parseIDParam(c, "userId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}

	user := webserver.GetCurrentUser(c)
	if user.ID != id {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
	}

	var payload addressPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse address", nil)
	}

	address, err := webserver.GetServices(c).User.SetAddress(c.Request().Context(), user, payload.Address)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, echo.Map{"address": address})
}
