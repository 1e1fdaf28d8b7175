package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/qkart/internal/qkart"
	"github.com/talkincode/qkart/internal/webserver"
)

type loginPayload struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func registerAuthRoutes() {
	webserver.PubPOST("/auth/register", registerUser)
	webserver.PubPOST("/auth/login", login)
}

func registerUser(c echo.Context) error {
	var payload qkart.RegisterForm
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration parameters", nil)
	}

	svcs := webserver.GetServices(c)
	user, err := svcs.User.CreateUser(c.Request().Context(), payload)
	if err != nil {
		return failErr(c, err)
	}

	tokens, err := svcs.Token.GenerateAuthTokens(user)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to generate tokens", nil)
	}

	return created(c, echo.Map{"user": user, "tokens": tokens})
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login parameters", nil)
	}

	svcs := webserver.GetServices(c)
	user, err := svcs.Auth.LoginWithEmailAndPassword(c.Request().Context(), payload.Email, payload.Password)
	if err != nil {
		return failErr(c, err)
	}

	tokens, err := svcs.Token.GenerateAuthTokens(user)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to generate tokens", nil)
	}

	return ok(c, echo.Map{"user": user, "tokens": tokens})
}
