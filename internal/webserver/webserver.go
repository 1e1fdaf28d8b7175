// Package webserver hosts the echo HTTP server, the JWT auth
// middleware and the route registration helpers used by the api
// handlers.
package webserver

import (
	"fmt"
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/talkincode/qkart/config"
	"github.com/talkincode/qkart/internal/domain"
	"github.com/talkincode/qkart/internal/qkart"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/golang-jwt/jwt/v5"
)

// Context keys shared with the api handler package
const (
	ContextKeyDB       = "qkart_db"
	ContextKeyServices = "qkart_services"
	ContextKeyUser     = "qkart_current_user"
)

type WebServer struct {
	root *echo.Echo
	pub  *echo.Group
	api  *echo.Group
	cfg  *config.AppConfig
	svcs *qkart.Services
}

var server *WebServer

// New builds a server around the service container. db may be nil in
// tests; handlers reach the store through the services only.
func New(cfg *config.AppConfig, db *gorm.DB, svcs *qkart.Services) *WebServer {
	root := echo.New()
	root.HideBanner = true
	root.HidePort = true
	root.Use(middleware.Recover())
	root.Use(requestLogger())
	root.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyDB, db)
			c.Set(ContextKeyServices, svcs)
			return next(c)
		}
	})

	ws := &WebServer{root: root, cfg: cfg, svcs: svcs}
	ws.pub = root.Group("/v1")
	ws.api = root.Group("/v1")
	ws.api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Jwt.Secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(qkart.TokenClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"code":    "UNAUTHORIZED",
				"message": "Please authenticate",
			})
		},
	}))
	ws.api.Use(ws.currentUserMiddleware)
	return ws
}

// Init builds the package-level server the Api/Pub helpers register on
func Init(cfg *config.AppConfig, db *gorm.DB, svcs *qkart.Services) *WebServer {
	server = New(cfg, db, svcs)
	return server
}

// Listen starts the package-level server
func Listen() error {
	addr := fmt.Sprintf("%s:%d", server.cfg.Web.Host, server.cfg.Web.Port)
	zap.L().Info("starting web server", zap.String("listen", addr))
	return server.root.Start(addr)
}

func (ws *WebServer) Root() *echo.Echo {
	return ws.root
}

// currentUserMiddleware resolves the validated token subject to a
// stored user and injects it into the request context
func (ws *WebServer) currentUserMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return unauthorized(c)
		}
		claims, ok := token.Claims.(*qkart.TokenClaims)
		if !ok || claims.Type != qkart.TokenTypeAccess {
			return unauthorized(c)
		}
		uid, err := claims.SubjectID()
		if err != nil {
			return unauthorized(c)
		}
		user, err := ws.svcs.User.GetUserByID(c.Request().Context(), uid)
		if err != nil {
			return unauthorized(c)
		}
		c.Set(ContextKeyUser, user)
		return next(c)
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"code":    "UNAUTHORIZED",
		"message": "Please authenticate",
	})
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)))
			return nil
		}
	}
}

// GetCurrentUser returns the authenticated user placed on the context
// by the auth middleware
func GetCurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(ContextKeyUser).(*domain.User)
	return user
}

// GetServices returns the service container for the request
func GetServices(c echo.Context) *qkart.Services {
	svcs, _ := c.Get(ContextKeyServices).(*qkart.Services)
	return svcs
}

// GetDB returns the request database handle
func GetDB(c echo.Context) *gorm.DB {
	db, _ := c.Get(ContextKeyDB).(*gorm.DB)
	return db
}

// Authenticated route registration helpers

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

// Public route registration helpers

func PubGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h)
}

func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}
