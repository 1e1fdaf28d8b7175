package qkart

import (
	"time"

	"github.com/talkincode/qkart/config"
	"gorm.io/gorm"
)

// Services bundles the workflow services handed to the HTTP layer
type Services struct {
	User    *UserService
	Auth    *AuthService
	Token   *TokenService
	Product *ProductService
	Cart    *CartService
}

// NewServices wires the gorm repositories into the service layer.
// events may be nil when order event publishing is disabled.
func NewServices(db *gorm.DB, cfg *config.AppConfig, events OrderEventPublisher) *Services {
	userRepo := NewGormUserRepository(db)
	productRepo := NewGormProductRepository(db)
	cartRepo := NewGormCartRepository(db)

	return &Services{
		User:    NewUserService(userRepo),
		Auth:    NewAuthService(userRepo),
		Token:   NewTokenService(cfg.Jwt.Secret, time.Duration(cfg.Jwt.AccessExpireMinutes)*time.Minute),
		Product: NewProductService(productRepo),
		Cart:    NewCartService(cartRepo, cartRepo, productRepo, events),
	}
}
