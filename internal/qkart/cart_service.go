package qkart

import (
	"context"
	"errors"
	"time"

	"github.com/talkincode/qkart/internal/domain"
	"github.com/talkincode/qkart/pkg/apierrors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderEventPublisher notifies downstream consumers of a completed checkout
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, user *domain.User, items []domain.CartItem, total float64) error
}

// CartService orchestrates cart mutation and the checkout transaction
type CartService struct {
	cartRepo     CartRepository
	checkoutRepo CheckoutRepository
	productRepo  ProductRepository
	events       OrderEventPublisher
}

// NewCartService creates the cart workflow service. events may be nil
// when order event publishing is disabled.
func NewCartService(
	cartRepo CartRepository,
	checkoutRepo CheckoutRepository,
	productRepo ProductRepository,
	events OrderEventPublisher,
) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		checkoutRepo: checkoutRepo,
		productRepo:  productRepo,
		events:       events,
	}
}

// GetCartByUser fetches the user's cart
func (s *CartService) GetCartByUser(ctx context.Context, user *domain.User) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetByEmail(ctx, user.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.NotFound("User does not have a cart")
	}
	if err != nil {
		return nil, apierrors.Internal("Failed to query cart")
	}
	return cart, nil
}

// AddProductToCart appends a new product to the user's cart, creating
// the cart on first use. Adding a product already present is rejected;
// the client must use update or remove instead.
func (s *CartService) AddProductToCart(ctx context.Context, user *domain.User, productID int64, quantity int) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetByEmail(ctx, user.Email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		cart = &domain.Cart{Email: user.Email, PaymentOption: domain.DefaultPaymentOption}
		if err := s.cartRepo.Create(ctx, cart); err != nil {
			zap.L().Error("cart creation failed", zap.String("email", user.Email), zap.Error(err))
			return nil, apierrors.Internal("Failed to create cart")
		}
	case err != nil:
		return nil, apierrors.Internal("Failed to query cart")
	}

	if cart.FindItem(productID) != -1 {
		return nil, apierrors.BadRequest("Product already in cart. Use the cart sidebar to update or remove product from cart")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.BadRequest("Product doesn't exist in database")
	}
	if err != nil {
		return nil, apierrors.Internal("Failed to query product")
	}

	item := domain.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Name:      product.Name,
		Cost:      product.Cost,
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.cartRepo.AddItem(ctx, &item); err != nil {
		return nil, apierrors.Internal("Failed to add product to cart")
	}
	cart.CartItems = append(cart.CartItems, item)
	return cart, nil
}

// UpdateProductInCart overwrites the quantity of a product already in
// the cart, keeping its position in the item list.
func (s *CartService) UpdateProductInCart(ctx context.Context, user *domain.User, productID int64, quantity int) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetByEmail(ctx, user.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.BadRequest("User does not have a cart. Use POST to create cart and add a product")
	}
	if err != nil {
		return nil, apierrors.Internal("Failed to query cart")
	}

	idx := cart.FindItem(productID)
	if idx == -1 {
		return nil, apierrors.BadRequest("Product not in cart")
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.BadRequest("Product doesn't exist in database")
		}
		return nil, apierrors.Internal("Failed to query product")
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, cart.CartItems[idx].ID, quantity); err != nil {
		return nil, apierrors.Internal("Failed to update product in cart")
	}
	cart.CartItems[idx].Quantity = quantity
	return cart, nil
}

// DeleteProductFromCart removes a single product from the cart,
// preserving the order of the remaining items.
func (s *CartService) DeleteProductFromCart(ctx context.Context, user *domain.User, productID int64) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetByEmail(ctx, user.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.BadRequest("User does not have a cart")
	}
	if err != nil {
		return nil, apierrors.Internal("Failed to query cart")
	}

	idx := cart.FindItem(productID)
	if idx == -1 {
		return nil, apierrors.BadRequest("Product not in cart")
	}

	if err := s.cartRepo.RemoveItem(ctx, cart.CartItems[idx].ID); err != nil {
		return nil, apierrors.Internal("Failed to remove product from cart")
	}
	cart.CartItems = append(cart.CartItems[:idx], cart.CartItems[idx+1:]...)
	return cart, nil
}

// Checkout validates the cart and converts it into a wallet debit,
// leaving the cart present but empty. The validation order is fixed:
// missing cart, empty cart, unset address, insufficient balance.
func (s *CartService) Checkout(ctx context.Context, user *domain.User) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetByEmail(ctx, user.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.NotFound("User does not have a cart")
	}
	if err != nil {
		return nil, apierrors.Internal("Failed to query cart")
	}

	if len(cart.CartItems) == 0 {
		return nil, apierrors.BadRequest("Cart is empty")
	}

	if !user.HasSetNonDefaultAddress() {
		return nil, apierrors.BadRequest("Address not set")
	}

	total := cart.Total()
	if total > user.WalletMoney {
		return nil, apierrors.BadRequest("Insufficient Balance")
	}

	ok, err := s.checkoutRepo.DebitAndClear(ctx, user.ID, cart.ID, total)
	if err != nil {
		zap.L().Error("checkout transaction failed",
			zap.String("email", user.Email),
			zap.Float64("total", total),
			zap.Error(err))
		return nil, apierrors.Internal("Checkout failed")
	}
	if !ok {
		// The wallet moved between validation and debit
		return nil, apierrors.BadRequest("Insufficient Balance")
	}

	user.WalletMoney -= total
	items := cart.CartItems
	cart.CartItems = []domain.CartItem{}

	if s.events != nil {
		if err := s.events.PublishOrderPlaced(ctx, user, items, total); err != nil {
			zap.L().Warn("order event publish failed",
				zap.String("email", user.Email),
				zap.Error(err))
		}
	}

	zap.L().Info("checkout complete",
		zap.String("email", user.Email),
		zap.Int("items", len(items)),
		zap.Float64("total", total))
	return cart, nil
}
