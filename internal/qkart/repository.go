package qkart

import (
	"context"
	"errors"

	"github.com/talkincode/qkart/internal/domain"
	"gorm.io/gorm"
)

// UserRepository interface for user account data access
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateAddress(ctx context.Context, id int64, address string) error
}

// ProductRepository interface for catalog data access
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// CartRepository handles database operations for carts and their items
type CartRepository interface {
	// GetByEmail retrieves a cart with its items in insertion order
	GetByEmail(ctx context.Context, email string) (*domain.Cart, error)

	// Create inserts a new empty cart
	Create(ctx context.Context, cart *domain.Cart) error

	// AddItem appends a line item to a cart
	AddItem(ctx context.Context, item *domain.CartItem) error

	// UpdateItemQuantity overwrites the quantity of an existing line item
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error

	// RemoveItem deletes a single line item
	RemoveItem(ctx context.Context, itemID int64) error
}

// CheckoutRepository performs the checkout write as one transaction
type CheckoutRepository interface {
	// DebitAndClear atomically debits total from the user's wallet and
	// removes every item from the cart. The debit is a conditional
	// decrement; ok is false when the balance is short and nothing
	// is changed.
	DebitAndClear(ctx context.Context, userID, cartID int64, total float64) (ok bool, err error)
}

// GormUserRepository is the GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *GormUserRepository) UpdateAddress(ctx context.Context, id int64, address string) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("address", address).Error
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GormCartRepository is the GORM implementation of CartRepository
// and CheckoutRepository
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) GetByEmail(ctx context.Context, email string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.WithContext(ctx).
		Preload("CartItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id ASC")
		}).
		Where("email = ?", email).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *GormCartRepository) AddItem(ctx context.Context, item *domain.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormCartRepository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

func (r *GormCartRepository) RemoveItem(ctx context.Context, itemID int64) error {
	return r.db.WithContext(ctx).Delete(&domain.CartItem{}, itemID).Error
}

var errShortBalance = errors.New("wallet balance below checkout total")

func (r *GormCartRepository) DebitAndClear(ctx context.Context, userID, cartID int64, total float64) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional decrement closes the read-then-write race on the
		// wallet: zero rows affected means the balance moved under us.
		res := tx.Model(&domain.User{}).
			Where("id = ? AND wallet_money >= ?", userID, total).
			Update("wallet_money", gorm.Expr("wallet_money - ?", total))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errShortBalance
		}
		return tx.Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error
	})
	if errors.Is(err, errShortBalance) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
