// Package mocks provides in-memory repository implementations used by
// service and handler tests.
package mocks

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/talkincode/qkart/internal/domain"
	"github.com/talkincode/qkart/internal/qkart"
	"gorm.io/gorm"
)

// MemoryStore is the shared backing state; the facet types below
// adapt it to the repository interfaces.
type MemoryStore struct {
	mu sync.Mutex

	users    map[int64]*domain.User
	products map[int64]*domain.Product
	carts    map[string]*domain.Cart

	nextID int64

	// FailCartCreate forces cart creation to fail (error-path tests)
	FailCartCreate bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]*domain.User),
		products: make(map[int64]*domain.Product),
		carts:    make(map[string]*domain.Cart),
		nextID:   1000,
	}
}

// Users returns the UserRepository facet
func (s *MemoryStore) Users() *MemoryUserRepository {
	return &MemoryUserRepository{s: s}
}

// Products returns the ProductRepository facet
func (s *MemoryStore) Products() *MemoryProductRepository {
	return &MemoryProductRepository{s: s}
}

// Carts returns the CartRepository / CheckoutRepository facet
func (s *MemoryStore) Carts() *MemoryCartRepository {
	return &MemoryCartRepository{s: s}
}

func (s *MemoryStore) nextIDLocked() int64 {
	s.nextID++
	return s.nextID
}

// SeedUser stores a user, assigning an id when absent
func (s *MemoryStore) SeedUser(user *domain.User) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == 0 {
		user.ID = s.nextIDLocked()
	}
	cp := *user
	s.users[user.ID] = &cp
	return user
}

// SeedProduct stores a product, assigning an id when absent
func (s *MemoryStore) SeedProduct(product *domain.Product) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if product.ID == 0 {
		product.ID = s.nextIDLocked()
	}
	cp := *product
	s.products[product.ID] = &cp
	return product
}

// RemoveProduct drops a product from the catalog (stale-reference tests)
func (s *MemoryStore) RemoveProduct(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

// WalletMoney reads the stored balance for assertions
func (s *MemoryStore) WalletMoney(userID int64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, found := s.users[userID]; found {
		return u.WalletMoney
	}
	return 0
}

// StoredCart returns a deep copy of the stored cart for assertions
func (s *MemoryStore) StoredCart(email string) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, found := s.carts[email]
	if !found {
		return nil
	}
	return copyCart(cart)
}

func (s *MemoryStore) cartByIDLocked(cartID int64) *domain.Cart {
	for _, cart := range s.carts {
		if cart.ID == cartID {
			return cart
		}
	}
	return nil
}

func copyCart(cart *domain.Cart) *domain.Cart {
	cp := *cart
	cp.CartItems = make([]domain.CartItem, len(cart.CartItems))
	copy(cp.CartItems, cart.CartItems)
	sort.SliceStable(cp.CartItems, func(i, j int) bool {
		return cp.CartItems[i].ID < cp.CartItems[j].ID
	})
	return &cp
}

// MemoryUserRepository implements qkart.UserRepository
type MemoryUserRepository struct {
	s *MemoryStore
}

var _ qkart.UserRepository = (*MemoryUserRepository)(nil)

func (r *MemoryUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, found := r.s.users[id]
	if !found {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryUserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if user.ID == 0 {
		user.ID = r.s.nextIDLocked()
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *MemoryUserRepository) UpdateAddress(ctx context.Context, id int64, address string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, found := r.s.users[id]
	if !found {
		return gorm.ErrRecordNotFound
	}
	user.Address = address
	return nil
}

// MemoryProductRepository implements qkart.ProductRepository
type MemoryProductRepository struct {
	s *MemoryStore
}

var _ qkart.ProductRepository = (*MemoryProductRepository)(nil)

func (r *MemoryProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	products := make([]domain.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		products = append(products, *p)
	}
	sort.SliceStable(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *MemoryProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	product, found := r.s.products[id]
	if !found {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *product
	return &cp, nil
}

// MemoryCartRepository implements qkart.CartRepository and
// qkart.CheckoutRepository
type MemoryCartRepository struct {
	s *MemoryStore
}

var (
	_ qkart.CartRepository     = (*MemoryCartRepository)(nil)
	_ qkart.CheckoutRepository = (*MemoryCartRepository)(nil)
)

func (r *MemoryCartRepository) GetByEmail(ctx context.Context, email string) (*domain.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cart, found := r.s.carts[email]
	if !found {
		return nil, gorm.ErrRecordNotFound
	}
	return copyCart(cart), nil
}

func (r *MemoryCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailCartCreate {
		return errors.New("cart insert failed")
	}
	if cart.ID == 0 {
		cart.ID = r.s.nextIDLocked()
	}
	r.s.carts[cart.Email] = copyCart(cart)
	return nil
}

func (r *MemoryCartRepository) AddItem(ctx context.Context, item *domain.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cart := r.s.cartByIDLocked(item.CartID)
	if cart == nil {
		return gorm.ErrRecordNotFound
	}
	if item.ID == 0 {
		item.ID = r.s.nextIDLocked()
	}
	cart.CartItems = append(cart.CartItems, *item)
	return nil
}

func (r *MemoryCartRepository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cart := range r.s.carts {
		for i := range cart.CartItems {
			if cart.CartItems[i].ID == itemID {
				cart.CartItems[i].Quantity = quantity
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *MemoryCartRepository) RemoveItem(ctx context.Context, itemID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cart := range r.s.carts {
		for i := range cart.CartItems {
			if cart.CartItems[i].ID == itemID {
				cart.CartItems = append(cart.CartItems[:i], cart.CartItems[i+1:]...)
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *MemoryCartRepository) DebitAndClear(ctx context.Context, userID, cartID int64, total float64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, found := r.s.users[userID]
	if !found {
		return false, gorm.ErrRecordNotFound
	}
	if user.WalletMoney < total {
		return false, nil
	}
	cart := r.s.cartByIDLocked(cartID)
	if cart == nil {
		return false, gorm.ErrRecordNotFound
	}
	user.WalletMoney -= total
	cart.CartItems = nil
	return true, nil
}
