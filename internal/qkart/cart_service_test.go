package qkart_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/qkart/internal/domain"
	"github.com/talkincode/qkart/internal/qkart"
	"github.com/talkincode/qkart/internal/qkart/mocks"
	"github.com/talkincode/qkart/pkg/apierrors"
)

type recordingPublisher struct {
	published int
	lastTotal float64
	lastItems []domain.CartItem
}

func (p *recordingPublisher) PublishOrderPlaced(ctx context.Context, user *domain.User, items []domain.CartItem, total float64) error {
	p.published++
	p.lastTotal = total
	p.lastItems = items
	return nil
}

type cartFixture struct {
	store     *mocks.MemoryStore
	service   *qkart.CartService
	publisher *recordingPublisher
	user      *domain.User
	shoes     *domain.Product
	racquet   *domain.Product
	sofa      *domain.Product
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	store := mocks.NewMemoryStore()
	publisher := &recordingPublisher{}

	user := store.SeedUser(&domain.User{
		Name:        "crio-user",
		Email:       "crio-user@gmail.com",
		Address:     "123 Main Street, Bangalore",
		WalletMoney: 500,
	})
	shoes := store.SeedProduct(&domain.Product{Name: "Running Shoes", Category: "Footwear", Cost: 50})
	racquet := store.SeedProduct(&domain.Product{Name: "Badminton Racquet", Category: "Sports", Cost: 100})
	sofa := store.SeedProduct(&domain.Product{Name: "Sofa Set", Category: "Home", Cost: 280})

	service := qkart.NewCartService(store.Carts(), store.Carts(), store.Products(), publisher)
	return &cartFixture{
		store:     store,
		service:   service,
		publisher: publisher,
		user:      user,
		shoes:     shoes,
		racquet:   racquet,
		sofa:      sofa,
	}
}

func requireStatus(t *testing.T, err error, status int) *apierrors.ApiError {
	t.Helper()
	require.Error(t, err)
	apiErr, isApi := apierrors.From(err)
	require.True(t, isApi, "expected an ApiError, got %v", err)
	require.Equal(t, status, apiErr.Status)
	return apiErr
}

func TestGetCartByUser_NoCart(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.service.GetCartByUser(context.Background(), f.user)

	apiErr := requireStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "User does not have a cart", apiErr.Message)
}

func TestAddProductToCart_CreatesCartLazily(t *testing.T) {
	f := newCartFixture(t)

	cart, err := f.service.AddProductToCart(context.Background(), f.user, f.shoes.ID, 2)

	require.NoError(t, err)
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, f.shoes.ID, cart.CartItems[0].ProductID)
	assert.Equal(t, 2, cart.CartItems[0].Quantity)
	assert.Equal(t, f.shoes.Cost, cart.CartItems[0].Cost)

	stored := f.store.StoredCart(f.user.Email)
	require.NotNil(t, stored)
	assert.Len(t, stored.CartItems, 1)
}

func TestAddProductToCart_DuplicateRejected(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.service.AddProductToCart(context.Background(), f.user, f.shoes.ID, 2)
	require.NoError(t, err)

	// The second add must fail no matter the quantity
	for _, qty := range []int{1, 2, 7} {
		_, err = f.service.AddProductToCart(context.Background(), f.user, f.shoes.ID, qty)
		apiErr := requireStatus(t, err, http.StatusBadRequest)
		assert.Equal(t, "Product already in cart. Use the cart sidebar to update or remove product from cart", apiErr.Message)
	}

	stored := f.store.StoredCart(f.user.Email)
	require.Len(t, stored.CartItems, 1)
	assert.Equal(t, 2, stored.CartItems[0].Quantity)
}

func TestAddProductToCart_UnknownProduct(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.service.AddProductToCart(context.Background(), f.user, 424242, 1)

	apiErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Product doesn't exist in database", apiErr.Message)
	assert.Nil(t, f.store.StoredCart(f.user.Email))
}

func TestAddProductToCart_CartCreationFailure(t *testing.T) {
	f := newCartFixture(t)
	f.store.FailCartCreate = true

	_, err := f.service.AddProductToCart(context.Background(), f.user, f.shoes.ID, 1)

	requireStatus(t, err, http.StatusInternalServerError)
}

func TestCartItemUniquenessAcrossMutations(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	_, err := f.service.AddProductToCart(ctx, f.user, f.shoes.ID, 1)
	require.NoError(t, err)
	_, err = f.service.AddProductToCart(ctx, f.user, f.racquet.ID, 2)
	require.NoError(t, err)
	_, err = f.service.UpdateProductInCart(ctx, f.user, f.shoes.ID, 5)
	require.NoError(t, err)
	_, err = f.service.DeleteProductFromCart(ctx, f.user, f.racquet.ID)
	require.NoError(t, err)
	_, err = f.service.AddProductToCart(ctx, f.user, f.sofa.ID, 1)
	require.NoError(t, err)

	stored := f.store.StoredCart(f.user.Email)
	seen := map[int64]bool{}
	for _, item := range stored.CartItems {
		assert.False(t, seen[item.ProductID], "product %d appears twice", item.ProductID)
		seen[item.ProductID] = true
	}
}

func TestUpdateProductInCart_NoCart(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.service.UpdateProductInCart(context.Background(), f.user, f.shoes.ID, 3)

	apiErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "User does not have a cart. Use POST to create cart and add a product", apiErr.Message)
}

func TestUpdateProductInCart_NotInCart(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	_, err := f.service.AddProductToCart(ctx, f.user, f.shoes.ID, 1)
	require.NoError(t, err)

	_, err = f.service.UpdateProductInCart(ctx, f.user, f.racquet.ID, 3)

	apiErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Product not in cart", apiErr.Message)

	stored := f.store.StoredCart(f.user.Email)
	require.Len(t, stored.CartItems, 1)
	assert.Equal(t, 1, stored.CartItems[0].Quantity)
}

func TestUpdateProductInCart_ProductGoneFromCatalog(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	_, err := f.service.AddProductToCart(ctx, f.user, f.shoes.ID, 1)
	require.NoError(t, err)
	f.store.RemoveProduct(f.shoes.ID)

	_, err = f.service.UpdateProductInCart(ctx, f.user, f.shoes.ID, 3)

	apiErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Product doesn't exist in database", apiErr.Message)
}

func TestUpdateProductInCart_PreservesPosition(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	for _, p := range []*domain.Product{f.shoes, f.racquet, f.sofa} {
		_, err := f.service.AddProductToCart(ctx, f.user, p.ID, 1)
		require.NoError(t, err)
	}

	cart, err := f.service.UpdateProductInCart(ctx, f.user, f.racquet.ID, 9)
	require.NoError(t, err)

	require.Len(t, cart.CartItems, 3)
	assert.Equal(t, f.shoes.ID, cart.CartItems[0].ProductID)
	assert.Equal(t, f.racquet.ID, cart.CartItems[1].ProductID)
	assert.Equal(t, f.sofa.ID, cart.CartItems[2].ProductID)
	assert.Equal(t, 9, cart.CartItems[1].Quantity)
}

func TestDeleteProductFromCart_NoCart(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.service.DeleteProductFromCart(context.Background(), f.user, f.shoes.ID)

	apiErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "User does not have a cart", apiErr.Message)
}

func TestDeleteProductFromCart_NotInCart(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	_, err := f.service.AddProductToCart(ctx, f.user, f.shoes.ID, 1)
	require.NoError(t, err)

	_, err = f.service.DeleteProductFromCart(ctx, f.user, f.racquet.ID)

	apiErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Product not in cart", apiErr.Message)
}

func TestDeleteProductFromCart_PreservesOrder(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	for _, p := range []*domain.Product{f.shoes, f.racquet, f.sofa} {
		_, err := f.service.AddProductToCart(ctx, f.user, p.ID, 1)
		require.NoError(t, err)
	}

	cart, err := f.service.DeleteProductFromCart(ctx, f.user, f.racquet.ID)
	require.NoError(t, err)

	require.Len(t, cart.CartItems, 2)
	assert.Equal(t, f.shoes.ID, cart.CartItems[0].ProductID)
	assert.Equal(t, f.sofa.ID, cart.CartItems[1].ProductID)
}

func TestCheckout_NoCart(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.service.Checkout(context.Background(), f.user)

	requireStatus(t, err, http.StatusNotFound)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	_, err := f.service.AddProductToCart(ctx, f.user, f.shoes.ID, 1)
	require.NoError(t, err)
	_, err = f.service.DeleteProductFromCart(ctx, f.user, f.shoes.ID)
	require.NoError(t, err)

	_, err = f.service.Checkout(ctx, f.user)

	requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, float64(500), f.store.WalletMoney(f.user.ID))
	assert.Zero(t, f.publisher.published)
}

func TestCheckout_EmptyCartReportedBeforeUnsetAddress(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	user := f.store.SeedUser(&domain.User{
		Name:        "no-address",
		Email:       "no-address@gmail.com",
		Address:     domain.DefaultAddress,
		WalletMoney: 500,
	})
	_, err := f.service.AddProductToCart(ctx, user, f.shoes.ID, 1)
	require.NoError(t, err)
	_, err = f.service.DeleteProductFromCart(ctx, user, f.shoes.ID)
	require.NoError(t, err)

	_, err = f.service.Checkout(ctx, user)

	apiErr := requireStatus(t, err, http.StatusBadRequest)
	assert.NotEqual(t, "Address not set", apiErr.Message)
}

func TestCheckout_AddressNotSet(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	user := f.store.SeedUser(&domain.User{
		Name:        "no-address",
		Email:       "no-address@gmail.com",
		Address:     domain.DefaultAddress,
		WalletMoney: 500,
	})
	_, err := f.service.AddProductToCart(ctx, user, f.shoes.ID, 1)
	require.NoError(t, err)

	_, err = f.service.Checkout(ctx, user)

	apiErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Address not set", apiErr.Message)
}

func TestCheckout_InsufficientBalance(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	user := f.store.SeedUser(&domain.User{
		Name:        "broke-user",
		Email:       "broke-user@gmail.com",
		Address:     "456 Side Street, Mumbai",
		WalletMoney: 0,
	})
	_, err := f.service.AddProductToCart(ctx, user, f.racquet.ID, 1)
	require.NoError(t, err)

	_, err = f.service.Checkout(ctx, user)

	apiErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Insufficient Balance", apiErr.Message)
	assert.Equal(t, float64(0), f.store.WalletMoney(user.ID))
	require.Len(t, f.store.StoredCart(user.Email).CartItems, 1)
	assert.Zero(t, f.publisher.published)
}

func TestCheckout_Success(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	_, err := f.service.AddProductToCart(ctx, f.user, f.shoes.ID, 2)
	require.NoError(t, err)
	_, err = f.service.AddProductToCart(ctx, f.user, f.racquet.ID, 3)
	require.NoError(t, err)

	// total = 50*2 + 100*3
	cart, err := f.service.Checkout(ctx, f.user)
	require.NoError(t, err)

	assert.Empty(t, cart.CartItems)
	assert.Equal(t, float64(100), f.store.WalletMoney(f.user.ID))
	assert.Equal(t, float64(100), f.user.WalletMoney)

	stored := f.store.StoredCart(f.user.Email)
	require.NotNil(t, stored, "cart record must survive checkout")
	assert.Empty(t, stored.CartItems)

	require.Equal(t, 1, f.publisher.published)
	assert.Equal(t, float64(400), f.publisher.lastTotal)
	assert.Len(t, f.publisher.lastItems, 2)
}

func TestCheckout_TotalMatchesItemSum(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	user := f.store.SeedUser(&domain.User{
		Name:        "big-spender",
		Email:       "big-spender@gmail.com",
		Address:     "789 High Street, Delhi",
		WalletMoney: 1000,
	})
	_, err := f.service.AddProductToCart(ctx, user, f.shoes.ID, 4)
	require.NoError(t, err)
	_, err = f.service.AddProductToCart(ctx, user, f.sofa.ID, 2)
	require.NoError(t, err)

	cart, err := f.service.GetCartByUser(ctx, user)
	require.NoError(t, err)
	want := cart.Total()
	assert.Equal(t, float64(50*4+280*2), want)

	_, err = f.service.Checkout(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1000-want, f.store.WalletMoney(user.ID))
}
