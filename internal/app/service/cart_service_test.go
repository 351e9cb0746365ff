package service

import (
	"testing"

	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/internal/app/repository"
	"github.com/pedefood/pedefood-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type cartTestEnv struct {
	db         *gorm.DB
	service    CartService
	user       *model.User
	restaurant *model.Restaurant
	product    *model.Product
}

func setupCartServiceTest(t *testing.T) *cartTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	svc := NewCartService(cartRepo, productRepo)

	user := &model.User{
		Email:        "cliente@example.com",
		PasswordHash: "hash",
		Name:         "Cliente Teste",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	restaurant := &model.Restaurant{
		UserID:            user.ID,
		Name:              "Pizzaria Bella",
		Category:          "pizza",
		DeliveryFeeNormal: 5.00,
		DeliveryFeeFast:   8.00,
	}
	testDB.Create(restaurant)

	product := &model.Product{
		RestaurantID: restaurant.ID,
		Name:         "Pizza Margherita",
		Price:        20.00,
		Available:    true,
	}
	testDB.Create(product)

	return &cartTestEnv{
		db:         testDB,
		service:    svc,
		user:       user,
		restaurant: restaurant,
		product:    product,
	}
}

func TestCartService_AddItem(t *testing.T) {
	env := setupCartServiceTest(t)

	item, err := env.service.AddItem(env.user.ID, env.product.ID, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, env.product.ID, item.ProductID)
}

func TestCartService_AddItem_IncrementsExisting(t *testing.T) {
	env := setupCartServiceTest(t)

	_, err := env.service.AddItem(env.user.ID, env.product.ID, 1)
	require.NoError(t, err)

	item, err := env.service.AddItem(env.user.ID, env.product.ID, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	// Still a single line in the cart
	summary, err := env.service.GetCart(env.user.ID)
	require.NoError(t, err)
	assert.Len(t, summary.Items, 1)
}

func TestCartService_AddItem_UnavailableProduct(t *testing.T) {
	env := setupCartServiceTest(t)

	unavailable := &model.Product{
		RestaurantID: env.restaurant.ID,
		Name:         "Pizza Quatro Queijos",
		Price:        49.90,
		Available:    false,
	}
	env.db.Create(unavailable)

	_, err := env.service.AddItem(env.user.ID, unavailable.ID, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	env := setupCartServiceTest(t)

	_, err := env.service.AddItem(env.user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddItem_MixedRestaurants(t *testing.T) {
	env := setupCartServiceTest(t)

	other := &model.Restaurant{
		UserID:            env.user.ID,
		Name:              "Sushi Kai",
		Category:          "japonesa",
		DeliveryFeeNormal: 7.00,
	}
	env.db.Create(other)

	sushi := &model.Product{
		RestaurantID: other.ID,
		Name:         "Combo Sashimi",
		Price:        65.00,
		Available:    true,
	}
	env.db.Create(sushi)

	_, err := env.service.AddItem(env.user.ID, env.product.ID, 1)
	require.NoError(t, err)

	_, err = env.service.AddItem(env.user.ID, sushi.ID, 1)
	assert.ErrorIs(t, err, ErrCartMixedRestaurants)
}

func TestCartService_GetCart_Subtotal(t *testing.T) {
	env := setupCartServiceTest(t)

	second := &model.Product{
		RestaurantID: env.restaurant.ID,
		Name:         "Refrigerante",
		Price:        8.50,
		Available:    true,
	}
	env.db.Create(second)

	_, err := env.service.AddItem(env.user.ID, env.product.ID, 2)
	require.NoError(t, err)
	_, err = env.service.AddItem(env.user.ID, second.ID, 3)
	require.NoError(t, err)

	summary, err := env.service.GetCart(env.user.ID)
	assert.NoError(t, err)
	assert.Len(t, summary.Items, 2)
	assert.InDelta(t, 2*20.00+3*8.50, summary.Subtotal, 0.001)
	assert.Equal(t, env.restaurant.ID, summary.RestaurantID)
}

func TestCartService_GetCart_Empty(t *testing.T) {
	env := setupCartServiceTest(t)

	summary, err := env.service.GetCart(env.user.ID)
	assert.NoError(t, err)
	assert.Empty(t, summary.Items)
	assert.Zero(t, summary.Subtotal)
}

func TestCartService_IncreaseQuantity(t *testing.T) {
	env := setupCartServiceTest(t)

	item, err := env.service.AddItem(env.user.ID, env.product.ID, 1)
	require.NoError(t, err)

	updated, err := env.service.IncreaseQuantity(env.user.ID, item.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, updated.Quantity)
}

func TestCartService_DecreaseQuantity(t *testing.T) {
	env := setupCartServiceTest(t)

	item, err := env.service.AddItem(env.user.ID, env.product.ID, 3)
	require.NoError(t, err)

	updated, err := env.service.DecreaseQuantity(env.user.ID, item.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, updated.Quantity)
}

func TestCartService_DecreaseQuantity_AtOneRemovesItem(t *testing.T) {
	env := setupCartServiceTest(t)

	item, err := env.service.AddItem(env.user.ID, env.product.ID, 1)
	require.NoError(t, err)

	updated, err := env.service.DecreaseQuantity(env.user.ID, item.ID)
	assert.NoError(t, err)
	assert.Nil(t, updated)

	summary, err := env.service.GetCart(env.user.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}

func TestCartService_RemoveItem(t *testing.T) {
	env := setupCartServiceTest(t)

	item, err := env.service.AddItem(env.user.ID, env.product.ID, 5)
	require.NoError(t, err)

	err = env.service.RemoveItem(env.user.ID, item.ID)
	assert.NoError(t, err)

	summary, err := env.service.GetCart(env.user.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}

func TestCartService_RemoveItem_NotOwned(t *testing.T) {
	env := setupCartServiceTest(t)

	other := &model.User{
		Email:        "outro@example.com",
		PasswordHash: "hash",
		Name:         "Outro Cliente",
		Role:         model.RoleUser,
	}
	env.db.Create(other)

	item, err := env.service.AddItem(env.user.ID, env.product.ID, 1)
	require.NoError(t, err)

	// Another user's items look like they do not exist
	err = env.service.RemoveItem(other.ID, item.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	env := setupCartServiceTest(t)

	_, err := env.service.AddItem(env.user.ID, env.product.ID, 2)
	require.NoError(t, err)

	err = env.service.ClearCart(env.user.ID)
	assert.NoError(t, err)

	summary, err := env.service.GetCart(env.user.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}
