package repository

import (
	"testing"

	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*gorm.DB, CartRepository, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	repo := NewCartRepository(testDB)

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
		Price:        39.90,
		Available:    true,
	}
	testDB.Create(product)

	return testDB, repo, user, product
}

func TestCartRepository_Create(t *testing.T) {
	_, repo, user, product := setupCartTest(t)

	cartItem := &model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
	}

	err := repo.Create(cartItem)
	assert.NoError(t, err)
	assert.NotZero(t, cartItem.ID)
}

func TestCartRepository_FindByUserID(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)

	other := &model.Product{
		RestaurantID: product.RestaurantID,
		Name:         "Pizza Calabresa",
		Price:        44.90,
		Available:    true,
	}
	testDB.Create(other)

	repo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})
	repo.Create(&model.CartItem{UserID: user.ID, ProductID: other.ID, Quantity: 1})

	items, err := repo.FindByUserID(user.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	// Product and its restaurant come preloaded
	assert.Equal(t, "Pizza Margherita", items[0].Product.Name)
	assert.Equal(t, "Pizzaria Bella", items[0].Product.Restaurant.Name)
}

func TestCartRepository_FindByUserAndProduct(t *testing.T) {
	_, repo, user, product := setupCartTest(t)

	created := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 3}
	require.NoError(t, repo.Create(created))

	found, err := repo.FindByUserAndProduct(user.ID, product.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, 3, found.Quantity)

	_, err = repo.FindByUserAndProduct(user.ID, product.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_Update(t *testing.T) {
	_, repo, user, product := setupCartTest(t)

	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, repo.Create(cartItem))

	cartItem.Quantity = 4
	err := repo.Update(cartItem)
	assert.NoError(t, err)

	found, err := repo.FindByID(cartItem.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, found.Quantity)
}

func TestCartRepository_Delete(t *testing.T) {
	_, repo, user, product := setupCartTest(t)

	cartItem := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, repo.Create(cartItem))

	err := repo.Delete(cartItem.ID)
	assert.NoError(t, err)

	_, err = repo.FindByID(cartItem.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_DeleteByUserID(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)

	other := &model.User{
		Email:        "outro@example.com",
		PasswordHash: "hash",
		Name:         "Outro Cliente",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	repo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})
	repo.Create(&model.CartItem{UserID: other.ID, ProductID: product.ID, Quantity: 1})

	err := repo.DeleteByUserID(user.ID)
	assert.NoError(t, err)

	items, err := repo.FindByUserID(user.ID)
	assert.NoError(t, err)
	assert.Empty(t, items)

	// Other carts stay untouched
	items, err = repo.FindByUserID(other.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}
