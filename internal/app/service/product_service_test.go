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

func setupProductServiceTest(t *testing.T) (*gorm.DB, ProductService, *model.User, *model.Restaurant) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	svc := NewProductService(
		repository.NewProductRepository(testDB),
		repository.NewRestaurantRepository(testDB),
	)

	owner := &model.User{
		Email:        "dono@example.com",
		PasswordHash: "hash",
		Name:         "Dono Restaurante",
		Role:         model.RoleUser,
	}
	testDB.Create(owner)

	restaurant := &model.Restaurant{
		UserID:            owner.ID,
		Name:              "Pizzaria Bella",
		Category:          "pizza",
		DeliveryFeeNormal: 5.00,
	}
	testDB.Create(restaurant)

	return testDB, svc, owner, restaurant
}

func TestProductService_CreateProduct(t *testing.T) {
	_, svc, owner, restaurant := setupProductServiceTest(t)

	product, err := svc.CreateProduct(owner.ID, restaurant.ID, false, ProductInput{
		Name:        "Pizza Margherita",
		Description: "Molho, mussarela e manjericão",
		Price:       39.90,
	})
	assert.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.True(t, product.Available)
}

func TestProductService_CreateProduct_NotOwner(t *testing.T) {
	testDB, svc, _, restaurant := setupProductServiceTest(t)

	stranger := &model.User{
		Email:        "outro@example.com",
		PasswordHash: "hash",
		Name:         "Outro Usuário",
		Role:         model.RoleUser,
	}
	testDB.Create(stranger)

	_, err := svc.CreateProduct(stranger.ID, restaurant.ID, false, ProductInput{
		Name:  "Pizza Pirata",
		Price: 10.00,
	})
	assert.ErrorIs(t, err, ErrNotRestaurantOwner)
}

func TestProductService_CreateProduct_InvalidPrice(t *testing.T) {
	_, svc, owner, restaurant := setupProductServiceTest(t)

	_, err := svc.CreateProduct(owner.ID, restaurant.ID, false, ProductInput{
		Name:  "Pizza Grátis",
		Price: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestProductService_GetMenu_HidesUnavailable(t *testing.T) {
	_, svc, owner, restaurant := setupProductServiceTest(t)

	_, err := svc.CreateProduct(owner.ID, restaurant.ID, false, ProductInput{
		Name:  "Pizza Margherita",
		Price: 39.90,
	})
	require.NoError(t, err)

	unavailable := false
	_, err = svc.CreateProduct(owner.ID, restaurant.ID, false, ProductInput{
		Name:      "Pizza Sazonal",
		Price:     49.90,
		Available: &unavailable,
	})
	require.NoError(t, err)

	menu, err := svc.GetMenu(restaurant.ID)
	assert.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "Pizza Margherita", menu[0].Name)

	// The owner view still shows everything
	all, err := svc.GetAllProducts(restaurant.ID)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProductService_GetMenu_RestaurantNotFound(t *testing.T) {
	_, svc, _, _ := setupProductServiceTest(t)

	_, err := svc.GetMenu(9999)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestProductService_UpdateProduct_ToggleAvailability(t *testing.T) {
	_, svc, owner, restaurant := setupProductServiceTest(t)

	product, err := svc.CreateProduct(owner.ID, restaurant.ID, false, ProductInput{
		Name:  "Pizza Margherita",
		Price: 39.90,
	})
	require.NoError(t, err)

	off := false
	updated, err := svc.UpdateProduct(owner.ID, product.ID, false, ProductInput{Available: &off})
	assert.NoError(t, err)
	assert.False(t, updated.Available)
}

func TestProductService_DeleteProduct_AdminOverride(t *testing.T) {
	testDB, svc, owner, restaurant := setupProductServiceTest(t)

	admin := &model.User{
		Email:        "admin@example.com",
		PasswordHash: "hash",
		Name:         "Admin",
		Role:         model.RoleAdmin,
	}
	testDB.Create(admin)

	product, err := svc.CreateProduct(owner.ID, restaurant.ID, false, ProductInput{
		Name:  "Pizza Margherita",
		Price: 39.90,
	})
	require.NoError(t, err)

	err = svc.DeleteProduct(admin.ID, product.ID, true)
	assert.NoError(t, err)

	_, err = svc.GetProductByID(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
