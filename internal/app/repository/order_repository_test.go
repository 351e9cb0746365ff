package repository

import (
	"testing"

	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderTest(t *testing.T) (*gorm.DB, OrderRepository, *model.User, *model.Restaurant) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	repo := NewOrderRepository(testDB)

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

	return testDB, repo, user, restaurant
}

func newTestOrder(userID, restaurantID uint, orderNumber string) *model.Order {
	return &model.Order{
		OrderNumber:   orderNumber,
		UserID:        userID,
		RestaurantID:  restaurantID,
		Status:        model.OrderStatusAccepted,
		Subtotal:      40.00,
		DeliveryFee:   5.00,
		DeliveryTier:  model.TierNormal,
		Total:         45.00,
		PaymentMethod: "cartao",
		OrderItems: []model.OrderItem{
			{ProductID: 1, ProductName: "Pizza Margherita", RestaurantName: "Pizzaria Bella", Quantity: 2, Price: 20.00},
		},
	}
}

func TestOrderRepository_Create(t *testing.T) {
	_, repo, user, restaurant := setupOrderTest(t)

	order := newTestOrder(user.ID, restaurant.ID, "PF-a1b2c3d4")
	err := repo.Create(order)
	assert.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.NotZero(t, order.OrderItems[0].ID)
}

func TestOrderRepository_Create_DuplicateOrderNumber(t *testing.T) {
	_, repo, user, restaurant := setupOrderTest(t)

	require.NoError(t, repo.Create(newTestOrder(user.ID, restaurant.ID, "PF-a1b2c3d4")))

	err := repo.Create(newTestOrder(user.ID, restaurant.ID, "PF-a1b2c3d4"))
	assert.Error(t, err)
}

func TestOrderRepository_FindByOrderNumber(t *testing.T) {
	_, repo, user, restaurant := setupOrderTest(t)

	created := newTestOrder(user.ID, restaurant.ID, "PF-a1b2c3d4")
	require.NoError(t, repo.Create(created))

	found, err := repo.FindByOrderNumber("PF-a1b2c3d4")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	require.Len(t, found.OrderItems, 1)
	assert.Equal(t, "Pizza Margherita", found.OrderItems[0].ProductName)

	_, err = repo.FindByOrderNumber("PF-missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepository_FindByUserID(t *testing.T) {
	testDB, repo, user, restaurant := setupOrderTest(t)

	other := &model.User{
		Email:        "outro@example.com",
		PasswordHash: "hash",
		Name:         "Outro Cliente",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	require.NoError(t, repo.Create(newTestOrder(user.ID, restaurant.ID, "PF-11111111")))
	require.NoError(t, repo.Create(newTestOrder(user.ID, restaurant.ID, "PF-22222222")))
	require.NoError(t, repo.Create(newTestOrder(other.ID, restaurant.ID, "PF-33333333")))

	orders, err := repo.FindByUserID(user.ID)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderRepository_FindInFlight(t *testing.T) {
	_, repo, user, restaurant := setupOrderTest(t)

	active := newTestOrder(user.ID, restaurant.ID, "PF-11111111")
	require.NoError(t, repo.Create(active))

	done := newTestOrder(user.ID, restaurant.ID, "PF-22222222")
	done.Status = model.OrderStatusDelivered
	require.NoError(t, repo.Create(done))

	orders, err := repo.FindInFlight()
	assert.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, active.ID, orders[0].ID)
}

func TestOrderRepository_Update(t *testing.T) {
	_, repo, user, restaurant := setupOrderTest(t)

	order := newTestOrder(user.ID, restaurant.ID, "PF-11111111")
	require.NoError(t, repo.Create(order))

	order.Status = model.OrderStatusPreparing
	err := repo.Update(order)
	assert.NoError(t, err)

	found, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPreparing, found.Status)
}
