package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/internal/app/repository"
	"github.com/pedefood/pedefood-backend/internal/app/service"
	"github.com/pedefood/pedefood-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartControllerTest(t *testing.T) (*CartController, *gin.Engine, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := service.NewCartService(cartRepo, productRepo)
	cartController := NewCartController(cartService)

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

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return cartController, router, testDB, user, product
}

// Helper function to set user ID in context
func setUserIDInContext(c *gin.Context, userID uint) {
	c.Set("user_id", userID)
}

func TestCartController_GetCart_Success(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
	})

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, float64(1), response["count"])
	assert.Equal(t, float64(40.00), response["subtotal"]) // 20.00 * 2
}

func TestCartController_GetCart_Unauthorized(t *testing.T) {
	controller, router, _, _, _ := setupCartControllerTest(t)

	router.GET("/cart", controller.GetCart)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartController_AddToCart_Success(t *testing.T) {
	controller, router, _, user, product := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	body, _ := json.Marshal(AddToCartRequest{ProductID: product.ID, Quantity: 1})
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Item adicionado ao carrinho")
}

func TestCartController_AddToCart_UnavailableProduct(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	unavailable := &model.Product{
		RestaurantID: product.RestaurantID,
		Name:         "Pizza Sazonal",
		Price:        49.90,
		Available:    false,
	}
	testDB.Create(unavailable)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	body, _ := json.Marshal(AddToCartRequest{ProductID: unavailable.ID, Quantity: 1})
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_UNAVAILABLE")
}

func TestCartController_AddToCart_MixedRestaurants(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	other := &model.Restaurant{
		UserID:            user.ID,
		Name:              "Sushi Kai",
		Category:          "japonesa",
		DeliveryFeeNormal: 7.00,
	}
	testDB.Create(other)
	sushi := &model.Product{
		RestaurantID: other.ID,
		Name:         "Combo Sashimi",
		Price:        65.00,
		Available:    true,
	}
	testDB.Create(sushi)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	body, _ := json.Marshal(AddToCartRequest{ProductID: product.ID, Quantity: 1})
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	body, _ = json.Marshal(AddToCartRequest{ProductID: sushi.ID, Quantity: 1})
	req = httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CART_MIXED_RESTAURANTS")
}

func TestCartController_IncreaseAndDecrease(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	item := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, cartRepo.Create(item))

	router.PUT("/cart/:id/increase", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.IncreaseQuantity(c)
	})
	router.PUT("/cart/:id/decrease", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.DecreaseQuantity(c)
	})

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/cart/%d/increase", item.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":2`)

	req = httptest.NewRequest(http.MethodPut, fmt.Sprintf("/cart/%d/decrease", item.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":1`)

	// Decreasing at one removes the line
	req = httptest.NewRequest(http.MethodPut, fmt.Sprintf("/cart/%d/decrease", item.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	items, err := cartRepo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartController_RemoveItem_NotFound(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.DELETE("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.RemoveItem(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/cart/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CART_ITEM_NOT_FOUND")
}
