package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pedefood/pedefood-backend/config"
	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/internal/app/repository"
	"github.com/pedefood/pedefood-backend/internal/app/service"
	"github.com/pedefood/pedefood-backend/internal/db"
	"github.com/pedefood/pedefood-backend/pkg/mail"
	"github.com/pedefood/pedefood-backend/pkg/payment/simulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderControllerTest(t *testing.T) (*OrderController, *gin.Engine, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	addressRepo := repository.NewAddressRepository(testDB)
	restaurantRepo := repository.NewRestaurantRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)

	orderService := service.NewOrderService(
		orderRepo, cartRepo, addressRepo, restaurantRepo, userRepo,
		simulator.NewClient(0),
		mail.NewMailer(config.SMTPConfig{}),
		nil,
	)
	orderController := NewOrderController(orderService)

	user := &model.User{
		Email:        "cliente@example.com",
		PasswordHash: "hash",
		Name:         "Cliente Teste",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	testDB.Create(&model.Address{
		UserID:    user.ID,
		ZipCode:   "01310-100",
		Street:    "Av. Paulista",
		Number:    "1000",
		District:  "Bela Vista",
		City:      "São Paulo",
		State:     "SP",
		IsPrimary: true,
	})

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

	return orderController, router, testDB, user, product
}

func addItemToCart(t *testing.T, testDB *gorm.DB, userID, productID uint, quantity int) {
	cartRepo := repository.NewCartRepository(testDB)
	require.NoError(t, cartRepo.Create(&model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}))
}

func TestOrderController_Checkout_Success(t *testing.T) {
	controller, router, testDB, user, product := setupOrderControllerTest(t)

	addItemToCart(t, testDB, user.ID, product.ID, 2)

	router.POST("/checkout", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.Checkout(c)
	})

	body, _ := json.Marshal(CheckoutRequest{
		PaymentMethod: "cartao",
		DeliveryTier:  "normal",
		Card: &CardRequest{
			Number:     "4111111111111111",
			HolderName: "CLIENTE TESTE",
			Expiry:     "12/28",
			CVV:        "123",
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	order := response["order"].(map[string]interface{})
	assert.Equal(t, float64(40.00), order["subtotal"])
	assert.Equal(t, float64(5.00), order["delivery_fee"])
	assert.Equal(t, float64(45.00), order["total"])
	assert.Equal(t, "accepted", order["status"])
	assert.NotEmpty(t, order["order_number"])
}

func TestOrderController_Checkout_MissingCardData(t *testing.T) {
	controller, router, testDB, user, product := setupOrderControllerTest(t)

	addItemToCart(t, testDB, user.ID, product.ID, 1)

	router.POST("/checkout", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.Checkout(c)
	})

	body, _ := json.Marshal(CheckoutRequest{
		PaymentMethod: "cartao",
		DeliveryTier:  "normal",
		Card: &CardRequest{
			Number: "4111111111111111",
			// holder, expiry and cvv missing
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "PAYMENT_MISSING_CARD_DATA")
}

func TestOrderController_Checkout_EmptyCart(t *testing.T) {
	controller, router, _, user, _ := setupOrderControllerTest(t)

	router.POST("/checkout", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.Checkout(c)
	})

	body, _ := json.Marshal(CheckoutRequest{
		PaymentMethod: "pix",
		DeliveryTier:  "normal",
	})
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CART_EMPTY")
}

func TestOrderController_Checkout_InvalidTier(t *testing.T) {
	controller, router, testDB, user, product := setupOrderControllerTest(t)

	addItemToCart(t, testDB, user.ID, product.ID, 1)

	router.POST("/checkout", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.Checkout(c)
	})

	body, _ := json.Marshal(CheckoutRequest{
		PaymentMethod: "pix",
		DeliveryTier:  "teletransporte",
	})
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "DELIVERY_INVALID_TIER")
}

func TestOrderController_GetOrder(t *testing.T) {
	controller, router, testDB, user, product := setupOrderControllerTest(t)

	addItemToCart(t, testDB, user.ID, product.ID, 1)

	router.POST("/checkout", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.Checkout(c)
	})
	router.GET("/orders/:number", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetOrder(c)
	})

	body, _ := json.Marshal(CheckoutRequest{
		PaymentMethod: "pix",
		DeliveryTier:  "rapida",
	})
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var checkoutResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkoutResp))
	orderNumber := checkoutResp["order"].(map[string]interface{})["order_number"].(string)

	req = httptest.NewRequest(http.MethodGet, "/orders/"+orderNumber, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "O restaurante aceitou o pedido")
	assert.Contains(t, w.Body.String(), "status_sequence")
}

func TestOrderController_GetOrder_NotFound(t *testing.T) {
	controller, router, _, user, _ := setupOrderControllerTest(t)

	router.GET("/orders/:number", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetOrder(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/PF-missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ORDER_NOT_FOUND")
}
