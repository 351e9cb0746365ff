package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedefood/pedefood-backend/internal/app/service"
	apperrors "github.com/pedefood/pedefood-backend/internal/errors"
	"github.com/pedefood/pedefood-backend/internal/middleware"
)

type RestaurantController struct {
	restaurantService service.RestaurantService
}

func NewRestaurantController(restaurantService service.RestaurantService) *RestaurantController {
	return &RestaurantController{
		restaurantService: restaurantService,
	}
}

type RestaurantRequest struct {
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	Category           string   `json:"category" binding:"required"`
	ImageURL           string   `json:"image_url"`
	OpeningTime        string   `json:"opening_time"`
	ClosingTime        string   `json:"closing_time"`
	PaymentMethods     []string `json:"payment_methods"`
	DeliveryFeeNormal  float64  `json:"delivery_fee_normal"`
	DeliveryTimeNormal int      `json:"delivery_time_normal"`
	DeliveryFeeFast    float64  `json:"delivery_fee_fast"`
	DeliveryTimeFast   int      `json:"delivery_time_fast"`
}

func (r RestaurantRequest) toInput() service.RestaurantInput {
	return service.RestaurantInput{
		Name:               r.Name,
		Description:        r.Description,
		Category:           r.Category,
		ImageURL:           r.ImageURL,
		OpeningTime:        r.OpeningTime,
		ClosingTime:        r.ClosingTime,
		PaymentMethods:     r.PaymentMethods,
		DeliveryFeeNormal:  r.DeliveryFeeNormal,
		DeliveryTimeNormal: r.DeliveryTimeNormal,
		DeliveryFeeFast:    r.DeliveryFeeFast,
		DeliveryTimeFast:   r.DeliveryTimeFast,
	}
}

// GetRestaurants lists restaurants, optionally filtered by category
// and name search
// GET /api/v1/restaurants?category=pizza&search=nonna
func (ctrl *RestaurantController) GetRestaurants(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	category := c.Query("category")
	search := c.Query("search")

	restaurants, err := ctrl.restaurantService.GetRestaurants(category, search)
	if err != nil {
		log.Error("Failed to fetch restaurants", err, map[string]interface{}{
			"category": category,
			"search":   search,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get restaurants")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurants": restaurants,
		"count":       len(restaurants),
	})
}

// GetRestaurant returns one restaurant
// GET /api/v1/restaurants/:id
func (ctrl *RestaurantController) GetRestaurant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	restaurantID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de restaurante inválido")
		return
	}

	restaurant, err := ctrl.restaurantService.GetRestaurantByID(restaurantID)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			apperrors.NotFound(c, apperrors.RestaurantNotFound, "Restaurante não encontrado")
			return
		}
		log.Error("Failed to fetch restaurant", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get restaurant")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant,
	})
}

// CreateRestaurant registers a restaurant owned by the caller
// POST /api/v1/restaurants
func (ctrl *RestaurantController) CreateRestaurant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid restaurant request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados do restaurante não são válidos")
		return
	}

	restaurant, err := ctrl.restaurantService.CreateRestaurant(userID, req.toInput())
	if err != nil {
		log.Error("Failed to create restaurant", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create restaurant")
		return
	}

	log.Info("Restaurant created", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"user_id":       userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Restaurante cadastrado com sucesso",
		"restaurant": restaurant,
	})
}

// UpdateRestaurant edits a restaurant (owner or admin)
// PUT /api/v1/restaurants/:id
func (ctrl *RestaurantController) UpdateRestaurant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	restaurantID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de restaurante inválido")
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados do restaurante não são válidos")
		return
	}

	restaurant, err := ctrl.restaurantService.UpdateRestaurant(userID, restaurantID, middleware.IsAdmin(c), req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			apperrors.NotFound(c, apperrors.RestaurantNotFound, "Restaurante não encontrado")
			return
		}
		if errors.Is(err, service.ErrNotRestaurantOwner) {
			apperrors.Forbidden(c, "Apenas o dono do restaurante pode fazer esta alteração")
			return
		}
		log.Error("Failed to update restaurant", err, map[string]interface{}{
			"restaurant_id": restaurantID,
			"user_id":       userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update restaurant")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Restaurante atualizado com sucesso",
		"restaurant": restaurant,
	})
}

// DeleteRestaurant removes a restaurant (owner or admin)
// DELETE /api/v1/restaurants/:id
func (ctrl *RestaurantController) DeleteRestaurant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	restaurantID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de restaurante inválido")
		return
	}

	if err := ctrl.restaurantService.DeleteRestaurant(userID, restaurantID, middleware.IsAdmin(c)); err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			apperrors.NotFound(c, apperrors.RestaurantNotFound, "Restaurante não encontrado")
			return
		}
		if errors.Is(err, service.ErrNotRestaurantOwner) {
			apperrors.Forbidden(c, "Apenas o dono do restaurante pode fazer esta alteração")
			return
		}
		log.Error("Failed to delete restaurant", err, map[string]interface{}{
			"restaurant_id": restaurantID,
			"user_id":       userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete restaurant")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Restaurante removido com sucesso",
	})
}

// GetMyRestaurants lists the caller's restaurants
// GET /api/v1/restaurants/mine
func (ctrl *RestaurantController) GetMyRestaurants(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	restaurants, err := ctrl.restaurantService.GetRestaurantsByOwner(userID)
	if err != nil {
		log.Error("Failed to fetch owned restaurants", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get restaurants")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurants": restaurants,
		"count":       len(restaurants),
	})
}
