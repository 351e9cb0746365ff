package service

import (
	"errors"

	"github.com/lib/pq"
	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/internal/app/repository"
	"github.com/pedefood/pedefood-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrNotRestaurantOwner = errors.New("not the restaurant owner")
)

type RestaurantInput struct {
	Name               string
	Description        string
	Category           string
	ImageURL           string
	OpeningTime        string
	ClosingTime        string
	PaymentMethods     []string
	DeliveryFeeNormal  float64
	DeliveryTimeNormal int
	DeliveryFeeFast    float64
	DeliveryTimeFast   int
}

type RestaurantService interface {
	CreateRestaurant(userID uint, input RestaurantInput) (*model.Restaurant, error)
	GetRestaurants(category, search string) ([]model.Restaurant, error)
	GetRestaurantByID(id uint) (*model.Restaurant, error)
	GetRestaurantsByOwner(userID uint) ([]model.Restaurant, error)
	UpdateRestaurant(userID, restaurantID uint, isAdmin bool, input RestaurantInput) (*model.Restaurant, error)
	DeleteRestaurant(userID, restaurantID uint, isAdmin bool) error
}

type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
}

func NewRestaurantService(restaurantRepo repository.RestaurantRepository) RestaurantService {
	return &restaurantService{restaurantRepo: restaurantRepo}
}

func (s *restaurantService) CreateRestaurant(userID uint, input RestaurantInput) (*model.Restaurant, error) {
	logger.Info("Creating restaurant", map[string]interface{}{
		"user_id": userID,
		"name":    input.Name,
	})

	restaurant := &model.Restaurant{
		UserID:             userID,
		Name:               input.Name,
		Description:        input.Description,
		Category:           input.Category,
		ImageURL:           input.ImageURL,
		OpeningTime:        input.OpeningTime,
		ClosingTime:        input.ClosingTime,
		DeliveryFeeNormal:  input.DeliveryFeeNormal,
		DeliveryTimeNormal: input.DeliveryTimeNormal,
		DeliveryFeeFast:    input.DeliveryFeeFast,
		DeliveryTimeFast:   input.DeliveryTimeFast,
	}
	if len(input.PaymentMethods) > 0 {
		restaurant.PaymentMethods = pq.StringArray(input.PaymentMethods)
	}
	if restaurant.DeliveryTimeNormal == 0 {
		restaurant.DeliveryTimeNormal = 45
	}
	if restaurant.DeliveryTimeFast == 0 {
		restaurant.DeliveryTimeFast = 25
	}

	if err := s.restaurantRepo.Create(restaurant); err != nil {
		return nil, err
	}

	logger.Info("Restaurant created", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"user_id":       userID,
	})
	return restaurant, nil
}

func (s *restaurantService) GetRestaurants(category, search string) ([]model.Restaurant, error) {
	return s.restaurantRepo.FindAll(category, search)
}

func (s *restaurantService) GetRestaurantByID(id uint) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return restaurant, nil
}

func (s *restaurantService) GetRestaurantsByOwner(userID uint) ([]model.Restaurant, error) {
	return s.restaurantRepo.FindByUserID(userID)
}

func (s *restaurantService) UpdateRestaurant(userID, restaurantID uint, isAdmin bool, input RestaurantInput) (*model.Restaurant, error) {
	restaurant, err := s.findEditable(userID, restaurantID, isAdmin)
	if err != nil {
		return nil, err
	}

	restaurant.Name = input.Name
	restaurant.Description = input.Description
	restaurant.Category = input.Category
	if input.ImageURL != "" {
		restaurant.ImageURL = input.ImageURL
	}
	restaurant.OpeningTime = input.OpeningTime
	restaurant.ClosingTime = input.ClosingTime
	if len(input.PaymentMethods) > 0 {
		restaurant.PaymentMethods = pq.StringArray(input.PaymentMethods)
	}
	restaurant.DeliveryFeeNormal = input.DeliveryFeeNormal
	restaurant.DeliveryFeeFast = input.DeliveryFeeFast
	if input.DeliveryTimeNormal > 0 {
		restaurant.DeliveryTimeNormal = input.DeliveryTimeNormal
	}
	if input.DeliveryTimeFast > 0 {
		restaurant.DeliveryTimeFast = input.DeliveryTimeFast
	}

	if err := s.restaurantRepo.Update(restaurant); err != nil {
		return nil, err
	}

	logger.Info("Restaurant updated", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"user_id":       userID,
	})
	return restaurant, nil
}

func (s *restaurantService) DeleteRestaurant(userID, restaurantID uint, isAdmin bool) error {
	restaurant, err := s.findEditable(userID, restaurantID, isAdmin)
	if err != nil {
		return err
	}

	if err := s.restaurantRepo.Delete(restaurant.ID); err != nil {
		return err
	}

	logger.Info("Restaurant deleted", map[string]interface{}{
		"restaurant_id": restaurantID,
		"user_id":       userID,
	})
	return nil
}

func (s *restaurantService) findEditable(userID, restaurantID uint, isAdmin bool) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	if !isAdmin && restaurant.UserID != userID {
		logger.Warn("Restaurant ownership mismatch", map[string]interface{}{
			"restaurant_id": restaurantID,
			"user_id":       userID,
			"owner_id":      restaurant.UserID,
		})
		return nil, ErrNotRestaurantOwner
	}
	return restaurant, nil
}
