package repository

import (
	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/pkg/logger"
	"gorm.io/gorm"
)

type RestaurantRepository interface {
	Create(restaurant *model.Restaurant) error
	FindAll(category, search string) ([]model.Restaurant, error)
	FindByID(id uint) (*model.Restaurant, error)
	FindByUserID(userID uint) ([]model.Restaurant, error)
	Update(restaurant *model.Restaurant) error
	Delete(id uint) error
	BulkCreate(restaurants []model.Restaurant, batchSize int) error
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(restaurant *model.Restaurant) error {
	logger.Debug("Creating restaurant in database", map[string]interface{}{
		"name":    restaurant.Name,
		"user_id": restaurant.UserID,
	})

	if err := r.db.Create(restaurant).Error; err != nil {
		logger.Error("Failed to create restaurant in database", err, map[string]interface{}{
			"name": restaurant.Name,
		})
		return err
	}

	logger.Debug("Restaurant created in database", map[string]interface{}{
		"restaurant_id": restaurant.ID,
	})
	return nil
}

func (r *restaurantRepository) FindAll(category, search string) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	query := r.db.Order("name ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if err := query.Find(&restaurants).Error; err != nil {
		logger.Error("Failed to find restaurants in database", err, map[string]interface{}{
			"category": category,
			"search":   search,
		})
		return nil, err
	}

	logger.Debug("Restaurants found in database", map[string]interface{}{
		"category": category,
		"search":   search,
		"count":    len(restaurants),
	})
	return restaurants, nil
}

func (r *restaurantRepository) FindByID(id uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) FindByUserID(userID uint) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&restaurants).Error
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) Update(restaurant *model.Restaurant) error {
	if err := r.db.Save(restaurant).Error; err != nil {
		logger.Error("Failed to update restaurant in database", err, map[string]interface{}{
			"restaurant_id": restaurant.ID,
		})
		return err
	}

	logger.Debug("Restaurant updated in database", map[string]interface{}{
		"restaurant_id": restaurant.ID,
	})
	return nil
}

func (r *restaurantRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Restaurant{}, id).Error; err != nil {
		logger.Error("Failed to delete restaurant from database", err, map[string]interface{}{
			"restaurant_id": id,
		})
		return err
	}

	logger.Debug("Restaurant deleted from database", map[string]interface{}{
		"restaurant_id": id,
	})
	return nil
}

// BulkCreate inserts restaurants in batches. Associated products are
// created in the same statement through gorm's association handling.
func (r *restaurantRepository) BulkCreate(restaurants []model.Restaurant, batchSize int) error {
	if len(restaurants) == 0 {
		return nil
	}

	if err := r.db.CreateInBatches(restaurants, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create restaurants", err, map[string]interface{}{
			"count": len(restaurants),
		})
		return err
	}

	logger.Info("Bulk created restaurants", map[string]interface{}{
		"count": len(restaurants),
	})
	return nil
}
