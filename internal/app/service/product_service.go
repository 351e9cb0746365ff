package service

import (
	"errors"

	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/internal/app/repository"
	"github.com/pedefood/pedefood-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrInvalidPrice       = errors.New("price must be greater than zero")
)

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Available   *bool
}

type ProductService interface {
	CreateProduct(userID, restaurantID uint, isAdmin bool, input ProductInput) (*model.Product, error)
	GetMenu(restaurantID uint) ([]model.Product, error)
	GetAllProducts(restaurantID uint) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	UpdateProduct(userID, productID uint, isAdmin bool, input ProductInput) (*model.Product, error)
	DeleteProduct(userID, productID uint, isAdmin bool) error
}

type productService struct {
	productRepo    repository.ProductRepository
	restaurantRepo repository.RestaurantRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	restaurantRepo repository.RestaurantRepository,
) ProductService {
	return &productService{
		productRepo:    productRepo,
		restaurantRepo: restaurantRepo,
	}
}

func (s *productService) CreateProduct(userID, restaurantID uint, isAdmin bool, input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"restaurant_id": restaurantID,
		"name":          input.Name,
	})

	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	restaurant, err := s.restaurantRepo.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	if !isAdmin && restaurant.UserID != userID {
		return nil, ErrNotRestaurantOwner
	}

	product := &model.Product{
		RestaurantID: restaurantID,
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		ImageURL:     input.ImageURL,
		Available:    true,
	}
	if input.Available != nil {
		product.Available = *input.Available
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id":    product.ID,
		"restaurant_id": restaurantID,
	})
	return product, nil
}

// GetMenu lists only the products a customer can order right now.
func (s *productService) GetMenu(restaurantID uint) ([]model.Product, error) {
	if _, err := s.restaurantRepo.FindByID(restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return s.productRepo.FindByRestaurantID(restaurantID, true)
}

// GetAllProducts lists the full catalog including unavailable items,
// for restaurant owners managing their menu.
func (s *productService) GetAllProducts(restaurantID uint) ([]model.Product, error) {
	return s.productRepo.FindByRestaurantID(restaurantID, false)
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) UpdateProduct(userID, productID uint, isAdmin bool, input ProductInput) (*model.Product, error) {
	product, err := s.findEditableProduct(userID, productID, isAdmin)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	product.Description = input.Description
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}
	if input.Available != nil {
		product.Available = *input.Available
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
		"available":  product.Available,
	})
	return product, nil
}

func (s *productService) DeleteProduct(userID, productID uint, isAdmin bool) error {
	product, err := s.findEditableProduct(userID, productID, isAdmin)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(product.ID); err != nil {
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": productID,
	})
	return nil
}

func (s *productService) findEditableProduct(userID, productID uint, isAdmin bool) (*model.Product, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !isAdmin && product.Restaurant.UserID != userID {
		logger.Warn("Product ownership mismatch", map[string]interface{}{
			"product_id": productID,
			"user_id":    userID,
		})
		return nil, ErrNotRestaurantOwner
	}
	return product, nil
}
