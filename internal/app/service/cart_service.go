package service

import (
	"errors"

	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/internal/app/repository"
	"github.com/pedefood/pedefood-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrCartMixedRestaurants = errors.New("cart items must come from a single restaurant")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
)

// CartSummary is a cart with its derived pricing. DeliveryFee and Total
// depend on the delivery tier chosen at checkout, so only the subtotal
// lives here.
type CartSummary struct {
	Items        []model.CartItem `json:"items"`
	Subtotal     float64          `json:"subtotal"`
	RestaurantID uint             `json:"restaurant_id,omitempty"`
}

type CartService interface {
	AddItem(userID, productID uint, quantity int) (*model.CartItem, error)
	GetCart(userID uint) (*CartSummary, error)
	IncreaseQuantity(userID, cartItemID uint) (*model.CartItem, error)
	DecreaseQuantity(userID, cartItemID uint) (*model.CartItem, error)
	RemoveItem(userID, cartItemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CalculateSubtotal sums unit price times quantity over the cart.
func CalculateSubtotal(items []model.CartItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Product.Price * float64(item.Quantity)
	}
	return subtotal
}

// AddItem puts a product in the cart. Adding a product already in the
// cart increments its quantity instead of creating a second line.
func (s *cartService) AddItem(userID, productID uint, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}

	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Add to cart failed: product not found", map[string]interface{}{
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if !product.Available {
		logger.Warn("Add to cart failed: product unavailable", map[string]interface{}{
			"product_id": productID,
		})
		return nil, ErrProductUnavailable
	}

	existing, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	// One restaurant per cart
	for _, item := range existing {
		if item.Product.RestaurantID != product.RestaurantID {
			logger.Warn("Add to cart failed: different restaurant", map[string]interface{}{
				"user_id":         userID,
				"cart_restaurant": item.Product.RestaurantID,
				"new_restaurant":  product.RestaurantID,
			})
			return nil, ErrCartMixedRestaurants
		}
	}

	cartItem, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if cartItem != nil {
		cartItem.Quantity += quantity
		if err := s.cartRepo.Update(cartItem); err != nil {
			return nil, err
		}
	} else {
		cartItem = &model.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.Create(cartItem); err != nil {
			return nil, err
		}
	}

	logger.Info("Item added to cart", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"user_id":      userID,
		"quantity":     cartItem.Quantity,
	})

	return s.cartRepo.FindByID(cartItem.ID)
}

func (s *cartService) GetCart(userID uint) (*CartSummary, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{
		Items:    items,
		Subtotal: CalculateSubtotal(items),
	}
	if len(items) > 0 {
		summary.RestaurantID = items[0].Product.RestaurantID
	}
	return summary, nil
}

func (s *cartService) IncreaseQuantity(userID, cartItemID uint) (*model.CartItem, error) {
	cartItem, err := s.findOwnedItem(userID, cartItemID)
	if err != nil {
		return nil, err
	}

	cartItem.Quantity++
	if err := s.cartRepo.Update(cartItem); err != nil {
		return nil, err
	}

	logger.Debug("Cart item quantity increased", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"quantity":     cartItem.Quantity,
	})
	return cartItem, nil
}

// DecreaseQuantity lowers the quantity by one. At quantity one the line
// is removed and nil is returned.
func (s *cartService) DecreaseQuantity(userID, cartItemID uint) (*model.CartItem, error) {
	cartItem, err := s.findOwnedItem(userID, cartItemID)
	if err != nil {
		return nil, err
	}

	if cartItem.Quantity <= 1 {
		if err := s.cartRepo.Delete(cartItem.ID); err != nil {
			return nil, err
		}
		logger.Debug("Cart item removed on decrease", map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return nil, nil
	}

	cartItem.Quantity--
	if err := s.cartRepo.Update(cartItem); err != nil {
		return nil, err
	}

	logger.Debug("Cart item quantity decreased", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"quantity":     cartItem.Quantity,
	})
	return cartItem, nil
}

func (s *cartService) RemoveItem(userID, cartItemID uint) error {
	cartItem, err := s.findOwnedItem(userID, cartItemID)
	if err != nil {
		return err
	}

	if err := s.cartRepo.Delete(cartItem.ID); err != nil {
		return err
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"cart_item_id": cartItemID,
		"user_id":      userID,
	})
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		return err
	}

	logger.Info("Cart cleared", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

func (s *cartService) findOwnedItem(userID, cartItemID uint) (*model.CartItem, error) {
	cartItem, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if cartItem.UserID != userID {
		logger.Warn("Cart item ownership mismatch", map[string]interface{}{
			"cart_item_id": cartItemID,
			"user_id":      userID,
			"owner_id":     cartItem.UserID,
		})
		return nil, ErrCartItemNotFound
	}
	return cartItem, nil
}
