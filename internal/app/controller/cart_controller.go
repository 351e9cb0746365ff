package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedefood/pedefood-backend/internal/app/service"
	apperrors "github.com/pedefood/pedefood-backend/internal/errors"
	"github.com/pedefood/pedefood-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// GetCart returns the cart with its subtotal
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	summary, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get cart")
		return
	}

	log.Info("Cart fetched", map[string]interface{}{
		"user_id":  userID,
		"count":    len(summary.Items),
		"subtotal": summary.Subtotal,
	})

	c.JSON(http.StatusOK, gin.H{
		"cart_items":    summary.Items,
		"count":         len(summary.Items),
		"subtotal":      summary.Subtotal,
		"restaurant_id": summary.RestaurantID,
	})
}

// AddToCart puts a product in the cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados informados não são válidos")
		return
	}

	item, err := ctrl.cartService.AddItem(userID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produto não encontrado")
		case errors.Is(err, service.ErrProductUnavailable):
			apperrors.BadRequest(c, apperrors.ProductUnavailable, "Este produto não está disponível no momento")
		case errors.Is(err, service.ErrCartMixedRestaurants):
			apperrors.Conflict(c, apperrors.CartMixedRestaurants, "Seu carrinho já tem itens de outro restaurante. Finalize ou esvazie o carrinho primeiro")
		default:
			log.Error("Failed to add item to cart", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "add to cart")
		}
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Item adicionado ao carrinho",
		"cart_item": item,
	})
}

// IncreaseQuantity adds one unit to a cart line
// PUT /api/v1/cart/:id/increase
func (ctrl *CartController) IncreaseQuantity(c *gin.Context) {
	ctrl.changeQuantity(c, true)
}

// DecreaseQuantity removes one unit; at one unit the line is deleted
// PUT /api/v1/cart/:id/decrease
func (ctrl *CartController) DecreaseQuantity(c *gin.Context) {
	ctrl.changeQuantity(c, false)
}

func (ctrl *CartController) changeQuantity(c *gin.Context, increase bool) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	cartItemID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de item inválido")
		return
	}

	var item interface{}
	if increase {
		item, err = ctrl.cartService.IncreaseQuantity(userID, cartItemID)
	} else {
		item, err = ctrl.cartService.DecreaseQuantity(userID, cartItemID)
	}
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Item não encontrado no carrinho")
			return
		}
		log.Error("Failed to change cart quantity", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Carrinho atualizado",
		"cart_item": item,
	})
}

// RemoveItem deletes a cart line
// DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	cartItemID, err := parseIDParam(c, "id")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de item inválido")
		return
	}

	if err := ctrl.cartService.RemoveItem(userID, cartItemID); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Item não encontrado no carrinho")
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "remove from cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removido do carrinho",
	})
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Carrinho esvaziado",
	})
}
