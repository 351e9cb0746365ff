package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/internal/app/service"
	apperrors "github.com/pedefood/pedefood-backend/internal/errors"
	"github.com/pedefood/pedefood-backend/internal/middleware"
	"github.com/pedefood/pedefood-backend/pkg/payment/simulator"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CardRequest struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

type CheckoutRequest struct {
	PaymentMethod string       `json:"payment_method" binding:"required"`
	DeliveryTier  string       `json:"delivery_tier" binding:"required"`
	Card          *CardRequest `json:"card"`
}

// Checkout turns the cart into an order
// POST /api/v1/checkout
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Os dados de pagamento não são válidos")
		return
	}

	input := service.CheckoutInput{
		PaymentMethod: req.PaymentMethod,
		DeliveryTier:  model.DeliveryTier(req.DeliveryTier),
	}
	if req.Card != nil {
		input.Card = &simulator.CardDetails{
			Number:     req.Card.Number,
			HolderName: req.Card.HolderName,
			Expiry:     req.Card.Expiry,
			CVV:        req.Card.CVV,
		}
	}

	order, err := ctrl.orderService.Checkout(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			apperrors.BadRequest(c, apperrors.CartEmpty, "Seu carrinho está vazio")
		case errors.Is(err, service.ErrInvalidTier):
			apperrors.BadRequest(c, apperrors.DeliveryInvalidTier, "Opção de entrega inválida")
		case errors.Is(err, service.ErrNoPrimaryAddress):
			apperrors.BadRequest(c, apperrors.DeliveryNoAddress, "Cadastre um endereço de entrega antes de finalizar o pedido")
		case errors.Is(err, service.ErrMissingCardDetails):
			apperrors.BadRequest(c, apperrors.PaymentMissingCardData, "Preencha todos os dados do cartão")
		case errors.Is(err, service.ErrInvalidMethod):
			apperrors.BadRequest(c, apperrors.PaymentInvalidMethod, "Forma de pagamento inválida")
		case errors.Is(err, service.ErrCartMixedRestaurants):
			apperrors.Conflict(c, apperrors.CartMixedRestaurants, "Seu carrinho tem itens de restaurantes diferentes")
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "checkout")
		}
		return
	}

	log.Info("Checkout completed", map[string]interface{}{
		"user_id":      userID,
		"order_number": order.OrderNumber,
		"total":        order.Total,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pedido realizado com sucesso",
		"order":   order,
	})
}

// GetOrders lists the caller's order history, newest first
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	orders, err := ctrl.orderService.GetOrders(userID)
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns one order with its tracking state. Clients poll this
// endpoint while the order is in flight.
// GET /api/v1/orders/:number
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "É necessário fazer login")
		return
	}

	orderNumber := c.Param("number")

	order, err := ctrl.orderService.GetOrderByNumber(userID, orderNumber)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Pedido não encontrado")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"user_id":      userID,
			"order_number": orderNumber,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":           order,
		"status_message":  order.Status.Message(),
		"status_sequence": model.StatusSequence(),
	})
}
