package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pedefood/pedefood-backend/internal/app/model"
	"github.com/pedefood/pedefood-backend/internal/app/repository"
	"github.com/pedefood/pedefood-backend/pkg/logger"
	"github.com/pedefood/pedefood-backend/pkg/mail"
	"github.com/pedefood/pedefood-backend/pkg/payment/simulator"
	"github.com/pedefood/pedefood-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTier        = errors.New("invalid delivery tier")
	ErrNoPrimaryAddress   = errors.New("no primary delivery address")
	ErrPaymentFailed      = errors.New("payment processing failed")
	ErrMissingCardDetails = simulator.ErrMissingCardDetails
	ErrInvalidMethod      = simulator.ErrInvalidMethod
)

// CheckoutInput is everything the customer submits at checkout. Card is
// required only for card payments.
type CheckoutInput struct {
	PaymentMethod string
	DeliveryTier  model.DeliveryTier
	Card          *simulator.CardDetails
}

// StatusNotifier pushes order status changes to connected clients.
type StatusNotifier interface {
	NotifyStatus(orderNumber string, status model.OrderStatus, message string)
}

type OrderService interface {
	Checkout(ctx context.Context, userID uint, input CheckoutInput) (*model.Order, error)
	GetOrderByNumber(userID uint, orderNumber string) (*model.Order, error)
	GetOrders(userID uint) ([]model.Order, error)
	AdvanceInFlightOrders() error
}

type orderService struct {
	orderRepo      repository.OrderRepository
	cartRepo       repository.CartRepository
	addressRepo    repository.AddressRepository
	restaurantRepo repository.RestaurantRepository
	userRepo       repository.UserRepository
	gateway        *simulator.Client
	mailer         *mail.Mailer
	notifier       StatusNotifier
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	addressRepo repository.AddressRepository,
	restaurantRepo repository.RestaurantRepository,
	userRepo repository.UserRepository,
	gateway *simulator.Client,
	mailer *mail.Mailer,
	notifier StatusNotifier,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		cartRepo:       cartRepo,
		addressRepo:    addressRepo,
		restaurantRepo: restaurantRepo,
		userRepo:       userRepo,
		gateway:        gateway,
		mailer:         mailer,
		notifier:       notifier,
	}
}

// Checkout turns the user's cart into an order: it prices the cart,
// charges the simulated gateway, persists the order with item
// snapshots, emails the receipt and clears the cart. The receipt email
// is best-effort; a mail failure never fails the checkout.
func (s *orderService) Checkout(ctx context.Context, userID uint, input CheckoutInput) (*model.Order, error) {
	logger.Info("Starting checkout", map[string]interface{}{
		"user_id":        userID,
		"payment_method": input.PaymentMethod,
		"delivery_tier":  input.DeliveryTier,
	})

	if input.DeliveryTier != model.TierNormal && input.DeliveryTier != model.TierFast {
		return nil, ErrInvalidTier
	}

	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		logger.Warn("Checkout failed: empty cart", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrCartEmpty
	}

	restaurantID := items[0].Product.RestaurantID
	for _, item := range items {
		if item.Product.RestaurantID != restaurantID {
			return nil, ErrCartMixedRestaurants
		}
	}

	restaurant, err := s.restaurantRepo.FindByID(restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	address, err := s.addressRepo.FindPrimaryByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Checkout failed: no primary address", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrNoPrimaryAddress
		}
		return nil, err
	}

	subtotal := CalculateSubtotal(items)
	deliveryFee := restaurant.DeliveryFee(input.DeliveryTier)
	total := subtotal + deliveryFee

	orderNumber := util.GenerateOrderNumber()

	charge, err := s.gateway.Charge(ctx, simulator.ChargeRequest{
		Method:      simulator.Method(input.PaymentMethod),
		Amount:      total,
		OrderNumber: orderNumber,
		Card:        input.Card,
	})
	if err != nil {
		logger.Warn("Checkout payment rejected", map[string]interface{}{
			"user_id":      userID,
			"order_number": orderNumber,
			"error":        err.Error(),
		})
		return nil, err
	}

	order := &model.Order{
		OrderNumber:     orderNumber,
		UserID:          userID,
		RestaurantID:    restaurant.ID,
		Status:          model.OrderStatusAccepted,
		Subtotal:        subtotal,
		DeliveryFee:     deliveryFee,
		DeliveryTier:    input.DeliveryTier,
		Total:           total,
		PaymentMethod:   input.PaymentMethod,
		TransactionID:   charge.TransactionID,
		ShippingAddress: strings.Join(address.Lines(), "\n"),
	}
	for _, item := range items {
		order.OrderItems = append(order.OrderItems, model.OrderItem{
			ProductID:      item.ProductID,
			ProductName:    item.Product.Name,
			RestaurantName: restaurant.Name,
			Quantity:       item.Quantity,
			Price:          item.Product.Price,
		})
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	s.sendReceipt(order, address, items)

	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		// The order exists; a stale cart is recoverable
		logger.Error("Failed to clear cart after checkout", err, map[string]interface{}{
			"user_id":      userID,
			"order_number": orderNumber,
		})
	}

	logger.Info("Checkout completed", map[string]interface{}{
		"user_id":        userID,
		"order_number":   orderNumber,
		"transaction_id": charge.TransactionID,
		"total":          total,
	})
	return order, nil
}

func (s *orderService) sendReceipt(order *model.Order, address *model.Address, items []model.CartItem) {
	user, err := s.userRepo.FindByID(order.UserID)
	if err != nil {
		logger.Error("Failed to load user for receipt", err, map[string]interface{}{
			"user_id": order.UserID,
		})
		return
	}

	receipt := mail.Receipt{
		OrderNumber:   order.OrderNumber,
		CustomerName:  user.Name,
		CustomerEmail: user.Email,
		Subtotal:      order.Subtotal,
		DeliveryFee:   order.DeliveryFee,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		AddressLines:  address.Lines(),
	}
	for _, item := range items {
		receipt.Items = append(receipt.Items, mail.ReceiptItem{
			Quantity:   item.Quantity,
			Name:       item.Product.Name,
			Restaurant: item.Product.Restaurant.Name,
			UnitPrice:  item.Product.Price,
		})
	}

	if err := s.mailer.SendReceipt(receipt); err != nil {
		logger.Error("Failed to send receipt email", err, map[string]interface{}{
			"order_number": order.OrderNumber,
			"email":        user.Email,
		})
	}
}

func (s *orderService) GetOrderByNumber(userID uint, orderNumber string) (*model.Order, error) {
	order, err := s.orderRepo.FindByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		logger.Warn("Order ownership mismatch", map[string]interface{}{
			"order_number": orderNumber,
			"user_id":      userID,
			"owner_id":     order.UserID,
		})
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) GetOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

// AdvanceInFlightOrders moves every unfinished order one step down the
// status sequence, emailing the customer and notifying connected
// clients for each transition.
func (s *orderService) AdvanceInFlightOrders() error {
	orders, err := s.orderRepo.FindInFlight()
	if err != nil {
		return err
	}

	for i := range orders {
		order := &orders[i]
		next := order.Status.Next()
		if next == order.Status {
			continue
		}

		order.Status = next
		if next.IsFinal() {
			now := time.Now()
			order.DeliveredAt = &now
		}

		if err := s.orderRepo.Update(order); err != nil {
			logger.Error("Failed to advance order status", err, map[string]interface{}{
				"order_number": order.OrderNumber,
			})
			continue
		}

		logger.Info("Order status advanced", map[string]interface{}{
			"order_number": order.OrderNumber,
			"status":       order.Status,
		})

		s.notifyTransition(order)
	}
	return nil
}

func (s *orderService) notifyTransition(order *model.Order) {
	message := order.Status.Message()

	if s.notifier != nil {
		s.notifier.NotifyStatus(order.OrderNumber, order.Status, message)
	}

	user, err := s.userRepo.FindByID(order.UserID)
	if err != nil {
		logger.Error("Failed to load user for status email", err, map[string]interface{}{
			"order_number": order.OrderNumber,
		})
		return
	}

	if err := s.mailer.SendStatusUpdate(user.Email, order.OrderNumber, message); err != nil {
		logger.Error("Failed to send status email", err, map[string]interface{}{
			"order_number": order.OrderNumber,
			"email":        user.Email,
		})
	}
}
