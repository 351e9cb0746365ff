package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusAccepted       OrderStatus = "accepted"         // restaurant accepted the order
	OrderStatusPreparing      OrderStatus = "preparing"        // order being prepared
	OrderStatusFindingCourier OrderStatus = "finding_courier"  // looking for a partner courier
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery" // courier on the way
	OrderStatusDelivered      OrderStatus = "delivered"        // order arrived
)

// statusSequence is the fixed progression every order walks through.
var statusSequence = []OrderStatus{
	OrderStatusAccepted,
	OrderStatusPreparing,
	OrderStatusFindingCourier,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

var statusMessages = map[OrderStatus]string{
	OrderStatusAccepted:       "O restaurante aceitou o pedido",
	OrderStatusPreparing:      "Pedido sendo preparado",
	OrderStatusFindingCourier: "Encontrando motorista parceiro",
	OrderStatusOutForDelivery: "Seu motorista está indo até você",
	OrderStatusDelivered:      "Seu pedido chegou",
}

// Next returns the status that follows s, or s itself when the sequence
// is over.
func (s OrderStatus) Next() OrderStatus {
	for i, status := range statusSequence {
		if status == s && i+1 < len(statusSequence) {
			return statusSequence[i+1]
		}
	}
	return s
}

// IsFinal reports whether s ends the progression.
func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusDelivered
}

// Message returns the customer-facing description of the status.
func (s OrderStatus) Message() string {
	return statusMessages[s]
}

// StatusSequence returns the full ordered progression, for clients that
// render the tracking timeline.
func StatusSequence() []OrderStatus {
	seq := make([]OrderStatus, len(statusSequence))
	copy(seq, statusSequence)
	return seq
}

type Order struct {
	ID            uint         `gorm:"primarykey" json:"id"`
	OrderNumber   string       `gorm:"size:20;uniqueIndex;not null" json:"order_number"`
	UserID        uint         `gorm:"not null;index" json:"user_id"`
	RestaurantID  uint         `gorm:"not null;index" json:"restaurant_id"`
	Status        OrderStatus  `gorm:"type:varchar(20);default:'accepted'" json:"status"`
	Subtotal      float64      `gorm:"not null" json:"subtotal"`
	DeliveryFee   float64      `gorm:"not null" json:"delivery_fee"`
	DeliveryTier  DeliveryTier `gorm:"type:varchar(10);default:'normal'" json:"delivery_tier"`
	Total         float64      `gorm:"not null" json:"total"`
	PaymentMethod string       `gorm:"type:varchar(20);not null" json:"payment_method"`
	TransactionID string       `gorm:"type:varchar(50)" json:"transaction_id,omitempty"`

	// Shipping address snapshot, one line per row in the receipt
	ShippingAddress string `gorm:"type:text" json:"shipping_address"`

	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeliveredAt *time.Time     `json:"delivered_at,omitempty"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Restaurant Restaurant  `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem snapshots a cart line at checkout time so later menu edits
// do not rewrite order history.
type OrderItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderID        uint           `gorm:"not null;index" json:"order_id"`
	ProductID      uint           `gorm:"not null;index" json:"product_id"`
	ProductName    string         `gorm:"not null" json:"product_name"`
	RestaurantName string         `gorm:"not null" json:"restaurant_name"`
	Quantity       int            `gorm:"not null" json:"quantity"`
	Price          float64        `gorm:"not null" json:"price"` // unit price at checkout
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
