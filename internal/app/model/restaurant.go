package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DeliveryTier names one of the two delivery speed options a restaurant
// offers.
type DeliveryTier string

const (
	TierNormal DeliveryTier = "normal"
	TierFast   DeliveryTier = "rapida"
)

type Restaurant struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:50;not null" json:"category"`
	ImageURL    string         `json:"image_url"`
	OpeningTime string         `gorm:"size:5" json:"opening_time"` // "HH:MM"
	ClosingTime string         `gorm:"size:5" json:"closing_time"` // "HH:MM"

	// Accepted payment methods, e.g. ["cartao", "pix"]
	PaymentMethods pq.StringArray `gorm:"type:text[];default:'{cartao,pix}'" json:"payment_methods"`

	// Delivery tiers: fee in reais, duration in minutes
	DeliveryFeeNormal  float64 `gorm:"not null;default:0" json:"delivery_fee_normal"`
	DeliveryTimeNormal int     `gorm:"not null;default:45" json:"delivery_time_normal"`
	DeliveryFeeFast    float64 `gorm:"not null;default:0" json:"delivery_fee_fast"`
	DeliveryTimeFast   int     `gorm:"not null;default:25" json:"delivery_time_fast"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Products []Product `gorm:"foreignKey:RestaurantID" json:"products,omitempty"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

// DeliveryFee returns the fee for the given tier. Unknown tiers fall
// back to the normal tier.
func (r *Restaurant) DeliveryFee(tier DeliveryTier) float64 {
	if tier == TierFast {
		return r.DeliveryFeeFast
	}
	return r.DeliveryFeeNormal
}

// DeliveryTime returns the estimated delivery duration in minutes for
// the given tier.
func (r *Restaurant) DeliveryTime(tier DeliveryTier) int {
	if tier == TierFast {
		return r.DeliveryTimeFast
	}
	return r.DeliveryTimeNormal
}
