package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleRestaurant UserRole = "restaurant" // restaurant owner
	RoleAdmin      UserRole = "admin"
)

type User struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string         `gorm:"not null" json:"-"`
	Name          string         `gorm:"not null" json:"name"`
	Phone         string         `json:"phone"`
	PhoneVerified bool           `gorm:"default:false" json:"phone_verified"`
	Role          UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Addresses   []Address    `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	Restaurants []Restaurant `gorm:"foreignKey:UserID" json:"restaurants,omitempty"`
}

func (User) TableName() string {
	return "users"
}
