package model

import (
	"time"

	"gorm.io/gorm"
)

type Address struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	ZipCode    string         `gorm:"size:10" json:"zip_code"`                // CEP
	Street     string         `gorm:"type:text;not null" json:"street"`      // logradouro
	Number     string         `gorm:"size:20;not null" json:"number"`
	Complement string         `gorm:"type:text" json:"complement"`
	District   string         `gorm:"size:100" json:"district"`              // bairro
	City       string         `gorm:"size:100;not null" json:"city"`
	State      string         `gorm:"size:2;not null" json:"state"`          // UF
	IsPrimary  bool           `gorm:"default:false" json:"is_primary"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}

// Lines renders the address as the lines used in receipt emails.
func (a *Address) Lines() []string {
	first := a.Street + ", " + a.Number
	lines := []string{first}
	if a.Complement != "" {
		lines = append(lines, a.Complement)
	}
	lines = append(lines,
		a.District,
		a.City+" - "+a.State,
		"CEP: "+a.ZipCode,
	)
	return lines
}
