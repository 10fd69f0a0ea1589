package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Contact is one address-book entry, owned by the user who created it.
type Contact struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	CreatedBy snowflake.ID `gorm:"not null;index" json:"createdBy"`
	Name      string       `gorm:"not null" json:"name"`
	Email     string       `json:"email,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Company   string       `json:"company,omitempty"`
	Address   Address      `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	CreatedAt time.Time    `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time    `gorm:"not null" json:"updatedAt"`
}

// TableName sets the database table name.
func (Contact) TableName() string { return "contacts" }
