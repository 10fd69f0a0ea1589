// Package domain contains the invoice aggregate and its lifecycle rules.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// LineItem is one billable entry. LineTotal is always derived on the
// server from quantity and unit price, never trusted from caller input.
type LineItem struct {
	ItemID      string  `json:"itemId,omitempty"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Unit        string  `json:"unit,omitempty"`
	TaxRate     float64 `json:"taxRate"`
	IsTaxable   bool    `json:"isTaxable"`
	LineTotal   float64 `json:"lineTotal"`
}

// TaxEntry is the single aggregate tax line carried by every invoice.
type TaxEntry struct {
	Type   string  `json:"type"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

type Discount struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Financials holds the derived monetary totals.
type Financials struct {
	Subtotal   float64    `json:"subtotal"`
	Taxes      []TaxEntry `json:"taxes"`
	Discounts  []Discount `json:"discounts"`
	Shipping   float64    `json:"shipping"`
	GrandTotal float64    `json:"grandTotal"`
}

// Metadata identifies the document. InvoiceNumber is unique and immutable
// once assigned.
type Metadata struct {
	Title         string     `gorm:"not null;default:'INVOICE'" json:"title"`
	InvoiceNumber string     `gorm:"not null;uniqueIndex:ux_invoices_number" json:"invoiceNumber"`
	InvoiceDate   time.Time  `gorm:"not null" json:"invoiceDate"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	ServiceDate   *time.Time `json:"serviceDate,omitempty"`
	Currency      string     `gorm:"not null;default:'USD'" json:"currency"`
}

type LateFee struct {
	Type      string  `json:"type,omitempty"`
	Value     float64 `json:"value,omitempty"`
	Frequency string  `json:"frequency,omitempty"`
}

type BankAccount struct {
	AccountName   string `json:"accountName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	RoutingNumber string `json:"routingNumber,omitempty"`
	SwiftBic      string `json:"swiftBic,omitempty"`
	Iban          string `json:"iban,omitempty"`
}

// PaymentDetails is caller-supplied pass-through payment information.
type PaymentDetails struct {
	Terms       string       `json:"terms,omitempty"`
	Methods     []string     `json:"methods,omitempty"`
	LateFee     *LateFee     `json:"lateFee,omitempty"`
	BankAccount *BankAccount `json:"bankAccount,omitempty"`
	PaymentLink string       `json:"paymentLink,omitempty"`
}

type AdditionalInfo struct {
	Notes       string   `json:"notes,omitempty"`
	TermsURL    string   `json:"termsUrl,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

// Status tracks the payment workflow of an invoice.
type Status struct {
	IsPaid            bool       `gorm:"not null;default:false" json:"isPaid"`
	PaymentDate       *time.Time `json:"paymentDate,omitempty"`
	PaymentMethodUsed string     `json:"paymentMethodUsed,omitempty"`
	State             State      `gorm:"type:text;not null;default:'draft';index" json:"state"`
}

// Invoice is the aggregate root. Client and CreatedBy are references only;
// the records they point at live in their own stores.
type Invoice struct {
	ID             snowflake.ID   `gorm:"primaryKey" json:"id"`
	CreatedBy      snowflake.ID   `gorm:"not null;index" json:"createdBy"`
	ClientID       snowflake.ID   `gorm:"not null;index" json:"client"`
	Metadata       Metadata       `gorm:"embedded;embeddedPrefix:metadata_" json:"metadata"`
	LineItems      []LineItem     `gorm:"serializer:json;type:jsonb" json:"lineItems"`
	Financials     Financials     `gorm:"serializer:json;type:jsonb" json:"financials"`
	PaymentDetails PaymentDetails `gorm:"serializer:json;type:jsonb" json:"paymentDetails"`
	AdditionalInfo AdditionalInfo `gorm:"serializer:json;type:jsonb" json:"additionalInfo"`
	Status         Status         `gorm:"embedded;embeddedPrefix:status_" json:"status"`
	CreatedAt      time.Time      `gorm:"not null;index" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updatedAt"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }
