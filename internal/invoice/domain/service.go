package domain

import (
	"context"
	"time"

	"github.com/invoiceflow/invoiceflow/pkg/db/pagination"
)

// LineItemInput is the caller-facing line item shape. Quantity and
// UnitPrice are pointers so a missing value can be told apart from zero.
type LineItemInput struct {
	ItemID      string   `json:"itemId"`
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity"`
	UnitPrice   *float64 `json:"unitPrice"`
	Unit        string   `json:"unit"`
	TaxRate     *float64 `json:"taxRate"`
	IsTaxable   bool     `json:"isTaxable"`
}

type MetadataInput struct {
	Title         string     `json:"title"`
	InvoiceNumber string     `json:"invoiceNumber"`
	InvoiceDate   *time.Time `json:"invoiceDate"`
	DueDate       *time.Time `json:"dueDate"`
	ServiceDate   *time.Time `json:"serviceDate"`
	Currency      string     `json:"currency"`
}

type FinancialsInput struct {
	Shipping  *float64    `json:"shipping"`
	Discounts *[]Discount `json:"discounts"`
}

type StatusInput struct {
	State             State      `json:"state"`
	PaymentDate       *time.Time `json:"paymentDate"`
	PaymentMethodUsed string     `json:"paymentMethodUsed"`
}

type CreateInvoiceRequest struct {
	Metadata       MetadataInput   `json:"metadata"`
	Client         string          `json:"client"`
	LineItems      []LineItemInput `json:"lineItems"`
	Financials     FinancialsInput `json:"financials"`
	PaymentDetails *PaymentDetails `json:"paymentDetails"`
	AdditionalInfo *AdditionalInfo `json:"additionalInfo"`
	Status         *StatusInput    `json:"status"`
}

// UpdateInvoiceRequest carries partial updates. Nil sections leave the
// stored value untouched; a nil LineItems skips recomputation entirely.
type UpdateInvoiceRequest struct {
	Metadata       *MetadataInput   `json:"metadata"`
	Client         *string          `json:"client"`
	LineItems      *[]LineItemInput `json:"lineItems"`
	Financials     *FinancialsInput `json:"financials"`
	PaymentDetails *PaymentDetails  `json:"paymentDetails"`
	AdditionalInfo *AdditionalInfo  `json:"additionalInfo"`
	Status         *StatusInput     `json:"status"`
}

type UpdateStatusRequest struct {
	State             State      `json:"state"`
	PaymentDate       *time.Time `json:"paymentDate"`
	PaymentMethodUsed string     `json:"paymentMethodUsed"`
}

type ListInvoiceRequest struct {
	PageToken string
	PageSize  int
	State     *State
	Client    string
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	Create(context.Context, CreateInvoiceRequest) (Invoice, error)
	Update(ctx context.Context, id string, req UpdateInvoiceRequest) (Invoice, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	List(context.Context, ListInvoiceRequest) (ListInvoiceResponse, error)
	Delete(ctx context.Context, id string) error
}
