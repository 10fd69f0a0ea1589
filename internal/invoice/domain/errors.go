package domain

import "errors"

var (
	ErrInvalidUser      = errors.New("invalid_user")
	ErrInvalidClient    = errors.New("invalid_client")
	ErrClientNotFound   = errors.New("client_not_found")
	ErrInvalidID        = errors.New("invalid_id")
	ErrNotFound         = errors.New("not_found")
	ErrMissingQuantity  = errors.New("missing_quantity")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrMissingUnitPrice = errors.New("missing_unit_price")
	ErrInvalidUnitPrice = errors.New("invalid_unit_price")
	ErrInvalidTaxRate   = errors.New("invalid_tax_rate")
	ErrInvalidShipping  = errors.New("invalid_shipping")

	ErrInvalidPageToken = errors.New("invalid_page_token")

	// ErrDuplicateInvoiceNumber surfaces the store's unique constraint on
	// invoice numbers as a creation conflict.
	ErrDuplicateInvoiceNumber = errors.New("duplicate_invoice_number")

	ErrInvalidState         = errors.New("invalid_state")
	ErrInvalidTransition    = errors.New("invalid_transition")
	ErrMissingPaymentDate   = errors.New("missing_payment_date")
	ErrMissingPaymentMethod = errors.New("missing_payment_method")
)
