package domain

import (
	"context"
	"errors"

	"github.com/invoiceflow/invoiceflow/pkg/db/pagination"
)

type CreateContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Company string  `json:"company"`
	Address Address `json:"address"`
}

// UpdateContactRequest carries partial updates; nil fields are untouched.
type UpdateContactRequest struct {
	Name    *string  `json:"name"`
	Email   *string  `json:"email"`
	Phone   *string  `json:"phone"`
	Company *string  `json:"company"`
	Address *Address `json:"address"`
}

type GetContactRequest struct {
	ID string
}

type ListContactRequest struct {
	PageToken string
	PageSize  int
	Name      string
	Email     string
}

type ListContactResponse struct {
	pagination.PageInfo
	Contacts []Contact `json:"contacts"`
}

type Service interface {
	Create(context.Context, CreateContactRequest) (Contact, error)
	Update(ctx context.Context, id string, req UpdateContactRequest) (Contact, error)
	GetByID(context.Context, GetContactRequest) (Contact, error)
	List(context.Context, ListContactRequest) (ListContactResponse, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidUser      = errors.New("invalid_user")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrInvalidID        = errors.New("invalid_id")
	ErrNotFound         = errors.New("not_found")
	ErrInvalidPageToken = errors.New("invalid_page_token")
)
