package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/invoiceflow/invoiceflow/pkg/db/pagination"
	"gorm.io/gorm"
)

// ContactCursor marks the last row of the previous page for keyset
// pagination over (created_at desc, id desc).
type ContactCursor struct {
	ID        snowflake.ID
	CreatedAt time.Time
}

type ListContactFilter struct {
	Name   string
	Email  string
	Cursor *ContactCursor
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, contact *Contact) error
	FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*Contact, error)
	List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter ListContactFilter, page pagination.Pagination) ([]*Contact, error)
	Save(ctx context.Context, db *gorm.DB, contact *Contact) error
	Delete(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) error
}
