package repository

import (
	"context"

	"github.com/invoiceflow/invoiceflow/pkg/db/option"
	"gorm.io/gorm"
)

// Repository is the generic gorm-backed store shared by the feature
// services. The store offers the primitives the invoicing pipeline needs:
// lookup, unique insert, update by id, delete and a collection count.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	Create(ctx context.Context, resource *T) error
	Save(ctx context.Context, resource *T) error
	Update(ctx context.Context, resourceID string, resource any) error
	Delete(ctx context.Context, resourceID string) error
	Count(ctx context.Context, query *T) (int64, error)
}
