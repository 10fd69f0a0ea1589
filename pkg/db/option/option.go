// Package option provides composable gorm query modifiers used by the
// generic repository.
package option

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/invoiceflow/invoiceflow/pkg/db/pagination"
	"gorm.io/gorm"
)

type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type queryOptionFunc func(*gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

type Operator string

const (
	GTE Operator = ">="
	LTE Operator = "<="
	EQ  Operator = "="
)

type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

// ApplyOperator adds a single comparison predicate.
func ApplyOperator(cond Condition) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Where(cond.Field+" "+string(cond.Operator)+" ?", cond.Value)
	})
}

// WithOrder appends an ORDER BY expression.
func WithOrder(expr string) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Order(expr)
	})
}

// WithLimit caps the result size.
func WithLimit(limit int) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

// ApplyPagination fetches one row beyond the page size so the caller can
// detect whether more rows exist. The cursor predicate is applied
// separately via WithCursor once the service has decoded the token.
func ApplyPagination(page pagination.Pagination) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		size := page.PageSize
		if size <= 0 {
			size = 50
		}
		return db.Limit(size + 1)
	})
}

// WithCursor applies the keyset predicate for rows ordered by
// (created_at desc, id desc). The id tie-break keeps rows created in the
// same instant from being skipped across a page boundary.
func WithCursor(createdAt time.Time, id snowflake.ID) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			createdAt, createdAt, id)
	})
}
