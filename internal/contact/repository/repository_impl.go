package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/invoiceflow/invoiceflow/internal/contact/domain"
	"github.com/invoiceflow/invoiceflow/pkg/db/option"
	"github.com/invoiceflow/invoiceflow/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, contact *domain.Contact) error {
	return db.WithContext(ctx).Create(contact).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*domain.Contact, error) {
	var contact domain.Contact
	err := db.WithContext(ctx).
		Where("created_by = ? AND id = ?", ownerID, id).
		First(&contact).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter domain.ListContactFilter, page pagination.Pagination) ([]*domain.Contact, error) {
	var contacts []*domain.Contact
	stmt := db.WithContext(ctx).
		Model(&domain.Contact{}).
		Where("created_by = ?", ownerID)
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	if filter.Email != "" {
		stmt = stmt.Where("email = ?", filter.Email)
	}
	if filter.Cursor != nil {
		stmt = option.WithCursor(filter.Cursor.CreatedAt, filter.Cursor.ID).Apply(stmt)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, contact *domain.Contact) error {
	return db.WithContext(ctx).Save(contact).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("created_by = ? AND id = ?", ownerID, id).
		Delete(&domain.Contact{}).Error
}
