package service

import (
	"context"
	"fmt"

	"github.com/invoiceflow/invoiceflow/internal/invoice/domain"
)

const numberPrefix = "INV"

// nextInvoiceNumber mints INV-<epoch-millis>-<sequence>, where sequence is
// the store-wide invoice count plus one, read at assignment time. The
// scheme is best-effort: concurrent creations inside the same millisecond
// with the same count can collide, and the unique index on the number
// column is what actually enforces uniqueness (the insert then fails with
// a conflict).
func (s *Service) nextInvoiceNumber(ctx context.Context) (string, error) {
	count, err := s.repo.Count(ctx, &domain.Invoice{})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%d", numberPrefix, s.clock.Now().UnixMilli(), count+1), nil
}
