package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/invoiceflow/invoiceflow/internal/clock"
	contactdomain "github.com/invoiceflow/invoiceflow/internal/contact/domain"
	"github.com/invoiceflow/invoiceflow/internal/invoice/calc"
	"github.com/invoiceflow/invoiceflow/internal/invoice/domain"
	"github.com/invoiceflow/invoiceflow/internal/usercontext"
	"github.com/invoiceflow/invoiceflow/pkg/db"
	"github.com/invoiceflow/invoiceflow/pkg/db/option"
	"github.com/invoiceflow/invoiceflow/pkg/db/pagination"
	"github.com/invoiceflow/invoiceflow/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	ContactSvc contactdomain.Service
}

// Service sequences the invoice pipeline: line-item normalization, tax
// aggregation, financial assembly, number assignment and the lifecycle
// guard, in that order. It owns no state beyond its collaborators; every
// call is a single request-scoped computation followed by one store write.
type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	repo       repository.Repository[domain.Invoice]
	contactSvc contactdomain.Service
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("invoice.service"),
		genID: p.GenID,
		clock: p.Clock,

		repo:       repository.ProvideStore[domain.Invoice](p.DB),
		contactSvc: p.ContactSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.Invoice{}, domain.ErrInvalidUser
	}

	clientID, err := s.resolveClient(ctx, req.Client)
	if err != nil {
		return domain.Invoice{}, err
	}

	items, err := calc.ComputeLineItems(req.LineItems)
	if err != nil {
		return domain.Invoice{}, err
	}
	tax := calc.AggregateTax(items)
	financials, err := calc.AssembleFinancials(items, tax, shippingOf(req.Financials), discountsOf(req.Financials))
	if err != nil {
		return domain.Invoice{}, err
	}

	now := s.clock.Now()
	metadata, err := s.buildMetadata(ctx, req.Metadata, now)
	if err != nil {
		return domain.Invoice{}, err
	}

	status := domain.Status{State: domain.StateDraft}
	if req.Status != nil && req.Status.State != "" {
		status, err = status.Transition(req.Status.State, domain.Status{
			PaymentDate:       req.Status.PaymentDate,
			PaymentMethodUsed: req.Status.PaymentMethodUsed,
		})
		if err != nil {
			return domain.Invoice{}, err
		}
	}

	invoice := domain.Invoice{
		ID:         s.genID.Generate(),
		CreatedBy:  userID,
		ClientID:   clientID,
		Metadata:   metadata,
		LineItems:  items,
		Financials: financials,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.PaymentDetails != nil {
		invoice.PaymentDetails = *req.PaymentDetails
	}
	if req.AdditionalInfo != nil {
		invoice.AdditionalInfo = *req.AdditionalInfo
	}

	if err := s.repo.Create(ctx, &invoice); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Invoice{}, domain.ErrDuplicateInvoiceNumber
		}
		return domain.Invoice{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.Metadata.InvoiceNumber),
		zap.Float64("grand_total", invoice.Financials.GrandTotal),
	)

	return invoice, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	existing, err := s.findOwned(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}

	updated := *existing

	if req.Client != nil {
		clientID, err := s.resolveClient(ctx, *req.Client)
		if err != nil {
			return domain.Invoice{}, err
		}
		updated.ClientID = clientID
	}

	if req.Metadata != nil {
		// invoiceNumber is immutable once assigned; any value in the
		// payload is ignored.
		if title := strings.TrimSpace(req.Metadata.Title); title != "" {
			updated.Metadata.Title = title
		}
		if currency := strings.TrimSpace(req.Metadata.Currency); currency != "" {
			updated.Metadata.Currency = currency
		}
		if req.Metadata.InvoiceDate != nil {
			updated.Metadata.InvoiceDate = req.Metadata.InvoiceDate.UTC()
		}
		if req.Metadata.DueDate != nil {
			updated.Metadata.DueDate = req.Metadata.DueDate
		}
		if req.Metadata.ServiceDate != nil {
			updated.Metadata.ServiceDate = req.Metadata.ServiceDate
		}
	}

	if req.LineItems != nil {
		items, err := calc.ComputeLineItems(*req.LineItems)
		if err != nil {
			return domain.Invoice{}, err
		}
		tax := calc.AggregateTax(items)

		shipping := updated.Financials.Shipping
		discounts := updated.Financials.Discounts
		if req.Financials != nil {
			if req.Financials.Shipping != nil {
				shipping = *req.Financials.Shipping
			}
			if req.Financials.Discounts != nil {
				discounts = *req.Financials.Discounts
			}
		}

		financials, err := calc.AssembleFinancials(items, tax, shipping, discounts)
		if err != nil {
			return domain.Invoice{}, err
		}
		updated.LineItems = items
		updated.Financials = financials
	} else if req.Financials != nil {
		// Without a line-item change the totals stay as stored; shipping
		// and discounts are pass-through fields here.
		if req.Financials.Shipping != nil {
			if *req.Financials.Shipping < 0 {
				return domain.Invoice{}, domain.ErrInvalidShipping
			}
			updated.Financials.Shipping = *req.Financials.Shipping
		}
		if req.Financials.Discounts != nil {
			updated.Financials.Discounts = *req.Financials.Discounts
		}
	}

	if req.PaymentDetails != nil {
		updated.PaymentDetails = *req.PaymentDetails
	}
	if req.AdditionalInfo != nil {
		updated.AdditionalInfo = *req.AdditionalInfo
	}

	if req.Status != nil && req.Status.State != "" {
		status, err := existing.Status.Transition(req.Status.State, domain.Status{
			PaymentDate:       req.Status.PaymentDate,
			PaymentMethodUsed: req.Status.PaymentMethodUsed,
		})
		if err != nil {
			return domain.Invoice{}, err
		}
		updated.Status = status
	}

	updated.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, &updated); err != nil {
		return domain.Invoice{}, err
	}

	return updated, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, req domain.UpdateStatusRequest) (domain.Invoice, error) {
	existing, err := s.findOwned(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}

	status, err := existing.Status.Transition(req.State, domain.Status{
		PaymentDate:       req.PaymentDate,
		PaymentMethodUsed: req.PaymentMethodUsed,
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	updated := *existing
	updated.Status = status
	updated.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, &updated); err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("invoice status changed",
		zap.String("invoice_id", updated.ID.String()),
		zap.String("from", string(existing.Status.State)),
		zap.String("to", string(updated.Status.State)),
	)

	return updated, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	invoice, err := s.findOwned(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	return *invoice, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.ListInvoiceResponse{}, domain.ErrInvalidUser
	}

	filter := &domain.Invoice{CreatedBy: userID}
	if req.State != nil {
		if !req.State.Valid() {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidState
		}
		filter.Status.State = *req.State
	}
	if client := strings.TrimSpace(req.Client); client != "" {
		clientID, err := snowflake.ParseString(client)
		if err != nil {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidClient
		}
		filter.ClientID = clientID
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	opts := []option.QueryOption{
		option.ApplyPagination(pagination.Pagination{PageSize: pageSize}),
		option.WithOrder("created_at desc, id desc"),
	}
	if token := strings.TrimSpace(req.PageToken); token != "" {
		decoded, err := pagination.DecodeCursor(token)
		if err != nil || decoded == nil {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidPageToken
		}
		createdAt, err := time.Parse(time.RFC3339Nano, decoded.CreatedAt)
		if err != nil {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidPageToken
		}
		cursorID, err := snowflake.ParseString(strings.TrimSpace(decoded.ID))
		if err != nil || cursorID == 0 {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidPageToken
		}
		opts = append(opts, option.WithCursor(createdAt, cursorID))
	}

	items, err := s.repo.Find(ctx, filter, opts...)
	if err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(invoice *domain.Invoice) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        invoice.ID.String(),
			CreatedAt: invoice.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}

	resp := domain.ListInvoiceResponse{Invoices: invoices}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.findOwned(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, existing.ID.String())
}

func (s *Service) buildMetadata(ctx context.Context, in domain.MetadataInput, now time.Time) (domain.Metadata, error) {
	metadata := domain.Metadata{
		Title:         strings.TrimSpace(in.Title),
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		Currency:      strings.TrimSpace(in.Currency),
		InvoiceDate:   now,
		DueDate:       in.DueDate,
		ServiceDate:   in.ServiceDate,
	}
	if metadata.Title == "" {
		metadata.Title = "INVOICE"
	}
	if metadata.Currency == "" {
		metadata.Currency = "USD"
	}
	if in.InvoiceDate != nil {
		metadata.InvoiceDate = in.InvoiceDate.UTC()
	}
	if metadata.InvoiceNumber == "" {
		number, err := s.nextInvoiceNumber(ctx)
		if err != nil {
			return domain.Metadata{}, err
		}
		metadata.InvoiceNumber = number
	}
	return metadata, nil
}

func (s *Service) resolveClient(ctx context.Context, client string) (snowflake.ID, error) {
	client = strings.TrimSpace(client)
	if client == "" {
		return 0, domain.ErrInvalidClient
	}
	clientID, err := snowflake.ParseString(client)
	if err != nil || clientID == 0 {
		return 0, domain.ErrInvalidClient
	}

	if _, err := s.contactSvc.GetByID(ctx, contactdomain.GetContactRequest{ID: client}); err != nil {
		if errors.Is(err, contactdomain.ErrNotFound) || errors.Is(err, contactdomain.ErrInvalidID) {
			return 0, domain.ErrClientNotFound
		}
		return 0, err
	}
	return clientID, nil
}

func (s *Service) findOwned(ctx context.Context, id string) (*domain.Invoice, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || invoiceID == 0 {
		return nil, domain.ErrInvalidID
	}

	invoice, err := s.repo.FindOne(ctx, &domain.Invoice{ID: invoiceID, CreatedBy: userID})
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

func shippingOf(in domain.FinancialsInput) float64 {
	if in.Shipping == nil {
		return 0
	}
	return *in.Shipping
}

func discountsOf(in domain.FinancialsInput) []domain.Discount {
	if in.Discounts == nil {
		return nil
	}
	return *in.Discounts
}
