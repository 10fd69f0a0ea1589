package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/invoiceflow/invoiceflow/internal/clock"
	"github.com/invoiceflow/invoiceflow/internal/contact/domain"
	"github.com/invoiceflow/invoiceflow/internal/usercontext"
	"github.com/invoiceflow/invoiceflow/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("contact.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateContactRequest) (domain.Contact, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Contact{}, domain.ErrInvalidUser
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Contact{}, domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email != "" && !strings.Contains(email, "@") {
		return domain.Contact{}, domain.ErrInvalidEmail
	}

	now := s.clock.Now()
	contact := domain.Contact{
		ID:        s.genID.Generate(),
		CreatedBy: ownerID,
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Company:   strings.TrimSpace(req.Company),
		Address:   req.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &contact); err != nil {
		return domain.Contact{}, err
	}

	return contact, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateContactRequest) (domain.Contact, error) {
	existing, err := s.findOwned(ctx, id)
	if err != nil {
		return domain.Contact{}, err
	}

	updated := *existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Contact{}, domain.ErrInvalidName
		}
		updated.Name = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" && !strings.Contains(email, "@") {
			return domain.Contact{}, domain.ErrInvalidEmail
		}
		updated.Email = email
	}
	if req.Phone != nil {
		updated.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Company != nil {
		updated.Company = strings.TrimSpace(*req.Company)
	}
	if req.Address != nil {
		updated.Address = *req.Address
	}
	updated.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, &updated); err != nil {
		return domain.Contact{}, err
	}

	return updated, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetContactRequest) (domain.Contact, error) {
	contact, err := s.findOwned(ctx, req.ID)
	if err != nil {
		return domain.Contact{}, err
	}
	return *contact, nil
}

func (s *Service) List(ctx context.Context, req domain.ListContactRequest) (domain.ListContactResponse, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.ListContactResponse{}, domain.ErrInvalidUser
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	filter := domain.ListContactFilter{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	}
	if token := strings.TrimSpace(req.PageToken); token != "" {
		decoded, err := pagination.DecodeCursor(token)
		if err != nil || decoded == nil {
			return domain.ListContactResponse{}, domain.ErrInvalidPageToken
		}
		createdAt, err := time.Parse(time.RFC3339Nano, decoded.CreatedAt)
		if err != nil {
			return domain.ListContactResponse{}, domain.ErrInvalidPageToken
		}
		cursorID, err := snowflake.ParseString(strings.TrimSpace(decoded.ID))
		if err != nil || cursorID == 0 {
			return domain.ListContactResponse{}, domain.ErrInvalidPageToken
		}
		filter.Cursor = &domain.ContactCursor{ID: cursorID, CreatedAt: createdAt}
	}

	items, err := s.repo.List(ctx, s.db, ownerID, filter, pagination.Pagination{
		PageSize: pageSize,
	})
	if err != nil {
		return domain.ListContactResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(contact *domain.Contact) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        contact.ID.String(),
			CreatedAt: contact.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	contacts := make([]domain.Contact, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		contacts = append(contacts, *item)
	}

	resp := domain.ListContactResponse{Contacts: contacts}
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

	ownerID, _ := usercontext.UserIDFromContext(ctx)
	return s.repo.Delete(ctx, s.db, ownerID, existing.ID)
}

func (s *Service) findOwned(ctx context.Context, id string) (*domain.Contact, error) {
	ownerID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return nil, domain.ErrInvalidUser
	}

	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}

	contact, err := s.repo.FindByID(ctx, s.db, ownerID, parsed)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}
	return contact, nil
}
