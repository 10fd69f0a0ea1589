package service

import (
	"context"
	"errors"
	"strings"

	"github.com/invoiceflow/invoiceflow/internal/clock"
	"github.com/invoiceflow/invoiceflow/internal/setting/domain"
	"github.com/invoiceflow/invoiceflow/internal/usercontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("setting.service"),
		clock: p.Clock,
	}
}

func (s *Service) Get(ctx context.Context) (datatypes.JSONMap, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	var settings domain.UserSettings
	err := s.db.WithContext(ctx).First(&settings, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return datatypes.JSONMap{}, nil
		}
		return nil, err
	}
	if settings.Values == nil {
		return datatypes.JSONMap{}, nil
	}
	return settings.Values, nil
}

func (s *Service) Replace(ctx context.Context, values datatypes.JSONMap) (datatypes.JSONMap, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	if values == nil {
		values = datatypes.JSONMap{}
	}

	settings := domain.UserSettings{
		UserID:    userID,
		Values:    values,
		UpdatedAt: s.clock.Now(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&settings).Error
	if err != nil {
		return nil, err
	}

	return settings.Values, nil
}

func (s *Service) Patch(ctx context.Context, key string, value any) (datatypes.JSONMap, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, domain.ErrInvalidKey
	}

	values, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	values[key] = value
	return s.Replace(ctx, values)
}
