package domain

import (
	"context"
	"errors"

	"gorm.io/datatypes"
)

type Service interface {
	Get(ctx context.Context) (datatypes.JSONMap, error)
	Replace(ctx context.Context, values datatypes.JSONMap) (datatypes.JSONMap, error)
	Patch(ctx context.Context, key string, value any) (datatypes.JSONMap, error)
}

var (
	ErrInvalidUser = errors.New("invalid_user")
	ErrInvalidKey  = errors.New("invalid_key")
)
