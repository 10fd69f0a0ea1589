package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/invoiceflow/invoiceflow/internal/clock"
	"github.com/invoiceflow/invoiceflow/internal/setting/domain"
	"github.com/invoiceflow/invoiceflow/internal/usercontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.UserSettings{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := &Service{
		db:    db,
		log:   zap.NewNop(),
		clock: clock.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
	return svc, node
}

func userCtx(userID snowflake.ID) context.Context {
	return usercontext.WithUserID(context.Background(), userID)
}

func TestGetEmptySettings(t *testing.T) {
	svc, node := setupService(t)

	values, err := svc.Get(userCtx(node.Generate()))
	require.NoError(t, err)
	assert.NotNil(t, values)
	assert.Empty(t, values)
}

func TestGetWithoutUser(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
}

func TestReplaceSettings(t *testing.T) {
	svc, node := setupService(t)
	ctx := userCtx(node.Generate())

	values, err := svc.Replace(ctx, datatypes.JSONMap{
		"currency": "EUR",
		"language": "de",
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", values["currency"])

	stored, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EUR", stored["currency"])
	assert.Equal(t, "de", stored["language"])
}

func TestReplaceOverwrites(t *testing.T) {
	svc, node := setupService(t)
	ctx := userCtx(node.Generate())

	_, err := svc.Replace(ctx, datatypes.JSONMap{"currency": "EUR", "language": "de"})
	require.NoError(t, err)

	_, err = svc.Replace(ctx, datatypes.JSONMap{"currency": "USD"})
	require.NoError(t, err)

	stored, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", stored["currency"])
	assert.NotContains(t, stored, "language")
}

func TestPatchSetting(t *testing.T) {
	svc, node := setupService(t)
	ctx := userCtx(node.Generate())

	_, err := svc.Replace(ctx, datatypes.JSONMap{"currency": "EUR", "language": "de"})
	require.NoError(t, err)

	values, err := svc.Patch(ctx, "currency", "USD")
	require.NoError(t, err)
	assert.Equal(t, "USD", values["currency"])
	assert.Equal(t, "de", values["language"])
}

func TestPatchEmptyKey(t *testing.T) {
	svc, node := setupService(t)

	_, err := svc.Patch(userCtx(node.Generate()), "  ", "value")
	assert.ErrorIs(t, err, domain.ErrInvalidKey)
}

func TestSettingsScopedPerUser(t *testing.T) {
	svc, node := setupService(t)
	first := node.Generate()
	second := node.Generate()

	_, err := svc.Replace(userCtx(first), datatypes.JSONMap{"currency": "EUR"})
	require.NoError(t, err)

	stored, err := svc.Get(userCtx(second))
	require.NoError(t, err)
	assert.Empty(t, stored)
}
