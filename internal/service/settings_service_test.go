package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit-io/shopkit/internal/config"
	"github.com/shopkit-io/shopkit/internal/model"
)

// mockSettingRepository is a mock implementation of SettingRepositoryInterface.
type mockSettingRepository struct {
	stored   map[string]string
	getAllFn func(ctx context.Context) (map[string]string, error)
	upsertFn func(ctx context.Context, key, value string) error
}

func (m *mockSettingRepository) GetAll(ctx context.Context) (map[string]string, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return m.stored, nil
}

func (m *mockSettingRepository) Upsert(ctx context.Context, key, value string) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, key, value)
	}
	if m.stored == nil {
		m.stored = map[string]string{}
	}
	m.stored[key] = value
	return nil
}

func shopDefaults() config.ShopConfig {
	return config.ShopConfig{
		TaxRate:           0.05,
		ShippingFee:       5,
		OrderNumberPrefix: "ORD",
	}
}

func TestSettingsService_Pricing_DefaultsWhenEmpty(t *testing.T) {
	svc := NewSettingsService(&mockSettingRepository{}, shopDefaults())

	got, err := svc.Pricing(context.Background())

	require.NoError(t, err)
	assert.InDelta(t, 0.05, got.TaxRate, 1e-9)
	assert.InDelta(t, 5.0, got.ShippingFee, 1e-9)
	assert.Equal(t, "ORD", got.OrderNumberPrefix)
}

func TestSettingsService_Pricing_StoredOverridesDefaults(t *testing.T) {
	repo := &mockSettingRepository{stored: map[string]string{
		model.SettingTaxRate:     "0.07",
		model.SettingShippingFee: "7.5",
	}}
	svc := NewSettingsService(repo, shopDefaults())

	got, err := svc.Pricing(context.Background())

	require.NoError(t, err)
	assert.InDelta(t, 0.07, got.TaxRate, 1e-9)
	assert.InDelta(t, 7.5, got.ShippingFee, 1e-9)
	assert.Equal(t, "ORD", got.OrderNumberPrefix, "absent keys fall back to config")
}

func TestSettingsService_Pricing_IgnoresMalformedValues(t *testing.T) {
	repo := &mockSettingRepository{stored: map[string]string{
		model.SettingTaxRate: "not-a-number",
	}}
	svc := NewSettingsService(repo, shopDefaults())

	got, err := svc.Pricing(context.Background())

	require.NoError(t, err)
	assert.InDelta(t, 0.05, got.TaxRate, 1e-9)
}

func TestSettingsService_Update_PersistsAndReturnsEffective(t *testing.T) {
	repo := &mockSettingRepository{}
	svc := NewSettingsService(repo, shopDefaults())

	prefix := "SHOP"
	got, err := svc.Update(context.Background(), &model.UpdateSettingsRequest{
		TaxRate:           floatPtr(0.1),
		OrderNumberPrefix: &prefix,
	})

	require.NoError(t, err)
	assert.InDelta(t, 0.1, got.TaxRate, 1e-9)
	assert.Equal(t, "SHOP", got.OrderNumberPrefix)
	assert.InDelta(t, 5.0, got.ShippingFee, 1e-9, "untouched keys keep defaults")
	assert.Equal(t, "0.1", repo.stored[model.SettingTaxRate])
}

func TestSettingsService_Update_NilRequest(t *testing.T) {
	svc := NewSettingsService(&mockSettingRepository{}, shopDefaults())

	_, err := svc.Update(context.Background(), nil)

	assert.ErrorIs(t, err, ErrInvalidRequest)
}
