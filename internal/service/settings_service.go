package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopkit-io/shopkit/internal/config"
	"github.com/shopkit-io/shopkit/internal/model"
)

// SettingRepositoryInterface defines the interface for settings data access.
type SettingRepositoryInterface interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, key, value string) error
}

// SettingsService resolves shop-level pricing knobs. Persisted settings
// override the configured defaults; absent keys fall back to config.
// It implements PricingProvider for the order workflow.
type SettingsService struct {
	repo     SettingRepositoryInterface
	defaults config.ShopConfig
}

// NewSettingsService creates a new SettingsService with the given
// repository and configured defaults.
func NewSettingsService(repo SettingRepositoryInterface, defaults config.ShopConfig) *SettingsService {
	return &SettingsService{repo: repo, defaults: defaults}
}

// Pricing returns the effective shop settings.
func (s *SettingsService) Pricing(ctx context.Context) (model.Settings, error) {
	stored, err := s.repo.GetAll(ctx)
	if err != nil {
		return model.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	settings := model.Settings{
		TaxRate:               s.defaults.TaxRate,
		ShippingFee:           s.defaults.ShippingFee,
		FreeShippingThreshold: s.defaults.FreeShippingThreshold,
		OrderNumberPrefix:     s.defaults.OrderNumberPrefix,
	}
	if v, ok := stored[model.SettingTaxRate]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			settings.TaxRate = f
		}
	}
	if v, ok := stored[model.SettingShippingFee]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			settings.ShippingFee = f
		}
	}
	if v, ok := stored[model.SettingFreeShippingThreshold]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			settings.FreeShippingThreshold = f
		}
	}
	if v, ok := stored[model.SettingOrderNumberPrefix]; ok && v != "" {
		settings.OrderNumberPrefix = v
	}
	return settings, nil
}

// Update persists the non-nil fields of the request and returns the
// effective settings afterwards.
func (s *SettingsService) Update(ctx context.Context, req *model.UpdateSettingsRequest) (model.Settings, error) {
	if req == nil {
		return model.Settings{}, ErrInvalidRequest
	}

	fl := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	if req.TaxRate != nil {
		if err := s.repo.Upsert(ctx, model.SettingTaxRate, fl(*req.TaxRate)); err != nil {
			return model.Settings{}, err
		}
	}
	if req.ShippingFee != nil {
		if err := s.repo.Upsert(ctx, model.SettingShippingFee, fl(*req.ShippingFee)); err != nil {
			return model.Settings{}, err
		}
	}
	if req.FreeShippingThreshold != nil {
		if err := s.repo.Upsert(ctx, model.SettingFreeShippingThreshold, fl(*req.FreeShippingThreshold)); err != nil {
			return model.Settings{}, err
		}
	}
	if req.OrderNumberPrefix != nil {
		if err := s.repo.Upsert(ctx, model.SettingOrderNumberPrefix, *req.OrderNumberPrefix); err != nil {
			return model.Settings{}, err
		}
	}
	return s.Pricing(ctx)
}
