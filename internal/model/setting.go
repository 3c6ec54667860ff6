package model

// Settings are the shop-level pricing knobs the order workflow reads.
// They are persisted as key/value rows; absent keys fall back to the
// configured defaults.
type Settings struct {
	TaxRate               float64 `json:"taxRate"`
	ShippingFee           float64 `json:"shippingFee"`
	FreeShippingThreshold float64 `json:"freeShippingThreshold"`
	OrderNumberPrefix     string  `json:"orderNumberPrefix"`
}

// Setting keys as stored in the settings table.
const (
	SettingTaxRate               = "tax_rate"
	SettingShippingFee           = "shipping_fee"
	SettingFreeShippingThreshold = "free_shipping_threshold"
	SettingOrderNumberPrefix     = "order_number_prefix"
)

// UpdateSettingsRequest is the DTO for PUT /api/settings. Nil fields are left unchanged.
type UpdateSettingsRequest struct {
	TaxRate               *float64 `json:"taxRate" validate:"omitempty,gte=0,lte=1"`
	ShippingFee           *float64 `json:"shippingFee" validate:"omitempty,gte=0"`
	FreeShippingThreshold *float64 `json:"freeShippingThreshold" validate:"omitempty,gte=0"`
	OrderNumberPrefix     *string  `json:"orderNumberPrefix" validate:"omitempty,notblank,max=16,uppercase"`
}
