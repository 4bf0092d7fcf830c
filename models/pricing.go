package models

import (
	"fmt"
	"time"

	"homestay/services/pricing"
)

type PricingConfiguration struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	AccommodationID uint          `json:"accommodationId" gorm:"uniqueIndex"` // Mỗi chỗ ở chỉ có một cấu hình giá
	BasePrice       float64       `json:"basePrice"`                          // Giá gốc mỗi đêm, phải > 0
	Currency        string        `json:"currency" gorm:"type:varchar(3);default:'EUR'"`
	Rules           []PricingRule `json:"rules" gorm:"foreignKey:PricingConfigurationID"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (p *PricingConfiguration) ValidateBasePrice() error {
	if p.BasePrice <= 0 {
		return fmt.Errorf("invalid BasePrice: %v, must be greater than 0", p.BasePrice)
	}
	return nil
}

// PricingRule lưu cả 4 loại rule trong một bảng, phân biệt bằng Type,
// các cột theo loại để nullable. Mapping sang union type của engine
// nằm ở services/pricing_service.go
type PricingRule struct {
	ID                     uint      `json:"id" gorm:"primaryKey"`
	PricingConfigurationID uint      `json:"pricingConfigurationId" gorm:"index"`
	Type                   string    `json:"type"` // SEASON | WEEKEND | LONG_STAY | CUSTOM_PERIOD
	Name                   string    `json:"name"`
	Priority               int       `json:"priority"`
	Enabled                bool      `json:"enabled" gorm:"default:true"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// SEASON
	Season          *string  `json:"season,omitempty"`     // HIGH | LOW
	StartMonth      *int     `json:"startMonth,omitempty"` // 1-12, cho phép vắt qua cuối năm
	EndMonth        *int     `json:"endMonth,omitempty"`
	PriceMultiplier *float64 `json:"priceMultiplier,omitempty"` // Dùng chung với CUSTOM_PERIOD

	// WEEKEND
	WeekendMultiplier *float64 `json:"weekendMultiplier,omitempty"`
	WeekMultiplier    *float64 `json:"weekMultiplier,omitempty"`

	// LONG_STAY
	MinimumNights             *int     `json:"minimumNights,omitempty"`
	DiscountPercentage        *float64 `json:"discountPercentage,omitempty"`
	MaximumDiscountPercentage *float64 `json:"maximumDiscountPercentage,omitempty"`

	// CUSTOM_PERIOD, ngày dạng YYYY-MM-DD
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
}

func (r *PricingRule) ValidateType() error {
	switch r.Type {
	case pricing.RuleTypeSeason, pricing.RuleTypeWeekend, pricing.RuleTypeLongStay, pricing.RuleTypeCustomPeriod:
		return nil
	}
	return fmt.Errorf("invalid Type: %s", r.Type)
}
