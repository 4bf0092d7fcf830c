package dto

import "homestay/models"

// QuoteRequest là body của POST /pricing/:accommodationId/quote,
// ngày dạng ISO-8601 (YYYY-MM-DD), endDate là ngày trả phòng
type QuoteRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// PricingConfigurationRequest là request tạo/cập nhật cấu hình giá
type PricingConfigurationRequest struct {
	BasePrice float64 `json:"basePrice" binding:"required,gt=0"`
	Currency  string  `json:"currency"`
}

// PricingRuleRequest là request tạo/cập nhật một rule giá, các trường
// theo loại chỉ bắt buộc với loại tương ứng (kiểm tra ở validator)
type PricingRuleRequest struct {
	Type                      string   `json:"type" binding:"required"`
	Name                      string   `json:"name" binding:"required"`
	Priority                  int      `json:"priority"`
	Enabled                   *bool    `json:"enabled"`
	Season                    *string  `json:"season,omitempty"`
	StartMonth                *int     `json:"startMonth,omitempty"`
	EndMonth                  *int     `json:"endMonth,omitempty"`
	PriceMultiplier           *float64 `json:"priceMultiplier,omitempty"`
	WeekendMultiplier         *float64 `json:"weekendMultiplier,omitempty"`
	WeekMultiplier            *float64 `json:"weekMultiplier,omitempty"`
	MinimumNights             *int     `json:"minimumNights,omitempty"`
	DiscountPercentage        *float64 `json:"discountPercentage,omitempty"`
	MaximumDiscountPercentage *float64 `json:"maximumDiscountPercentage,omitempty"`
	StartDate                 *string  `json:"startDate,omitempty"`
	EndDate                   *string  `json:"endDate,omitempty"`
}

// PricingConfigurationResponse là response của GET /pricing/:accommodationId
type PricingConfigurationResponse struct {
	AccommodationID uint                 `json:"accommodationId"`
	BasePrice       float64              `json:"basePrice"`
	Currency        string               `json:"currency"`
	Rules           []models.PricingRule `json:"rules"`
}

// NightlyPriceResponse là giá một đêm trong báo giá, ngày dạng YYYY-MM-DD
type NightlyPriceResponse struct {
	Date          string   `json:"date"`
	BasePrice     float64  `json:"basePrice"`
	AdjustedPrice float64  `json:"adjustedPrice"`
	AppliedRules  []string `json:"appliedRules"`
	IsWeekend     bool     `json:"isWeekend"`
}

// QuoteResponse là response của POST /pricing/:accommodationId/quote
type QuoteResponse struct {
	BasePrice           float64                `json:"basePrice"`
	Currency            string                 `json:"currency"`
	Nights              int                    `json:"nights"`
	WeekendNights       int                    `json:"weekendNights"`
	WeekNights          int                    `json:"weekNights"`
	NightlyPrices       []NightlyPriceResponse `json:"nightlyPrices"`
	Subtotal            float64                `json:"subtotal"`
	LongStayDiscount    float64                `json:"longStayDiscount"`
	Total               float64                `json:"total"`
	AverageNightlyPrice float64                `json:"averageNightlyPrice"`
	AppliedRules        []string               `json:"appliedRules"`
}
