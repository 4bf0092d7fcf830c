package pricing

import "time"

// Season phân loại mùa của SeasonRule
type Season string

const (
	SeasonHigh Season = "HIGH"
	SeasonLow  Season = "LOW"
)

// Các loại rule, dùng làm discriminator khi lưu trữ
const (
	RuleTypeSeason       = "SEASON"
	RuleTypeWeekend      = "WEEKEND"
	RuleTypeLongStay     = "LONG_STAY"
	RuleTypeCustomPeriod = "CUSTOM_PERIOD"
)

// RuleMeta chứa các trường chung của mọi rule
type RuleMeta struct {
	Name     string
	Priority int
	Enabled  bool
}

// Meta trả về metadata chung của rule
func (m RuleMeta) Meta() RuleMeta {
	return m
}

// Rule là union của 4 loại rule giá: SeasonRule, WeekendRule,
// LongStayRule, CustomPeriodRule. Vòng lặp tính giá type-switch
// trên từng loại cụ thể.
type Rule interface {
	Meta() RuleMeta
}

// SeasonRule nhân giá theo mùa, khoảng tháng cho phép vắt qua cuối năm
// (vd 11 -> 3 nghĩa là tháng 11 đến tháng 3 năm sau)
type SeasonRule struct {
	RuleMeta
	Season          Season
	StartMonth      int
	EndMonth        int
	PriceMultiplier float64
}

// WeekendRule luôn áp dụng: WeekendMultiplier cho đêm T7/CN,
// WeekMultiplier cho các đêm còn lại
type WeekendRule struct {
	RuleMeta
	WeekendMultiplier float64
	WeekMultiplier    float64
}

// LongStayRule giảm giá một lần trên subtotal của cả kỳ lưu trú
type LongStayRule struct {
	RuleMeta
	MinimumNights             int
	DiscountPercentage        float64
	MaximumDiscountPercentage *float64
}

// CustomPeriodRule nhân giá cho một khoảng ngày cụ thể, bao gồm cả hai đầu
type CustomPeriodRule struct {
	RuleMeta
	StartDate       time.Time
	EndDate         time.Time
	PriceMultiplier float64
}
