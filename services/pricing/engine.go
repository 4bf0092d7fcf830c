package pricing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Config là cấu hình giá của một chỗ ở: giá gốc mỗi đêm + tập rule
type Config struct {
	AccommodationID uint
	BasePrice       float64
	Currency        string
	Rules           []Rule
}

// DateRange là khoảng lưu trú nửa mở [Start, End): ngày trả phòng
// không tính là một đêm
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NightlyPrice là giá đã điều chỉnh của một đêm
type NightlyPrice struct {
	Date          time.Time `json:"date"`
	BasePrice     float64   `json:"basePrice"`
	AdjustedPrice float64   `json:"adjustedPrice"`
	AppliedRules  []string  `json:"appliedRules"`
	IsWeekend     bool      `json:"isWeekend"`
}

// Result tổng hợp giá của cả kỳ lưu trú
type Result struct {
	Nights           int            `json:"nights"`
	WeekendNights    int            `json:"weekendNights"`
	WeekNights       int            `json:"weekNights"`
	NightlyPrices    []NightlyPrice `json:"nightlyPrices"`
	Subtotal         float64        `json:"subtotal"`
	LongStayDiscount float64        `json:"longStayDiscount"`
	Total            float64        `json:"total"`
	AppliedRules     []string       `json:"appliedRules"`
}

// Calculate tính lịch giá từng đêm và tổng tiền cho một kỳ lưu trú.
// Hàm thuần túy, không side effect: cùng input luôn cho cùng output.
// Khoảng ngày rỗng (End <= Start) trả về kết quả 0 đêm, không lỗi.
func Calculate(cfg Config, stay DateRange) Result {
	start := truncateDay(stay.Start)
	end := truncateDay(stay.End)

	result := Result{
		NightlyPrices: []NightlyPrice{},
		AppliedRules:  []string{},
	}
	if !end.After(start) {
		return result
	}

	perNight := perNightRules(cfg.Rules)
	base := decimal.NewFromFloat(cfg.BasePrice)
	subtotal := decimal.Zero
	seen := map[string]bool{}

	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		weekend := IsWeekend(d)
		if weekend {
			result.WeekendNights++
		} else {
			result.WeekNights++
		}

		factor := decimal.NewFromInt(1)
		applied := []string{}
		for _, rule := range perNight {
			switch r := rule.(type) {
			case SeasonRule:
				if MatchesSeason(d, r) {
					factor = factor.Mul(decimal.NewFromFloat(r.PriceMultiplier))
					applied = append(applied, r.Name)
				}
			case WeekendRule:
				// WeekendRule luôn áp dụng, hệ số 1.0 là trường hợp trung tính
				if weekend {
					factor = factor.Mul(decimal.NewFromFloat(r.WeekendMultiplier))
				} else {
					factor = factor.Mul(decimal.NewFromFloat(r.WeekMultiplier))
				}
				applied = append(applied, r.Name)
			case CustomPeriodRule:
				if MatchesCustomPeriod(d, r) {
					factor = factor.Mul(decimal.NewFromFloat(r.PriceMultiplier))
					applied = append(applied, r.Name)
				}
			}
		}

		adjusted := round2(base.Mul(factor))
		subtotal = subtotal.Add(adjusted)

		for _, name := range applied {
			if !seen[name] {
				seen[name] = true
				result.AppliedRules = append(result.AppliedRules, name)
			}
		}

		result.Nights++
		result.NightlyPrices = append(result.NightlyPrices, NightlyPrice{
			Date:          d,
			BasePrice:     cfg.BasePrice,
			AdjustedPrice: adjusted.InexactFloat64(),
			AppliedRules:  applied,
			IsWeekend:     weekend,
		})
	}

	result.Subtotal = subtotal.InexactFloat64()

	discount := decimal.Zero
	if rule, ok := bestLongStayRule(cfg.Rules, result.Nights); ok {
		pct := rule.DiscountPercentage
		if rule.MaximumDiscountPercentage != nil && *rule.MaximumDiscountPercentage < pct {
			pct = *rule.MaximumDiscountPercentage
		}
		discount = round2(subtotal.Mul(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100)))
		if discount.IsPositive() && !seen[rule.Name] {
			result.AppliedRules = append(result.AppliedRules, rule.Name)
		}
	}
	result.LongStayDiscount = discount.InexactFloat64()
	result.Total = round2(subtotal.Sub(discount)).InexactFloat64()

	return result
}

// IsWeekend kiểm tra đêm có rơi vào cuối tuần (T7 hoặc CN) không
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// MatchesSeason kiểm tra tháng của đêm có nằm trong khoảng tháng của rule
// không, hỗ trợ khoảng vắt qua cuối năm (StartMonth > EndMonth).
// Cả mùa HIGH và LOW đều dùng chung khoảng tháng của rule.
func MatchesSeason(date time.Time, rule SeasonRule) bool {
	month := int(date.Month())
	if rule.StartMonth <= rule.EndMonth {
		return month >= rule.StartMonth && month <= rule.EndMonth
	}
	return month >= rule.StartMonth || month <= rule.EndMonth
}

// MatchesCustomPeriod kiểm tra đêm có nằm trong [StartDate, EndDate]
// của rule không, so sánh theo ngày lịch, bỏ qua giờ
func MatchesCustomPeriod(date time.Time, rule CustomPeriodRule) bool {
	d := truncateDay(date)
	return !d.Before(truncateDay(rule.StartDate)) && !d.After(truncateDay(rule.EndDate))
}

// AverageNightlyPrice tính giá trung bình mỗi đêm, 0 nếu không có đêm nào
func AverageNightlyPrice(result Result) float64 {
	if result.Nights == 0 {
		return 0
	}
	total := decimal.NewFromFloat(result.Total)
	return round2(total.Div(decimal.NewFromInt(int64(result.Nights)))).InexactFloat64()
}

// perNightRules lọc các rule theo đêm (Season, Weekend, CustomPeriod)
// đang bật, sắp xếp theo priority giảm dần, giữ nguyên thứ tự khai báo
// khi priority bằng nhau
func perNightRules(rules []Rule) []Rule {
	var filtered []Rule
	for _, rule := range rules {
		if !rule.Meta().Enabled {
			continue
		}
		switch rule.(type) {
		case SeasonRule, WeekendRule, CustomPeriodRule:
			filtered = append(filtered, rule)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Meta().Priority > filtered[j].Meta().Priority
	})
	return filtered
}

// bestLongStayRule chọn LongStayRule đang bật có MinimumNights lớn nhất
// trong số các rule đủ điều kiện (MinimumNights <= nights). Khi nhiều rule
// cùng MinimumNights, rule có priority cao hơn thắng, cùng priority thì
// theo thứ tự khai báo.
func bestLongStayRule(rules []Rule, nights int) (LongStayRule, bool) {
	var candidates []LongStayRule
	for _, rule := range rules {
		ls, ok := rule.(LongStayRule)
		if !ok || !ls.Enabled || ls.MinimumNights > nights {
			continue
		}
		candidates = append(candidates, ls)
	}
	if len(candidates) == 0 {
		return LongStayRule{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.MinimumNights > best.MinimumNights {
			best = c
		}
	}
	return best, true
}

// round2 làm tròn 2 chữ số thập phân, nửa trên (half-up)
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// truncateDay chuẩn hóa về 0h của ngày, bỏ phần giờ phút giây
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
