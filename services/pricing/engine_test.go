package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptrFloat(v float64) *float64 {
	return &v
}

func TestCalculateEmptyStay(t *testing.T) {
	cfg := Config{BasePrice: 100}
	d := day(2025, time.June, 2)

	result := Calculate(cfg, DateRange{Start: d, End: d})

	assert.Equal(t, 0, result.Nights)
	assert.Equal(t, 0.0, result.Subtotal)
	assert.Equal(t, 0.0, result.Total)
	assert.Empty(t, result.AppliedRules)
	assert.Empty(t, result.NightlyPrices)

	// End trước Start cũng là kỳ lưu trú rỗng, không lỗi
	result = Calculate(cfg, DateRange{Start: d, End: d.AddDate(0, 0, -3)})
	assert.Equal(t, 0, result.Nights)
	assert.Equal(t, 0.0, result.Total)
}

func TestCalculateNoRules(t *testing.T) {
	cfg := Config{BasePrice: 100, Currency: "EUR"}

	result := Calculate(cfg, DateRange{
		Start: day(2025, time.June, 2),
		End:   day(2025, time.June, 7),
	})

	require.Equal(t, 5, result.Nights)
	for _, night := range result.NightlyPrices {
		assert.Equal(t, 100.0, night.AdjustedPrice)
		assert.Empty(t, night.AppliedRules)
	}
	assert.Equal(t, 500.0, result.Subtotal)
	assert.Equal(t, 500.0, result.Total)
	assert.Empty(t, result.AppliedRules)
}

func TestCalculateWeekendComposition(t *testing.T) {
	cfg := Config{
		BasePrice: 100,
		Rules: []Rule{
			WeekendRule{
				RuleMeta:          RuleMeta{Name: "Cuối tuần", Priority: 1, Enabled: true},
				WeekendMultiplier: 1.2,
				WeekMultiplier:    1.0,
			},
		},
	}

	// 02/06/2025 là thứ Hai, 7 đêm: T2..CN
	result := Calculate(cfg, DateRange{
		Start: day(2025, time.June, 2),
		End:   day(2025, time.June, 9),
	})

	require.Equal(t, 7, result.Nights)
	assert.Equal(t, 5, result.WeekNights)
	assert.Equal(t, 2, result.WeekendNights)

	expected := []float64{100, 100, 100, 100, 100, 120, 120}
	require.Len(t, result.NightlyPrices, 7)
	for i, night := range result.NightlyPrices {
		assert.Equal(t, expected[i], night.AdjustedPrice, "đêm %d", i)
		assert.Equal(t, []string{"Cuối tuần"}, night.AppliedRules)
	}
	assert.Equal(t, 740.0, result.Subtotal)
	assert.Equal(t, 740.0, result.Total)
	assert.Equal(t, []string{"Cuối tuần"}, result.AppliedRules)
}

func TestCalculateSeasonWrapAround(t *testing.T) {
	rule := SeasonRule{
		RuleMeta:        RuleMeta{Name: "Mùa cao điểm", Priority: 2, Enabled: true},
		Season:          SeasonHigh,
		StartMonth:      11,
		EndMonth:        2,
		PriceMultiplier: 1.5,
	}
	cfg := Config{BasePrice: 100, Rules: []Rule{rule}}

	assert.True(t, MatchesSeason(day(2024, time.December, 15), rule))
	assert.True(t, MatchesSeason(day(2025, time.January, 5), rule))
	assert.False(t, MatchesSeason(day(2025, time.June, 1), rule))

	result := Calculate(cfg, DateRange{
		Start: day(2024, time.December, 15),
		End:   day(2024, time.December, 16),
	})
	require.Equal(t, 1, result.Nights)
	assert.Equal(t, 150.0, result.NightlyPrices[0].AdjustedPrice)

	result = Calculate(cfg, DateRange{
		Start: day(2025, time.June, 1),
		End:   day(2025, time.June, 2),
	})
	require.Equal(t, 1, result.Nights)
	assert.Equal(t, 100.0, result.NightlyPrices[0].AdjustedPrice)
	assert.Empty(t, result.AppliedRules)
}

func TestCalculateLongStayPicksBestQualifyingRule(t *testing.T) {
	cfg := Config{
		BasePrice: 100,
		Rules: []Rule{
			LongStayRule{
				RuleMeta:           RuleMeta{Name: "Tuần", Priority: 1, Enabled: true},
				MinimumNights:      7,
				DiscountPercentage: 10,
			},
			LongStayRule{
				RuleMeta:           RuleMeta{Name: "Hai tuần", Priority: 1, Enabled: true},
				MinimumNights:      14,
				DiscountPercentage: 15,
			},
		},
	}

	start := day(2025, time.March, 3)

	// 20 đêm: rule 14 đêm thắng (15%)
	result := Calculate(cfg, DateRange{Start: start, End: start.AddDate(0, 0, 20)})
	assert.Equal(t, 2000.0, result.Subtotal)
	assert.Equal(t, 300.0, result.LongStayDiscount)
	assert.Equal(t, 1700.0, result.Total)
	assert.Contains(t, result.AppliedRules, "Hai tuần")
	assert.NotContains(t, result.AppliedRules, "Tuần")

	// 10 đêm: chỉ rule 7 đêm đủ điều kiện (10%)
	result = Calculate(cfg, DateRange{Start: start, End: start.AddDate(0, 0, 10)})
	assert.Equal(t, 100.0, result.LongStayDiscount)
	assert.Equal(t, 900.0, result.Total)
	assert.Equal(t, []string{"Tuần"}, result.AppliedRules)

	// 5 đêm: không giảm giá
	result = Calculate(cfg, DateRange{Start: start, End: start.AddDate(0, 0, 5)})
	assert.Equal(t, 0.0, result.LongStayDiscount)
	assert.Equal(t, 500.0, result.Total)
	assert.Empty(t, result.AppliedRules)
}

func TestCalculateLongStayDiscountCap(t *testing.T) {
	cfg := Config{
		BasePrice: 100,
		Rules: []Rule{
			LongStayRule{
				RuleMeta:                  RuleMeta{Name: "Dài hạn", Priority: 1, Enabled: true},
				MinimumNights:             7,
				DiscountPercentage:        30,
				MaximumDiscountPercentage: ptrFloat(15),
			},
		},
	}

	start := day(2025, time.March, 3)
	result := Calculate(cfg, DateRange{Start: start, End: start.AddDate(0, 0, 10)})

	assert.Equal(t, 1000.0, result.Subtotal)
	assert.Equal(t, 150.0, result.LongStayDiscount)
	assert.Equal(t, 850.0, result.Total)
}

func TestCalculateDisabledRulesIgnored(t *testing.T) {
	cfg := Config{
		BasePrice: 100,
		Rules: []Rule{
			WeekendRule{
				RuleMeta:          RuleMeta{Name: "Cuối tuần", Priority: 1, Enabled: false},
				WeekendMultiplier: 2.0,
				WeekMultiplier:    2.0,
			},
			LongStayRule{
				RuleMeta:           RuleMeta{Name: "Dài hạn", Priority: 1, Enabled: false},
				MinimumNights:      1,
				DiscountPercentage: 50,
			},
		},
	}

	start := day(2025, time.June, 6)
	result := Calculate(cfg, DateRange{Start: start, End: start.AddDate(0, 0, 3)})

	assert.Equal(t, 300.0, result.Subtotal)
	assert.Equal(t, 0.0, result.LongStayDiscount)
	assert.Equal(t, 300.0, result.Total)
	assert.Empty(t, result.AppliedRules)
}

func TestCalculateRoundingHalfUp(t *testing.T) {
	cfg := Config{
		BasePrice: 33.33,
		Rules: []Rule{
			CustomPeriodRule{
				RuleMeta:        RuleMeta{Name: "Khuyến mãi", Priority: 1, Enabled: true},
				StartDate:       day(2025, time.July, 1),
				EndDate:         day(2025, time.July, 31),
				PriceMultiplier: 1.1,
			},
		},
	}

	// 33.33 × 1.1 = 36.663 -> 36.66
	result := Calculate(cfg, DateRange{
		Start: day(2025, time.July, 10),
		End:   day(2025, time.July, 11),
	})
	require.Equal(t, 1, result.Nights)
	assert.Equal(t, 36.66, result.NightlyPrices[0].AdjustedPrice)
	assert.Equal(t, 36.66, result.Total)
}

func TestCalculateMultiplicativeComposition(t *testing.T) {
	cfg := Config{
		BasePrice: 100,
		Rules: []Rule{
			SeasonRule{
				RuleMeta:        RuleMeta{Name: "Mùa hè", Priority: 5, Enabled: true},
				Season:          SeasonHigh,
				StartMonth:      6,
				EndMonth:        8,
				PriceMultiplier: 1.5,
			},
			WeekendRule{
				RuleMeta:          RuleMeta{Name: "Cuối tuần", Priority: 1, Enabled: true},
				WeekendMultiplier: 1.2,
				WeekMultiplier:    1.0,
			},
		},
	}

	// 07/06/2025 là thứ Bảy trong mùa cao điểm: 100 × 1.5 × 1.2 = 180
	result := Calculate(cfg, DateRange{
		Start: day(2025, time.June, 7),
		End:   day(2025, time.June, 8),
	})
	require.Equal(t, 1, result.Nights)
	assert.True(t, result.NightlyPrices[0].IsWeekend)
	assert.Equal(t, 180.0, result.NightlyPrices[0].AdjustedPrice)
	assert.Equal(t, []string{"Mùa hè", "Cuối tuần"}, result.NightlyPrices[0].AppliedRules)
}

func TestCalculateIdempotent(t *testing.T) {
	cfg := Config{
		BasePrice: 87.5,
		Rules: []Rule{
			WeekendRule{
				RuleMeta:          RuleMeta{Name: "Cuối tuần", Priority: 3, Enabled: true},
				WeekendMultiplier: 1.25,
				WeekMultiplier:    0.95,
			},
			LongStayRule{
				RuleMeta:           RuleMeta{Name: "Dài hạn", Priority: 1, Enabled: true},
				MinimumNights:      7,
				DiscountPercentage: 12,
			},
		},
	}
	stay := DateRange{Start: day(2025, time.April, 1), End: day(2025, time.April, 15)}

	first := Calculate(cfg, stay)
	second := Calculate(cfg, stay)

	assert.Equal(t, first, second)
}

func TestCalculatePriorityOrderingDeterministic(t *testing.T) {
	high := CustomPeriodRule{
		RuleMeta:        RuleMeta{Name: "Ưu tiên cao", Priority: 10, Enabled: true},
		StartDate:       day(2025, time.May, 1),
		EndDate:         day(2025, time.May, 31),
		PriceMultiplier: 1.2,
	}
	low := CustomPeriodRule{
		RuleMeta:        RuleMeta{Name: "Ưu tiên thấp", Priority: 1, Enabled: true},
		StartDate:       day(2025, time.May, 1),
		EndDate:         day(2025, time.May, 31),
		PriceMultiplier: 1.1,
	}
	stay := DateRange{Start: day(2025, time.May, 5), End: day(2025, time.May, 6)}

	first := Calculate(Config{BasePrice: 100, Rules: []Rule{high, low}}, stay)
	swapped := Calculate(Config{BasePrice: 100, Rules: []Rule{low, high}}, stay)

	// Đổi thứ tự khai báo không đổi kết quả: priority quyết định thứ tự áp dụng
	assert.Equal(t, first, swapped)
	require.Equal(t, 1, first.Nights)
	assert.Equal(t, []string{"Ưu tiên cao", "Ưu tiên thấp"}, first.NightlyPrices[0].AppliedRules)
	assert.Equal(t, 132.0, first.NightlyPrices[0].AdjustedPrice)
}

func TestCalculateEqualPriorityKeepsDeclarationOrder(t *testing.T) {
	a := CustomPeriodRule{
		RuleMeta:        RuleMeta{Name: "A", Priority: 5, Enabled: true},
		StartDate:       day(2025, time.May, 1),
		EndDate:         day(2025, time.May, 31),
		PriceMultiplier: 1.2,
	}
	b := CustomPeriodRule{
		RuleMeta:        RuleMeta{Name: "B", Priority: 5, Enabled: true},
		StartDate:       day(2025, time.May, 1),
		EndDate:         day(2025, time.May, 31),
		PriceMultiplier: 1.1,
	}
	stay := DateRange{Start: day(2025, time.May, 5), End: day(2025, time.May, 6)}

	result := Calculate(Config{BasePrice: 100, Rules: []Rule{a, b}}, stay)
	assert.Equal(t, []string{"A", "B"}, result.NightlyPrices[0].AppliedRules)

	result = Calculate(Config{BasePrice: 100, Rules: []Rule{b, a}}, stay)
	assert.Equal(t, []string{"B", "A"}, result.NightlyPrices[0].AppliedRules)
}

func TestAverageNightlyPrice(t *testing.T) {
	assert.Equal(t, 0.0, AverageNightlyPrice(Result{}))

	result := Result{Nights: 3, Total: 500}
	assert.Equal(t, 166.67, AverageNightlyPrice(result))
}
