package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsWeekend(t *testing.T) {
	assert.False(t, IsWeekend(day(2025, time.June, 2)))  // thứ Hai
	assert.False(t, IsWeekend(day(2025, time.June, 6)))  // thứ Sáu
	assert.True(t, IsWeekend(day(2025, time.June, 7)))   // thứ Bảy
	assert.True(t, IsWeekend(day(2025, time.June, 8)))   // Chủ nhật
	assert.False(t, IsWeekend(day(2025, time.June, 9)))  // thứ Hai
}

func TestMatchesSeasonWithoutWrap(t *testing.T) {
	rule := SeasonRule{
		RuleMeta:   RuleMeta{Name: "Hè", Priority: 1, Enabled: true},
		Season:     SeasonHigh,
		StartMonth: 6,
		EndMonth:   8,
	}

	assert.True(t, MatchesSeason(day(2025, time.June, 1), rule))
	assert.True(t, MatchesSeason(day(2025, time.August, 31), rule))
	assert.False(t, MatchesSeason(day(2025, time.May, 31), rule))
	assert.False(t, MatchesSeason(day(2025, time.September, 1), rule))
}

func TestMatchesCustomPeriodInclusiveBounds(t *testing.T) {
	rule := CustomPeriodRule{
		RuleMeta:  RuleMeta{Name: "Tết", Priority: 1, Enabled: true},
		StartDate: day(2025, time.January, 25),
		EndDate:   day(2025, time.February, 2),
	}

	assert.True(t, MatchesCustomPeriod(day(2025, time.January, 25), rule))
	assert.True(t, MatchesCustomPeriod(day(2025, time.February, 2), rule))
	assert.True(t, MatchesCustomPeriod(day(2025, time.January, 30), rule))
	assert.False(t, MatchesCustomPeriod(day(2025, time.January, 24), rule))
	assert.False(t, MatchesCustomPeriod(day(2025, time.February, 3), rule))

	// So sánh theo ngày lịch, bỏ qua giờ
	withHour := time.Date(2025, time.February, 2, 23, 30, 0, 0, time.UTC)
	assert.True(t, MatchesCustomPeriod(withHour, rule))
}
