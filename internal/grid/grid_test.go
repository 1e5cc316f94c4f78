package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLeapYearFirstWeek(t *testing.T) {
	today := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	g := Build(2024, today)

	require.NotEmpty(t, g.Weeks)
	first := g.Weeks[0]
	require.Len(t, first, DaysPerWeek)

	// 2024-01-01 是周一，首周用 2023-12-31 补齐周日位
	assert.Equal(t, 20231231, first[0].IntegerDate)
	assert.False(t, first[0].InYear)
	assert.True(t, first[0].Spacer())
	assert.Equal(t, 20240101, first[1].IntegerDate)
	assert.True(t, first[1].InYear)
	for i, cell := range first {
		assert.Equal(t, i, cell.DayOfWeek)
		assert.Equal(t, 0, cell.WeekIndex)
	}
}

func TestBuildWholeWeeks(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	for year := 2020; year <= 2026; year++ {
		g := Build(year, today)
		assert.GreaterOrEqual(t, len(g.Weeks), 53)
		for _, week := range g.Weeks {
			require.Len(t, week, DaysPerWeek)
			assert.Equal(t, time.Sunday, week[0].Date.Weekday())
			assert.Equal(t, time.Saturday, week[6].Date.Weekday())
		}
		// 尾周永远补到周六，最后一格要么在目标年要么已进入下一年
		last := g.Weeks[len(g.Weeks)-1]
		assert.GreaterOrEqual(t, last[6].Date.Year(), year)
	}
}

func TestBuildTrailingWeekExtendsPastYearEnd(t *testing.T) {
	today := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g := Build(2024, today)

	last := g.Weeks[len(g.Weeks)-1]
	// 2024-12-31 是周二，尾周继续排到 2025-01-04 周六
	assert.Equal(t, 20250104, last[6].IntegerDate)
	assert.False(t, last[6].InYear)
}

func TestBuildMonthLabels(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	g := Build(2024, today)

	require.Len(t, g.MonthLabels, 12)
	assert.Equal(t, time.January, g.MonthLabels[0].Month)
	assert.Equal(t, 0, g.MonthLabels[0].WeekIndex)
	for i := 1; i < len(g.MonthLabels); i++ {
		assert.Equal(t, time.Month(i+1), g.MonthLabels[i].Month)
		assert.Greater(t, g.MonthLabels[i].WeekIndex, g.MonthLabels[i-1].WeekIndex)
	}
}

func TestBuildTodayAndFuture(t *testing.T) {
	today := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	g := Build(2024, today)

	var todayCount, selectable int
	for _, week := range g.Weeks {
		for _, cell := range week {
			switch {
			case cell.IntegerDate < 20240310:
				assert.False(t, cell.Future)
				assert.False(t, cell.Today)
			case cell.IntegerDate == 20240310:
				todayCount++
				assert.True(t, cell.Today)
				assert.False(t, cell.Future)
			default:
				assert.True(t, cell.Future)
			}
			if cell.Selectable() {
				selectable++
			}
		}
	}
	assert.Equal(t, 1, todayCount)
	assert.Equal(t, 1, selectable)
}

func TestBuildSundayStartYear(t *testing.T) {
	// 2023-01-01 本身就是周日，首周不需要补位
	today := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	g := Build(2023, today)
	assert.Equal(t, 20230101, g.Weeks[0][0].IntegerDate)
	assert.True(t, g.Weeks[0][0].InYear)
}
