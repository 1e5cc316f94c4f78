// Package grid 生成 GitHub 风格的年度贡献网格布局。
// 纯计算，不碰存储；"今天"由调用方注入，方便测试。
package grid

import (
	"time"

	"github.com/OrionRobotic/GitLife/pkg/dateint"
)

// DaysPerWeek 周日起始，每周固定 7 格
const DaysPerWeek = 7

// Cell 网格中的一天
type Cell struct {
	Date        time.Time
	IntegerDate int
	WeekIndex   int
	DayOfWeek   int // 0=Sun..6=Sat
	InYear      bool
	Future      bool
	Today       bool
}

// Spacer 既不在目标年也不在未来的格子只做对齐占位，渲染为透明
func (c Cell) Spacer() bool {
	return !c.InYear && !c.Future
}

// Selectable 只有今天这一格可以交互，过去只读，未来不可选
func (c Cell) Selectable() bool {
	return c.Today
}

// MonthLabel 月份标签落在的周列
type MonthLabel struct {
	Month     time.Month
	WeekIndex int
}

// Grid 一整年的网格布局
type Grid struct {
	Year        int
	Weeks       [][]Cell
	MonthLabels []MonthLabel
}

// Build 生成 year 年的网格：从 1 月 1 日所在周的周日起，
// 到 12 月 31 日所在周的周六止，整周对齐，必要时用相邻年份补齐。
// 周序号就是生成顺序里的位置，不是 ISO 周号。
func Build(year int, today time.Time) Grid {
	loc := today.Location()
	todayKey := dateint.FromDate(today)

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, loc)

	gridStart := yearStart.AddDate(0, 0, -int(yearStart.Weekday()))
	gridEnd := yearEnd.AddDate(0, 0, int(time.Saturday-yearEnd.Weekday()))

	var (
		weeks       [][]Cell
		currentWeek []Cell
		monthLabels []MonthLabel
	)

	weekIndex := 0
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := dateint.FromDate(day)
		cell := Cell{
			Date:        day,
			IntegerDate: key,
			WeekIndex:   weekIndex,
			DayOfWeek:   int(day.Weekday()),
			InYear:      day.Year() == year,
			Future:      key > todayKey,
			Today:       key == todayKey,
		}

		// 目标年内每个月的 1 号决定该月标签的周列，
		// 连续月份落在同一列时只保留一个标签
		if cell.InYear && day.Day() == 1 {
			if n := len(monthLabels); n == 0 || monthLabels[n-1].WeekIndex != weekIndex {
				monthLabels = append(monthLabels, MonthLabel{Month: day.Month(), WeekIndex: weekIndex})
			}
		}

		currentWeek = append(currentWeek, cell)
		if len(currentWeek) == DaysPerWeek {
			weeks = append(weeks, currentWeek)
			currentWeek = nil
			weekIndex++
		}
	}

	return Grid{
		Year:        year,
		Weeks:       weeks,
		MonthLabels: monthLabels,
	}
}
