package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OrionRobotic/GitLife/internal/contrib"
	"github.com/OrionRobotic/GitLife/internal/grid"
	"github.com/OrionRobotic/GitLife/internal/model"
)

func habitWith(id, publicID int64) *model.Habit {
	return &model.Habit{
		BaseModel: model.BaseModel{ID: id},
		PublicID:  publicID,
	}
}

func TestAssembleGridLevels(t *testing.T) {
	today := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	layout := grid.Build(2024, today)

	habits := []*model.Habit{
		habitWith(1, 9001),
		habitWith(2, 9002),
		habitWith(3, 9003),
	}
	grouped := contrib.GroupLogsByDay([]model.HabitLog{
		{HabitID: 1, UserID: 7, IntegerDate: 20240310},
		{HabitID: 2, UserID: 7, IntegerDate: 20240310},
		{HabitID: 1, UserID: 7, IntegerDate: 20240301},
	})

	s := &SummaryService{}
	data := s.assemble(layout, grouped, habits, today)

	assert.Equal(t, 2024, data.Year)
	assert.Equal(t, 3, data.TotalHabits)
	assert.Equal(t, []string{"9001", "9002"}, data.TodayCompleted)

	cells := make(map[int]int) // integer_date -> level
	var selectable int
	for _, week := range data.Weeks {
		require.Len(t, week, grid.DaysPerWeek)
		for _, cell := range week {
			cells[cell.IntegerDate] = cell.Level
			if cell.Selectable {
				selectable++
			}
			assert.Equal(t, 3, cell.Total)
		}
	}
	assert.Equal(t, 2, cells[20240310])
	assert.Equal(t, 1, cells[20240301])
	assert.Equal(t, 0, cells[20240302])
	assert.Equal(t, 1, selectable)

	require.Len(t, data.MonthLabels, 12)
	assert.Equal(t, "Jan", data.MonthLabels[0].Month)
	assert.Equal(t, "Dec", data.MonthLabels[11].Month)
}

func TestAssembleCountsArchivedCompletions(t *testing.T) {
	today := time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC)
	layout := grid.Build(2024, today)

	// 习惯 200 已归档：不在现存列表里，历史完成仍计入格子
	habits := []*model.Habit{habitWith(100, 9100)}
	grouped := contrib.GroupLogsByDay([]model.HabitLog{
		{HabitID: 100, UserID: 7, IntegerDate: 20240210},
		{HabitID: 200, UserID: 7, IntegerDate: 20240210},
	})

	s := &SummaryService{}
	data := s.assemble(layout, grouped, habits, today)

	var day dtoCell
	for _, week := range data.Weeks {
		for _, cell := range week {
			if cell.IntegerDate == 20240210 {
				day = dtoCell{level: cell.Level, completed: cell.Completed, total: cell.Total}
			}
		}
	}
	assert.Equal(t, 2, day.level)
	assert.Equal(t, 2, day.completed)
	assert.Equal(t, 1, day.total)
}

type dtoCell struct {
	level, completed, total int
}

func TestResolveDate(t *testing.T) {
	s := &LogService{}
	loc := time.UTC

	got, err := s.resolveDate("2024-03-05", loc)
	require.NoError(t, err)
	assert.Equal(t, 20240305, got)

	_, err = s.resolveDate("2024-13-05", loc)
	assert.Error(t, err)

	_, err = s.resolveDate("03/05/2024", loc)
	assert.Error(t, err)

	today, err := s.resolveDate("", loc)
	require.NoError(t, err)
	assert.Equal(t, today, 10000*time.Now().In(loc).Year()+100*int(time.Now().In(loc).Month())+time.Now().In(loc).Day())
}
