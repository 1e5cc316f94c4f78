package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/OrionRobotic/GitLife/internal/cache"
	"github.com/OrionRobotic/GitLife/internal/contrib"
	"github.com/OrionRobotic/GitLife/internal/grid"
	"github.com/OrionRobotic/GitLife/internal/model"
	"github.com/OrionRobotic/GitLife/internal/model/dto"
	"github.com/OrionRobotic/GitLife/internal/repository"
	"github.com/OrionRobotic/GitLife/pkg/dateint"
	pkgerrors "github.com/OrionRobotic/GitLife/pkg/errors"
	"github.com/OrionRobotic/GitLife/pkg/logger"
)

// 网格年份允许的范围，和整数日期编码的取值范围一致
const (
	minGridYear = 1000
	maxGridYear = 9999
)

type SummaryService struct {
	store *repository.Store
}

var (
	summaryService *SummaryService
	summaryOnce    sync.Once
)

func Summary() *SummaryService {
	summaryOnce.Do(func() {
		summaryService = &SummaryService{store: repository.Default()}
	})
	return summaryService
}

// GetYearGrid 年度贡献网格。缓存命中直接返回；
// 打卡数据拉取失败时降级为全零网格，布局照常渲染。
func (s *SummaryService) GetYearGrid(ctx context.Context, userID string, year int) (*dto.GridData, error) {
	if year < minGridYear || year > maxGridYear {
		return nil, pkgerrors.GridYearInvalid
	}

	user, err := User().getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, hit, err := cache.GetGridSummary(ctx, user.ID, year); err == nil && hit {
		return data, nil
	} else if err != nil {
		logger.Logger.Warn("Failed to read grid summary cache",
			zap.Int64("user_id", user.ID),
			zap.Int("year", year),
			zap.Error(err),
		)
	}

	loc := User().Location(user)
	today := time.Now().In(loc)
	layout := grid.Build(year, today)

	habits, logs, degraded := s.fetchYearData(ctx, user, layout)
	grouped := contrib.GroupLogsByDay(logs)

	data := s.assemble(layout, grouped, habits, today)

	// 降级结果不写缓存，避免把空数据钉住 5 分钟
	if !degraded {
		if err := cache.SetGridSummary(ctx, user.ID, year, data); err != nil {
			logger.Logger.Warn("Failed to write grid summary cache",
				zap.Int64("user_id", user.ID),
				zap.Int("year", year),
				zap.Error(err),
			)
		}
	}

	return data, nil
}

// fetchYearData 拉取网格覆盖区间内的习惯和打卡记录。
// 任何一步失败都降级成空数据，读路径不把存储故障抛给前端。
func (s *SummaryService) fetchYearData(ctx context.Context, user *model.User, layout grid.Grid) ([]*model.Habit, []model.HabitLog, bool) {
	habits, err := s.store.ListHabits(ctx, user.ID)
	if err != nil {
		logger.Logger.Error("Failed to list habits for grid, degrading to empty",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return nil, nil, true
	}

	firstWeek := layout.Weeks[0]
	lastWeek := layout.Weeks[len(layout.Weeks)-1]
	fromDate := firstWeek[0].IntegerDate
	toDate := lastWeek[len(lastWeek)-1].IntegerDate

	logs, err := s.store.ListLogsInRange(ctx, user.ID, fromDate, toDate)
	if err != nil {
		logger.Logger.Error("Failed to list habit logs for grid, degrading to empty",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return habits, nil, true
	}

	return habits, logs, false
}

func (s *SummaryService) assemble(layout grid.Grid, grouped map[int]contrib.HabitSet, habits []*model.Habit, today time.Time) *dto.GridData {
	totalHabits := len(habits)
	publicIDs := make(map[int64]string, len(habits))
	for _, habit := range habits {
		publicIDs[habit.ID] = strconv.FormatInt(habit.PublicID, 10)
	}

	weeks := make([][]dto.GridCellDTO, 0, len(layout.Weeks))
	for _, week := range layout.Weeks {
		row := make([]dto.GridCellDTO, 0, grid.DaysPerWeek)
		for _, cell := range week {
			set := grouped[cell.IntegerDate]
			completed, total := contrib.Ratio(set, totalHabits)
			row = append(row, dto.GridCellDTO{
				Date:        cell.Date.Format("2006-01-02"),
				IntegerDate: cell.IntegerDate,
				WeekIndex:   cell.WeekIndex,
				DayOfWeek:   cell.DayOfWeek,
				InYear:      cell.InYear,
				Future:      cell.Future,
				Today:       cell.Today,
				Selectable:  cell.Selectable(),
				Level:       contrib.Level(set),
				Completed:   completed,
				Total:       total,
			})
		}
		weeks = append(weeks, row)
	}

	labels := make([]dto.MonthLabelDTO, 0, len(layout.MonthLabels))
	for _, label := range layout.MonthLabels {
		labels = append(labels, dto.MonthLabelDTO{
			Month:     label.Month.String()[:3],
			WeekIndex: label.WeekIndex,
		})
	}

	todayKey := dateint.Today(today)
	todayCompleted := make([]string, 0)
	for _, habitID := range contrib.CompletedHabits(grouped, todayKey) {
		if publicID, ok := publicIDs[habitID]; ok {
			todayCompleted = append(todayCompleted, publicID)
		}
	}

	return &dto.GridData{
		Year:           layout.Year,
		Weeks:          weeks,
		MonthLabels:    labels,
		TodayCompleted: todayCompleted,
		TotalHabits:    totalHabits,
	}
}
