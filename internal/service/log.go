package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/OrionRobotic/GitLife/internal/cache"
	"github.com/OrionRobotic/GitLife/internal/model"
	"github.com/OrionRobotic/GitLife/internal/model/dto"
	"github.com/OrionRobotic/GitLife/internal/repository"
	"github.com/OrionRobotic/GitLife/pkg/dateint"
	pkgerrors "github.com/OrionRobotic/GitLife/pkg/errors"
	"github.com/OrionRobotic/GitLife/pkg/logger"
	"github.com/OrionRobotic/GitLife/pkg/snowflake"
)

type LogService struct {
	store *repository.Store
}

var (
	logService *LogService
	logOnce    sync.Once
)

func Log() *LogService {
	logOnce.Do(func() {
		logService = &LogService{store: repository.Default()}
	})
	return logService
}

// ToggleLog 打卡开关。completed=true 标记完成，false 取消，
// 两个方向都幂等：重复完成吸收，取消不存在的记录是空操作。
// 只允许操作今天及过去的日期，未来日期拒绝。
func (s *LogService) ToggleLog(ctx context.Context, userID string, req dto.ToggleLogRequest) (*dto.ToggleLogData, error) {
	user, err := User().getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	habit, err := Habit().resolveHabit(ctx, user.ID, req.HabitID, req.HabitName)
	if err != nil {
		return nil, err
	}

	loc := User().Location(user)
	integerDate, err := s.resolveDate(req.Date, loc)
	if err != nil {
		return nil, err
	}

	if integerDate > dateint.Today(time.Now().In(loc)) {
		return nil, pkgerrors.LogDateFuture
	}

	if req.Completed {
		publicID, err := snowflake.NextID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate log ID: %w", err)
		}
		inserted, err := s.store.InsertLog(ctx, &model.HabitLog{
			PublicID:    publicID,
			HabitID:     habit.ID,
			UserID:      user.ID,
			IntegerDate: integerDate,
		})
		if err != nil {
			// 写路径不降级，存储故障原样暴露给调用方重试
			logger.Logger.Error("Failed to insert habit log",
				zap.Int64("user_id", user.ID),
				zap.Int64("habit_id", habit.ID),
				zap.Error(err),
			)
			return nil, pkgerrors.RemoteFailure
		}
		if inserted {
			s.invalidateSummary(ctx, user.ID, integerDate)
		}
	} else {
		deleted, err := s.store.DeleteLogs(ctx, user.ID, habit.ID, integerDate)
		if err != nil {
			logger.Logger.Error("Failed to delete habit log",
				zap.Int64("user_id", user.ID),
				zap.Int64("habit_id", habit.ID),
				zap.Error(err),
			)
			return nil, pkgerrors.RemoteFailure
		}
		if deleted > 0 {
			s.invalidateSummary(ctx, user.ID, integerDate)
		}
	}

	logger.Logger.Info("Habit log toggled",
		zap.Int64("user_public_id", user.PublicID),
		zap.Int64("habit_public_id", habit.PublicID),
		zap.Int("integer_date", integerDate),
		zap.Bool("completed", req.Completed),
	)

	return &dto.ToggleLogData{
		HabitID:     strconv.FormatInt(habit.PublicID, 10),
		IntegerDate: integerDate,
		Completed:   req.Completed,
	}, nil
}

// ListLogs 用户全部打卡记录，日期升序
func (s *LogService) ListLogs(ctx context.Context, userID string) ([]*dto.LogItem, error) {
	user, err := User().getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	logs, err := s.store.ListLogs(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habit logs: %w", err)
	}

	// habit 内部 ID 映射回 public_id，包括已归档的习惯
	habitIDs, err := s.habitPublicIDs(ctx, user.ID, logs)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.LogItem, 0, len(logs))
	for _, log := range logs {
		items = append(items, &dto.LogItem{
			ID:          strconv.FormatInt(log.PublicID, 10),
			HabitID:     habitIDs[log.HabitID],
			IntegerDate: log.IntegerDate,
			CreatedAt:   log.CreatedAt,
		})
	}
	return items, nil
}

// resolveDate 空日期表示今天（用户时区），否则按 2006-01-02 解析
func (s *LogService) resolveDate(date string, loc *time.Location) (int, error) {
	if date == "" {
		return dateint.Today(time.Now().In(loc)), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return 0, pkgerrors.LogDateInvalid
	}
	return dateint.FromDate(t), nil
}

func (s *LogService) invalidateSummary(ctx context.Context, userID int64, integerDate int) {
	if err := cache.InvalidateGridSummary(ctx, userID, integerDate/10000); err != nil {
		// 缓存失效失败只记日志，TTL 会兜底
		logger.Logger.Warn("Failed to invalidate grid summary cache",
			zap.Int64("user_id", userID),
			zap.Int("integer_date", integerDate),
			zap.Error(err),
		)
	}
}

func (s *LogService) habitPublicIDs(ctx context.Context, userID int64, logs []model.HabitLog) (map[int64]string, error) {
	ids := make(map[int64]string)
	if len(logs) == 0 {
		return ids, nil
	}

	habits, err := s.store.ListHabitsIncludingArchived(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	for _, habit := range habits {
		ids[habit.ID] = strconv.FormatInt(habit.PublicID, 10)
	}
	return ids, nil
}
