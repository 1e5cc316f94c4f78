package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/OrionRobotic/GitLife/internal/model"
	"github.com/OrionRobotic/GitLife/internal/model/dto"
	"github.com/OrionRobotic/GitLife/internal/repository"
	pkgerrors "github.com/OrionRobotic/GitLife/pkg/errors"
	"github.com/OrionRobotic/GitLife/pkg/logger"
	"github.com/OrionRobotic/GitLife/pkg/snowflake"
)

type HabitService struct {
	store *repository.Store
}

var (
	habitService *HabitService
	habitOnce    sync.Once
)

func Habit() *HabitService {
	habitOnce.Do(func() {
		habitService = &HabitService{store: repository.Default()}
	})
	return habitService
}

// CreateHabit 定义新习惯。名称按小写归一去重，展示名首字母大写
func (s *HabitService) CreateHabit(ctx context.Context, userID string, req dto.CreateHabitRequest) (*dto.HabitItem, error) {
	user, err := User().getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	nameKey := model.NameKeyOf(req.Name)
	if nameKey == "" {
		return nil, pkgerrors.HabitNameEmpty
	}

	if _, err := s.store.GetHabitByNameKey(ctx, user.ID, nameKey); err == nil {
		return nil, pkgerrors.HabitAlreadyExists
	} else if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("failed to query habit: %w", err)
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate habit ID: %w", err)
	}

	habit := &model.Habit{
		PublicID: publicID,
		UserID:   user.ID,
		Name:     model.DisplayName(req.Name),
		NameKey:  nameKey,
	}
	if err := s.store.CreateHabit(ctx, habit); err != nil {
		// 并发创建同名习惯撞唯一索引
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return nil, pkgerrors.HabitAlreadyExists
		}
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	logger.Logger.Info("Habit created",
		zap.Int64("user_public_id", user.PublicID),
		zap.Int64("habit_public_id", publicID),
		zap.String("name_key", nameKey),
	)

	return habitItemOf(habit), nil
}

// ListHabits 当前用户的现存习惯
func (s *HabitService) ListHabits(ctx context.Context, userID string) ([]*dto.HabitItem, error) {
	user, err := User().getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	habits, err := s.store.ListHabits(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	items := make([]*dto.HabitItem, 0, len(habits))
	for _, habit := range habits {
		items = append(items, habitItemOf(habit))
	}
	return items, nil
}

// ArchiveHabit 归档习惯。历史打卡记录保留，日摘要里的历史完成不受影响
func (s *HabitService) ArchiveHabit(ctx context.Context, userID, habitID string) error {
	user, err := User().getUser(ctx, userID)
	if err != nil {
		return err
	}

	habit, err := s.resolveHabit(ctx, user.ID, habitID, "")
	if err != nil {
		return err
	}

	if err := s.store.ArchiveHabit(ctx, user.ID, habit.ID); err != nil {
		if repository.IsNotFound(err) {
			return pkgerrors.HabitNotFound
		}
		return fmt.Errorf("failed to archive habit: %w", err)
	}

	logger.Logger.Info("Habit archived",
		zap.Int64("user_public_id", user.PublicID),
		zap.Int64("habit_public_id", habit.PublicID),
	)
	return nil
}

// resolveHabit 按 public_id 或名称定位习惯，二者给一个即可
func (s *HabitService) resolveHabit(ctx context.Context, userID int64, habitID, habitName string) (*model.Habit, error) {
	if habitID != "" {
		publicID, err := strconv.ParseInt(habitID, 10, 64)
		if err != nil {
			return nil, pkgerrors.HabitNotFound
		}
		habit, err := s.store.GetHabitByPublicID(ctx, userID, publicID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, pkgerrors.HabitNotFound
			}
			return nil, fmt.Errorf("failed to query habit: %w", err)
		}
		return habit, nil
	}

	nameKey := model.NameKeyOf(habitName)
	if nameKey == "" {
		return nil, pkgerrors.HabitNotFound
	}
	habit, err := s.store.GetHabitByNameKey(ctx, userID, nameKey)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, pkgerrors.HabitNotFound
		}
		return nil, fmt.Errorf("failed to query habit: %w", err)
	}
	return habit, nil
}

func habitItemOf(habit *model.Habit) *dto.HabitItem {
	return &dto.HabitItem{
		ID:        strconv.FormatInt(habit.PublicID, 10),
		Name:      habit.Name,
		CreatedAt: habit.CreatedAt,
	}
}
