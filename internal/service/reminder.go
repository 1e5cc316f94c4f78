package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/OrionRobotic/GitLife/config"
	"github.com/OrionRobotic/GitLife/internal/cache"
	"github.com/OrionRobotic/GitLife/internal/contrib"
	"github.com/OrionRobotic/GitLife/internal/model"
	"github.com/OrionRobotic/GitLife/internal/repository"
	"github.com/OrionRobotic/GitLife/pkg/dateint"
	"github.com/OrionRobotic/GitLife/pkg/logger"
)

type ReminderService struct {
	store *repository.Store
}

var (
	reminderService *ReminderService
	reminderOnce    sync.Once
)

func Reminder() *ReminderService {
	reminderOnce.Do(func() {
		reminderService = &ReminderService{store: repository.Default()}
	})
	return reminderService
}

// ProcessReminderBatch 消费一批提醒。逐用户判断当天是否还有未完成的习惯，
// 全部完成的用户跳过，单个用户失败不影响整批。
func (s *ReminderService) ProcessReminderBatch(ctx context.Context, msg *model.ReminderMessage) error {
	if len(msg.UserIDs) == 0 {
		logger.Logger.Warn("ProcessReminderBatch: empty user list",
			zap.String("batch_id", msg.BatchID),
		)
		return nil
	}

	processed, err := cache.IsMessageProcessed(ctx, msg.MessageID)
	if err != nil {
		return fmt.Errorf("failed to check message processed: %w", err)
	}
	if processed {
		logger.Logger.Info("Reminder message already processed, skipping",
			zap.String("message_id", msg.MessageID),
		)
		return nil
	}

	var failures int
	for _, userID := range msg.UserIDs {
		if err := s.remindUser(ctx, userID, msg.RemindDate); err != nil {
			failures++
			logger.Logger.Error("Failed to remind user",
				zap.Int64("user_id", userID),
				zap.String("remind_date", msg.RemindDate),
				zap.Error(err),
			)
		}
	}

	if err := cache.MarkMessageProcessed(ctx, msg.MessageID); err != nil {
		logger.Logger.Warn("Failed to mark message processed",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
	}

	logger.Logger.Info("Reminder batch processed",
		zap.String("batch_id", msg.BatchID),
		zap.Int("users", len(msg.UserIDs)),
		zap.Int("failures", failures),
	)
	return nil
}

func (s *ReminderService) remindUser(ctx context.Context, userID int64, remindDate string) error {
	user, err := s.store.GetUserByPublicID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil // 用户已注销，静默跳过
		}
		return fmt.Errorf("failed to query user: %w", err)
	}

	// 调度到消费之间用户可能关掉了提醒
	if !user.ReminderEnabled {
		return nil
	}

	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc = time.UTC
	}
	todayKey := dateint.Today(time.Now().In(loc))

	habits, err := s.store.ListHabits(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to list habits: %w", err)
	}
	if len(habits) == 0 {
		return nil
	}

	logs, err := s.store.ListLogsInRange(ctx, user.ID, todayKey, todayKey)
	if err != nil {
		return fmt.Errorf("failed to list habit logs: %w", err)
	}

	grouped := contrib.GroupLogsByDay(logs)
	done := len(grouped[todayKey])
	if done >= len(habits) {
		return nil // 今天全部完成，不打扰
	}

	// 月度上限保护，避免异常调度轰炸用户
	month := time.Now().In(loc).Format("200601")
	count, err := cache.IncrMonthlyReminderCount(ctx, user.PublicID, month)
	if err != nil {
		return fmt.Errorf("failed to count monthly reminders: %w", err)
	}
	if count > int64(config.Cfg.ReminderMaxMonthly) {
		logger.Logger.Warn("Monthly reminder limit reached, skipping",
			zap.Int64("user_public_id", user.PublicID),
			zap.Int64("count", count),
		)
		return nil
	}

	// 提醒投递渠道（邮件/推送）尚未接入，先落日志占位
	logger.Logger.Info("Reminder delivered",
		zap.Int64("user_public_id", user.PublicID),
		zap.String("remind_date", remindDate),
		zap.Int("completed", done),
		zap.Int("total", len(habits)),
	)
	return nil
}
