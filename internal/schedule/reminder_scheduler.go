package schedule

// 提醒调度器：每天 00:00 扫描开启提醒的用户，按提醒时刻分组投递延迟消息，
// worker 消费时再判断当天是否已全部完成

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/OrionRobotic/GitLife/config"
	"github.com/OrionRobotic/GitLife/internal/cache"
	"github.com/OrionRobotic/GitLife/internal/model"
	"github.com/OrionRobotic/GitLife/internal/queue"
	"github.com/OrionRobotic/GitLife/internal/repository"
	"github.com/OrionRobotic/GitLife/pkg/logger"
	"github.com/OrionRobotic/GitLife/pkg/snowflake"
)

var (
	schedulerOnce sync.Once
	schedulerInst *ReminderScheduler
)

type ReminderScheduler struct {
	store       *repository.Store
	logger      *zap.Logger
	jobRunning  bool
	jobMu       sync.Mutex
	lastJobTime time.Time
}

func GetScheduler() *ReminderScheduler {
	schedulerOnce.Do(func() {
		schedulerInst = &ReminderScheduler{
			store:  repository.Default(),
			logger: logger.Logger,
		}
	})
	return schedulerInst
}

// ScheduleDailyReminders 扫描并投递当天的提醒消息。
// 多实例部署时靠分布式锁保证只有一个实例真正执行。
func (s *ReminderScheduler) ScheduleDailyReminders(ctx context.Context) error {
	s.jobMu.Lock()
	if s.jobRunning {
		s.jobMu.Unlock()
		s.logger.Info("Reminder job already running, skipping")
		return nil
	}
	s.jobRunning = true
	s.jobMu.Unlock()

	defer func() {
		s.jobMu.Lock()
		s.jobRunning = false
		s.jobMu.Unlock()
	}()

	startTime := time.Now()
	s.lastJobTime = startTime
	today := startTime.Format("2006-01-02")

	locked, err := cache.TryLock(ctx, "reminder:schedule:"+today, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to acquire scheduler lock: %w", err)
	}
	if !locked {
		s.logger.Info("Another instance holds the scheduler lock, skipping",
			zap.String("date", today),
		)
		return nil
	}

	s.logger.Info("Starting daily reminder scheduler",
		zap.Time("start_time", startTime),
	)

	users, err := s.store.ListUsersWithReminderEnabled(ctx)
	if err != nil {
		s.logger.Error("Failed to query users", zap.Error(err))
		return fmt.Errorf("failed to query users: %w", err)
	}
	if len(users) == 0 {
		s.logger.Info("No users with reminder enabled")
		return nil
	}

	// 按提醒时刻和时区分组，同组用户进同一批消息
	type groupKey struct {
		remindAt string
		timezone string
	}
	timeGroups := make(map[groupKey][]*model.User)
	for _, user := range users {
		key := groupKey{remindAt: user.ReminderAt, timezone: user.Timezone}
		if key.remindAt == "" {
			key.remindAt = config.Cfg.ReminderDefaultAt
		}
		timeGroups[key] = append(timeGroups[key], user)
	}

	var errCount int
	for key, groupUsers := range timeGroups {
		pending := s.filterUnscheduled(ctx, today, groupUsers)
		if len(pending) == 0 {
			continue
		}

		delay := delayUntil(startTime, key.remindAt, key.timezone)
		if err := s.publishGroup(ctx, today, pending, delay); err != nil {
			errCount++
			s.logger.Error("Failed to schedule reminder group",
				zap.String("remind_at", key.remindAt),
				zap.String("timezone", key.timezone),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Daily reminder scheduler completed",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("user_count", len(users)),
		zap.Int("error_count", errCount),
	)
	if errCount > 0 {
		return fmt.Errorf("scheduler completed with %d errors", errCount)
	}
	return nil
}

// filterUnscheduled 去掉当天已投放过的用户
func (s *ReminderScheduler) filterUnscheduled(ctx context.Context, today string, users []*model.User) []*model.User {
	var pending []*model.User
	for _, user := range users {
		scheduled, err := cache.IsReminderScheduled(ctx, today, user.PublicID)
		if err != nil {
			s.logger.Warn("Failed to check reminder scheduled status",
				zap.Int64("user_id", user.PublicID),
				zap.Error(err),
			)
			continue
		}
		if !scheduled {
			pending = append(pending, user)
		}
	}
	return pending
}

// publishGroup 按批大小切分并投递，投递成功后逐用户打已调度标记
func (s *ReminderScheduler) publishGroup(ctx context.Context, today string, users []*model.User, delay time.Duration) error {
	batchSize := config.Cfg.ReminderBatchSize
	if batchSize <= 0 {
		batchSize = 200
	}

	for start := 0; start < len(users); start += batchSize {
		end := start + batchSize
		if end > len(users) {
			end = len(users)
		}
		batch := users[start:end]

		batchID, err := snowflake.NextID()
		if err != nil {
			return fmt.Errorf("failed to generate batch ID: %w", err)
		}

		userIDs := make([]int64, len(batch))
		for i, user := range batch {
			userIDs[i] = user.PublicID
		}

		msg := model.ReminderMessage{
			BatchID:      strconv.FormatInt(batchID, 10),
			UserIDs:      userIDs,
			RemindDate:   today,
			DelaySeconds: int(delay / time.Second),
		}
		if err := queue.PublishReminder(msg); err != nil {
			return err
		}

		for _, user := range batch {
			if err := cache.MarkReminderScheduled(ctx, today, user.PublicID); err != nil {
				s.logger.Warn("Failed to mark reminder scheduled",
					zap.Int64("user_id", user.PublicID),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// delayUntil 当前时刻到目标时区内 remindAt 的间隔，已过点则立即投递
func delayUntil(now time.Time, remindAt, timezone string) time.Duration {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	t, err := time.Parse("15:04:05", remindAt)
	if err != nil {
		t, _ = time.Parse("15:04:05", config.Cfg.ReminderDefaultAt)
	}

	local := now.In(loc)
	target := time.Date(local.Year(), local.Month(), local.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, loc)

	delay := target.Sub(now)
	if delay < 0 {
		return 0
	}
	return delay
}
