package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/OrionRobotic/GitLife/storage/redis"
)

const (
	// 提醒消息投放与消费状态，调度器和 worker 靠这些标记去重
	reminderScheduledPrefix = "reminder:scheduled"
	reminderMonthlyPrefix   = "reminder:monthly"
	messageProcessedPrefix  = "message:processed"

	scheduledTTL = 24 * time.Hour
	monthlyTTL   = 32 * 24 * time.Hour
	processedTTL = 48 * time.Hour
)

// IsReminderScheduled 检查某用户某天的提醒是否已投放
func IsReminderScheduled(ctx context.Context, date string, userID int64) (bool, error) {
	key := redis.Key(reminderScheduledPrefix, date, fmt.Sprintf("%d", userID))
	result, err := redis.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check reminder scheduled status: %w", err)
	}
	return result > 0, nil
}

// MarkReminderScheduled 标记某用户某天的提醒已投放
func MarkReminderScheduled(ctx context.Context, date string, userID int64) error {
	key := redis.Key(reminderScheduledPrefix, date, fmt.Sprintf("%d", userID))
	return redis.Client().Set(ctx, key, "1", scheduledTTL).Err()
}

// UnmarkReminderScheduled 清除投放标记（设置变更后重新调度用）
func UnmarkReminderScheduled(ctx context.Context, date string, userID int64) error {
	key := redis.Key(reminderScheduledPrefix, date, fmt.Sprintf("%d", userID))
	if err := redis.Client().Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to unmark reminder scheduled: %w", err)
	}
	return nil
}

// IncrMonthlyReminderCount 累加某用户当月已投递的提醒数，返回累加后的值
func IncrMonthlyReminderCount(ctx context.Context, userID int64, month string) (int64, error) {
	key := redis.Key(reminderMonthlyPrefix, month, fmt.Sprintf("%d", userID))
	count, err := redis.Client().Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to incr monthly reminder count: %w", err)
	}
	if count == 1 {
		// 首次写入时设置过期，月份翻过后自然清零
		if err := redis.Client().Expire(ctx, key, monthlyTTL).Err(); err != nil {
			return count, fmt.Errorf("failed to set monthly reminder ttl: %w", err)
		}
	}
	return count, nil
}

// IsMessageProcessed 消费侧幂等：该消息是否已处理过
func IsMessageProcessed(ctx context.Context, messageID string) (bool, error) {
	key := redis.Key(messageProcessedPrefix, messageID)
	result, err := redis.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check message processed status: %w", err)
	}
	return result > 0, nil
}

// MarkMessageProcessed 标记消息已处理
func MarkMessageProcessed(ctx context.Context, messageID string) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Set(ctx, key, "1", processedTTL).Err()
}
