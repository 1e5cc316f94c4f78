package queue

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/OrionRobotic/GitLife/internal/model"
	"github.com/OrionRobotic/GitLife/pkg/logger"
	"github.com/OrionRobotic/GitLife/pkg/snowflake"
	"github.com/OrionRobotic/GitLife/storage/mq"
)

// PublishReminder 发布每日提醒消息，DelaySeconds 大于零时走延迟投递
func PublishReminder(msg model.ReminderMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.String("batch_id", msg.BatchID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("reminder_%d", id)
	}

	delay := time.Duration(msg.DelaySeconds) * time.Second

	// RabbitMQ 延迟插件对超长延迟不可靠，超过 24 小时交给下一轮调度
	if delay > 24*time.Hour {
		return fmt.Errorf("delay %v exceeds 24 hours limit, leave it to the next scheduler run", delay)
	}

	var err error
	if delay > 0 {
		err = mq.PublishDelayedMessage(mq.ReminderExchange, mq.ReminderRoutingKey, delay, msg)
	} else {
		err = mq.PublishMessage(mq.ReminderExchange, mq.ReminderRoutingKey, msg)
	}
	if err != nil {
		logger.Logger.Error("Failed to publish reminder message",
			zap.String("batch_id", msg.BatchID),
			zap.Int("user_count", len(msg.UserIDs)),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published reminder message",
		zap.String("message_id", msg.MessageID),
		zap.String("batch_id", msg.BatchID),
		zap.Int("user_count", len(msg.UserIDs)),
		zap.Duration("delay", delay),
	)

	return nil
}
