package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/OrionRobotic/GitLife/internal/model"
	"github.com/OrionRobotic/GitLife/internal/service"
	"github.com/OrionRobotic/GitLife/pkg/logger"
	"github.com/OrionRobotic/GitLife/storage/mq"
)

// StartReminderConsumer 启动每日提醒消费者，阻塞直到通道关闭
func StartReminderConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.ReminderMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal reminder message: %w", err)
		}

		logger.Logger.Info("Processing reminder batch",
			zap.String("message_id", msg.MessageID),
			zap.String("batch_id", msg.BatchID),
			zap.Int("user_count", len(msg.UserIDs)),
		)

		// 消息级幂等在 service 里做，重复投递会被跳过
		if err := service.Reminder().ProcessReminderBatch(ctx, &msg); err != nil {
			return fmt.Errorf("failed to process reminder batch: %w", err)
		}
		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.ReminderQueue,
		ConsumerTag:   "reminder_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}
