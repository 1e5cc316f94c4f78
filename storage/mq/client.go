package mq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/OrionRobotic/GitLife/config"
)

const (
	// ReminderExchange 提醒消息走的延迟 exchange（x-delayed-message 插件）
	ReminderExchange = "gitlife.reminder"
	// ReminderQueue worker 消费的队列
	ReminderQueue = "gitlife.reminder.daily"
	// ReminderRoutingKey 每日提醒路由键
	ReminderRoutingKey = "reminder.daily"
)

var (
	conn     *amqp.Connection
	connOnce sync.Once
	connErr  error
)

func Init() error {
	connOnce.Do(func() {
		url := config.Cfg.GetRabbitMQURL()
		conn, connErr = amqp.Dial(url)
		if connErr != nil {
			return
		}

		connErr = declareTopology()
	})

	return connErr
}

// declareTopology 声明 exchange/queue 并绑定，幂等
func declareTopology() error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open setup channel: %w", err)
	}
	defer ch.Close()

	// 延迟投递依赖 rabbitmq-delayed-message-exchange 插件，
	// 交换机类型固定为 x-delayed-message，实际路由类型放在参数里
	if err := ch.ExchangeDeclare(ReminderExchange, "x-delayed-message", true, false, false, false,
		amqp.Table{"x-delayed-type": "direct"}); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(ReminderQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(ReminderQueue, ReminderRoutingKey, ReminderExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	return nil
}

func Connection() *amqp.Connection {
	return conn
}

func Close(ctx context.Context) error {
	if conn == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
