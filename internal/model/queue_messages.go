package model

// ReminderMessage 每日提醒消息，由 scheduler 投递、worker 消费。
// MessageID 用于消费端幂等去重。
type ReminderMessage struct {
	MessageID    string  `json:"message_id"`
	BatchID      string  `json:"batch_id"`
	UserIDs      []int64 `json:"user_ids"`
	RemindDate   string  `json:"remind_date"` // 2006-01-02
	DelaySeconds int     `json:"delay_seconds"`
}
