package dto

import "time"

// HabitItem 习惯列表项
type HabitItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"` // 展示名：首字母大写
	CreatedAt time.Time `json:"created_at"`
}

// CreateHabitRequest 定义新习惯
type CreateHabitRequest struct {
	Name string `json:"name" vd:"len($)>0"`
}

// LogItem 打卡记录列表项
type LogItem struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	IntegerDate int       `json:"integer_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToggleLogRequest 打卡开关请求。
// HabitID 和 HabitName 二选一；Date 为 YYYY-MM-DD，缺省今天。
type ToggleLogRequest struct {
	HabitID   string `json:"habit_id"`
	HabitName string `json:"habit_name"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// ToggleLogData 打卡开关结果
type ToggleLogData struct {
	HabitID     string `json:"habit_id"`
	IntegerDate int    `json:"integer_date"`
	Completed   bool   `json:"completed"`
}
