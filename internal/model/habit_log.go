package model

// HabitLog 某个习惯在某个日历日完成的记录。
// (habit_id, user_id, integer_date) 上的唯一索引把并发写竞争兜底成
// 重复键冲突，写路径的先查后插只是快路径。
// 记录只增删，从不原地修改。
type HabitLog struct {
	BaseModel
	PublicID    int64 `gorm:"uniqueIndex;not null" json:"public_id"`
	HabitID     int64 `gorm:"not null;uniqueIndex:idx_habit_logs_habit_user_date" json:"habit_id"`
	UserID      int64 `gorm:"not null;uniqueIndex:idx_habit_logs_habit_user_date;index:idx_habit_logs_user" json:"user_id"`
	IntegerDate int   `gorm:"not null;uniqueIndex:idx_habit_logs_habit_user_date" json:"integer_date"` // YYYYMMDD
}

// TableName 指定表名
func (HabitLog) TableName() string {
	return "habit_logs"
}
