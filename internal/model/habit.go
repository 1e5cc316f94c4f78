package model

import (
	"strings"
	"unicode"
)

// Habit 用户自定义的习惯模型
type Habit struct {
	BaseModel
	PublicID int64  `gorm:"uniqueIndex;not null" json:"public_id"`
	UserID   int64  `gorm:"not null;uniqueIndex:idx_habits_user_name_key" json:"user_id"`
	Name     string `gorm:"type:varchar(64);not null" json:"name"`
	// NameKey 是小写化后的查找键，同一用户下唯一，保证名称大小写不敏感
	NameKey string `gorm:"type:varchar(64);not null;uniqueIndex:idx_habits_user_name_key" json:"-"`
}

// TableName 指定表名
func (Habit) TableName() string {
	return "habits"
}

// NameKeyOf 计算大小写不敏感的查找键。
func NameKeyOf(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DisplayName 展示名：首字母大写，其余小写，与存储的原始大小写无关。
func DisplayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	runes := []rune(strings.ToLower(name))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
