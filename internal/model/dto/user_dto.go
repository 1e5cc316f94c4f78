package dto

import "time"

// UserProfileData 用户资料
type UserProfileData struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Nickname  string          `json:"nickname"`
	CreatedAt time.Time       `json:"created_at"`
	Settings  UserSettingsDTO `json:"settings"`
}

// UserSettingsDTO 用户设置
type UserSettingsDTO struct {
	Timezone        string `json:"timezone"`
	ReminderEnabled bool   `json:"reminder_enabled"`
	ReminderAt      string `json:"reminder_at"`
}

// UpdateUserSettingsRequest 更新用户设置请求，nil 字段表示不修改
type UpdateUserSettingsRequest struct {
	Nickname        *string `json:"nickname"`
	Timezone        *string `json:"timezone"`
	ReminderEnabled *bool   `json:"reminder_enabled"`
	ReminderAt      *string `json:"reminder_at"`
}
