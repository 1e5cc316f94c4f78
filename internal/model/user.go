package model

// User 用户模型
type User struct {
	BaseModel
	PublicID     int64  `gorm:"uniqueIndex;not null" json:"public_id"`
	Email        string `gorm:"uniqueIndex;type:varchar(255);not null" json:"email"`
	PasswordHash []byte `gorm:"type:bytea;not null" json:"-"` // bcrypt 哈希，不对外暴露
	Nickname     string `gorm:"type:varchar(64);not null;default:''" json:"nickname"`

	// 自定义设置部分
	Timezone        string `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	ReminderEnabled bool   `gorm:"not null;default:false" json:"reminder_enabled"`
	ReminderAt      string `gorm:"type:varchar(8);not null;default:'20:00:00'" json:"reminder_at"` // HH:MM:SS，用户本地时区
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
