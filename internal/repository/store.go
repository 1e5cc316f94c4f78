// Package repository 封装所有数据库访问。
// Store 持有 *gorm.DB 注入进来，测试时可以换成 sqlite 内存库。
package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/OrionRobotic/GitLife/internal/model"
	"github.com/OrionRobotic/GitLife/storage/database"
)

type Store struct {
	db *gorm.DB
}

var (
	defaultStore *Store
	storeOnce    sync.Once
)

// New 用指定连接构造 Store
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Default 全局单例，使用 storage/database 管理的连接
func Default() *Store {
	storeOnce.Do(func() {
		defaultStore = New(database.DB())
	})
	return defaultStore
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// ========== User ==========

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	return s.conn(ctx).Create(user).Error
}

// GetUserByEmail 未找到时返回 gorm.ErrRecordNotFound，由 service 层翻译
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.conn(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByPublicID(ctx context.Context, publicID int64) (*model.User, error) {
	var user model.User
	if err := s.conn(ctx).Where("public_id = ?", publicID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserSettings 只更新传入的列
func (s *Store) UpdateUserSettings(ctx context.Context, userID int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()
	return s.conn(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}

// ListUsersWithReminderEnabled 定时任务用，捞出所有开着提醒的用户
func (s *Store) ListUsersWithReminderEnabled(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	err := s.conn(ctx).
		Where("reminder_enabled = ?", true).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

// ========== Habit ==========

func (s *Store) CreateHabit(ctx context.Context, habit *model.Habit) error {
	return s.conn(ctx).Create(habit).Error
}

// ListHabits 当前用户的现存习惯，按创建顺序
func (s *Store) ListHabits(ctx context.Context, userID int64) ([]*model.Habit, error) {
	var habits []*model.Habit
	err := s.conn(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&habits).Error
	return habits, err
}

// ListHabitsIncludingArchived 连同软删除的习惯一起返回，
// 历史打卡记录回显时需要归档习惯的 public_id
func (s *Store) ListHabitsIncludingArchived(ctx context.Context, userID int64) ([]*model.Habit, error) {
	var habits []*model.Habit
	err := s.conn(ctx).
		Unscoped().
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&habits).Error
	return habits, err
}

func (s *Store) CountHabits(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.conn(ctx).
		Model(&model.Habit{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// GetHabitByNameKey 按归一化名称查找，名称匹配大小写不敏感
func (s *Store) GetHabitByNameKey(ctx context.Context, userID int64, nameKey string) (*model.Habit, error) {
	var habit model.Habit
	err := s.conn(ctx).
		Where("user_id = ? AND name_key = ?", userID, nameKey).
		First(&habit).Error
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

func (s *Store) GetHabitByPublicID(ctx context.Context, userID, publicID int64) (*model.Habit, error) {
	var habit model.Habit
	err := s.conn(ctx).
		Where("user_id = ? AND public_id = ?", userID, publicID).
		First(&habit).Error
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

// ArchiveHabit 软删除习惯本身，历史打卡记录保留
func (s *Store) ArchiveHabit(ctx context.Context, userID, habitID int64) error {
	result := s.conn(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Habit{BaseModel: model.BaseModel{ID: habitID}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ========== HabitLog ==========

// InsertLog 插入打卡记录。(habit_id, user_id, integer_date) 上有唯一索引，
// 并发重复插入时靠 ON CONFLICT DO NOTHING 吸收，返回是否真的插入了新行。
func (s *Store) InsertLog(ctx context.Context, log *model.HabitLog) (bool, error) {
	result := s.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "habit_id"}, {Name: "user_id"}, {Name: "integer_date"},
			},
			DoNothing: true,
		}).
		Create(log)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteLogs 取消打卡，硬删除该天该习惯的记录（含历史上的重复行）
func (s *Store) DeleteLogs(ctx context.Context, userID, habitID int64, integerDate int) (int64, error) {
	result := s.conn(ctx).
		Unscoped().
		Where("user_id = ? AND habit_id = ? AND integer_date = ?", userID, habitID, integerDate).
		Delete(&model.HabitLog{})
	return result.RowsAffected, result.Error
}

func (s *Store) FindLog(ctx context.Context, userID, habitID int64, integerDate int) (*model.HabitLog, error) {
	var log model.HabitLog
	err := s.conn(ctx).
		Where("user_id = ? AND habit_id = ? AND integer_date = ?", userID, habitID, integerDate).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// ListLogs 用户全部打卡记录，日期升序
func (s *Store) ListLogs(ctx context.Context, userID int64) ([]model.HabitLog, error) {
	var logs []model.HabitLog
	err := s.conn(ctx).
		Where("user_id = ?", userID).
		Order("integer_date ASC, habit_id ASC").
		Find(&logs).Error
	return logs, err
}

// ListLogsInRange 按整数日期闭区间查询，网格聚合用
func (s *Store) ListLogsInRange(ctx context.Context, userID int64, fromDate, toDate int) ([]model.HabitLog, error) {
	var logs []model.HabitLog
	err := s.conn(ctx).
		Where("user_id = ? AND integer_date >= ? AND integer_date <= ?", userID, fromDate, toDate).
		Order("integer_date ASC, habit_id ASC").
		Find(&logs).Error
	return logs, err
}

// IsNotFound 判断是不是记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
