package repository

import (
	"fmt"
	"os"

	"gorm.io/gen"

	"github.com/OrionRobotic/GitLife/internal/model"
	"github.com/OrionRobotic/GitLife/storage/database"
)

// ========== User 相关查询接口 ==========

// UserQuerier 用户查询接口
type UserQuerier interface {
	// GetByEmail 根据邮箱查询用户
	//
	// SELECT * FROM @@table WHERE email = @email LIMIT 1
	GetByEmail(email string) (*gen.T, error)

	// GetByPublicID 根据 PublicID 查询用户（API 中 userID 是 public_id）
	//
	// SELECT * FROM @@table WHERE public_id = @publicID LIMIT 1
	GetByPublicID(publicID int64) (*gen.T, error)

	// ListReminderEnabled 查询开启每日提醒的用户（定时任务用）
	//
	// SELECT * FROM @@table
	// WHERE reminder_enabled = true
	// ORDER BY id ASC
	ListReminderEnabled() ([]*gen.T, error)
}

// ========== Habit 相关查询接口 ==========

// HabitQuerier 习惯查询接口
type HabitQuerier interface {
	// GetByNameKey 根据归一化名称查询习惯
	//
	// SELECT * FROM @@table
	// WHERE user_id = @userID AND name_key = @nameKey
	// LIMIT 1
	GetByNameKey(userID int64, nameKey string) (*gen.T, error)

	// ListByUser 查询用户的现存习惯
	//
	// SELECT * FROM @@table
	// WHERE user_id = @userID
	// ORDER BY id ASC
	ListByUser(userID int64) ([]*gen.T, error)
}

// ========== HabitLog 相关查询接口 ==========

// HabitLogQuerier 打卡记录查询接口
type HabitLogQuerier interface {
	// GetByDay 查询某习惯某天的打卡记录
	//
	// SELECT * FROM @@table
	// WHERE user_id = @userID AND habit_id = @habitID AND integer_date = @integerDate
	// LIMIT 1
	GetByDay(userID, habitID int64, integerDate int) (*gen.T, error)

	// ListByDateRange 按整数日期区间查询（网格聚合用）
	//
	// SELECT * FROM @@table
	// WHERE user_id = @userID
	//   AND integer_date >= @fromDate
	//   AND integer_date <= @toDate
	// ORDER BY integer_date ASC, habit_id ASC
	ListByDateRange(userID int64, fromDate, toDate int) ([]*gen.T, error)

	// CountByDay 统计某天完成的不同习惯数
	//
	// SELECT COUNT(DISTINCT habit_id)
	// FROM @@table
	// WHERE user_id = @userID AND integer_date = @integerDate
	CountByDay(userID int64, integerDate int) (int64, error)
}

// Generate 连接数据库并生成类型安全的查询代码
func Generate() error {
	if err := database.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// 运行数据库迁移（确保表存在）
	if err := database.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migration: %w", err)
	}

	db := database.DB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./internal/repository/query", // 生成代码的输出路径
		ModelPkgPath:      "github.com/OrionRobotic/GitLife/internal/model",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface | gen.WithoutContext,
		FieldNullable:     true,
		FieldCoverable:    false,
		FieldSignable:     false,
		FieldWithIndexTag: false,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)

	// 注册现有的 model，GORM Gen 会使用这些 model 而不是生成新的
	g.ApplyBasic(
		&model.User{},
		&model.Habit{},
		&model.HabitLog{},
	)

	g.ApplyInterface(func(UserQuerier) {}, &model.User{})
	g.ApplyInterface(func(HabitQuerier) {}, &model.Habit{})
	g.ApplyInterface(func(HabitLogQuerier) {}, &model.HabitLog{})

	g.Execute()

	return nil
}

func RunGenerate() {
	if err := Generate(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate code: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Code generation completed successfully!")
}
