package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/OrionRobotic/GitLife/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	// 每个测试一个独立的内存库，cache=shared 保证连接池内共享同一份数据
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Habit{}, &model.HabitLog{}))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return New(db)
}

func seedUser(t *testing.T, store *Store, publicID int64) *model.User {
	t.Helper()
	user := &model.User{
		PublicID:     publicID,
		Email:        fmt.Sprintf("u%d@example.com", publicID),
		PasswordHash: []byte("x"),
		Timezone:     "UTC",
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func seedHabit(t *testing.T, store *Store, userID, publicID int64, name string) *model.Habit {
	t.Helper()
	habit := &model.Habit{
		PublicID: publicID,
		UserID:   userID,
		Name:     model.DisplayName(name),
		NameKey:  model.NameKeyOf(name),
	}
	require.NoError(t, store.CreateHabit(context.Background(), habit))
	return habit
}

func TestInsertLogIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, 1001)
	habit := seedHabit(t, store, user.ID, 2001, "workout")

	inserted, err := store.InsertLog(ctx, &model.HabitLog{
		PublicID: 3001, HabitID: habit.ID, UserID: user.ID, IntegerDate: 20240310,
	})
	require.NoError(t, err)
	assert.True(t, inserted)

	// 同一 (habit, user, date) 再插一次被唯一索引吸收
	inserted, err = store.InsertLog(ctx, &model.HabitLog{
		PublicID: 3002, HabitID: habit.ID, UserID: user.ID, IntegerDate: 20240310,
	})
	require.NoError(t, err)
	assert.False(t, inserted)

	logs, err := store.ListLogs(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestDeleteLogsRemovesDay(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, 1002)
	habit := seedHabit(t, store, user.ID, 2002, "reading")

	for i, date := range []int{20240310, 20240311} {
		_, err := store.InsertLog(ctx, &model.HabitLog{
			PublicID: int64(3100 + i), HabitID: habit.ID, UserID: user.ID, IntegerDate: date,
		})
		require.NoError(t, err)
	}

	deleted, err := store.DeleteLogs(ctx, user.ID, habit.ID, 20240310)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// 再删一次是空操作
	deleted, err = store.DeleteLogs(ctx, user.ID, habit.ID, 20240310)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	logs, err := store.ListLogs(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 20240311, logs[0].IntegerDate)
}

func TestHabitNameKeyUniquePerUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, 1003)
	other := seedUser(t, store, 1004)

	seedHabit(t, store, user.ID, 2003, "Workout")

	// 同名（大小写不同）撞唯一索引
	err := store.CreateHabit(ctx, &model.Habit{
		PublicID: 2004, UserID: user.ID, Name: "WORKOUT", NameKey: model.NameKeyOf("WORKOUT"),
	})
	assert.Error(t, err)

	// 另一个用户可以用同名
	err = store.CreateHabit(ctx, &model.Habit{
		PublicID: 2005, UserID: other.ID, Name: "Workout", NameKey: model.NameKeyOf("Workout"),
	})
	assert.NoError(t, err)
}

func TestArchiveHabitKeepsLogs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, 1005)
	habit := seedHabit(t, store, user.ID, 2006, "meditate")

	_, err := store.InsertLog(ctx, &model.HabitLog{
		PublicID: 3200, HabitID: habit.ID, UserID: user.ID, IntegerDate: 20240201,
	})
	require.NoError(t, err)

	require.NoError(t, store.ArchiveHabit(ctx, user.ID, habit.ID))

	// 习惯列表里不再出现
	habits, err := store.ListHabits(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, habits)

	_, err = store.GetHabitByNameKey(ctx, user.ID, "meditate")
	assert.True(t, IsNotFound(err))

	// 历史打卡保留
	logs, err := store.ListLogs(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	// 重复归档返回未找到
	assert.True(t, IsNotFound(store.ArchiveHabit(ctx, user.ID, habit.ID)))
}

func TestListLogsInRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, 1006)
	habit := seedHabit(t, store, user.ID, 2007, "journal")

	for i, date := range []int{20231231, 20240101, 20241231, 20250101} {
		_, err := store.InsertLog(ctx, &model.HabitLog{
			PublicID: int64(3300 + i), HabitID: habit.ID, UserID: user.ID, IntegerDate: date,
		})
		require.NoError(t, err)
	}

	logs, err := store.ListLogsInRange(ctx, user.ID, 20240101, 20241231)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, 20240101, logs[0].IntegerDate)
	assert.Equal(t, 20241231, logs[1].IntegerDate)
}

func TestHabitScopedByUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, 1007)
	other := seedUser(t, store, 1008)
	habit := seedHabit(t, store, user.ID, 2008, "stretch")

	_, err := store.GetHabitByPublicID(ctx, other.ID, habit.PublicID)
	assert.True(t, IsNotFound(err))

	got, err := store.GetHabitByPublicID(ctx, user.ID, habit.PublicID)
	require.NoError(t, err)
	assert.Equal(t, habit.ID, got.ID)
}
