package contrib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OrionRobotic/GitLife/internal/model"
)

func logOf(habitID int64, date int) model.HabitLog {
	return model.HabitLog{HabitID: habitID, UserID: 1, IntegerDate: date}
}

func TestGroupLogsByDayDeduplicates(t *testing.T) {
	logs := []model.HabitLog{
		logOf(10, 20240301),
		logOf(10, 20240301), // 重复记录
		logOf(11, 20240301),
		logOf(10, 20240302),
	}
	grouped := GroupLogsByDay(logs)

	require.Len(t, grouped, 2)
	assert.Len(t, grouped[20240301], 2)
	assert.Len(t, grouped[20240302], 1)
}

func TestLevelSaturatesAtFour(t *testing.T) {
	set := make(HabitSet)
	for i := int64(1); i <= 6; i++ {
		set[i] = struct{}{}
		want := int(i)
		if want > MaxLevel {
			want = MaxLevel
		}
		assert.Equal(t, want, Level(set))
	}
	assert.Equal(t, 0, Level(nil))
}

func TestSummarizeSortedByDate(t *testing.T) {
	logs := []model.HabitLog{
		logOf(1, 20240305),
		logOf(2, 20240301),
		logOf(3, 20240301),
		logOf(4, 20240301),
		logOf(5, 20240301),
		logOf(6, 20240301),
	}
	summaries := Summarize(GroupLogsByDay(logs))

	require.Len(t, summaries, 2)
	assert.Equal(t, 20240301, summaries[0].IntegerDate)
	assert.Equal(t, 5, summaries[0].Completed)
	assert.Equal(t, 4, summaries[0].Level)
	assert.Equal(t, 20240305, summaries[1].IntegerDate)
	assert.Equal(t, 1, summaries[1].Level)
}

func TestRatioCountsArchivedCompletions(t *testing.T) {
	// 当天完成过 workout 与 reading,其中 reading 之后被归档,
	// 分母只剩 1 个现存习惯,分子仍是 2
	grouped := GroupLogsByDay([]model.HabitLog{
		logOf(100, 20240210), // workout
		logOf(200, 20240210), // reading,已归档
	})
	completed, total := Ratio(grouped[20240210], 1)
	assert.Equal(t, 2, completed)
	assert.Equal(t, 1, total)
}

func TestCompletedHabitsAndIsCompleted(t *testing.T) {
	grouped := GroupLogsByDay([]model.HabitLog{
		logOf(3, 20240401),
		logOf(1, 20240401),
		logOf(2, 20240401),
	})

	assert.Equal(t, []int64{1, 2, 3}, CompletedHabits(grouped, 20240401))
	assert.Empty(t, CompletedHabits(grouped, 20240402))
	assert.True(t, IsCompleted(grouped, 2, 20240401))
	assert.False(t, IsCompleted(grouped, 9, 20240401))
	assert.False(t, IsCompleted(grouped, 2, 20240402))
}
