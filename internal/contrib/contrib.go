// Package contrib 把打卡记录聚合成逐日的完成度摘要。
package contrib

import (
	"sort"

	"github.com/OrionRobotic/GitLife/internal/model"
)

// MaxLevel 贡献等级封顶值,超过 4 个习惯的完成度渲染不再加深
const MaxLevel = 4

// HabitSet 一天内完成过的习惯集合,重复记录自动去重
type HabitSet map[int64]struct{}

// DaySummary 某一天的聚合结果
type DaySummary struct {
	IntegerDate int
	Completed   int
	Level       int
}

// GroupLogsByDay 按整数日期归组,同一天同一习惯的多条记录只算一次
func GroupLogsByDay(logs []model.HabitLog) map[int]HabitSet {
	grouped := make(map[int]HabitSet)
	for _, log := range logs {
		set, ok := grouped[log.IntegerDate]
		if !ok {
			set = make(HabitSet)
			grouped[log.IntegerDate] = set
		}
		set[log.HabitID] = struct{}{}
	}
	return grouped
}

// Level 完成习惯数映射为 0-4 的贡献等级
func Level(set HabitSet) int {
	if len(set) > MaxLevel {
		return MaxLevel
	}
	return len(set)
}

// Summarize 展开成按日期升序的摘要列表
func Summarize(grouped map[int]HabitSet) []DaySummary {
	summaries := make([]DaySummary, 0, len(grouped))
	for date, set := range grouped {
		summaries = append(summaries, DaySummary{
			IntegerDate: date,
			Completed:   len(set),
			Level:       Level(set),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].IntegerDate < summaries[j].IntegerDate
	})
	return summaries
}

// Ratio 某一天的完成数与当前习惯总数,总数以现存习惯为准,
// 历史记录里已归档习惯的完成仍然计入分子
func Ratio(set HabitSet, totalHabits int) (completed, total int) {
	return len(set), totalHabits
}

// CompletedHabits 某一天完成过的习惯 ID,升序输出方便比对
func CompletedHabits(grouped map[int]HabitSet, integerDate int) []int64 {
	set := grouped[integerDate]
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IsCompleted 判断某习惯在某天是否已完成
func IsCompleted(grouped map[int]HabitSet, habitID int64, integerDate int) bool {
	set, ok := grouped[integerDate]
	if !ok {
		return false
	}
	_, done := set[habitID]
	return done
}
