package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/OrionRobotic/GitLife/config"
	"github.com/OrionRobotic/GitLife/internal/model/dto"
)

// 年度网格摘要缓存，按 (user, year) 存一份聚合结果，
// 写入打卡时整份失效而不是原地修补
var summaryCache = NewProtectedCache(
	"summary:grid",
	time.Duration(config.Cfg.SummaryCacheTTLSeconds)*time.Second,
)

func summaryKey(userID int64, year int) string {
	return fmt.Sprintf("%d:%d", userID, year)
}

// GetGridSummary 读取缓存的年度网格，未命中返回 (nil, false)
func GetGridSummary(ctx context.Context, userID int64, year int) (*dto.GridData, bool, error) {
	var data dto.GridData
	hit, err := summaryCache.Get(ctx, summaryKey(userID, year), &data)
	if err != nil || !hit {
		return nil, false, err
	}
	return &data, true, nil
}

// SetGridSummary 写入年度网格缓存
func SetGridSummary(ctx context.Context, userID int64, year int, data *dto.GridData) error {
	return summaryCache.Set(ctx, summaryKey(userID, year), data)
}

// InvalidateGridSummary 打卡状态变化后把相关年份的摘要踢掉。
// 写路径可能跨年（比如补录去年 12 月 31 日），所以按日期所在年失效。
func InvalidateGridSummary(ctx context.Context, userID int64, years ...int) error {
	keys := make([]string, 0, len(years))
	for _, year := range years {
		keys = append(keys, summaryKey(userID, year))
	}
	return summaryCache.BatchDelete(ctx, keys)
}
