package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/OrionRobotic/GitLife/internal/middleware"
	"github.com/OrionRobotic/GitLife/internal/model/dto"
	"github.com/OrionRobotic/GitLife/internal/service"
	pkgerrors "github.com/OrionRobotic/GitLife/pkg/errors"
	"github.com/OrionRobotic/GitLife/pkg/response"
)

// ListHabits 当前用户的习惯列表
// GET /v1/habits
func ListHabits(ctx context.Context, c *app.RequestContext) {
	userID, exists := middleware.GetUserID(ctx, c)
	if !exists {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	items, err := service.Habit().ListHabits(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.SuccessWithMeta(ctx, c, items, map[string]interface{}{
		"total": len(items),
	})
}

// CreateHabit 定义新习惯
// POST /v1/habits
func CreateHabit(ctx context.Context, c *app.RequestContext) {
	userID, exists := middleware.GetUserID(ctx, c)
	if !exists {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	var req dto.CreateHabitRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	item, err := service.Habit().CreateHabit(ctx, userID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, item)
}

// ArchiveHabit 归档习惯，历史打卡保留
// DELETE /v1/habits/:habit_id
func ArchiveHabit(ctx context.Context, c *app.RequestContext) {
	userID, exists := middleware.GetUserID(ctx, c)
	if !exists {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	habitID := c.Param("habit_id")
	if err := service.Habit().ArchiveHabit(ctx, userID, habitID); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.NoContent(ctx, c)
}
