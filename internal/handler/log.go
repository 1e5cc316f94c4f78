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

// ListLogs 当前用户的全部打卡记录
// GET /v1/logs
func ListLogs(ctx context.Context, c *app.RequestContext) {
	userID, exists := middleware.GetUserID(ctx, c)
	if !exists {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	items, err := service.Log().ListLogs(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.SuccessWithMeta(ctx, c, items, map[string]interface{}{
		"total": len(items),
	})
}

// ToggleLog 打卡开关，completed 决定方向，两个方向都幂等
// POST /v1/logs/toggle
func ToggleLog(ctx context.Context, c *app.RequestContext) {
	userID, exists := middleware.GetUserID(ctx, c)
	if !exists {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	var req dto.ToggleLogRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.Log().ToggleLog(ctx, userID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	middleware.CountHabitToggle(ctx, data.Completed)
	response.Success(ctx, c, data)
}
