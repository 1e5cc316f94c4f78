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

// GetUserProfile 获取当前用户资料
// GET /v1/users/me
func GetUserProfile(ctx context.Context, c *app.RequestContext) {
	userID, exists := middleware.GetUserID(ctx, c)
	if !exists {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	data, err := service.User().GetProfile(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, data)
}

// UpdateUserSettings 更新用户设置
// PUT /v1/users/me/settings
func UpdateUserSettings(ctx context.Context, c *app.RequestContext) {
	userID, exists := middleware.GetUserID(ctx, c)
	if !exists {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	var req dto.UpdateUserSettingsRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	data, err := service.User().UpdateSettings(ctx, userID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, data)
}
