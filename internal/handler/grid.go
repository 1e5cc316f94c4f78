package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/OrionRobotic/GitLife/internal/middleware"
	"github.com/OrionRobotic/GitLife/internal/service"
	pkgerrors "github.com/OrionRobotic/GitLife/pkg/errors"
	"github.com/OrionRobotic/GitLife/pkg/response"
)

// GetYearGrid 年度贡献网格
// GET /v1/grid/:year
func GetYearGrid(ctx context.Context, c *app.RequestContext) {
	userID, exists := middleware.GetUserID(ctx, c)
	if !exists {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.Error(ctx, c, pkgerrors.GridYearInvalid)
		return
	}

	data, err := service.Summary().GetYearGrid(ctx, userID, year)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	middleware.CountGridRequest(ctx, year)
	response.Success(ctx, c, data)
}
