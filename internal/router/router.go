package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/OrionRobotic/GitLife/internal/handler"
	"github.com/OrionRobotic/GitLife/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.RequestIDMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	v1 := h.Group("/v1")

	// 认证相关路由
	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware()) // 认证接口限流
	{
		auth.POST("/signup", handler.Signup)
		auth.POST("/login", handler.Login)
		auth.POST("/token/refresh", handler.RefreshToken)
	}

	// 用户相关路由
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", handler.GetUserProfile)
		users.PUT("/me/settings", handler.UpdateUserSettings)
	}

	// 习惯定义路由
	habits := v1.Group("/habits")
	habits.Use(middleware.AuthMiddleware(), middleware.GeneralRateLimitMiddleware())
	{
		habits.GET("", handler.ListHabits)
		habits.POST("", handler.CreateHabit)
		habits.DELETE("/:habit_id", handler.ArchiveHabit)
	}

	// 打卡记录路由
	logs := v1.Group("/logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.GET("", handler.ListLogs)
		logs.POST("/toggle", middleware.ToggleRateLimitMiddleware(), handler.ToggleLog)
	}

	// 年度网格路由
	grid := v1.Group("/grid")
	grid.Use(middleware.AuthMiddleware(), middleware.GeneralRateLimitMiddleware())
	{
		grid.GET("/:year", handler.GetYearGrid)
	}
}
