package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/OrionRobotic/GitLife/internal/model"
	"github.com/OrionRobotic/GitLife/internal/model/dto"
	"github.com/OrionRobotic/GitLife/internal/repository"
	pkgerrors "github.com/OrionRobotic/GitLife/pkg/errors"
	"github.com/OrionRobotic/GitLife/pkg/logger"
)

type UserService struct {
	store *repository.Store
}

var (
	userService *UserService
	userOnce    sync.Once
)

func User() *UserService {
	userOnce.Do(func() {
		userService = &UserService{store: repository.Default()}
	})
	return userService
}

func parsePublicID(userID string) (int64, error) {
	publicID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return 0, pkgerrors.InvalidUserID
	}
	return publicID, nil
}

func (s *UserService) getUser(ctx context.Context, userID string) (*model.User, error) {
	publicID, err := parsePublicID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByPublicID(ctx, publicID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, pkgerrors.UserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// GetProfile 当前用户资料
func (s *UserService) GetProfile(ctx context.Context, userID string) (*dto.UserProfileData, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profileOf(user), nil
}

// UpdateSettings 局部更新用户设置，nil 字段保持原值
func (s *UserService) UpdateSettings(ctx context.Context, userID string, req dto.UpdateUserSettingsRequest) (*dto.UserProfileData, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Nickname != nil {
		updates["nickname"] = *req.Nickname
		user.Nickname = *req.Nickname
	}
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			return nil, pkgerrors.InvalidTimezone
		}
		updates["timezone"] = *req.Timezone
		user.Timezone = *req.Timezone
	}
	if req.ReminderEnabled != nil {
		updates["reminder_enabled"] = *req.ReminderEnabled
		user.ReminderEnabled = *req.ReminderEnabled
	}
	if req.ReminderAt != nil {
		if _, err := time.Parse("15:04:05", *req.ReminderAt); err != nil {
			return nil, pkgerrors.InvalidReminderAt
		}
		updates["reminder_at"] = *req.ReminderAt
		user.ReminderAt = *req.ReminderAt
	}

	if len(updates) > 0 {
		if err := s.store.UpdateUserSettings(ctx, user.ID, updates); err != nil {
			return nil, fmt.Errorf("failed to update user settings: %w", err)
		}
		logger.Logger.Info("User settings updated",
			zap.Int64("public_id", user.PublicID),
			zap.Int("fields", len(updates)),
		)
	}

	return profileOf(user), nil
}

// Location 用户时区，解析失败回退 UTC
func (s *UserService) Location(user *model.User) *time.Location {
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func profileOf(user *model.User) *dto.UserProfileData {
	return &dto.UserProfileData{
		ID:        strconv.FormatInt(user.PublicID, 10),
		Email:     user.Email,
		Nickname:  user.Nickname,
		CreatedAt: user.CreatedAt,
		Settings: dto.UserSettingsDTO{
			Timezone:        user.Timezone,
			ReminderEnabled: user.ReminderEnabled,
			ReminderAt:      user.ReminderAt,
		},
	}
}
