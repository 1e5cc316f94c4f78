package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/OrionRobotic/GitLife/config"
	"github.com/OrionRobotic/GitLife/internal/model"
	"github.com/OrionRobotic/GitLife/internal/model/dto"
	"github.com/OrionRobotic/GitLife/internal/repository"
	pkgerrors "github.com/OrionRobotic/GitLife/pkg/errors"
	"github.com/OrionRobotic/GitLife/pkg/logger"
	"github.com/OrionRobotic/GitLife/pkg/snowflake"
	"github.com/OrionRobotic/GitLife/pkg/token"
)

type AuthService struct {
	store *repository.Store
}

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = &AuthService{store: repository.Default()}
	})
	return authService
}

// Signup 邮箱注册，成功后直接返回 token 对
func (s *AuthService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.TokenPairData, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, pkgerrors.EmailAlreadyRegistered
	} else if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	user := &model.User{
		PublicID:        publicID,
		Email:           email,
		PasswordHash:    hash,
		Nickname:        req.Nickname,
		Timezone:        "UTC",
		ReminderEnabled: config.Cfg.ReminderEnabled,
		ReminderAt:      config.Cfg.ReminderDefaultAt,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		// 并发注册同一邮箱撞唯一索引
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return nil, pkgerrors.EmailAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Logger.Info("User registered",
		zap.Int64("public_id", publicID),
		zap.String("email", email),
	)

	return s.issueTokens(publicID)
}

// Login 邮箱密码登录。用户不存在和密码错误返回同一个错误，不泄露账号是否注册过
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPairData, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, pkgerrors.InvalidCredentials
		}
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		return nil, pkgerrors.InvalidCredentials
	}

	return s.issueTokens(user.PublicID)
}

// RefreshToken 用 refresh token 换新 token 对
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairData, error) {
	userID, err := token.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, pkgerrors.InvalidRefreshToken
	}

	publicID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, pkgerrors.InvalidRefreshToken
	}

	// 用户可能在 token 有效期内被注销
	if _, err := s.store.GetUserByPublicID(ctx, publicID); err != nil {
		if repository.IsNotFound(err) {
			return nil, pkgerrors.InvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return s.issueTokens(publicID)
}

func (s *AuthService) issueTokens(publicID int64) (*dto.TokenPairData, error) {
	userID := strconv.FormatInt(publicID, 10)
	access, refresh, expiresIn, err := token.GenerateTokenPair(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}
	return &dto.TokenPairData{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
		UserID:       userID,
	}, nil
}
