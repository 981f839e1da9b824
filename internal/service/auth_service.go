package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fandom-mart/internal/cache"
	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService 后台账号：登录、改密与创建
type AuthService struct {
	policy    config.PasswordPolicyConfig
	tokens    tokenIssuer
	adminRepo repository.AdminRepository
}

func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository) *AuthService {
	return &AuthService{
		policy:    cfg.Security.PasswordPolicy,
		tokens:    newTokenIssuer(cfg.JWT),
		adminRepo: adminRepo,
	}
}

// JWTClaims 后台 token；TokenVersion 与库中不一致即视为吊销
type JWTClaims struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

func (s *AuthService) GenerateJWT(admin *models.Admin) (string, time.Time, error) {
	registered, expiresAt := s.tokens.window(0)
	token, err := s.tokens.sign(JWTClaims{
		AdminID:          admin.ID,
		Username:         admin.Username,
		TokenVersion:     admin.TokenVersion,
		RegisteredClaims: registered,
	})
	return token, expiresAt, err
}

func (s *AuthService) ParseJWT(raw string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	if err := s.tokens.parse(raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// publishState 鉴权中间件优先读缓存中的 token 状态，写失败只记日志
func (s *AuthService) publishState(admin *models.Admin) {
	if err := cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin)); err != nil {
		logger.Warnw("admin_auth_state_cache_failed", "admin_id", admin.ID, "error", err)
	}
}

func (s *AuthService) Login(username, password string) (*models.Admin, string, time.Time, error) {
	admin, err := s.adminRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil || !checkPassword(admin.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, expiresAt, err := s.GenerateJWT(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	admin.LastLoginAt = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, "", time.Time{}, err
	}
	s.publishState(admin)
	return admin, token, expiresAt, nil
}

func (s *AuthService) GetAdmin(id uint) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(id)
	switch {
	case err != nil:
		return nil, err
	case admin == nil:
		return nil, ErrNotFound
	}
	return admin, nil
}

// ChangePassword 递增 token_version，已签发的 token 全部失效
func (s *AuthService) ChangePassword(adminID uint, oldPassword, newPassword string) error {
	admin, err := s.GetAdmin(adminID)
	if err != nil {
		return err
	}
	hashed, err := rotatedHash(s.policy, admin.PasswordHash, oldPassword, newPassword)
	if err != nil {
		return err
	}
	now := time.Now()
	admin.PasswordHash = hashed
	admin.TokenVersion++
	admin.TokenInvalidBefore = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}
	s.publishState(admin)
	logger.Infow("admin_password_changed", "admin_id", admin.ID)
	return nil
}

func validAdminUsername(username string) bool {
	n := utf8.RuneCountInString(username)
	return n >= 3 && n <= 64 && !strings.ContainsAny(username, " \t\r\n")
}

// CreateAdmin 用户名 3-64 个字符且不含空白
func (s *AuthService) CreateAdmin(username, password string, isSuper bool) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if !validAdminUsername(username) {
		return nil, ErrInvalidInput
	}
	existing, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}
	if err := validatePassword(s.policy, password); err != nil {
		return nil, err
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{Username: username, PasswordHash: hashed, IsSuper: isSuper}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}
	s.publishState(admin)
	logger.Infow("admin_created", "admin_id", admin.ID, "username", admin.Username, "is_super", admin.IsSuper)
	return admin, nil
}
