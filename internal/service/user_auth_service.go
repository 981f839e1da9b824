package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/fandom-mart/internal/cache"
	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/constants"
	"github.com/fandom-mart/internal/i18n"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// UserAuthService 会员注册、登录与资料维护
type UserAuthService struct {
	policy        config.PasswordPolicyConfig
	tokens        tokenIssuer
	rememberHours int
	userRepo      repository.UserRepository
}

func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository) *UserAuthService {
	tokens := newTokenIssuer(cfg.UserJWT)
	remember := cfg.UserJWT.RememberMeExpireHours
	if remember <= 0 {
		remember = tokens.hours
	}
	return &UserAuthService{
		policy:        cfg.Security.PasswordPolicy,
		tokens:        tokens,
		rememberHours: remember,
		userRepo:      userRepo,
	}
}

// UserJWTClaims 会员 token，ScopeMiddleware 用 UserID 作为购物车 scope
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput DisplayName 为空时取邮箱本地部分
type RegisterInput struct {
	Email          string
	Password       string
	DisplayName    string
	FavoriteFandom string
	Locale         string
}

// ProfileInput 资料更新参数，nil 表示不修改
type ProfileInput struct {
	DisplayName    *string
	FavoriteFandom *string
	Locale         *string
}

// GenerateUserJWT expireHours <= 0 时使用配置的默认有效期
func (s *UserAuthService) GenerateUserJWT(user *models.User, expireHours int) (string, time.Time, error) {
	registered, expiresAt := s.tokens.window(expireHours)
	token, err := s.tokens.sign(UserJWTClaims{
		UserID:           user.ID,
		Email:            user.Email,
		TokenVersion:     user.TokenVersion,
		RegisteredClaims: registered,
	})
	return token, expiresAt, err
}

func (s *UserAuthService) ParseUserJWT(raw string) (*UserJWTClaims, error) {
	claims := &UserJWTClaims{}
	if err := s.tokens.parse(raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *UserAuthService) publishState(user *models.User) {
	if err := cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user)); err != nil {
		logger.Warnw("user_auth_state_cache_failed", "user_id", user.ID, "error", err)
	}
}

// Register 注册成功即视为一次登录并签发 token
func (s *UserAuthService) Register(input RegisterInput) (*models.User, string, time.Time, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := validatePassword(s.policy, input.Password); err != nil {
		return nil, "", time.Time{}, err
	}
	switch exist, err := s.userRepo.GetByEmail(email); {
	case err != nil:
		return nil, "", time.Time{}, err
	case exist != nil:
		return nil, "", time.Time{}, ErrEmailExists
	}
	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	user := &models.User{
		Email:          email,
		PasswordHash:   hashed,
		DisplayName:    displayNameOr(input.DisplayName, email),
		FavoriteFandom: normalizeCode(input.FavoriteFandom),
		Locale:         i18n.NormalizeLocale(input.Locale),
		Status:         constants.UserStatusActive,
		LastLoginAt:    &now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", time.Time{}, err
	}
	token, expiresAt, err := s.GenerateUserJWT(user, 0)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.publishState(user)
	logger.Infow("user_registered", "user_id", user.ID, "locale", user.Locale)
	return user, token, expiresAt, nil
}

// Login 禁用账号返回 ErrUserDisabled；rememberMe 使用 remember_me_expire_hours
func (s *UserAuthService) Login(email, password string, rememberMe bool) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil || !checkPassword(user.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !strings.EqualFold(user.Status, constants.UserStatusActive) {
		return nil, "", time.Time{}, ErrUserDisabled
	}
	hours := 0
	if rememberMe {
		hours = s.rememberHours
	}
	token, expiresAt, err := s.GenerateUserJWT(user, hours)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	s.publishState(user)
	return user, token, expiresAt, nil
}

func (s *UserAuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	hashed, err := rotatedHash(s.policy, user.PasswordHash, oldPassword, newPassword)
	if err != nil {
		return err
	}
	now := time.Now()
	user.PasswordHash = hashed
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	s.publishState(user)
	return nil
}

// UpdateProfile 空白昵称与语言视为未提交；全部未提交返回 ErrProfileEmpty
func (s *UserAuthService) UpdateProfile(userID uint, input ProfileInput) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	changed := false
	if name := trimmedOrEmpty(input.DisplayName); name != "" {
		user.DisplayName = name
		changed = true
	}
	if input.FavoriteFandom != nil {
		user.FavoriteFandom = normalizeCode(*input.FavoriteFandom)
		changed = true
	}
	if locale := trimmedOrEmpty(input.Locale); locale != "" {
		user.Locale = i18n.NormalizeLocale(locale)
		changed = true
	}
	if !changed {
		return nil, ErrProfileEmpty
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID 不存在或 id 为 0 时返回 ErrNotFound
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(id)
	switch {
	case err != nil:
		return nil, err
	case user == nil:
		return nil, ErrNotFound
	}
	return user, nil
}

func trimmedOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

// normalizeEmail 小写并通过 RFC 5322 地址解析
func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func displayNameOr(name, email string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(email, "@"); ok && strings.TrimSpace(local) != "" {
		return strings.TrimSpace(local)
	}
	return email
}
