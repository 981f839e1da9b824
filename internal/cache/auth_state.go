package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/fandom-mart/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// TokenState 令牌吊销依据，InvalidBefore 为 Unix 秒，0 表示未设置
type TokenState struct {
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

func newTokenState(version uint64, invalidBefore *time.Time) TokenState {
	state := TokenState{TokenVersion: version, UpdatedAt: time.Now().Unix()}
	if invalidBefore != nil {
		state.TokenInvalidBefore = invalidBefore.Unix()
	}
	return state
}

// UserAuthState 会员鉴权快照
type UserAuthState struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Status string `json:"status"`
	TokenState
}

// AdminAuthState 管理员鉴权快照
type AdminAuthState struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	IsSuper  bool   `json:"is_super"`
	TokenState
}

func authStateKey(kind string, id uint) string {
	return "auth:" + kind + ":" + strconv.FormatUint(uint64(id), 10)
}

func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	return &UserAuthState{
		UserID:     user.ID,
		Email:      user.Email,
		Status:     user.Status,
		TokenState: newTokenState(user.TokenVersion, user.TokenInvalidBefore),
	}
}

func BuildAdminAuthState(admin *models.Admin) *AdminAuthState {
	if admin == nil {
		return nil
	}
	return &AdminAuthState{
		AdminID:    admin.ID,
		Username:   admin.Username,
		IsSuper:    admin.IsSuper,
		TokenState: newTokenState(admin.TokenVersion, admin.TokenInvalidBefore),
	}
}

func getState[T any](ctx context.Context, kind string, id uint) (*T, bool, error) {
	if id == 0 {
		return nil, false, nil
	}
	var state T
	hit, err := GetJSON(ctx, authStateKey(kind, id), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// GetUserAuthState 未命中或 Redis 未启用时 hit 为 false
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	return getState[UserAuthState](ctx, "user", userID)
}

func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, authStateKey("user", state.UserID), state, authStateCacheTTL)
}

func GetAdminAuthState(ctx context.Context, adminID uint) (*AdminAuthState, bool, error) {
	return getState[AdminAuthState](ctx, "admin", adminID)
}

func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || state.AdminID == 0 {
		return nil
	}
	return SetJSON(ctx, authStateKey("admin", state.AdminID), state, authStateCacheTTL)
}

func DelAdminAuthState(ctx context.Context, adminID uint) error {
	if adminID == 0 {
		return nil
	}
	return Del(ctx, authStateKey("admin", adminID))
}

// Revokes 版本不一致，或签发时间早于 InvalidBefore 的令牌视为吊销
func (s TokenState) Revokes(tokenVersion uint64, issuedAt time.Time) bool {
	if tokenVersion != s.TokenVersion {
		return true
	}
	return s.TokenInvalidBefore > 0 && !issuedAt.IsZero() && issuedAt.Unix() < s.TokenInvalidBefore
}
