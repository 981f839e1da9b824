package service

import (
	"context"
	"strings"

	"github.com/fandom-mart/internal/cache"
	"github.com/fandom-mart/internal/constants"
	"github.com/fandom-mart/internal/logger"
	"github.com/fandom-mart/internal/models"
	"github.com/fandom-mart/internal/repository"
)

// UserAdminService 后台会员管理
type UserAdminService struct {
	userRepo repository.UserRepository
}

// NewUserAdminService 创建会员管理服务
func NewUserAdminService(userRepo repository.UserRepository) *UserAdminService {
	return &UserAdminService{userRepo: userRepo}
}

// List 会员列表
func (s *UserAdminService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// Get 会员详情
func (s *UserAdminService) Get(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// BatchUpdateStatus 批量启用/禁用；禁用会使现有 token 失效
func (s *UserAdminService) BatchUpdateStatus(ctx context.Context, userIDs []uint, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		return ErrUserStatusInvalid
	}
	ids := make([]uint, 0, len(userIDs))
	seen := make(map[uint]struct{}, len(userIDs))
	for _, id := range userIDs {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return ErrInvalidInput
	}
	if err := s.userRepo.BatchUpdateStatus(ids, status); err != nil {
		return err
	}
	users, err := s.userRepo.ListByIDs(ids)
	if err != nil {
		return err
	}
	for i := range users {
		if err := cache.SetUserAuthState(ctx, cache.BuildUserAuthState(&users[i])); err != nil {
			logger.Warnw("user_auth_state_cache_failed", "user_id", users[i].ID, "error", err)
		}
	}
	logger.Infow("user_status_batch_updated", "count", len(ids), "status", status)
	return nil
}
