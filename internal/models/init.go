package models

import (
	"strings"

	"github.com/fandom-mart/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	bootstrapAdminUsername = "admin"
	bootstrapAdminPassword = "fandom123"
)

// InitDefaultAdmin 在全局连接上创建首个管理员
func InitDefaultAdmin(username, password string) error {
	return EnsureDefaultAdmin(DB, username, password)
}

// EnsureDefaultAdmin 管理员表为空时创建首个超级管理员；已有账号时只保证 admin 仍为超管
func EnsureDefaultAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		err := db.Model(&Admin{}).Where("username = ?", bootstrapAdminUsername).Update("is_super", true).Error
		if err != nil {
			logger.Warnw("bootstrap_admin_promote_failed", "error", err)
		}
		return nil
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = bootstrapAdminUsername
	}
	usingDefault := password == ""
	if usingDefault {
		password = bootstrapAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := db.Create(&Admin{Username: username, PasswordHash: string(hash), IsSuper: true}).Error; err != nil {
		return err
	}
	logger.Warnw("bootstrap_admin_created", "username", username, "default_password", usingDefault)
	return nil
}
