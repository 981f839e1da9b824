package service

import (
	"time"

	"github.com/fandom-mart/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenHours = 24

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func checkPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// tokenIssuer 后台与会员各持一份，只签发和接受 HS256
type tokenIssuer struct {
	secret []byte
	hours  int
}

func newTokenIssuer(cfg config.JWTConfig) tokenIssuer {
	hours := cfg.ExpireHours
	if hours <= 0 {
		hours = defaultTokenHours
	}
	return tokenIssuer{secret: []byte(cfg.SecretKey), hours: hours}
}

// window 有效期内的标准声明；hours <= 0 使用默认时长
func (i tokenIssuer) window(hours int) (jwt.RegisteredClaims, time.Time) {
	if hours <= 0 {
		hours = i.hours
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}, expiresAt
}

func (i tokenIssuer) sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

func (i tokenIssuer) parse(raw string, claims jwt.Claims) error {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// rotatedHash 校验旧密码与策略后返回新哈希
func rotatedHash(policy config.PasswordPolicyConfig, currentHash, oldPassword, newPassword string) (string, error) {
	if !checkPassword(currentHash, oldPassword) {
		return "", ErrInvalidPassword
	}
	if err := validatePassword(policy, newPassword); err != nil {
		return "", err
	}
	return hashPassword(newPassword)
}
