package service

import (
	"unicode"

	"github.com/fandom-mart/internal/config"
)

// PasswordPolicyError 携带 i18n key 与格式化参数，errors.Is(err, ErrWeakPassword) 成立
type PasswordPolicyError struct {
	Key  string
	Args []interface{}
}

func (e *PasswordPolicyError) Error() string { return e.Key }

func (e *PasswordPolicyError) Is(target error) bool { return target == ErrWeakPassword }

type charClass struct {
	required func(config.PasswordPolicyConfig) bool
	match    func(rune) bool
	key      string
}

var passwordClasses = []charClass{
	{required: func(p config.PasswordPolicyConfig) bool { return p.RequireUpper }, match: unicode.IsUpper, key: "error.password_require_upper"},
	{required: func(p config.PasswordPolicyConfig) bool { return p.RequireLower }, match: unicode.IsLower, key: "error.password_require_lower"},
	{required: func(p config.PasswordPolicyConfig) bool { return p.RequireNumber }, match: unicode.IsDigit, key: "error.password_require_number"},
	{required: func(p config.PasswordPolicyConfig) bool { return p.RequireSpecial }, match: isSpecialRune, key: "error.password_require_special"},
}

func isSpecialRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// validatePassword 先校验长度（按字符计），再按大写、小写、数字、特殊字符顺序校验
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return &PasswordPolicyError{Key: "error.password_min_length", Args: []interface{}{policy.MinLength}}
	}
	for _, class := range passwordClasses {
		if !class.required(policy) {
			continue
		}
		found := false
		for _, r := range password {
			if class.match(r) {
				found = true
				break
			}
		}
		if !found {
			return &PasswordPolicyError{Key: class.key}
		}
	}
	return nil
}
