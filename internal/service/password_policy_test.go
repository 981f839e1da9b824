package service

import (
	"errors"
	"testing"

	"github.com/fandom-mart/internal/config"
)

func TestValidatePassword(t *testing.T) {
	strict := config.PasswordPolicyConfig{MinLength: 8, RequireUpper: true, RequireLower: true, RequireNumber: true, RequireSpecial: true}
	cases := []struct {
		name     string
		policy   config.PasswordPolicyConfig
		password string
		wantKey  string
	}{
		{name: "no policy", password: "a"},
		{name: "too short", policy: strict, password: "Ab1!", wantKey: "error.password_min_length"},
		{name: "runes not bytes", policy: config.PasswordPolicyConfig{MinLength: 4}, password: "สวัสดี"},
		{name: "missing upper", policy: strict, password: "kafka-2024", wantKey: "error.password_require_upper"},
		{name: "missing number", policy: strict, password: "Kafka-Star", wantKey: "error.password_require_number"},
		{name: "missing special", policy: strict, password: "Kafka2024x", wantKey: "error.password_require_special"},
		{name: "ok", policy: strict, password: "Kafka-2024"},
	}
	for _, tc := range cases {
		err := validatePassword(tc.policy, tc.password)
		if tc.wantKey == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		var perr *PasswordPolicyError
		if !errors.As(err, &perr) || perr.Key != tc.wantKey {
			t.Fatalf("%s: want %s got %v", tc.name, tc.wantKey, err)
		}
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("%s: should match ErrWeakPassword", tc.name)
		}
	}
}
