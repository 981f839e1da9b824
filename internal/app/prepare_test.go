package app

import (
	"errors"
	"strings"
	"testing"

	"github.com/fandom-mart/internal/config"
)

func TestCheckSecrets(t *testing.T) {
	strong := strings.Repeat("k", 40)
	cases := []struct {
		name  string
		admin string
		user  string
		weak  bool
	}{
		{name: "both strong", admin: strong, user: strong + "u"},
		{name: "short admin", admin: "short", user: strong, weak: true},
		{name: "sample user", admin: strong, user: "please-change-me-before-launch-0000000", weak: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.JWT.SecretKey = tc.admin
			cfg.UserJWT.SecretKey = tc.user
			err := CheckSecrets(cfg)
			if tc.weak != errors.Is(err, ErrWeakSecret) {
				t.Fatalf("weak=%v but got %v", tc.weak, err)
			}
		})
	}
}

func TestListenAddr(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = "8080"
	if got := listenAddr(cfg); got != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %s", got)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]string{"": ModeAll, "API": ModeAPI, " worker ": ModeWorker, "all": ModeAll}
	for raw, want := range cases {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := ParseMode("cron"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}
