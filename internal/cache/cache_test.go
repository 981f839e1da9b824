package cache

import (
	"context"
	"testing"
	"time"

	"github.com/fandom-mart/internal/config"
	"github.com/fandom-mart/internal/models"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	ctx := context.Background()
	if err := SetCatalog(ctx, CatalogFandoms, []string{"gen"}, time.Minute); err != nil {
		t.Fatalf("set should be noop: %v", err)
	}
	var got []string
	hit, err := GetCatalog(ctx, CatalogFandoms, &got)
	if err != nil || hit {
		t.Fatalf("disabled cache must miss: hit=%v err=%v", hit, err)
	}
	if err := InvalidateCatalog(ctx, "genshin"); err != nil {
		t.Fatalf("invalidate should be noop: %v", err)
	}
}

func TestCatalogKeys(t *testing.T) {
	Bind(nil, "")
	if Prefix() != "fm" {
		t.Fatalf("default prefix want fm got %s", Prefix())
	}
	if got := buildKey(catalogKey(CatalogFandomPage(" Genshin "))); got != "fm:catalog:fandom:genshin" {
		t.Fatalf("unexpected fandom page key %s", got)
	}
	if got := buildKey(catalogKey(CatalogPublicConfig)); got != "fm:catalog:public_config" {
		t.Fatalf("unexpected config key %s", got)
	}
}

func TestBuildUserAuthState(t *testing.T) {
	now := time.Now()
	user := &models.User{ID: 3, Email: "fan@example.com", Status: "active", TokenVersion: 2, TokenInvalidBefore: &now}
	state := BuildUserAuthState(user)
	if state.UserID != 3 || state.Email != "fan@example.com" || state.TokenInvalidBefore != now.Unix() {
		t.Fatalf("unexpected state %+v", state)
	}
	if BuildUserAuthState(nil) != nil {
		t.Fatalf("nil user should produce nil state")
	}
}

func TestTokenStateRevokes(t *testing.T) {
	issued := time.Unix(1000, 0)
	cases := []struct {
		name          string
		stateVersion  uint64
		invalidBefore int64
		tokenVersion  uint64
		want          bool
	}{
		{"same version", 1, 0, 1, false},
		{"bumped version", 2, 0, 1, true},
		{"issued before cutoff", 1, 2000, 1, true},
		{"issued after cutoff", 1, 500, 1, false},
	}
	for _, tc := range cases {
		state := TokenState{TokenVersion: tc.stateVersion, TokenInvalidBefore: tc.invalidBefore}
		if got := state.Revokes(tc.tokenVersion, issued); got != tc.want {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, got)
		}
	}
	if (TokenState{TokenInvalidBefore: 2000}).Revokes(0, time.Time{}) {
		t.Fatalf("missing issued-at should only be checked by version")
	}
}
