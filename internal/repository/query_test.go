package repository

import (
	"strings"
	"testing"

	"github.com/fandom-mart/internal/models"
)

func TestDialectJSONText(t *testing.T) {
	cases := []struct {
		d    dialect
		want string
	}{
		{d: "sqlite", want: `json_extract(title_json, '$."th-TH"')`},
		{d: "postgres", want: `(title_json::jsonb ->> 'th-TH')`},
	}
	for _, tc := range cases {
		if got := tc.d.jsonText("title_json", "th-TH"); got != tc.want {
			t.Fatalf("%s: want %s got %s", tc.d, tc.want, got)
		}
	}
	if dialectOf(nil) != "sqlite" {
		t.Fatalf("nil db should default to sqlite")
	}
}

func TestKeywordCondition(t *testing.T) {
	cond, args := dialect("sqlite").keywordCondition("raiden", []string{"slug", "code"}, []string{"title_json"})
	if len(args) != 5 {
		t.Fatalf("args want 5 got %d", len(args))
	}
	if args[0] != "%raiden%" {
		t.Fatalf("unexpected pattern %v", args[0])
	}
	for _, part := range []string{"slug LIKE ?", "code LIKE ?", `json_extract(title_json, '$."zh-CN"') LIKE ?`} {
		if !strings.Contains(cond, part) {
			t.Fatalf("condition missing %q: %s", part, cond)
		}
	}

	cond, args = dialect("postgres").keywordCondition("gojo", []string{" "}, []string{"name_json"})
	if len(args) != 3 || !strings.Contains(cond, "(name_json::jsonb ->> 'en-US') ILIKE ?") {
		t.Fatalf("unexpected postgres condition %s (%d args)", cond, len(args))
	}
}

func TestFirstOrNilAndPaginate(t *testing.T) {
	db := openTestDB(t)
	for _, email := range []string{"a@fm.test", "b@fm.test", "c@fm.test"} {
		if err := db.Create(&models.User{Email: email, PasswordHash: "x", Status: "active"}).Error; err != nil {
			t.Fatalf("create user failed: %v", err)
		}
	}
	missing, err := firstOrNil[models.User](db, "email = ?", "nobody@fm.test")
	if err != nil || missing != nil {
		t.Fatalf("missing row should be nil,nil got %v %v", missing, err)
	}
	found, err := firstOrNil[models.User](db.Where("email = ?", "b@fm.test"))
	if err != nil || found == nil || found.Email != "b@fm.test" {
		t.Fatalf("unexpected lookup %v %v", found, err)
	}

	var page []models.User
	if err := db.Scopes(paginate(2, 2)).Order("id ASC").Find(&page).Error; err != nil {
		t.Fatalf("paginate failed: %v", err)
	}
	if len(page) != 1 || page[0].Email != "c@fm.test" {
		t.Fatalf("second page should hold the last user, got %+v", page)
	}
}
