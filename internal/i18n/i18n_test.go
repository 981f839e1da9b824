package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":                  DefaultLocale,
		"zh":                LocaleZH,
		"en-US,en;q=0.8":    LocaleEN,
		"th":                LocaleTH,
		"fr-FR,zh-CN;q=0.9": LocaleZH,
	}
	for raw, want := range cases {
		if got := NormalizeLocale(raw); got != want {
			t.Fatalf("NormalizeLocale(%q) want %s got %s", raw, want, got)
		}
	}
}

func TestResolveLocaleQueryWins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/x?lang=en-US", nil)
	c.Request.Header.Set("Accept-Language", "zh-CN")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("query lang should win, got %s", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	base := messages[LocaleEN]
	for _, locale := range SupportedLocales() {
		table := messages[locale]
		if len(table) != len(base) {
			t.Fatalf("%s has %d keys, en-US has %d", locale, len(table), len(base))
		}
		for key := range base {
			if _, ok := table[key]; !ok {
				t.Fatalf("%s missing %s", locale, key)
			}
		}
	}
}

func TestTFallbacks(t *testing.T) {
	if got := T(LocaleEN, "error.cart_empty"); got != "Your cart is empty" {
		t.Fatalf("unexpected en message %q", got)
	}
	if got := T(LocaleEN, "error.__missing__"); got != "error.__missing__" {
		t.Fatalf("missing key should echo key, got %q", got)
	}
	if got := Sprintf(LocaleEN, "error.rate_limited", 30); got != "Too many requests, retry in 30 seconds" {
		t.Fatalf("unexpected formatted message %q", got)
	}
}
