package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func serve(t *testing.T, handler gin.HandlerFunc) map[string]interface{} {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)
	if w.Code != http.StatusOK {
		t.Fatalf("envelope must use http 200, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	return body
}

func TestSuccessOmitsPagination(t *testing.T) {
	body := serve(t, func(c *gin.Context) { Success(c, gin.H{"code": "GEN-FIG-0007"}) })
	if body["status_code"].(float64) != CodeOK || body["msg"] != "success" {
		t.Fatalf("unexpected envelope %v", body)
	}
	if _, ok := body["pagination"]; ok {
		t.Fatalf("plain success should not carry pagination")
	}
}

func TestSuccessWithPage(t *testing.T) {
	body := serve(t, func(c *gin.Context) { SuccessWithPage(c, []int{1, 2}, NewPagination(2, 20, 41)) })
	page, ok := body["pagination"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing pagination in %v", body)
	}
	if page["total_page"].(float64) != 3 || page["page"].(float64) != 2 {
		t.Fatalf("unexpected pagination %v", page)
	}
}

func TestErrorCarriesRequestID(t *testing.T) {
	body := serve(t, func(c *gin.Context) {
		c.Set("request_id", "req-1")
		Error(c, CodeConflict, "limit reached")
	})
	if body["status_code"].(float64) != CodeConflict || body["msg"] != "limit reached" {
		t.Fatalf("unexpected envelope %v", body)
	}
	data, _ := body["data"].(map[string]interface{})
	if data["request_id"] != "req-1" {
		t.Fatalf("request id missing: %v", body["data"])
	}

	body = serve(t, func(c *gin.Context) { Forbidden(c, "no") })
	if body["data"] != nil {
		t.Fatalf("data should be null without request id, got %v", body["data"])
	}
}

func TestNewPaginationZeroSize(t *testing.T) {
	if p := NewPagination(1, 0, 10); p.TotalPage != 0 {
		t.Fatalf("zero page size should not divide, got %+v", p)
	}
}
