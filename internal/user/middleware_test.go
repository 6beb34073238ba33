package user_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SlpAus/netnuggets-backend/internal/user"
	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", user.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uuid": c.GetString(user.UserIDKey)})
	})
	r.GET("/admin-only", user.RequireAuth(), user.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/public", user.OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uuid": c.GetString(user.UserIDKey)})
	})
	return r
}

func doRequest(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	setupTestDB(t)
	_, tok := registerTestUser(t, "Alice", "alice@example.com", "", "")
	r := newTestRouter()

	tests := []struct {
		name   string
		bearer string
		want   int
	}{
		{name: "missing token", bearer: "", want: http.StatusUnauthorized},
		{name: "garbage token", bearer: "not-a-jwt", want: http.StatusUnauthorized},
		{name: "valid token", bearer: tok, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(r, "/me", tt.bearer)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequireAuthDeletedUser(t *testing.T) {
	setupTestDB(t)
	admin, _ := registerTestUser(t, "Root", "root@example.com", user.RoleAdmin, "test-admin-code")
	target, tok := registerTestUser(t, "Alice", "alice@example.com", "", "")
	r := newTestRouter()

	if err := user.DeleteUser(admin.UUID, target.UUID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	// 令牌本身仍然有效，但用户已不存在
	rec := doRequest(r, "/me", tok)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAdmin(t *testing.T) {
	setupTestDB(t)
	_, userTok := registerTestUser(t, "Alice", "alice@example.com", "", "")
	_, adminTok := registerTestUser(t, "Root", "root@example.com", user.RoleAdmin, "test-admin-code")
	r := newTestRouter()

	if rec := doRequest(r, "/admin-only", userTok); rec.Code != http.StatusForbidden {
		t.Errorf("user token: status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if rec := doRequest(r, "/admin-only", adminTok); rec.Code != http.StatusOK {
		t.Errorf("admin token: status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestOptionalAuth(t *testing.T) {
	setupTestDB(t)
	registerTestUser(t, "Alice", "alice@example.com", "", "")
	r := newTestRouter()

	// 无令牌和坏令牌都不会被拒绝
	if rec := doRequest(r, "/public", ""); rec.Code != http.StatusOK {
		t.Errorf("no token: status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := doRequest(r, "/public", "not-a-jwt"); rec.Code != http.StatusOK {
		t.Errorf("bad token: status = %d, want %d", rec.Code, http.StatusOK)
	}
}
