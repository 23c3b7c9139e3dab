package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"guideomra/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newEngine(tokens auth.Service, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		s := auth.SessionFrom(c)
		c.String(http.StatusOK, s.UserID.String())
	})
	engine.GET("/protected", handlers...)
	return engine
}

func TestJWTAuth(t *testing.T) {
	tokens := auth.NewService("mw-secret", "guideomra", time.Minute, time.Hour)
	userID := uuid.New()
	pair, _ := tokens.IssueTokenPair(auth.Session{UserID: userID, Role: auth.RolePilgrim})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + pair.AccessToken, http.StatusUnauthorized},
		{"refresh token", "Bearer " + pair.RefreshToken, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid", "Bearer " + pair.AccessToken, http.StatusOK},
	}

	engine := newEngine(tokens)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tc.status, w.Body.String())
			}
			if tc.status == http.StatusOK && w.Body.String() != userID.String() {
				t.Fatalf("session not stored, body = %q", w.Body.String())
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	tokens := auth.NewService("mw-secret", "guideomra", time.Minute, time.Hour)
	engine := newEngine(tokens, RequireRoles(auth.RoleGuide))

	pilgrim, _ := tokens.IssueTokenPair(auth.Session{UserID: uuid.New(), Role: auth.RolePilgrim})
	guide, _ := tokens.IssueTokenPair(auth.Session{UserID: uuid.New(), Role: auth.RoleGuide})

	for token, want := range map[string]int{
		pilgrim.AccessToken: http.StatusForbidden,
		guide.AccessToken:   http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code != want {
			t.Fatalf("status = %d, want %d", w.Code, want)
		}
	}
}
