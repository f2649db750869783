package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const secret = "test-secret"

type memRevoker map[string]bool

func (m memRevoker) Revoke(_ context.Context, jti string, _ time.Time) error {
	m[jti] = true
	return nil
}

func (m memRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	return m[jti], nil
}

func newRouter(revoked memRevoker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://agenda.example/"}))
	r.GET("/me", AuthMiddleware(&config.Config{JWTSecret: secret}, revoked), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": *UserID(c), "role": c.GetString(ContextUserRole)})
	})
	return r
}

func issue(t *testing.T) (string, *Claims) {
	t.Helper()
	token, claims, err := IssueToken(secret, &models.User{ID: 7, Role: "admin"}, time.Now())
	require.NoError(t, err)
	return token, claims
}

func TestAuthAcceptsBearerAndCookie(t *testing.T) {
	r := newRouter(memRevoker{})
	token, _ := issue(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"role":"admin"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejectsMissingBadAndRevoked(t *testing.T) {
	revoked := memRevoker{}
	r := newRouter(revoked)
	token, claims := issue(t)

	cases := map[string]string{
		"missing": "",
		"scheme":  "Token " + token,
		"garbage": "Bearer abc.def.ghi",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}

	revoked[claims.ID] = true
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token_revoked")
}

func TestParseTokenRejectsOtherSecretAndExpired(t *testing.T) {
	token, _ := issue(t)
	_, err := ParseToken("other", token)
	assert.Error(t, err)

	old, _, err := IssueToken(secret, &models.User{ID: 1}, time.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	_, err = ParseToken(secret, old)
	assert.Error(t, err)
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(nil)

	req := httptest.NewRequest(http.MethodOptions, "/me", nil)
	req.Header.Set("Origin", "https://agenda.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://agenda.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSIgnoresUnknownOrigins(t *testing.T) {
	r := newRouter(nil)

	req := httptest.NewRequest(http.MethodOptions, "/me", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

	token, _ := issue(t)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestWebAuthRedirectsToLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/web/agenda", WebAuthMiddleware(&config.Config{JWTSecret: secret}, nil, "/web/login"), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/web/agenda", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/web/login", w.Header().Get("Location"))

	token, _ := issue(t)
	req := httptest.NewRequest(http.MethodGet, "/web/agenda", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
