package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

const (
	ContextUserID     = "userID"
	ContextUserRole   = "userRole"
	ContextTokenID    = "tokenID"
	ContextTokenExp   = "tokenExp"
	AccessTokenCookie = "access_token"
)

// AuthMiddleware accepts a Bearer token or the access_token cookie.
// A nil revoker skips the revocation check.
func AuthMiddleware(cfg *config.Config, revoker session.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, code, msg := verify(c, cfg, revoker)
		if claims == nil {
			httperr.Unauthorized(c, code, msg)
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// WebAuthMiddleware protects the html pages: failures redirect to loginPath.
func WebAuthMiddleware(cfg *config.Config, revoker session.Revoker, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _, _ := verify(c, cfg, revoker)
		if claims == nil {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// verify returns the token claims, or nil with the error code and message.
func verify(c *gin.Context, cfg *config.Config, revoker session.Revoker) (*Claims, string, string) {
	tokenString, ok := tokenFromRequest(c)
	if !ok {
		return nil, "missing_authorization", "Se requiere autenticación."
	}

	claims, err := ParseToken(cfg.JWTSecret, tokenString)
	if err != nil {
		return nil, "invalid_token", "Token inválido o expirado."
	}

	if revoker != nil {
		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// redis caído: se deja pasar, el token sigue siendo válido
			logging.FromContext(c.Request.Context()).Warn("revocation check failed", zap.Error(err))
		}
		if revoked {
			return nil, "token_revoked", "La sesión fue cerrada."
		}
	}

	return claims, "", ""
}

func setClaims(c *gin.Context, claims *Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUserRole, claims.Role)
	c.Set(ContextTokenID, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(ContextTokenExp, claims.ExpiresAt.Time)
	}
}

func tokenFromRequest(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		return strings.TrimSpace(parts[1]), parts[1] != ""
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// UserID returns the authenticated staff id, nil outside AuthMiddleware.
func UserID(c *gin.Context) *uint {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}

// TokenExpiry returns the expiry of the current token.
func TokenExpiry(c *gin.Context) time.Time {
	if v, ok := c.Get(ContextTokenExp); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}
