package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/session"
)

var errInvalidCredentials = errors.New("invalid credentials")

type AuthHandler struct {
	db      *gorm.DB
	config  *config.Config
	revoker session.Revoker
	audit   *audit.Dispatcher
	now     func() time.Time
}

// NewAuthHandler accepts a nil revoker; logout then only clears the cookie.
func NewAuthHandler(
	db *gorm.DB,
	cfg *config.Config,
	revoker session.Revoker,
	audit *audit.Dispatcher,
) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, revoker: revoker, audit: audit, now: time.Now}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, errInvalidCredentials) {
		httperr.Unauthorized(c, "invalid_credentials", "Credenciales inválidas.")
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	token, claims, err := middleware.IssueToken(h.config.JWTSecret, user, h.now())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{UserID: &user.ID, Action: "login", Entity: "user", EntityID: &user.ID})

	httpresp.OK(c, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"token":      token,
		"expires_at": claims.ExpiresAt.Time,
	})
}

// Logout revokes the current token until it would have expired.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(middleware.ContextTokenID)

	if h.revoker != nil && jti != "" {
		if err := h.revoker.Revoke(c.Request.Context(), jti, middleware.TokenExpiry(c)); err != nil {
			logging.FromContext(c.Request.Context()).Warn("token revoke failed", zap.Error(err))
		}
	}

	clearAuthCookie(c)
	h.audit.Dispatch(audit.Event{UserID: middleware.UserID(c), Action: "logout", Entity: "user"})
	httpresp.NoContent(c)
}

// --------- Helpers ---------

// authenticate checks the credentials of an active staff user.
func (h *AuthHandler) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := h.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	return &user, nil
}

func setAuthCookie(c *gin.Context, token string, expires time.Time, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AccessTokenCookie,
		token,
		int(time.Until(expires).Seconds()),
		"/",
		"",
		secure,
		true,
	)
}

func clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
}
