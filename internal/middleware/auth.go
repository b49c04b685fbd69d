package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const claimsKey = "session_claims"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Claims, error)
}

// Auth resolves the session from the cookie, falling back to an
// Authorization: Bearer header for API clients.
type Auth struct {
	authn      Authenticator
	cookieName string
	log        *zap.Logger
}

func NewAuth(authn Authenticator, cookieName string, log *zap.Logger) *Auth {
	return &Auth{authn: authn, cookieName: cookieName, log: log}
}

// RequireSession aborts with 401 unless the request carries a live session.
func (a *Auth) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.authn.Authenticate(c.Request.Context(), a.token(c))
		if err != nil {
			a.abort(c, err)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// OptionalSession attaches the session when one is present and valid and
// otherwise lets the request through anonymously.
func (a *Auth) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := a.token(c); token != "" {
			claims, err := a.authn.Authenticate(c.Request.Context(), token)
			if err == nil {
				c.Set(claimsKey, claims)
			} else {
				a.log.Debug("ignoring unusable session on public route", zap.Error(err))
			}
		}
		c.Next()
	}
}

// RequireRole must run after RequireSession.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !service.Authorize(Claims(c), roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// Claims returns the session attached by RequireSession or OptionalSession.
func Claims(c *gin.Context) *domain.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*domain.Claims)
	return claims
}

func (a *Auth) token(c *gin.Context) string {
	if cookie, err := c.Cookie(a.cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

func (a *Auth) abort(c *gin.Context, err error) {
	var storageErr *domain.StorageError
	switch {
	case errors.As(err, &storageErr):
		a.log.Error("session check failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
	case errors.Is(err, service.ErrSessionExpired), errors.Is(err, service.ErrSessionRevoked):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - No Token Provided"})
	}
}
