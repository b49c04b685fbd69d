package v1

import (
	"context"
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/config"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/middleware"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthService interface {
	Signup(ctx context.Context, cmd *service.SignupCommand, caller service.Caller) (*domain.Session, error)
	Login(ctx context.Context, cmd *service.LoginCommand, caller service.Caller) (*domain.Session, error)
	Logout(ctx context.Context, claims *domain.Claims, caller service.Caller) error
	CurrentUser(ctx context.Context, claims *domain.Claims) (*domain.User, error)
}

type AuthHandler struct {
	svc    AuthService
	cookie config.CookieConfig
}

func NewAuthHandler(svc AuthService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: cookie}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var cmd service.SignupCommand
	if !bindJSON(c, &cmd) {
		return
	}

	session, err := h.svc.Signup(c.Request.Context(), &cmd, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.setSessionCookie(c, session.Token)
	respondCreated(c, session.User, "Account created")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var cmd service.LoginCommand
	if !bindJSON(c, &cmd) {
		return
	}

	session, err := h.svc.Login(c.Request.Context(), &cmd, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.setSessionCookie(c, session.Token)
	respondOK(c, session.User)
}

// Logout always clears the cookie. A live session is also revoked server side.
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims := middleware.Claims(c); claims != nil {
		if err := h.svc.Logout(c.Request.Context(), claims, callerFrom(c)); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Check(c *gin.Context) {
	user, err := h.svc.CurrentUser(c.Request.Context(), middleware.Claims(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.MaxAge.Seconds()), "/", h.cookie.Domain, h.cookie.Secure, h.cookie.HTTPOnly)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, h.cookie.HTTPOnly)
}
