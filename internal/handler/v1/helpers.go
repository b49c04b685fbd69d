package v1

import (
	"errors"
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/middleware"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/service"
	"github.com/gin-gonic/gin"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data, Message: message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *domain.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  validErr.Message,
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		respondError(c, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusBadRequest, "invalid credentials")

	case errors.Is(err, patient.ErrInvalidSeverity),
		errors.Is(err, patient.ErrInvalidRegisteredBy):
		respondError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrSessionExpired),
		errors.Is(err, service.ErrSessionRevoked):
		respondError(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, "access denied")

	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return false
	}
	return true
}

func callerFrom(c *gin.Context) service.Caller {
	return service.CallerFromClaims(middleware.Claims(c), c.ClientIP(), middleware.GetRequestID(c))
}
