package service

import (
	"errors"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrForbidden          = errors.New("forbidden: insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthorized: no valid session")
	ErrSessionExpired     = errors.New("session has expired")
	ErrSessionRevoked     = errors.New("session has been revoked")
)

// Caller identifies who is acting on a request. UserID is nil for anonymous
// intake submissions.
type Caller struct {
	UserID    *uuid.UUID
	Role      domain.Role
	IP        string
	RequestID string
}

// CallerFromClaims builds a Caller for an authenticated request.
func CallerFromClaims(c *domain.Claims, ip, requestID string) Caller {
	if c == nil {
		return Caller{IP: ip, RequestID: requestID}
	}
	id := c.UserID
	return Caller{UserID: &id, Role: c.Role, IP: ip, RequestID: requestID}
}

func (c Caller) auditEntry(action domain.AuditAction, resourceType, resourceID string) AuditEntry {
	return AuditEntry{
		UserID:       c.UserID,
		UserRole:     c.Role,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    c.IP,
		RequestID:    c.RequestID,
	}
}

type AuditEntry struct {
	UserID       *uuid.UUID
	UserRole     domain.Role
	Action       domain.AuditAction
	ResourceType string
	ResourceID   string
	IPAddress    string
	RequestID    string
	Changes      string
}
