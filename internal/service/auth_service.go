package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type UserRepository interface {
	// Create returns domain.ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, u *domain.User) error
	// GetByEmail returns domain.ErrUserNotFound when no account matches.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// SessionStore remembers revoked session tokens until they would have expired anyway.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type SignupCommand struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	Pincode         string `json:"pincode" validate:"required"`
	City            string `json:"city"`
	Region          string `json:"region" validate:"omitempty,oneof=North South East West"`
	Moderator       string `json:"moderator" validate:"required"`
	ModeratorNumber string `json:"moderatorNumber" validate:"required"`
	Role            string `json:"role" validate:"required,oneof=hospital camp"`
}

type LoginCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService struct {
	userRepo   UserRepository
	sessions   SessionStore
	jwtManager *auth.JWTManager
	auditSvc   *AuditService
	metrics    *metrics.Collector
	log        *zap.Logger
}

func NewAuthService(
	userRepo UserRepository,
	sessions SessionStore,
	jwtManager *auth.JWTManager,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		sessions:   sessions,
		jwtManager: jwtManager,
		auditSvc:   auditSvc,
		metrics:    m,
		log:        log,
	}
}

func (s *AuthService) Signup(ctx context.Context, cmd *SignupCommand, caller Caller) (*domain.Session, error) {
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.Region = strings.TrimSpace(cmd.Region)
	cmd.Role = strings.ToLower(strings.TrimSpace(cmd.Role))

	if msgs := validation.Struct(cmd); len(msgs) > 0 {
		msg := "Invalid signup details"
		for _, m := range msgs {
			if strings.HasSuffix(m, " is required") {
				msg = "All fields are required"
				break
			}
		}
		return nil, &domain.ValidationError{Message: msg, Fields: msgs}
	}
	if len(cmd.Password) < minPasswordLength {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("Password must be at least %d characters", minPasswordLength),
		}
	}

	_, err := s.userRepo.GetByEmail(ctx, cmd.Email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, domain.NewStorageError("lookup user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:              uuid.New(),
		Email:           cmd.Email,
		PasswordHash:    string(hash),
		Pincode:         strings.TrimSpace(cmd.Pincode),
		City:            strings.TrimSpace(cmd.City),
		Region:          domain.Region(cmd.Region),
		Moderator:       strings.TrimSpace(cmd.Moderator),
		ModeratorNumber: strings.TrimSpace(cmd.ModeratorNumber),
		Role:            domain.Role(cmd.Role),
	}
	if user.City == "" {
		user.City = domain.DefaultCity
	}
	if user.Region == "" {
		user.Region = domain.RegionNorth
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		s.log.Error("failed to create user", zap.Error(err))
		return nil, domain.NewStorageError("create user", err)
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	caller.UserID, caller.Role = &user.ID, user.Role
	s.auditSvc.LogAsync(caller.auditEntry(domain.ActionSignup, "user", user.ID.String()))

	s.log.Info("account created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return session, nil
}

func (s *AuthService) Login(ctx context.Context, cmd *LoginCommand, caller Caller) (*domain.Session, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		s.countLogin("rejected")
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.NewStorageError("lookup user", err)
		}
		// Spend the same bcrypt time as a real comparison so response latency
		// does not reveal whether the email exists.
		_, _ = bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
		s.countLogin("rejected")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(cmd.Password)); err != nil {
		s.log.Warn("failed login attempt",
			zap.String("email", email),
			zap.String("ip", caller.IP),
		)
		s.countLogin("rejected")
		return nil, ErrInvalidCredentials
	}

	session, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.log.Warn("failed to record last login", zap.Error(err))
	}

	caller.UserID, caller.Role = &user.ID, user.Role
	s.auditSvc.LogAsync(caller.auditEntry(domain.ActionLogin, "user", user.ID.String()))
	s.countLogin("success")

	s.log.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("ip", caller.IP),
	)

	return session, nil
}

// Logout revokes the session token for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *domain.Claims, caller Caller) error {
	ttl := time.Until(claims.ExpiresAt)
	if ttl > 0 {
		if err := s.sessions.Revoke(ctx, claims.TokenID, ttl); err != nil {
			s.log.Error("failed to revoke session", zap.Error(err))
			return domain.NewStorageError("revoke session", err)
		}
	}

	s.auditSvc.LogAsync(caller.auditEntry(domain.ActionLogout, "user", claims.UserID.String()))
	return nil
}

// Authenticate resolves a session token to its claims.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Claims, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.jwtManager.Validate(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrUnauthenticated
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		s.log.Error("session store unavailable", zap.Error(err))
		return nil, domain.NewStorageError("check session", err)
	}
	if revoked {
		return nil, ErrSessionRevoked
	}

	return claims, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, claims *domain.Claims) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, domain.NewStorageError("get user", err)
	}
	return user, nil
}

// Authorize reports whether the session may act with one of the given roles.
// No roles means any authenticated session is allowed.
func Authorize(claims *domain.Claims, roles ...domain.Role) bool {
	if claims == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if claims.Role == r {
			return true
		}
	}
	return false
}

func (s *AuthService) issue(user *domain.User) (*domain.Session, error) {
	token, claims, err := s.jwtManager.Issue(user.ID, user.Role)
	if err != nil {
		s.log.Error("failed to issue session token", zap.Error(err))
		return nil, fmt.Errorf("issuing session: %w", err)
	}
	return &domain.Session{
		Token:     token,
		TokenID:   claims.TokenID,
		ExpiresAt: claims.ExpiresAt,
		User:      user,
	}, nil
}

func (s *AuthService) countLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}
