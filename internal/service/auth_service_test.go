package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/config"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/auth"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	svc      *AuthService
	users    *mockUserRepo
	sessions *mockSessionStore
	jwt      *auth.JWTManager
	audit    *recordingAuditRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	m := newTestMetrics()
	audit, auditRepo := newTestAudit(t, m)
	f := &authFixture{
		users:    &mockUserRepo{},
		sessions: &mockSessionStore{},
		jwt: auth.NewJWTManager(config.JWTConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			SessionTTL: time.Hour,
			Issuer:     "triagehub-test",
		}),
		audit: auditRepo,
	}
	f.svc = NewAuthService(f.users, f.sessions, f.jwt, audit, m, zap.NewNop())
	return f
}

func signupCommand() *SignupCommand {
	return &SignupCommand{
		Email:           "  Camp.North@Relief.org ",
		Password:        "s3cret-pass",
		Pincode:         "400001",
		Moderator:       "R. Iyer",
		ModeratorNumber: "+91 98200 00000",
		Role:            "Camp",
	}
}

func TestSignup_CreatesAccountWithDefaults(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByEmail", mock.Anything, "camp.north@relief.org").Return(nil, domain.ErrUserNotFound)
	f.users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	session, err := f.svc.Signup(context.Background(), signupCommand(), Caller{IP: "127.0.0.1"})
	require.NoError(t, err)

	u := session.User
	assert.Equal(t, "camp.north@relief.org", u.Email)
	assert.Equal(t, domain.DefaultCity, u.City)
	assert.Equal(t, domain.RegionNorth, u.Region)
	assert.Equal(t, domain.RoleCamp, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")))

	claims, err := f.jwt.Validate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, session.TokenID, claims.TokenID)

	assert.Eventually(t, func() bool { return len(f.audit.snapshot()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, domain.ActionSignup, f.audit.snapshot()[0].Action)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByEmail", mock.Anything, "camp.north@relief.org").Return(&domain.User{ID: uuid.New()}, nil)

	_, err := f.svc.Signup(context.Background(), signupCommand(), Caller{})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_DuplicateEmailRace(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrUserNotFound)
	f.users.On("Create", mock.Anything, mock.Anything).Return(domain.ErrEmailTaken)

	_, err := f.svc.Signup(context.Background(), signupCommand(), Caller{})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestSignup_Validation(t *testing.T) {
	f := newAuthFixture(t)

	cmd := signupCommand()
	cmd.Pincode = ""
	_, err := f.svc.Signup(context.Background(), cmd, Caller{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "All fields are required", verr.Message)
	assert.Contains(t, verr.Fields, "pincode is required")

	cmd = signupCommand()
	cmd.Role = "army"
	_, err = f.svc.Signup(context.Background(), cmd, Caller{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid signup details", verr.Message)

	cmd = signupCommand()
	cmd.Password = "abc"
	_, err = f.svc.Signup(context.Background(), cmd, Caller{})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "at least 6")

	f.users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: uuid.New(), Email: "er@city-hospital.in", PasswordHash: string(hash), Role: domain.RoleHospital}

	f.users.On("GetByEmail", mock.Anything, "er@city-hospital.in").Return(user, nil)
	f.users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrUserNotFound)
	f.users.On("TouchLastLogin", mock.Anything, user.ID, mock.Anything).Return(nil)

	session, err := f.svc.Login(context.Background(), &LoginCommand{Email: "ER@city-hospital.in", Password: "correct horse"}, Caller{})
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)

	_, err = f.svc.Login(context.Background(), &LoginCommand{Email: "er@city-hospital.in", Password: "wrong"}, Caller{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), &LoginCommand{Email: "nobody@example.com", Password: "whatever"}, Caller{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), &LoginCommand{}, Caller{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.svc.metrics.LoginsTotal.WithLabelValues("success")))
	assert.Equal(t, 3.0, testutil.ToFloat64(f.svc.metrics.LoginsTotal.WithLabelValues("rejected")))
}

func TestLogin_StorageFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.users.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, errors.New("no reachable servers"))

	_, err := f.svc.Login(context.Background(), &LoginCommand{Email: "a@b.co", Password: "pw"}, Caller{})
	var serr *domain.StorageError
	assert.ErrorAs(t, err, &serr)
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t)
	userID := uuid.New()
	token, issued, err := f.jwt.Issue(userID, domain.RoleCamp)
	require.NoError(t, err)

	f.sessions.On("IsRevoked", mock.Anything, issued.TokenID).Return(false, nil).Once()
	claims, err := f.svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)

	f.sessions.On("IsRevoked", mock.Anything, issued.TokenID).Return(true, nil).Once()
	_, err = f.svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrSessionRevoked)

	_, err = f.svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.Authenticate(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogout_RevokesUntilExpiry(t *testing.T) {
	f := newAuthFixture(t)
	claims := &domain.Claims{
		UserID:    uuid.New(),
		Role:      domain.RoleHospital,
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	f.sessions.On("Revoke", mock.Anything, "jti-1", mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 29*time.Minute && ttl <= 30*time.Minute
	})).Return(nil).Once()

	require.NoError(t, f.svc.Logout(context.Background(), claims, CallerFromClaims(claims, "", "")))
	f.sessions.AssertExpectations(t)
}

func TestLogout_ExpiredTokenSkipsStore(t *testing.T) {
	f := newAuthFixture(t)
	claims := &domain.Claims{UserID: uuid.New(), TokenID: "old", ExpiresAt: time.Now().Add(-time.Minute)}

	require.NoError(t, f.svc.Logout(context.Background(), claims, Caller{}))
	f.sessions.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
}

func TestCurrentUser(t *testing.T) {
	f := newAuthFixture(t)
	id := uuid.New()
	f.users.On("GetByID", mock.Anything, id).Return(nil, domain.ErrUserNotFound)

	_, err := f.svc.CurrentUser(context.Background(), &domain.Claims{UserID: id})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorize(t *testing.T) {
	hospitalClaims := &domain.Claims{Role: domain.RoleHospital}

	assert.True(t, Authorize(hospitalClaims))
	assert.True(t, Authorize(hospitalClaims, domain.RoleHospital))
	assert.False(t, Authorize(hospitalClaims, domain.RoleCamp))
	assert.False(t, Authorize(nil))
}
