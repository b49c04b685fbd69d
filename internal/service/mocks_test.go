package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/hospital"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/resource"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockPatientRepo struct{ mock.Mock }

func (m *mockPatientRepo) Create(ctx context.Context, r *patient.IntakeRecord) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockPatientRepo) List(ctx context.Context, q patient.ListQuery) ([]*patient.IntakeRecord, error) {
	args := m.Called(ctx, q)
	recs, _ := args.Get(0).([]*patient.IntakeRecord)
	return recs, args.Error(1)
}

func (m *mockPatientRepo) CountBySeverity(ctx context.Context) (map[patient.Severity]int64, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[patient.Severity]int64)
	return counts, args.Error(1)
}

type mockHospitalRepo struct{ mock.Mock }

func (m *mockHospitalRepo) Create(ctx context.Context, h *hospital.Hospital) error {
	return m.Called(ctx, h).Error(0)
}

func (m *mockHospitalRepo) List(ctx context.Context) ([]*hospital.Hospital, error) {
	args := m.Called(ctx)
	hs, _ := args.Get(0).([]*hospital.Hospital)
	return hs, args.Error(1)
}

type mockResourceRepo struct{ mock.Mock }

func (m *mockResourceRepo) Create(ctx context.Context, r *resource.Resource) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockResourceRepo) List(ctx context.Context) ([]*resource.Resource, error) {
	args := m.Called(ctx)
	rs, _ := args.Get(0).([]*resource.Resource)
	return rs, args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *mockSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// recordingAuditRepo is written to from the audit worker goroutine.
type recordingAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
	err     error
}

func (r *recordingAuditRepo) Create(_ context.Context, e *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *recordingAuditRepo) snapshot() []*domain.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.AuditLog(nil), r.entries...)
}

func newTestMetrics() *metrics.Collector {
	return metrics.NewCollector("triagehub_test", prometheus.NewRegistry())
}

// newTestAudit returns an audit service whose buffer is drained when the test ends.
func newTestAudit(t *testing.T, m *metrics.Collector) (*AuditService, *recordingAuditRepo) {
	t.Helper()
	repo := &recordingAuditRepo{}
	svc := newAuditService(repo, m, zap.NewNop(), 64)
	t.Cleanup(func() { svc.Shutdown(time.Second) })
	return svc, repo
}

func ptr[T any](v T) *T { return &v }
