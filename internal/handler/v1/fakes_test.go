package v1

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/hospital"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/resource"
	"github.com/google/uuid"
)

// In-memory stores backing the router tests.

type memPatients struct {
	mu   sync.Mutex
	recs []*patient.IntakeRecord
}

func (m *memPatients) Create(_ context.Context, r *patient.IntakeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, r)
	return nil
}

func (m *memPatients) List(_ context.Context, q patient.ListQuery) ([]*patient.IntakeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*patient.IntakeRecord
	for _, r := range m.recs {
		if q.Severity != nil && r.AssignedSeverity != *q.Severity {
			continue
		}
		if q.RegisteredBy != nil && r.RegisteredBy != *q.RegisteredBy {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimeOfArrival.After(out[j].TimeOfArrival) })
	return out, nil
}

func (m *memPatients) CountBySeverity(context.Context) (map[patient.Severity]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[patient.Severity]int64{}
	for _, r := range m.recs {
		counts[r.AssignedSeverity]++
	}
	return counts, nil
}

func (m *memPatients) all() []*patient.IntakeRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*patient.IntakeRecord(nil), m.recs...)
}

type memHospitals struct {
	mu   sync.Mutex
	rows []*hospital.Hospital
}

func (m *memHospitals) Create(_ context.Context, h *hospital.Hospital) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, h)
	return nil
}

func (m *memHospitals) List(context.Context) ([]*hospital.Hospital, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*hospital.Hospital(nil), m.rows...), nil
}

type memResources struct {
	mu   sync.Mutex
	rows []*resource.Resource
}

func (m *memResources) Create(_ context.Context, r *resource.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, r)
	return nil
}

func (m *memResources) List(context.Context) ([]*resource.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*resource.Resource(nil), m.rows...), nil
}

type memUsers struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[uuid.UUID]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrEmailTaken
	}
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

type memSessions struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (m *memSessions) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = ttl
	return nil
}

func (m *memSessions) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok, nil
}

type discardAudit struct{}

func (discardAudit) Create(context.Context, *domain.AuditLog) error { return nil }
