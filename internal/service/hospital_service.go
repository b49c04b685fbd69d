package service

import (
	"context"
	"time"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/hospital"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HospitalService struct {
	repo     hospital.Repository
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
	now      func() time.Time
}

func NewHospitalService(repo hospital.Repository, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *HospitalService {
	return &HospitalService{
		repo:     repo,
		auditSvc: auditSvc,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

// Register records a capacity snapshot. Only hospital accounts may file one.
func (s *HospitalService) Register(ctx context.Context, sub *hospital.RegisterSubmission, caller Caller) (*hospital.Hospital, error) {
	if caller.UserID == nil {
		return nil, ErrUnauthenticated
	}
	if caller.Role != domain.RoleHospital {
		return nil, ErrForbidden
	}

	ctx, span := tracer.Start(ctx, "HospitalService.Register")
	defer span.End()

	h, err := hospital.Validate(sub, s.now())
	if err != nil {
		return nil, err
	}
	h.ID = uuid.New()
	h.RegisteredBy = *caller.UserID

	if err := s.repo.Create(ctx, h); err != nil {
		s.log.Error("failed to store hospital snapshot", zap.Error(err))
		span.RecordError(err)
		return nil, domain.NewStorageError("create hospital", err)
	}

	if s.metrics != nil {
		s.metrics.HospitalsRegistered.Inc()
	}
	s.auditSvc.LogAsync(caller.auditEntry(domain.ActionCreate, "hospital", h.ID.String()))

	s.log.Info("hospital snapshot recorded",
		zap.String("hospital_id", h.ID.String()),
		zap.String("name", h.Name),
		zap.Float64("capacity_percent", h.CapacityPercent),
	)

	return h, nil
}

func (s *HospitalService) List(ctx context.Context) ([]*hospital.Hospital, error) {
	ctx, span := tracer.Start(ctx, "HospitalService.List")
	defer span.End()

	hospitals, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list hospitals", zap.Error(err))
		span.RecordError(err)
		return nil, domain.NewStorageError("list hospitals", err)
	}
	if hospitals == nil {
		hospitals = []*hospital.Hospital{}
	}
	return hospitals, nil
}
