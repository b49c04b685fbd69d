package service

import (
	"context"
	"errors"
	"time"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/metrics"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/dmehra2102/prod-golang-projects/triagehub/internal/service")

type PatientService struct {
	repo     patient.Repository
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
	now      func() time.Time
}

func NewPatientService(repo patient.Repository, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *PatientService {
	return &PatientService{
		repo:     repo,
		auditSvc: auditSvc,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

// Register validates an intake submission, assigns its severity tier and
// stores it. Nothing is stored when validation fails.
func (s *PatientService) Register(ctx context.Context, sub *patient.IntakeSubmission, caller Caller) (*patient.IntakeRecord, error) {
	ctx, span := tracer.Start(ctx, "PatientService.Register")
	defer span.End()

	rec, err := patient.Validate(sub, s.now())
	if err != nil {
		if s.metrics != nil {
			s.metrics.IntakeRejectedTotal.Inc()
		}
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			s.log.Debug("intake rejected", zap.Strings("fields", verr.Fields))
		}
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}

	rec.ID = uuid.New()
	rec.AssignedSeverity = patient.Classify(rec)
	span.SetAttributes(
		attribute.String("triage.severity", string(rec.AssignedSeverity)),
		attribute.String("triage.registered_by", string(rec.RegisteredBy)),
	)

	if err := s.repo.Create(ctx, rec); err != nil {
		s.log.Error("failed to store intake record", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return nil, domain.NewStorageError("create patient", err)
	}

	if s.metrics != nil {
		s.metrics.PatientsTriagedTotal.WithLabelValues(string(rec.AssignedSeverity), string(rec.RegisteredBy)).Inc()
	}
	s.auditSvc.LogAsync(caller.auditEntry(domain.ActionCreate, "patient", rec.ID.String()))

	s.log.Info("patient triaged",
		zap.String("patient_id", rec.ID.String()),
		zap.String("severity", string(rec.AssignedSeverity)),
		zap.String("registered_by", string(rec.RegisteredBy)),
	)

	return rec, nil
}

func (s *PatientService) List(ctx context.Context, q patient.ListQuery, caller Caller) ([]*patient.IntakeRecord, error) {
	ctx, span := tracer.Start(ctx, "PatientService.List")
	defer span.End()

	records, err := s.repo.List(ctx, q)
	if err != nil {
		s.log.Error("failed to list intake records", zap.Error(err))
		span.RecordError(err)
		return nil, domain.NewStorageError("list patients", err)
	}
	if records == nil {
		records = []*patient.IntakeRecord{}
	}

	s.auditSvc.LogAsync(caller.auditEntry(domain.ActionRead, "patient", ""))
	return records, nil
}

// Stats returns the number of stored records per severity tier. Every tier is
// present in the result, with zero when nothing is stored for it.
func (s *PatientService) Stats(ctx context.Context) (map[patient.Severity]int64, error) {
	ctx, span := tracer.Start(ctx, "PatientService.Stats")
	defer span.End()

	counts, err := s.repo.CountBySeverity(ctx)
	if err != nil {
		s.log.Error("failed to count intake records", zap.Error(err))
		span.RecordError(err)
		return nil, domain.NewStorageError("count patients", err)
	}

	stats := make(map[patient.Severity]int64, len(patient.Severities))
	for _, sev := range patient.Severities {
		stats[sev] = counts[sev]
	}
	return stats, nil
}
