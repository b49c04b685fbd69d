package service

import (
	"context"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/resource"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ResourceService struct {
	repo     resource.Repository
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewResourceService(repo resource.Repository, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *ResourceService {
	return &ResourceService{repo: repo, auditSvc: auditSvc, metrics: m, log: log}
}

// Register records a stock count filed by any signed-in account.
func (s *ResourceService) Register(ctx context.Context, sub *resource.RegisterSubmission, caller Caller) (*resource.Resource, error) {
	if caller.UserID == nil {
		return nil, ErrUnauthenticated
	}

	ctx, span := tracer.Start(ctx, "ResourceService.Register")
	defer span.End()

	r, err := resource.Validate(sub)
	if err != nil {
		return nil, err
	}
	r.ID = uuid.New()
	r.RegisteredBy = *caller.UserID

	if err := s.repo.Create(ctx, r); err != nil {
		s.log.Error("failed to store resource count", zap.Error(err))
		span.RecordError(err)
		return nil, domain.NewStorageError("create resource", err)
	}

	if s.metrics != nil {
		s.metrics.ResourcesRegistered.Inc()
	}
	s.auditSvc.LogAsync(caller.auditEntry(domain.ActionCreate, "resource", r.ID.String()))

	s.log.Info("resource count recorded",
		zap.String("resource_id", r.ID.String()),
		zap.String("registered_by", r.RegisteredBy.String()),
	)

	return r, nil
}

func (s *ResourceService) List(ctx context.Context) ([]*resource.Resource, error) {
	ctx, span := tracer.Start(ctx, "ResourceService.List")
	defer span.End()

	resources, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list resources", zap.Error(err))
		span.RecordError(err)
		return nil, domain.NewStorageError("list resources", err)
	}
	if resources == nil {
		resources = []*resource.Resource{}
	}
	return resources, nil
}
