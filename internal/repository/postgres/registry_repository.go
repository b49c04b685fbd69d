package postgres

import (
	"context"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/hospital"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/resource"
	"gorm.io/gorm"
)

type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepository(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

func (r *HospitalRepository) Create(ctx context.Context, h *hospital.Hospital) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HospitalRepository) List(ctx context.Context) ([]*hospital.Hospital, error) {
	var hospitals []*hospital.Hospital
	if err := r.db.WithContext(ctx).Order("last_updated DESC").Find(&hospitals).Error; err != nil {
		return nil, err
	}
	return hospitals, nil
}

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ResourceRepository) List(ctx context.Context) ([]*resource.Resource, error) {
	var resources []*resource.Resource
	if err := r.db.WithContext(ctx).Order("last_updated DESC").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create skips the default transaction; audit rows are single inserts.
func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{SkipDefaultTransaction: true}).Create(entry).Error
}
