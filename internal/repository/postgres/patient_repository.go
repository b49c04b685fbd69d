package postgres

import (
	"context"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/patient"
	"gorm.io/gorm"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, rec *patient.IntakeRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *PatientRepository) List(ctx context.Context, q patient.ListQuery) ([]*patient.IntakeRecord, error) {
	tx := r.db.WithContext(ctx).Model(&patient.IntakeRecord{})
	if q.Severity != nil {
		tx = tx.Where("assigned_severity = ?", string(*q.Severity))
	}
	if q.RegisteredBy != nil {
		tx = tx.Where("registered_by = ?", string(*q.RegisteredBy))
	}

	var records []*patient.IntakeRecord
	if err := tx.Order("time_of_arrival DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PatientRepository) CountBySeverity(ctx context.Context) (map[patient.Severity]int64, error) {
	var rows []struct {
		Severity patient.Severity
		Total    int64
	}
	err := r.db.WithContext(ctx).
		Model(&patient.IntakeRecord{}).
		Select("assigned_severity AS severity, COUNT(*) AS total").
		Group("assigned_severity").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[patient.Severity]int64, len(rows))
	for _, row := range rows {
		counts[row.Severity] = row.Total
	}
	return counts, nil
}
