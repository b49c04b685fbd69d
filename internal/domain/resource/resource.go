package resource

import (
	"time"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/validation"
	"github.com/google/uuid"
)

// Resource is a stock count of shared response equipment and staff.
type Resource struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" bson:"-" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" bson:"created_at" json:"createdAt"`

	Ambulances     int       `gorm:"column:ambulances;not null" bson:"ambulances" json:"ambulances" validate:"gte=0"`
	BedsCapacity   int       `gorm:"column:beds_capacity;not null" bson:"beds_capacity" json:"bedsCapacity" validate:"gte=0"`
	StaffAvailable int       `gorm:"column:staff_available;not null" bson:"staff_available" json:"staffAvailable" validate:"gte=0"`
	Ventilators    int       `gorm:"column:ventilators;not null" bson:"ventilators" json:"ventilators" validate:"gte=0"`
	MedicalKits    int       `gorm:"column:medical_kits;not null" bson:"medical_kits" json:"medicalKits" validate:"gte=0"`
	LastUpdated    time.Time `gorm:"column:last_updated;not null;index" bson:"last_updated" json:"lastUpdated"`

	RegisteredBy uuid.UUID `gorm:"column:registered_by;type:uuid;not null;index" bson:"registered_by" json:"registeredBy"`
}

func (Resource) TableName() string {
	return "triage.resources"
}

type RegisterSubmission struct {
	Ambulances     *int       `json:"ambulances"`
	BedsCapacity   *int       `json:"bedsCapacity"`
	StaffAvailable *int       `json:"staffAvailable"`
	Ventilators    *int       `json:"ventilators"`
	MedicalKits    *int       `json:"medicalKits"`
	LastUpdated    *time.Time `json:"lastUpdated"`
}

// Validate requires every count and the lastUpdated timestamp.
func Validate(sub *RegisterSubmission) (*Resource, error) {
	if sub == nil {
		return nil, domain.MissingFields()
	}

	var missing []string
	for _, f := range []struct {
		name string
		ok   bool
	}{
		{"ambulances", sub.Ambulances != nil},
		{"bedsCapacity", sub.BedsCapacity != nil},
		{"staffAvailable", sub.StaffAvailable != nil},
		{"ventilators", sub.Ventilators != nil},
		{"medicalKits", sub.MedicalKits != nil},
		{"lastUpdated", sub.LastUpdated != nil && !sub.LastUpdated.IsZero()},
	} {
		if !f.ok {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}

	r := &Resource{
		Ambulances:     *sub.Ambulances,
		BedsCapacity:   *sub.BedsCapacity,
		StaffAvailable: *sub.StaffAvailable,
		Ventilators:    *sub.Ventilators,
		MedicalKits:    *sub.MedicalKits,
		LastUpdated:    sub.LastUpdated.UTC(),
	}

	if msgs := validation.Struct(r); len(msgs) > 0 {
		return nil, &domain.ValidationError{Message: "Invalid field values", Fields: msgs}
	}

	return r, nil
}
