package hospital

import (
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/validation"
	"github.com/google/uuid"
)

// Hospital is a capacity snapshot reported by a receiving facility.
type Hospital struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" bson:"-" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" bson:"created_at" json:"createdAt"`

	Name            string    `gorm:"column:name;type:varchar(200);not null;index" bson:"name" json:"name"`
	Region          string    `gorm:"column:region;type:varchar(100);not null;index" bson:"region" json:"region"`
	BedsAvailable   int       `gorm:"column:beds_available;not null" bson:"beds_available" json:"bedsAvailable" validate:"gte=0"`
	BedsCapacity    int       `gorm:"column:beds_capacity;not null" bson:"beds_capacity" json:"bedsCapacity" validate:"gte=0"`
	StaffAvailable  int       `gorm:"column:staff_available;not null" bson:"staff_available" json:"staffAvailable" validate:"gte=0"`
	Ambulances      int       `gorm:"column:ambulances;not null" bson:"ambulances" json:"ambulances" validate:"gte=0"`
	Ventilators     int       `gorm:"column:ventilators;not null" bson:"ventilators" json:"ventilators" validate:"gte=0"`
	MedicalKits     int       `gorm:"column:medical_kits;not null" bson:"medical_kits" json:"medicalKits" validate:"gte=0"`
	CurrentPatients int       `gorm:"column:current_patients;not null" bson:"current_patients" json:"currentPatients" validate:"gte=0"`
	CapacityPercent float64   `gorm:"column:capacity_percent;not null" bson:"capacity_percent" json:"capacityPercent" validate:"gte=0,lte=100"`
	LastUpdated     time.Time `gorm:"column:last_updated;not null" bson:"last_updated" json:"lastUpdated"`

	// Account that filed the snapshot.
	RegisteredBy uuid.UUID `gorm:"column:registered_by;type:uuid;not null;index" bson:"registered_by" json:"registeredBy"`
}

func (Hospital) TableName() string {
	return "triage.hospitals"
}

type RegisterSubmission struct {
	Name            *string    `json:"name"`
	Region          *string    `json:"region"`
	BedsAvailable   *int       `json:"bedsAvailable"`
	BedsCapacity    *int       `json:"bedsCapacity"`
	StaffAvailable  *int       `json:"staffAvailable"`
	Ambulances      *int       `json:"ambulances"`
	Ventilators     *int       `json:"ventilators"`
	MedicalKits     *int       `json:"medicalKits"`
	CurrentPatients *int       `json:"currentPatients"`
	CapacityPercent *float64   `json:"capacityPercent"`
	LastUpdated     *time.Time `json:"lastUpdated"`
}

// Validate turns a submission into a hospital snapshot. lastUpdated defaults to now.
func Validate(sub *RegisterSubmission, now time.Time) (*Hospital, error) {
	if sub == nil {
		return nil, domain.MissingFields()
	}

	var missing []string
	if sub.Name == nil || strings.TrimSpace(*sub.Name) == "" {
		missing = append(missing, "name")
	}
	if sub.Region == nil || strings.TrimSpace(*sub.Region) == "" {
		missing = append(missing, "region")
	}
	counts := []struct {
		name string
		v    *int
	}{
		{"bedsAvailable", sub.BedsAvailable},
		{"bedsCapacity", sub.BedsCapacity},
		{"staffAvailable", sub.StaffAvailable},
		{"ambulances", sub.Ambulances},
		{"ventilators", sub.Ventilators},
		{"medicalKits", sub.MedicalKits},
		{"currentPatients", sub.CurrentPatients},
	}
	for _, c := range counts {
		if c.v == nil {
			missing = append(missing, c.name)
		}
	}
	if sub.CapacityPercent == nil {
		missing = append(missing, "capacityPercent")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}

	h := &Hospital{
		Name:            strings.TrimSpace(*sub.Name),
		Region:          strings.TrimSpace(*sub.Region),
		BedsAvailable:   *sub.BedsAvailable,
		BedsCapacity:    *sub.BedsCapacity,
		StaffAvailable:  *sub.StaffAvailable,
		Ambulances:      *sub.Ambulances,
		Ventilators:     *sub.Ventilators,
		MedicalKits:     *sub.MedicalKits,
		CurrentPatients: *sub.CurrentPatients,
		CapacityPercent: *sub.CapacityPercent,
		LastUpdated:     now.UTC(),
	}
	if sub.LastUpdated != nil && !sub.LastUpdated.IsZero() {
		h.LastUpdated = sub.LastUpdated.UTC()
	}

	if msgs := validation.Struct(h); len(msgs) > 0 {
		return nil, &domain.ValidationError{Message: "Invalid field values", Fields: msgs}
	}

	return h, nil
}
