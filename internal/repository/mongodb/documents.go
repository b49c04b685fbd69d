package mongodb

import (
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/hospital"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain/resource"
	"github.com/google/uuid"
)

// Documents key every entity by its UUID string under _id.

type userDocument struct {
	ID          string `bson:"_id"`
	domain.User `bson:",inline"`
}

type patientDocument struct {
	ID                   string `bson:"_id"`
	patient.IntakeRecord `bson:",inline"`
}

type hospitalDocument struct {
	ID                string `bson:"_id"`
	hospital.Hospital `bson:",inline"`
}

type resourceDocument struct {
	ID                string `bson:"_id"`
	resource.Resource `bson:",inline"`
}

type auditDocument struct {
	ID              string `bson:"_id"`
	domain.AuditLog `bson:",inline"`
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed document id %q: %w", raw, err)
	}
	return id, nil
}

func stampCreated(t *time.Time) {
	if t.IsZero() {
		*t = time.Now().UTC()
	}
}

func (d *userDocument) user() (*domain.User, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}
	u := d.User
	u.ID = id
	return &u, nil
}

func (d *patientDocument) record() (*patient.IntakeRecord, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}
	r := d.IntakeRecord
	r.ID = id
	return &r, nil
}

func (d *hospitalDocument) hospital() (*hospital.Hospital, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}
	h := d.Hospital
	h.ID = id
	return &h, nil
}

func (d *resourceDocument) resource() (*resource.Resource, error) {
	id, err := parseID(d.ID)
	if err != nil {
		return nil, err
	}
	r := d.Resource
	r.ID = id
	return &r, nil
}
