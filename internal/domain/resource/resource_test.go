package resource

import (
	"errors"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestValidate(t *testing.T) {
	updated := time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("IST", 19800))
	sub := &RegisterSubmission{
		Ambulances:     intp(4),
		BedsCapacity:   intp(0),
		StaffAvailable: intp(12),
		Ventilators:    intp(2),
		MedicalKits:    intp(50),
		LastUpdated:    &updated,
	}

	r, err := Validate(sub)
	require.NoError(t, err)
	assert.Equal(t, 0, r.BedsCapacity)
	assert.Equal(t, time.UTC, r.LastUpdated.Location())
	assert.True(t, updated.Equal(r.LastUpdated))
}

func TestValidate_RequiresLastUpdated(t *testing.T) {
	sub := &RegisterSubmission{
		Ambulances:     intp(1),
		BedsCapacity:   intp(1),
		StaffAvailable: intp(1),
		Ventilators:    intp(1),
	}

	_, err := Validate(sub)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"medicalKits", "lastUpdated"}, verr.Fields)
}

func TestValidate_Negative(t *testing.T) {
	now := time.Now()
	sub := &RegisterSubmission{
		Ambulances:     intp(-2),
		BedsCapacity:   intp(1),
		StaffAvailable: intp(1),
		Ventilators:    intp(1),
		MedicalKits:    intp(1),
		LastUpdated:    &now,
	}

	_, err := Validate(sub)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"ambulances must be at least 0"}, verr.Fields)
}
