package patient

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func validSubmission() *IntakeSubmission {
	return &IntakeSubmission{
		Age:                ptr(42),
		Gender:             ptr("male"),
		HeartRate:          ptr(88.0),
		SystolicBP:         ptr(120.0),
		DiastolicBP:        ptr(80.0),
		OxygenSaturation:   ptr(97.0),
		RespiratoryRate:    ptr(16.0),
		BodyTemperature:    ptr(37.1),
		PupilDilation:      ptr("normal"),
		PupilReactivity:    ptr("reactive"),
		EyeMovement:        ptr("normal"),
		ConsciousnessLevel: ptr("alert"),
		GlasgowComaScale:   ptr(15.0),
		SpeechCoherence:    ptr("clear"),
		BloodSugarLevel:    ptr(110.0),
		SkinCondition:      ptr("normal"),
		Symptoms:           ptr("laceration on left forearm"),
		InitialDiagnosis:   ptr("superficial wound"),
		ArrivalMode:        ptr("walk-in"),
	}
}

func TestValidate_AppliesDefaults(t *testing.T) {
	rec, err := Validate(validSubmission(), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, PainScale{5}, rec.PainLevel)
	assert.Equal(t, "", rec.KnownAllergies)
	assert.Equal(t, "", rec.MedicationHistory)
	assert.Equal(t, domain.RoleCamp, rec.RegisteredBy)
	assert.Equal(t, fixedNow, rec.TimeOfArrival)
	assert.Equal(t, GenderMale, rec.Gender)
	assert.Empty(t, rec.AssignedSeverity)
}

func TestValidate_KeepsProvidedOptionals(t *testing.T) {
	sub := validSubmission()
	arrived := fixedNow.Add(-time.Hour)
	sub.PainLevel = PainScale{2, 9}
	sub.KnownAllergies = ptr("penicillin")
	sub.MedicationHistory = ptr("metformin")
	sub.TriagePriority = ptr("P1")
	sub.RegisteredBy = ptr("Hospital")
	sub.TimeOfArrival = &arrived

	rec, err := Validate(sub, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, PainScale{2, 9}, rec.PainLevel)
	assert.Equal(t, "penicillin", rec.KnownAllergies)
	assert.Equal(t, "metformin", rec.MedicationHistory)
	assert.Equal(t, "P1", rec.TriagePriority)
	assert.Equal(t, domain.RoleHospital, rec.RegisteredBy)
	assert.Equal(t, arrived, rec.TimeOfArrival)
}

func TestValidate_ZeroIsNotMissing(t *testing.T) {
	sub := validSubmission()
	sub.HeartRate = ptr(0.0)
	sub.BloodSugarLevel = ptr(0.0)
	sub.BodyTemperature = ptr(0.0)
	sub.SystolicBP = ptr(0.0)

	rec, err := Validate(sub, fixedNow)
	require.NoError(t, err)
	assert.Zero(t, rec.HeartRate)
	assert.Zero(t, rec.BloodSugarLevel)
}

func TestValidate_MissingFields(t *testing.T) {
	sub := validSubmission()
	sub.HeartRate = nil
	sub.Symptoms = ptr("   ")
	sub.ArrivalMode = nil

	rec, err := Validate(sub, fixedNow)
	require.Nil(t, rec)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, domain.MsgRequiredFields, verr.Message)
	assert.Equal(t, []string{"heartRate", "symptoms", "arrivalMode"}, verr.Fields)
}

func TestValidate_EmptySubmission(t *testing.T) {
	_, err := Validate(&IntakeSubmission{}, fixedNow)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 19)

	_, err = Validate(nil, fixedNow)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, domain.MsgRequiredFields, verr.Message)
}

func TestValidate_ShapeErrors(t *testing.T) {
	sub := validSubmission()
	sub.Gender = ptr("unknown")
	sub.Age = ptr(0)
	sub.PainLevel = PainScale{4, 12}
	sub.SkinCondition = ptr("glowing")
	sub.RegisteredBy = ptr("clinic")

	_, err := Validate(sub, fixedNow)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Invalid field values", verr.Message)
	assert.Contains(t, verr.Fields, "gender must be one of: Male, Female, Other")
	assert.Contains(t, verr.Fields, "age must be greater than 0")
	assert.Contains(t, verr.Fields, "painLevel[1] must be at most 10")
	assert.Contains(t, verr.Fields, "skinCondition must be one of: normal, pale, cyanotic, jaundiced")
	assert.Contains(t, verr.Fields, "registeredBy must be one of: hospital, camp")
}

func TestValidate_EmptyPainDefaults(t *testing.T) {
	sub := validSubmission()
	sub.PainLevel = PainScale{}

	rec, err := Validate(sub, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, PainScale{5}, rec.PainLevel)
}

func TestIntakeSubmission_DecodesJSON(t *testing.T) {
	body := `{
		"age": 30, "gender": "Female", "heartRate": 0, "systolicBP": 85, "diastolicBP": 60,
		"oxygenSaturation": 95, "respiratoryRate": 20, "bodyTemperature": 38.2,
		"pupilDilation": "dilated", "pupilReactivity": "non-reactive", "eyeMovement": "restricted",
		"consciousnessLevel": "drowsy", "glasgowComaScale": 10, "speechCoherence": "slurred",
		"bloodSugarLevel": 90, "skinCondition": "pale", "painLevel": 6,
		"symptoms": "dizziness", "initialDiagnosis": "hypotension", "arrivalMode": "ambulance",
		"assignedSeverity": "Stable"
	}`

	var sub IntakeSubmission
	require.NoError(t, json.Unmarshal([]byte(body), &sub))
	require.NotNil(t, sub.HeartRate)
	assert.Equal(t, PainScale{6}, sub.PainLevel)

	rec, err := Validate(&sub, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, SeverityUrgent, Classify(rec))
}

func TestPainScale_UnmarshalJSON(t *testing.T) {
	var p PainScale
	require.NoError(t, json.Unmarshal([]byte(`[1,2,3]`), &p))
	assert.Equal(t, PainScale{1, 2, 3}, p)

	require.NoError(t, json.Unmarshal([]byte(`null`), &p))
	assert.Nil(t, p)

	assert.Error(t, json.Unmarshal([]byte(`"high"`), &p))
}

func TestParseGender(t *testing.T) {
	assert.Equal(t, GenderFemale, ParseGender(" FEMALE "))
	assert.Equal(t, GenderOther, ParseGender("other"))
	assert.Equal(t, Gender("x"), ParseGender("x"))
}

func TestNewListQuery(t *testing.T) {
	q, err := NewListQuery("critical", "CAMP")
	require.NoError(t, err)
	assert.Equal(t, SeverityCritical, *q.Severity)
	assert.Equal(t, domain.RoleCamp, *q.RegisteredBy)

	q, err = NewListQuery("", "")
	require.NoError(t, err)
	assert.Nil(t, q.Severity)
	assert.Nil(t, q.RegisteredBy)

	_, err = NewListQuery("deadly", "")
	assert.ErrorIs(t, err, ErrInvalidSeverity)

	_, err = NewListQuery("", "army")
	assert.ErrorIs(t, err, ErrInvalidRegisteredBy)
}
