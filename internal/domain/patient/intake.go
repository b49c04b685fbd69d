package patient

import (
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/triagehub/pkg/validation"
)

const msgInvalidFields = "Invalid field values"

// Validate checks that every required field of sub is present, applies the
// defaults for optional fields and returns a candidate record. The record has
// no severity yet; see Classify.
//
// A numeric field is missing only when it was absent or null. Zero is a
// reading. A string field is missing when absent or blank.
func Validate(sub *IntakeSubmission, now time.Time) (*IntakeRecord, error) {
	if sub == nil {
		return nil, domain.MissingFields()
	}

	if missing := missingFields(sub); len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}

	rec := &IntakeRecord{
		Age:                *sub.Age,
		Gender:             ParseGender(*sub.Gender),
		HeartRate:          *sub.HeartRate,
		SystolicBP:         *sub.SystolicBP,
		DiastolicBP:        *sub.DiastolicBP,
		OxygenSaturation:   *sub.OxygenSaturation,
		RespiratoryRate:    *sub.RespiratoryRate,
		BodyTemperature:    *sub.BodyTemperature,
		PupilDilation:      normalize(*sub.PupilDilation),
		PupilReactivity:    normalize(*sub.PupilReactivity),
		EyeMovement:        normalize(*sub.EyeMovement),
		ConsciousnessLevel: normalize(*sub.ConsciousnessLevel),
		GlasgowComaScale:   *sub.GlasgowComaScale,
		SpeechCoherence:    normalize(*sub.SpeechCoherence),
		BloodSugarLevel:    *sub.BloodSugarLevel,
		SkinCondition:      normalize(*sub.SkinCondition),
		PainLevel:          PainScale{DefaultPainLevel},
		Symptoms:           strings.TrimSpace(*sub.Symptoms),
		InitialDiagnosis:   strings.TrimSpace(*sub.InitialDiagnosis),
		RegisteredBy:       domain.RoleCamp,
		ArrivalMode:        normalize(*sub.ArrivalMode),
		TimeOfArrival:      now.UTC(),
	}

	if len(sub.PainLevel) > 0 {
		rec.PainLevel = append(PainScale(nil), sub.PainLevel...)
	}
	if sub.KnownAllergies != nil {
		rec.KnownAllergies = strings.TrimSpace(*sub.KnownAllergies)
	}
	if sub.MedicationHistory != nil {
		rec.MedicationHistory = strings.TrimSpace(*sub.MedicationHistory)
	}
	if sub.TriagePriority != nil {
		rec.TriagePriority = strings.TrimSpace(*sub.TriagePriority)
	}
	if present(sub.RegisteredBy) {
		rec.RegisteredBy = domain.Role(normalize(*sub.RegisteredBy))
	}
	if sub.TimeOfArrival != nil && !sub.TimeOfArrival.IsZero() {
		rec.TimeOfArrival = sub.TimeOfArrival.UTC()
	}

	if msgs := validation.Struct(rec); len(msgs) > 0 {
		return nil, &domain.ValidationError{Message: msgInvalidFields, Fields: msgs}
	}

	return rec, nil
}

// missingFields lists, in form order, the JSON names of required fields that
// were not provided.
func missingFields(sub *IntakeSubmission) []string {
	required := []struct {
		name string
		ok   bool
	}{
		{"age", sub.Age != nil},
		{"gender", present(sub.Gender)},
		{"heartRate", sub.HeartRate != nil},
		{"systolicBP", sub.SystolicBP != nil},
		{"diastolicBP", sub.DiastolicBP != nil},
		{"oxygenSaturation", sub.OxygenSaturation != nil},
		{"respiratoryRate", sub.RespiratoryRate != nil},
		{"bodyTemperature", sub.BodyTemperature != nil},
		{"pupilDilation", present(sub.PupilDilation)},
		{"pupilReactivity", present(sub.PupilReactivity)},
		{"eyeMovement", present(sub.EyeMovement)},
		{"consciousnessLevel", present(sub.ConsciousnessLevel)},
		{"glasgowComaScale", sub.GlasgowComaScale != nil},
		{"speechCoherence", present(sub.SpeechCoherence)},
		{"bloodSugarLevel", sub.BloodSugarLevel != nil},
		{"skinCondition", present(sub.SkinCondition)},
		{"symptoms", present(sub.Symptoms)},
		{"initialDiagnosis", present(sub.InitialDiagnosis)},
		{"arrivalMode", present(sub.ArrivalMode)},
	}

	var missing []string
	for _, f := range required {
		if !f.ok {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
