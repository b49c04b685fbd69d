package patient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/triagehub/internal/domain"
	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ParseGender accepts any letter case; the intake form sends lower case.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return GenderMale
	case "female":
		return GenderFemale
	case "other":
		return GenderOther
	}
	return Gender(s)
}

// Severity is the derived triage tier. It is never taken from the caller.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityUrgent   Severity = "Urgent"
	SeverityStable   Severity = "Stable"
)

var Severities = []Severity{SeverityCritical, SeverityUrgent, SeverityStable}

func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityUrgent, SeverityStable:
		return true
	}
	return false
}

// PainScale is a sequence of 0-10 pain readings. It decodes from either a JSON
// array or a single number.
type PainScale []int

func (p *PainScale) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var levels []int
		if err := json.Unmarshal(data, &levels); err != nil {
			return fmt.Errorf("painLevel: %w", err)
		}
		*p = levels
		return nil
	}
	var level int
	if err := json.Unmarshal(data, &level); err != nil {
		return fmt.Errorf("painLevel: must be an integer or a list of integers")
	}
	*p = PainScale{level}
	return nil
}

// DefaultPainLevel is stored when the submission carries no pain readings.
const DefaultPainLevel = 5

// IntakeRecord is one triage encounter.
type IntakeRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" bson:"-" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" bson:"created_at" json:"createdAt"`

	Age    int    `gorm:"column:age;not null" bson:"age" json:"age" validate:"gt=0"`
	Gender Gender `gorm:"column:gender;type:varchar(10);not null" bson:"gender" json:"gender" validate:"oneof=Male Female Other"`

	// Vital signs
	HeartRate        float64 `gorm:"column:heart_rate;not null" bson:"heart_rate" json:"heartRate" validate:"gte=0"`
	SystolicBP       float64 `gorm:"column:systolic_bp;not null" bson:"systolic_bp" json:"systolicBP" validate:"gte=0"`
	DiastolicBP      float64 `gorm:"column:diastolic_bp;not null" bson:"diastolic_bp" json:"diastolicBP" validate:"gte=0"`
	OxygenSaturation float64 `gorm:"column:oxygen_saturation;not null" bson:"oxygen_saturation" json:"oxygenSaturation" validate:"gte=0,lte=100"`
	RespiratoryRate  float64 `gorm:"column:respiratory_rate;not null" bson:"respiratory_rate" json:"respiratoryRate" validate:"gte=0"`
	BodyTemperature  float64 `gorm:"column:body_temperature;not null" bson:"body_temperature" json:"bodyTemperature"`

	// Neurological & physical assessment
	PupilDilation      string  `gorm:"column:pupil_dilation;type:varchar(20);not null" bson:"pupil_dilation" json:"pupilDilation" validate:"oneof=normal constricted dilated"`
	PupilReactivity    string  `gorm:"column:pupil_reactivity;type:varchar(20);not null" bson:"pupil_reactivity" json:"pupilReactivity" validate:"oneof=reactive non-reactive"`
	EyeMovement        string  `gorm:"column:eye_movement;type:varchar(20);not null" bson:"eye_movement" json:"eyeMovement" validate:"oneof=normal restricted"`
	ConsciousnessLevel string  `gorm:"column:consciousness_level;type:varchar(20);not null" bson:"consciousness_level" json:"consciousnessLevel" validate:"oneof=alert drowsy unresponsive"`
	GlasgowComaScale   float64 `gorm:"column:glasgow_coma_scale;not null" bson:"glasgow_coma_scale" json:"glasgowComaScale" validate:"gte=3,lte=15"`
	SpeechCoherence    string  `gorm:"column:speech_coherence;type:varchar(20);not null" bson:"speech_coherence" json:"speechCoherence" validate:"oneof=clear slurred incoherent"`

	BloodSugarLevel   float64   `gorm:"column:blood_sugar_level;not null" bson:"blood_sugar_level" json:"bloodSugarLevel" validate:"gte=0"`
	SkinCondition     string    `gorm:"column:skin_condition;type:varchar(20);not null" bson:"skin_condition" json:"skinCondition" validate:"oneof=normal pale cyanotic jaundiced"`
	PainLevel         PainScale `gorm:"column:pain_level;serializer:json;not null" bson:"pain_level" json:"painLevel" validate:"min=1,dive,min=0,max=10"`
	KnownAllergies    string    `gorm:"column:known_allergies;type:text" bson:"known_allergies" json:"knownAllergies"`
	MedicationHistory string    `gorm:"column:medication_history;type:text" bson:"medication_history" json:"medicationHistory"`

	Symptoms         string `gorm:"column:symptoms;type:text;not null" bson:"symptoms" json:"symptoms"`
	InitialDiagnosis string `gorm:"column:initial_diagnosis;type:text;not null" bson:"initial_diagnosis" json:"initialDiagnosis"`
	TriagePriority   string `gorm:"column:triage_priority;type:varchar(50)" bson:"triage_priority" json:"triagePriority"`

	RegisteredBy  domain.Role `gorm:"column:registered_by;type:varchar(20);not null;default:'camp';index" bson:"registered_by" json:"registeredBy" validate:"oneof=hospital camp"`
	ArrivalMode   string      `gorm:"column:arrival_mode;type:varchar(20);not null" bson:"arrival_mode" json:"arrivalMode" validate:"oneof=ambulance walk-in airlift other"`
	TimeOfArrival time.Time   `gorm:"column:time_of_arrival;not null;index" bson:"time_of_arrival" json:"timeOfArrival"`

	AssignedSeverity Severity `gorm:"column:assigned_severity;type:varchar(10);not null;index" bson:"assigned_severity" json:"assignedSeverity"`
}

func (IntakeRecord) TableName() string {
	return "triage.patients"
}

// IntakeSubmission is the raw intake form. Every field is a pointer so a value
// that was sent as zero can be told apart from one that was never sent.
// The severity tier is not part of the submission; it is always computed.
type IntakeSubmission struct {
	Age    *int    `json:"age"`
	Gender *string `json:"gender"`

	HeartRate        *float64 `json:"heartRate"`
	SystolicBP       *float64 `json:"systolicBP"`
	DiastolicBP      *float64 `json:"diastolicBP"`
	OxygenSaturation *float64 `json:"oxygenSaturation"`
	RespiratoryRate  *float64 `json:"respiratoryRate"`
	BodyTemperature  *float64 `json:"bodyTemperature"`

	PupilDilation      *string  `json:"pupilDilation"`
	PupilReactivity    *string  `json:"pupilReactivity"`
	EyeMovement        *string  `json:"eyeMovement"`
	ConsciousnessLevel *string  `json:"consciousnessLevel"`
	GlasgowComaScale   *float64 `json:"glasgowComaScale"`
	SpeechCoherence    *string  `json:"speechCoherence"`

	BloodSugarLevel   *float64  `json:"bloodSugarLevel"`
	SkinCondition     *string   `json:"skinCondition"`
	PainLevel         PainScale `json:"painLevel"`
	KnownAllergies    *string   `json:"knownAllergies"`
	MedicationHistory *string   `json:"medicationHistory"`

	Symptoms         *string `json:"symptoms"`
	InitialDiagnosis *string `json:"initialDiagnosis"`
	TriagePriority   *string `json:"triagePriority"`

	RegisteredBy  *string    `json:"registeredBy"`
	ArrivalMode   *string    `json:"arrivalMode"`
	TimeOfArrival *time.Time `json:"timeOfArrival"`
}

// ListQuery narrows a listing. Zero value lists everything.
type ListQuery struct {
	Severity     *Severity
	RegisteredBy *domain.Role
}

// NewListQuery parses the optional severity and registeredBy filters. Empty
// strings mean no filter.
func NewListQuery(severity, registeredBy string) (ListQuery, error) {
	var q ListQuery
	if severity != "" {
		s := Severity(strings.ToUpper(severity[:1]) + strings.ToLower(severity[1:]))
		if !s.IsValid() {
			return ListQuery{}, ErrInvalidSeverity
		}
		q.Severity = &s
	}
	if registeredBy != "" {
		r := domain.Role(strings.ToLower(registeredBy))
		if !r.IsValid() {
			return ListQuery{}, ErrInvalidRegisteredBy
		}
		q.RegisteredBy = &r
	}
	return q, nil
}
