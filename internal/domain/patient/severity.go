package patient

// Thresholds are exclusive: a reading equal to the threshold does not trip it.
const (
	criticalGCSBelow    = 8
	criticalSpO2Below   = 90
	urgentSystolicBelow = 90
	urgentPainAbove     = 7
)

// Classify assigns exactly one severity tier to a validated record. Rules are
// evaluated in order and the first match wins.
func Classify(r *IntakeRecord) Severity {
	switch {
	case r.GlasgowComaScale < criticalGCSBelow || r.OxygenSaturation < criticalSpO2Below:
		return SeverityCritical
	case r.SystolicBP < urgentSystolicBelow || r.PainLevel.anyAbove(urgentPainAbove):
		return SeverityUrgent
	default:
		return SeverityStable
	}
}

func (p PainScale) anyAbove(limit int) bool {
	for _, level := range p {
		if level > limit {
			return true
		}
	}
	return false
}
