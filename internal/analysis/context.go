package analysis

// PatientContext carries the form metadata accompanying one upload. It is
// request-scoped and never persisted. Defaults are substituted by the
// request handler; a zero manual measurement means "not provided".
type PatientContext struct {
	BodyPart       string
	HasEvolved     bool
	EvolutionWeeks int
	Age            int
	UVExposure     int
	FamilyHistory  bool
	ManualLength   float64
	ManualWidth    float64
}

// HasManualMeasurements reports whether both lesion dimensions were given.
func (p PatientContext) HasManualMeasurements() bool {
	return p.ManualLength > 0 && p.ManualWidth > 0
}
