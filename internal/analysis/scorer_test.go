package analysis

import (
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/example/dermascan/internal/imaging"
)

func newTestScorer(seed int64) *Scorer {
	return NewScorer(rand.New(rand.NewSource(seed)), zap.NewNop())
}

func TestScoreHighRiskAccumulation(t *testing.T) {
	scorer := newTestScorer(1)
	patient := PatientContext{
		HasEvolved:    true,
		FamilyHistory: true,
		Age:           60,
		UVExposure:    8,
	}
	stats := imaging.Statistics{Width: 10, Height: 10, Contrast: 60, Brightness: 90}

	got := scorer.Score(patient, stats, FitzpatrickV)

	if got.RiskFactors != 7 {
		t.Fatalf("risk factors = %d, want 7", got.RiskFactors)
	}
	if got.Prediction != PredictionHighRisk {
		t.Fatalf("prediction = %q, want %q", got.Prediction, PredictionHighRisk)
	}
	if got.Confidence < 75 || got.Confidence > 95 {
		t.Fatalf("confidence = %d, want within [75, 95]", got.Confidence)
	}
	if got.Explanation != "Based on 7 risk factors" {
		t.Fatalf("unexpected explanation: %q", got.Explanation)
	}
	if got.CombinedScore != float64(got.Confidence)/100.0 {
		t.Fatalf("combined score = %f, want confidence/100", got.CombinedScore)
	}

	for name, f := range map[string]FeatureScore{
		"asymmetry": got.Features.Asymmetry,
		"border":    got.Features.Border,
		"color":     got.Features.Color,
	} {
		if f.Score < 0.5 || f.Score > 0.8 {
			t.Errorf("%s score = %f, want within [0.5, 0.8]", name, f.Score)
		}
	}
	if got.Features.Asymmetry.Label != "High" {
		t.Errorf("asymmetry label = %q, want High", got.Features.Asymmetry.Label)
	}
	if got.Features.Border.Label != "Irregular" {
		t.Errorf("border label = %q, want Irregular", got.Features.Border.Label)
	}
	if got.Features.Color.Label != "Variable" {
		t.Errorf("color label = %q, want Variable", got.Features.Color.Label)
	}
	if got.Features.Evolution.Score != 0.8 || got.Features.Evolution.Label != "Changing" {
		t.Errorf("evolution = %+v, want 0.8/Changing", got.Features.Evolution)
	}
	if got.SkinTone != FitzpatrickV {
		t.Errorf("skin tone = %s, want V", got.SkinTone)
	}
}

func TestScoreLowRiskWithEmptyStatistics(t *testing.T) {
	scorer := newTestScorer(2)
	patient := PatientContext{Age: 30, UVExposure: 3}

	got := scorer.Score(patient, imaging.Statistics{}, DefaultSkinTone)

	if got.RiskFactors != 0 {
		t.Fatalf("risk factors = %d, want 0", got.RiskFactors)
	}
	if got.Prediction != PredictionLowRisk {
		t.Fatalf("prediction = %q, want %q", got.Prediction, PredictionLowRisk)
	}
	if got.Confidence < 70 || got.Confidence > 90 {
		t.Fatalf("confidence = %d, want within [70, 90]", got.Confidence)
	}
	if got.Features.Asymmetry.Score < 0.1 || got.Features.Asymmetry.Score > 0.4 {
		t.Errorf("asymmetry score = %f, want within [0.1, 0.4]", got.Features.Asymmetry.Score)
	}
	if got.Features.Asymmetry.Label != "Low" {
		t.Errorf("asymmetry label = %q, want Low", got.Features.Asymmetry.Label)
	}
	if got.Features.Evolution.Score != 0.1 || got.Features.Evolution.Label != "Stable" {
		t.Errorf("evolution = %+v, want 0.1/Stable", got.Features.Evolution)
	}
}

func TestScoreMediumRiskTier(t *testing.T) {
	scorer := newTestScorer(3)
	patient := PatientContext{FamilyHistory: true, Age: 30, UVExposure: 3}

	got := scorer.Score(patient, imaging.Statistics{}, DefaultSkinTone)

	if got.RiskFactors != 1 {
		t.Fatalf("risk factors = %d, want 1", got.RiskFactors)
	}
	if got.Prediction != PredictionMediumRisk {
		t.Fatalf("prediction = %q, want %q", got.Prediction, PredictionMediumRisk)
	}
	if got.Confidence < 50 || got.Confidence > 80 {
		t.Fatalf("confidence = %d, want within [50, 80]", got.Confidence)
	}
}

func TestScoreImageSignalsIgnoredWhenInvalid(t *testing.T) {
	scorer := newTestScorer(4)
	// Contrast and brightness would both add a factor if the statistics
	// were valid; with the zero value they must not.
	stats := imaging.Statistics{Contrast: 60, Brightness: 90}

	got := scorer.Score(PatientContext{Age: 30, UVExposure: 3}, stats, DefaultSkinTone)
	if got.RiskFactors != 0 {
		t.Fatalf("risk factors = %d, want 0 for invalid statistics", got.RiskFactors)
	}
}

func TestScoreDiameterGatedByManualLength(t *testing.T) {
	small := newTestScorer(5).Score(PatientContext{ManualLength: 5.9, ManualWidth: 4}, imaging.Statistics{}, DefaultSkinTone)
	if small.Features.Diameter.Score < 0.1 || small.Features.Diameter.Score > 0.4 {
		t.Errorf("diameter score = %f, want within [0.1, 0.4]", small.Features.Diameter.Score)
	}
	if small.Features.Diameter.Label != "Normal (<6mm)" {
		t.Errorf("diameter label = %q, want Normal (<6mm)", small.Features.Diameter.Label)
	}

	large := newTestScorer(6).Score(PatientContext{ManualLength: 6, ManualWidth: 4}, imaging.Statistics{}, DefaultSkinTone)
	if large.Features.Diameter.Score < 0.6 || large.Features.Diameter.Score > 0.9 {
		t.Errorf("diameter score = %f, want within [0.6, 0.9]", large.Features.Diameter.Score)
	}
	if large.Features.Diameter.Label != "Large (>=6mm)" {
		t.Errorf("diameter label = %q, want Large (>=6mm)", large.Features.Diameter.Label)
	}
}

func TestScoreMetadataRiskLabels(t *testing.T) {
	cases := []struct {
		name    string
		patient PatientContext
		want    MetadataRisk
	}{
		{
			name:    "young low uv no history",
			patient: PatientContext{Age: 49, UVExposure: 6},
			want:    MetadataRisk{Age: "Low", UVExposure: "Low", FamilyHistory: "Low"},
		},
		{
			name:    "boundary values",
			patient: PatientContext{Age: 50, UVExposure: 7},
			want:    MetadataRisk{Age: "Medium", UVExposure: "Medium", FamilyHistory: "Low"},
		},
		{
			name:    "family history",
			patient: PatientContext{Age: 30, UVExposure: 3, FamilyHistory: true},
			want:    MetadataRisk{Age: "Low", UVExposure: "Low", FamilyHistory: "High"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := newTestScorer(7).Score(tc.patient, imaging.Statistics{}, DefaultSkinTone)
			if got.Metadata != tc.want {
				t.Fatalf("metadata = %+v, want %+v", got.Metadata, tc.want)
			}
		})
	}
}

func TestScoreRecoversToDegenerateResult(t *testing.T) {
	// A nil random source makes the first draw panic; the scorer must
	// absorb it and return the error assessment instead.
	scorer := NewScorer(nil, zap.NewNop())

	got := scorer.Score(PatientContext{}, imaging.Statistics{}, DefaultSkinTone)
	if !got.Degenerate() {
		t.Fatalf("expected degenerate assessment, got %+v", got)
	}
	if got.Confidence != 0 {
		t.Fatalf("confidence = %d, want 0", got.Confidence)
	}
	if got.Features != (FeatureBreakdown{}) {
		t.Fatalf("expected empty breakdown, got %+v", got.Features)
	}
}

func TestScoreConfidenceRangesAcrossSeeds(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		scorer := newTestScorer(seed)
		high := scorer.Score(PatientContext{HasEvolved: true, FamilyHistory: true, Age: 60}, imaging.Statistics{}, DefaultSkinTone)
		if high.Confidence < 75 || high.Confidence > 95 {
			t.Fatalf("seed %d: high confidence %d out of range", seed, high.Confidence)
		}
		low := scorer.Score(PatientContext{Age: 30, UVExposure: 3}, imaging.Statistics{}, DefaultSkinTone)
		if low.Confidence < 70 || low.Confidence > 90 {
			t.Fatalf("seed %d: low confidence %d out of range", seed, low.Confidence)
		}
	}
}
