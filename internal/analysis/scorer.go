package analysis

import (
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/example/dermascan/internal/imaging"
)

// Risk tier labels.
const (
	PredictionHighRisk   = "High Risk - Melanoma"
	PredictionMediumRisk = "Medium Risk - Atypical Nevus"
	PredictionLowRisk    = "Low Risk - Benign"
	PredictionError      = "Error - Unable to analyze"
)

const analysisType = "simplified"

// FeatureScore is one ABCDE sub-score with its categorical label.
type FeatureScore struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// FeatureBreakdown holds the five ABCDE sub-scores.
type FeatureBreakdown struct {
	Asymmetry FeatureScore `json:"asymmetry"`
	Border    FeatureScore `json:"border"`
	Color     FeatureScore `json:"color"`
	Diameter  FeatureScore `json:"diameter"`
	Evolution FeatureScore `json:"evolution"`
}

// MetadataRisk labels each form-supplied risk field.
type MetadataRisk struct {
	Age           string `json:"age_risk"`
	UVExposure    string `json:"uv_exposure_risk"`
	FamilyHistory string `json:"family_history_risk"`
}

// Assessment is the full mocked risk report for one upload.
type Assessment struct {
	Prediction    string
	Confidence    int
	RiskFactors   int
	Features      FeatureBreakdown
	Metadata      MetadataRisk
	CombinedScore float64
	Explanation   string
	SkinTone      Fitzpatrick
	AnalysisType  string
	Image         imaging.Statistics
}

// Degenerate reports whether this assessment is the error fallback.
func (a Assessment) Degenerate() bool {
	return a.Prediction == PredictionError
}

// Scorer produces mocked risk assessments. The random source is injected so
// tests can seed it; it carries no clinical meaning, only the bucketed
// thresholds below. A shared *rand.Rand is not safe under concurrent
// requests, so draws are serialized.
type Scorer struct {
	mu  sync.Mutex
	rng *rand.Rand
	log *zap.Logger
}

func NewScorer(rng *rand.Rand, log *zap.Logger) *Scorer {
	return &Scorer{rng: rng, log: log.Named("scorer")}
}

// Score accumulates the risk-factor count from the patient context and image
// statistics, then draws the tier, confidence, and ABCDE sub-scores. Any
// internal panic is absorbed into the degenerate error assessment.
func (s *Scorer) Score(patient PatientContext, stats imaging.Statistics, tone Fitzpatrick) (out Assessment) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("risk scoring failed", zap.Any("panic", r))
			out = Assessment{
				Prediction:   PredictionError,
				Confidence:   0,
				SkinTone:     tone,
				AnalysisType: analysisType,
			}
		}
	}()

	riskFactors := 0
	if patient.HasEvolved {
		riskFactors += 2
	}
	if patient.FamilyHistory {
		riskFactors++
	}
	if patient.Age > 50 {
		riskFactors++
	}
	if patient.UVExposure > 7 {
		riskFactors++
	}
	if stats.Valid() {
		if stats.Contrast > 50 {
			riskFactors++
		}
		if stats.Brightness < 100 {
			riskFactors++
		}
	}

	asymmetry := s.bucketed(riskFactors >= 2, 0.1, 0.4, 0.5, 0.8)
	border := s.bucketed(riskFactors >= 2, 0.1, 0.4, 0.5, 0.8)
	colorScore := s.bucketed(riskFactors >= 2, 0.1, 0.4, 0.5, 0.8)
	diameter := s.bucketed(patient.ManualLength >= 6, 0.1, 0.4, 0.6, 0.9)
	evolution := 0.1
	if patient.HasEvolved {
		evolution = 0.8
	}

	var prediction string
	var confidence int
	switch {
	case riskFactors >= 3:
		prediction = PredictionHighRisk
		confidence = s.intn(75, 95)
	case riskFactors >= 1:
		prediction = PredictionMediumRisk
		confidence = s.intn(50, 80)
	default:
		prediction = PredictionLowRisk
		confidence = s.intn(70, 90)
	}

	return Assessment{
		Prediction:  prediction,
		Confidence:  confidence,
		RiskFactors: riskFactors,
		Features: FeatureBreakdown{
			Asymmetry: labeled(asymmetry, 0.4, "Low", "High"),
			Border:    labeled(border, 0.4, "Regular", "Irregular"),
			Color:     labeled(colorScore, 0.4, "Uniform", "Variable"),
			Diameter:  labeled(diameter, 0.5, "Normal (<6mm)", "Large (>=6mm)"),
			Evolution: labeled(evolution, 0.5, "Stable", "Changing"),
		},
		Metadata: MetadataRisk{
			Age:           lowOrMedium(patient.Age < 50),
			UVExposure:    lowOrMedium(patient.UVExposure < 7),
			FamilyHistory: familyRisk(patient.FamilyHistory),
		},
		CombinedScore: float64(confidence) / 100.0,
		Explanation:   fmt.Sprintf("Based on %d risk factors", riskFactors),
		SkinTone:      tone,
		AnalysisType:  analysisType,
		Image:         stats,
	}
}

// bucketed draws uniformly from the upper range when elevated, otherwise
// from the lower range.
func (s *Scorer) bucketed(elevated bool, lo1, hi1, lo2, hi2 float64) float64 {
	if elevated {
		return s.uniform(lo2, hi2)
	}
	return s.uniform(lo1, hi1)
}

func (s *Scorer) uniform(lo, hi float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Float64()*(hi-lo)
}

// intn draws an integer uniformly from [lo, hi] inclusive.
func (s *Scorer) intn(lo, hi int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Intn(hi-lo+1)
}

func labeled(score, threshold float64, lower, upper string) FeatureScore {
	label := lower
	if score > threshold {
		label = upper
	}
	return FeatureScore{Score: score, Label: label}
}

func lowOrMedium(low bool) string {
	if low {
		return "Low"
	}
	return "Medium"
}

func familyRisk(present bool) string {
	if present {
		return "High"
	}
	return "Low"
}
