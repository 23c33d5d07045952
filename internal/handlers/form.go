package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/dermascan/internal/analysis"
)

const (
	defaultAge        = 50
	defaultUVExposure = 5
)

// parsePatientForm coerces the metadata fields with best-effort parsing.
// Malformed values never fail the request; they fall back to the documented
// defaults.
func parsePatientForm(c *gin.Context) analysis.PatientContext {
	hasEvolved := checkboxPresent(c, "has_evolved")

	patient := analysis.PatientContext{
		BodyPart:      analysis.NormalizeBodyPart(c.PostForm("body_part")),
		HasEvolved:    hasEvolved,
		Age:           intField(c, "age", defaultAge),
		UVExposure:    intField(c, "uv_exposure", defaultUVExposure),
		FamilyHistory: checkboxPresent(c, "family_history"),
		ManualLength:  optionalFloat(c, "manual_length"),
		ManualWidth:   optionalFloat(c, "manual_width"),
	}

	// Evolution weeks only mean anything when the lesion has evolved.
	if hasEvolved {
		if raw := strings.TrimSpace(c.PostForm("evolution_weeks")); raw != "" {
			if weeks, err := strconv.Atoi(raw); err == nil {
				patient.EvolutionWeeks = weeks
			}
		}
	}

	return patient
}

func checkboxPresent(c *gin.Context, key string) bool {
	_, ok := c.GetPostForm(key)
	return ok
}

func intField(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// optionalFloat returns 0 for blank or malformed input. Negative lesion
// measurements are meaningless, so they degrade to 0 as well.
func optionalFloat(c *gin.Context, key string) float64 {
	raw := strings.TrimSpace(c.PostForm(key))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
