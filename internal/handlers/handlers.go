package handlers

import (
	"encoding/base64"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/dermascan/internal/analysis"
	"github.com/example/dermascan/internal/config"
	"github.com/example/dermascan/internal/imaging"
	"github.com/example/dermascan/internal/logging"
)

const (
	templateName   = "index.html"
	previewMaxDim  = 480
	flashNoFile    = "No file selected"
	flashBadType   = "Invalid file type. Please upload a valid image file."
	flashTooLarge  = "File too large. Please upload an image smaller than 16MB."
	flashUploadErr = "An error occurred while processing your upload. Please try again."
)

type fitzpatrickOption struct {
	Code        analysis.Fitzpatrick
	Description string
}

// Handler serves the upload form and the analysis report. Everything is
// request-scoped: uploads are read into memory, analyzed, and discarded.
type Handler struct {
	cfg      *config.Config
	analyzer *imaging.Analyzer
	scorer   *analysis.Scorer
	log      *zap.Logger
}

func New(cfg *config.Config, analyzer *imaging.Analyzer, scorer *analysis.Scorer, log *zap.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		analyzer: analyzer,
		scorer:   scorer,
		log:      log.Named("handlers"),
	}
}

// Register wires the HTTP handlers to the Gin router.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/", h.ShowForm)
	router.POST("/", h.Analyze)
	router.NoRoute(h.NotFound)
}

// ShowForm renders the empty upload form.
func (h *Handler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, templateName, h.formContext(c))
}

// Analyze validates the multipart upload, coerces the form metadata,
// runs the image statistics and mock scoring, and renders the report.
func (h *Handler) Analyze(c *gin.Context) {
	analysisID := uuid.NewString()
	opLog := logging.WithOperation(h.log, "handlers.analyze", analysisID)

	if length := c.Request.ContentLength; length > h.cfg.Upload.MaxSize {
		opLog.Warn("upload rejected: payload too large", zap.Int64("content_length", length))
		h.flashAndRedirect(c, flashTooLarge)
		return
	}

	file, err := c.FormFile("image")
	if err != nil || file.Filename == "" {
		h.flashAndRedirect(c, flashNoFile)
		return
	}

	if !h.cfg.Upload.ExtensionAllowed(filepath.Ext(file.Filename)) {
		opLog.Warn("upload rejected: disallowed extension", zap.String("filename", file.Filename))
		h.flashAndRedirect(c, flashBadType)
		return
	}

	if file.Size > h.cfg.Upload.MaxSize {
		opLog.Warn("upload rejected: file too large", zap.Int64("size", file.Size))
		h.flashAndRedirect(c, flashTooLarge)
		return
	}

	src, err := file.Open()
	if err != nil {
		opLog.Error("failed to open upload", zap.Error(logging.NewUploadError("handlers.open_upload", analysisID, file.Filename, err)))
		h.flashAndRedirect(c, flashUploadErr)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		opLog.Error("failed to read upload", zap.Error(logging.NewUploadError("handlers.read_upload", analysisID, file.Filename, err)))
		h.flashAndRedirect(c, flashUploadErr)
		return
	}

	patient := parsePatientForm(c)

	stats := h.analyzer.Analyze(data)
	tone := analysis.DefaultSkinTone
	if stats.Valid() {
		tone = analysis.ClassifySkinTone(stats.Brightness)
	}

	assessment := h.scorer.Score(patient, stats, tone)
	opLog.Info("analysis complete",
		zap.String("prediction", assessment.Prediction),
		zap.Int("confidence", assessment.Confidence),
		zap.Int("risk_factors", assessment.RiskFactors),
		zap.String("skin_tone", string(tone)))

	ctx := h.formContext(c)
	ctx["Result"] = assessment.Prediction
	ctx["Confidence"] = assessment.Confidence
	ctx["Assessment"] = assessment
	ctx["Filename"] = file.Filename
	ctx["SkinType"] = tone
	ctx["SkinTypeDescription"] = analysis.FitzpatrickDescriptions[tone]
	ctx["DetectedSkinTone"] = tone.Label()
	ctx["ImagePath"] = dataURL(data)
	ctx["PreviewPath"] = h.previewURL(data, opLog)
	ctx["Patient"] = patient
	ctx["ShowManualMeasurements"] = patient.HasManualMeasurements()
	ctx["Age"] = patient.Age
	ctx["UVExposure"] = patient.UVExposure
	ctx["FamilyHistory"] = patient.FamilyHistory
	ctx["ManualLength"] = patient.ManualLength
	ctx["ManualWidth"] = patient.ManualWidth

	c.HTML(http.StatusOK, templateName, ctx)
}

// NotFound renders the generic error page without leaking detail.
func (h *Handler) NotFound(c *gin.Context) {
	ctx := h.formContext(c)
	ctx["Error"] = "Page not found"
	c.HTML(http.StatusNotFound, templateName, ctx)
}

// Recovery returns middleware that turns any panic into the generic error
// page. Detail goes to the server log only.
func (h *Handler) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		h.log.Error("unhandled panic", zap.Any("panic", recovered))
		ctx := h.formContext(c)
		ctx["Error"] = "An unexpected error occurred"
		c.HTML(http.StatusInternalServerError, templateName, ctx)
	})
}

// formContext builds the base template context shared by every render.
func (h *Handler) formContext(c *gin.Context) gin.H {
	options := make([]fitzpatrickOption, 0, len(analysis.FitzpatrickOrder))
	for _, f := range analysis.FitzpatrickOrder {
		options = append(options, fitzpatrickOption{Code: f, Description: analysis.FitzpatrickDescriptions[f]})
	}
	return gin.H{
		"FitzpatrickTypes": options,
		"BodyPartOptions":  analysis.BodyPartOptions,
		"Flashes":          takeFlashes(c),
	}
}

func (h *Handler) flashAndRedirect(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	if err := session.Save(); err != nil {
		h.log.Warn("failed to save flash message", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func takeFlashes(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) > 0 {
		_ = session.Save()
	}
	flashes := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			flashes = append(flashes, msg)
		}
	}
	return flashes
}

// previewURL produces a bounded thumbnail data URL, falling back to the
// original bytes when re-encoding fails.
func (h *Handler) previewURL(data []byte, log *zap.Logger) string {
	thumb, err := imaging.Thumbnail(data, previewMaxDim)
	if err != nil {
		log.Warn("thumbnail generation failed", zap.Error(err))
		return dataURL(data)
	}
	return dataURL(thumb)
}

func dataURL(data []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
}
