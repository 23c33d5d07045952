package logging

import (
	"fmt"
	"strings"
)

// OperationError annotates an error with the operation it failed in, the
// analysis it belongs to, and the upload involved when one is in play.
type OperationError struct {
	Operation  string
	AnalysisID string
	Filename   string
	Err        error
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	var tags []string
	if e.AnalysisID != "" {
		tags = append(tags, "analysis_id="+e.AnalysisID)
	}
	if e.Filename != "" {
		tags = append(tags, "filename="+e.Filename)
	}
	if len(tags) > 0 {
		return fmt.Sprintf("%s (%s): %v", e.Operation, strings.Join(tags, " "), e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewOperationError wraps an error with structured context about where it occurred.
func NewOperationError(operation, analysisID string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Operation: operation, AnalysisID: analysisID, Err: err}
}

// NewUploadError additionally records which upload the operation was
// handling when it failed.
func NewUploadError(operation, analysisID, filename string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Operation: operation, AnalysisID: analysisID, Filename: filename, Err: err}
}
