package logger

import (
	"fmt"

	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
)

// DiagnosticSink renders staleness diagnostics as logger warnings.
type DiagnosticSink struct {
	logger ports.Logger
}

// NewDiagnosticSink creates a sink writing to logger.
func NewDiagnosticSink(logger ports.Logger) *DiagnosticSink {
	return &DiagnosticSink{logger: logger}
}

// Emit logs one diagnostic.
func (s *DiagnosticSink) Emit(d domain.Diagnostic) {
	s.logger.Warn(RenderDiagnostic(d))
}

// RenderDiagnostic returns the operator-facing text of a diagnostic.
func RenderDiagnostic(d domain.Diagnostic) string {
	switch d.Kind {
	case domain.DiagnosticManifestMissing:
		return "no existing artifacts found"
	case domain.DiagnosticManifestUnreadable:
		return fmt.Sprintf("error reading %s: %s", d.Path, d.Reason)
	case domain.DiagnosticDependencyChanged:
		return fmt.Sprintf("building artifacts because %s changed", d.Path)
	case domain.DiagnosticMetadataUnreadable:
		if d.Path == "" {
			return d.Reason
		}
		return fmt.Sprintf("error resolving metadata of %s", d.Path)
	default:
		return fmt.Sprintf("%s: %s %s", d.Kind, d.Path, d.Reason)
	}
}
