package ports

import "go.trai.ch/pyembed/internal/core/domain"

// DiagnosticSink receives structured events describing why artifacts are stale.
// Emitting must never fail or block the caller.
//
//go:generate mockgen -source=diagnostics.go -destination=mocks/mock_diagnostics.go -package=mocks
type DiagnosticSink interface {
	Emit(d domain.Diagnostic)
}
