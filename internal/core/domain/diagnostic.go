package domain

// DiagnosticKind classifies why artifacts were judged stale.
type DiagnosticKind string

const (
	// DiagnosticManifestMissing means no previous artifact generation was recorded.
	DiagnosticManifestMissing DiagnosticKind = "manifest-missing"
	// DiagnosticManifestUnreadable means the manifest exists but its contents or mtime could not be read.
	DiagnosticManifestUnreadable DiagnosticKind = "manifest-unreadable"
	// DiagnosticDependencyChanged means a tracked path is newer than the manifest.
	DiagnosticDependencyChanged DiagnosticKind = "dependency-changed"
	// DiagnosticMetadataUnreadable means a tracked path could not be stat'ed.
	DiagnosticMetadataUnreadable DiagnosticKind = "metadata-unreadable"
)

// Diagnostic is an observational event emitted while checking artifact staleness.
type Diagnostic struct {
	Kind   DiagnosticKind
	Path   string
	Reason string
}
