// Package staleness decides whether generated embedding artifacts can be reused.
package staleness

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
)

// Tracker compares the mtime of the dependency manifest against everything
// the artifacts were generated from.
//
// Every failure to read state folds into a stale verdict.
type Tracker struct {
	sink    ports.DiagnosticSink
	selfExe string
}

// NewTracker creates a Tracker. selfExe is the path of the running program,
// whose rebuild invalidates previously generated artifacts.
func NewTracker(sink ports.DiagnosticSink, selfExe string) *Tracker {
	return &Tracker{
		sink:    sink,
		selfExe: selfExe,
	}
}

// IsCurrent reports whether the artifacts in manifestDir are newer than all of
// their recorded dependencies, the running program and the config file.
func (t *Tracker) IsCurrent(configPath, manifestDir string) bool {
	manifestPath := filepath.Join(manifestDir, domain.ManifestFileName)

	info, err := os.Stat(manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			t.emit(domain.DiagnosticManifestMissing, manifestPath, "no existing artifacts found")
		} else {
			t.emit(domain.DiagnosticManifestUnreadable, manifestPath, err.Error())
		}
		return false
	}

	// The manifest is written last, so its mtime is the time the artifacts were built.
	builtTime := info.ModTime()

	data, err := os.ReadFile(manifestPath) //nolint:gosec // Path is derived from the build context
	if err != nil {
		t.emit(domain.DiagnosticManifestUnreadable, manifestPath, err.Error())
		return false
	}

	for _, dep := range domain.ParseManifest(string(data)).Dependencies() {
		if !t.dependencyCurrent(dep, builtTime) {
			return false
		}
	}

	if t.selfExe == "" {
		t.emit(domain.DiagnosticMetadataUnreadable, "", "unable to determine current executable")
		return false
	}
	if !t.dependencyCurrent(t.selfExe, builtTime) {
		return false
	}

	return t.dependencyCurrent(configPath, builtTime)
}

func (t *Tracker) dependencyCurrent(path string, builtTime time.Time) bool {
	info, err := os.Stat(path)
	if err != nil {
		t.emit(domain.DiagnosticMetadataUnreadable, path, err.Error())
		return false
	}

	if info.ModTime().After(builtTime) {
		t.emit(domain.DiagnosticDependencyChanged, path, "modified after artifacts were built")
		return false
	}

	return true
}

func (t *Tracker) emit(kind domain.DiagnosticKind, path, reason string) {
	if t.sink == nil {
		return
	}
	t.sink.Emit(domain.Diagnostic{Kind: kind, Path: path, Reason: reason})
}
