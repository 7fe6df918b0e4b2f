package staleness_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports/mocks"
	"go.trai.ch/pyembed/internal/engine/staleness"
	"go.uber.org/mock/gomock"
)

var baseline = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	dir      string
	artifact string
	config   string
	selfExe  string
	deps     []string
}

// newFixture lays out a config, a fake executable, dependencies and a manifest,
// all stamped with the baseline time.
func newFixture(t *testing.T, depCount int) *fixture {
	t.Helper()

	dir := t.TempDir()
	f := &fixture{
		dir:      dir,
		artifact: filepath.Join(dir, "artifacts"),
		config:   filepath.Join(dir, domain.ConfigFileName),
		selfExe:  filepath.Join(dir, "pyembed-bin"),
	}
	require.NoError(t, os.MkdirAll(f.artifact, domain.DirPerm))

	touch(t, f.config, baseline)
	touch(t, f.selfExe, baseline)

	var m domain.Manifest
	for i := range depCount {
		dep := filepath.Join(dir, "deps", string(rune('a'+i))+".py")
		require.NoError(t, os.MkdirAll(filepath.Dir(dep), domain.DirPerm))
		touch(t, dep, baseline)
		f.deps = append(f.deps, dep)
		m.Add(domain.DirectiveRerunIfChanged, dep)
	}
	m.Add(domain.DirectiveRustcLinkLib, "static=python")

	manifest := filepath.Join(f.artifact, domain.ManifestFileName)
	require.NoError(t, os.WriteFile(manifest, []byte(m.Render()), domain.FilePerm))
	require.NoError(t, os.Chtimes(manifest, baseline, baseline))

	return f
}

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		require.NoError(t, os.WriteFile(path, []byte("x"), domain.FilePerm))
	}
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestTracker_IsCurrent_AllOlderOrEqual(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockDiagnosticSink(ctrl)
	sink.EXPECT().Emit(gomock.Any()).Times(0)

	f := newFixture(t, 3)
	touch(t, f.deps[0], baseline.Add(-time.Hour))

	tracker := staleness.NewTracker(sink, f.selfExe)
	assert.True(t, tracker.IsCurrent(f.config, f.artifact))
}

func TestTracker_IsCurrent_NewerInputs(t *testing.T) {
	tests := []struct {
		name  string
		touch func(f *fixture) string
	}{
		{
			name:  "first dependency",
			touch: func(f *fixture) string { return f.deps[0] },
		},
		{
			name:  "last dependency",
			touch: func(f *fixture) string { return f.deps[len(f.deps)-1] },
		},
		{
			name:  "running executable",
			touch: func(f *fixture) string { return f.selfExe },
		},
		{
			name:  "config file",
			touch: func(f *fixture) string { return f.config },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sink := mocks.NewMockDiagnosticSink(ctrl)

			f := newFixture(t, 2)
			path := tt.touch(f)
			touch(t, path, baseline.Add(time.Second))

			sink.EXPECT().Emit(domain.Diagnostic{
				Kind:   domain.DiagnosticDependencyChanged,
				Path:   path,
				Reason: "modified after artifacts were built",
			}).Times(1)

			tracker := staleness.NewTracker(sink, f.selfExe)
			assert.False(t, tracker.IsCurrent(f.config, f.artifact))
		})
	}
}

func TestTracker_IsCurrent_ShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockDiagnosticSink(ctrl)

	f := newFixture(t, 3)
	touch(t, f.deps[0], baseline.Add(time.Second))
	touch(t, f.deps[1], baseline.Add(time.Second))

	// Only the first changed dependency is reported.
	sink.EXPECT().Emit(gomock.Any()).Times(1)

	tracker := staleness.NewTracker(sink, f.selfExe)
	assert.False(t, tracker.IsCurrent(f.config, f.artifact))
}

func TestTracker_IsCurrent_MissingManifest(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockDiagnosticSink(ctrl)

	f := newFixture(t, 1)
	require.NoError(t, os.Remove(filepath.Join(f.artifact, domain.ManifestFileName)))

	sink.EXPECT().Emit(gomock.Any()).Do(func(d domain.Diagnostic) {
		assert.Equal(t, domain.DiagnosticManifestMissing, d.Kind)
	}).Times(1)

	tracker := staleness.NewTracker(sink, f.selfExe)
	assert.False(t, tracker.IsCurrent(f.config, f.artifact))
}

func TestTracker_IsCurrent_MissingDependency(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockDiagnosticSink(ctrl)

	f := newFixture(t, 2)
	require.NoError(t, os.Remove(f.deps[1]))

	sink.EXPECT().Emit(gomock.Any()).Do(func(d domain.Diagnostic) {
		assert.Equal(t, domain.DiagnosticMetadataUnreadable, d.Kind)
		assert.Equal(t, f.deps[1], d.Path)
	}).Times(1)

	tracker := staleness.NewTracker(sink, f.selfExe)
	assert.False(t, tracker.IsCurrent(f.config, f.artifact))
}

func TestTracker_IsCurrent_UnknownExecutable(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockDiagnosticSink(ctrl)
	sink.EXPECT().Emit(gomock.Any()).Times(1)

	f := newFixture(t, 0)

	tracker := staleness.NewTracker(sink, "")
	assert.False(t, tracker.IsCurrent(f.config, f.artifact))
}

func TestTracker_IsCurrent_Idempotent(t *testing.T) {
	f := newFixture(t, 2)
	tracker := staleness.NewTracker(nil, f.selfExe)

	first := tracker.IsCurrent(f.config, f.artifact)
	second := tracker.IsCurrent(f.config, f.artifact)
	assert.True(t, first)
	assert.Equal(t, first, second)

	touch(t, f.deps[0], baseline.Add(time.Second))

	first = tracker.IsCurrent(f.config, f.artifact)
	second = tracker.IsCurrent(f.config, f.artifact)
	assert.False(t, first)
	assert.Equal(t, first, second)
}

func TestTracker_IsCurrent_IgnoresUnknownLines(t *testing.T) {
	f := newFixture(t, 0)

	manifest := filepath.Join(f.artifact, domain.ManifestFileName)
	content := "garbage line\ncargo:unknown-directive=/does/not/exist\n\ncargo:rerun-if-changed\n"
	require.NoError(t, os.WriteFile(manifest, []byte(content), domain.FilePerm))
	require.NoError(t, os.Chtimes(manifest, baseline, baseline))

	tracker := staleness.NewTracker(nil, f.selfExe)
	assert.True(t, tracker.IsCurrent(f.config, f.artifact))
}
