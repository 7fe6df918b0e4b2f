package domain

import "strings"

// DirectiveKind identifies the type of a manifest line.
type DirectiveKind string

const (
	// DirectiveRerunIfChanged names a path the artifacts depend on.
	DirectiveRerunIfChanged DirectiveKind = "rerun-if-changed"
	// DirectiveRerunIfEnvChanged names an environment variable the artifacts depend on.
	DirectiveRerunIfEnvChanged DirectiveKind = "rerun-if-env-changed"
	// DirectiveRustcLinkLib asks the toolchain to link a library.
	DirectiveRustcLinkLib DirectiveKind = "rustc-link-lib"
	// DirectiveRustcLinkSearch adds a library search path.
	DirectiveRustcLinkSearch DirectiveKind = "rustc-link-search"
	// DirectiveRustcEnv sets a compile-time environment variable.
	DirectiveRustcEnv DirectiveKind = "rustc-env"
)

// directivePrefix precedes every directive kind on a manifest line.
const directivePrefix = "cargo:"

var knownDirectives = map[DirectiveKind]struct{}{
	DirectiveRerunIfChanged:    {},
	DirectiveRerunIfEnvChanged: {},
	DirectiveRustcLinkLib:      {},
	DirectiveRustcLinkSearch:   {},
	DirectiveRustcEnv:          {},
}

// Directive is a single typed line of a dependency manifest.
type Directive struct {
	Kind  DirectiveKind
	Value string
}

// String renders the directive in manifest form: cargo:<kind>=<value>.
func (d Directive) String() string {
	return directivePrefix + string(d.Kind) + "=" + d.Value
}

// Manifest is the ordered sequence of directives emitted by an artifact generation run.
type Manifest struct {
	Directives []Directive
}

// ParseManifest parses manifest text into typed directives.
// Lines that are not directives of a known kind are skipped.
func ParseManifest(data string) Manifest {
	var m Manifest
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSuffix(line, "\r")
		rest, ok := strings.CutPrefix(line, directivePrefix)
		if !ok {
			continue
		}
		kind, value, ok := strings.Cut(rest, "=")
		if !ok {
			continue
		}
		if _, known := knownDirectives[DirectiveKind(kind)]; !known {
			continue
		}
		m.Directives = append(m.Directives, Directive{Kind: DirectiveKind(kind), Value: value})
	}
	return m
}

// Dependencies returns the paths named by rerun-if-changed directives, in order.
func (m Manifest) Dependencies() []string {
	var paths []string
	for _, d := range m.Directives {
		if d.Kind == DirectiveRerunIfChanged {
			paths = append(paths, d.Value)
		}
	}
	return paths
}

// Add appends a directive.
func (m *Manifest) Add(kind DirectiveKind, value string) {
	m.Directives = append(m.Directives, Directive{Kind: kind, Value: value})
}

// Render returns the manifest as text, one directive per line.
func (m Manifest) Render() string {
	var b strings.Builder
	for _, d := range m.Directives {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}
