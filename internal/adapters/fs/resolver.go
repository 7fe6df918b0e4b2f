package fs

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/zerr"
)

// Entry is one file to copy into an application tree.
type Entry struct {
	// Source is the absolute path of the file to copy.
	Source string
	// Dest is the slash-separated path relative to the application directory.
	Dest string
}

// Resolver expands install rules into concrete file entries.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// Expand resolves a rule's source, which may be a file, a directory or a glob.
// A single file is installed at Dest. Directory contents and glob matches are
// installed below Dest.
func (r *Resolver) Expand(rule domain.InstallRule) ([]Entry, error) {
	matches, err := filepath.Glob(rule.Source)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to glob install source"), "path", rule.Source)
	}
	if len(matches) == 0 {
		return nil, zerr.With(zerr.With(zerr.New("install source not found"), "path", rule.Source), "install", rule.Name)
	}

	dest := filepath.ToSlash(filepath.Clean(rule.Dest))
	isGlob := len(matches) > 1 || filepath.Clean(matches[0]) != filepath.Clean(rule.Source)

	var entries []Entry
	for _, match := range matches {
		base := dest
		if isGlob {
			base = dest + "/" + filepath.Base(match)
		}

		files := slices.Collect(r.walker.WalkFiles(match, nil))
		for _, file := range files {
			if file == match {
				entries = append(entries, Entry{Source: file, Dest: base})
				continue
			}
			rel, err := filepath.Rel(match, file)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to relativize install source"), "path", file)
			}
			entries = append(entries, Entry{Source: file, Dest: base + "/" + filepath.ToSlash(rel)})
		}
	}

	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Dest, b.Dest) })
	return entries, nil
}
