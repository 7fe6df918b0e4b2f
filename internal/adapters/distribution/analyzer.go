// Package distribution reads the metadata of standalone Python distributions.
package distribution

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/pyembed/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.DistributionAnalyzer = (*Analyzer)(nil)
	_ ports.RuntimeLocator       = (*Analyzer)(nil)
)

// Analyzer implements ports.DistributionAnalyzer and ports.RuntimeLocator.
type Analyzer struct {
	extractor ports.ArchiveExtractor
}

// NewAnalyzer creates an Analyzer that unpacks archives with extractor.
func NewAnalyzer(extractor ports.ArchiveExtractor) *Analyzer {
	return &Analyzer{extractor: extractor}
}

// Analyze extracts src into workDir and inspects the result.
func (a *Analyzer) Analyze(ctx context.Context, src io.Reader, workDir string) (*domain.DistributionInfo, error) {
	if err := a.extractor.Extract(ctx, src, workDir); err != nil {
		return nil, err
	}
	return a.Inspect(workDir)
}

// Inspect describes the distribution extracted at distDir.
func (a *Analyzer) Inspect(distDir string) (*domain.DistributionInfo, error) {
	meta, err := readMetadata(distDir)
	if err != nil {
		return nil, err
	}

	root := filepath.Join(distDir, domain.DistributionRootDir)
	info := &domain.DistributionInfo{
		Flavor:          meta.PythonFlavor,
		Version:         meta.PythonVersion,
		OS:              meta.OS,
		Arch:            meta.Arch,
		Licenses:        meta.Licenses,
		InterpreterPath: filepath.Join(root, filepath.FromSlash(meta.PythonExe)),
	}

	for _, name := range slices.Sorted(maps.Keys(meta.BuildInfo.Extensions)) {
		em := domain.ExtensionModule{Name: name}
		for _, v := range meta.BuildInfo.Extensions[name] {
			em.Variants = append(em.Variants, toVariant(v))
		}
		info.ExtensionModules = append(info.ExtensionModules, em)
	}

	if meta.PythonStdlib != "" {
		modules, resources, err := scanStdlib(filepath.Join(root, filepath.FromSlash(meta.PythonStdlib)))
		if err != nil {
			return nil, err
		}
		info.PyModules = modules
		info.Resources = resources
	}

	return info, nil
}

// InterpreterPath returns the interpreter executable of the distribution at distDir.
func (a *Analyzer) InterpreterPath(distDir string) (string, error) {
	if distDir == "" {
		return "", zerr.Wrap(domain.ErrDistributionInvalid, "no python distribution configured")
	}

	meta, err := readMetadata(distDir)
	if err != nil {
		return "", err
	}
	if meta.PythonExe == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrDistributionInvalid, "python_exe missing from metadata"), "path", distDir)
	}

	return filepath.Join(distDir, domain.DistributionRootDir, filepath.FromSlash(meta.PythonExe)), nil
}

func readMetadata(distDir string) (*pythonJSON, error) {
	path := filepath.Join(distDir, domain.DistributionRootDir, domain.DistributionMetadataFile)

	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the distribution directory
	if err != nil {
		return nil, errors.Join(domain.ErrDistributionInvalid, zerr.With(zerr.Wrap(err, "failed to read metadata"), "path", path))
	}

	var meta pythonJSON
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Join(domain.ErrDistributionInvalid, zerr.With(zerr.Wrap(err, "failed to parse metadata"), "path", path))
	}

	return &meta, nil
}

func toVariant(v extensionJSON) domain.ExtensionVariant {
	out := domain.ExtensionVariant{
		Variant:             v.Variant,
		Required:            v.Required,
		BuiltinDefault:      v.InCore,
		Licenses:            v.Licenses,
		LicensePublicDomain: v.LicensePublicDomain,
	}
	for _, l := range v.Links {
		out.Links = append(out.Links, domain.ExtensionLink{Name: l.Name, System: l.System, Framework: l.Framework})
	}
	return out
}

// scanStdlib enumerates Python modules and package resources below dir.
func scanStdlib(dir string) ([]string, []domain.ResourceFile, error) {
	var modules []string
	var resources []domain.ResourceFile

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "__pycache__" || d.Name() == "site-packages" {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if name, ok := strings.CutSuffix(rel, ".py"); ok {
			name = strings.TrimSuffix(name, "/__init__")
			modules = append(modules, strings.ReplaceAll(name, "/", "."))
			return nil
		}

		pkgDir, file := filepath.Split(rel)
		if pkgDir == "" || strings.HasSuffix(file, ".pyc") {
			return nil
		}
		if _, err := os.Stat(filepath.Join(dir, pkgDir, "__init__.py")); err != nil {
			return nil
		}
		resources = append(resources, domain.ResourceFile{
			Package: strings.ReplaceAll(strings.TrimSuffix(pkgDir, "/"), "/", "."),
			Name:    file,
		})
		return nil
	})
	if err != nil {
		return nil, nil, errors.Join(domain.ErrDistributionInvalid, zerr.With(zerr.Wrap(err, "failed to scan stdlib"), "path", dir))
	}

	slices.Sort(modules)
	slices.SortFunc(resources, func(a, b domain.ResourceFile) int {
		if c := strings.Compare(a.Package, b.Package); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	return modules, resources, nil
}
