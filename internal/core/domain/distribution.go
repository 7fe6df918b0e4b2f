package domain

import "strings"

// DistributionMetadataFile is the metadata document at the root of an extracted distribution.
const DistributionMetadataFile = "PYTHON.json"

// DistributionRootDir is the directory an archive unpacks its distribution into.
const DistributionRootDir = "python"

// ExtensionLink is a library an extension module variant links against.
type ExtensionLink struct {
	Name      string `json:"name"                yaml:"name"`
	System    bool   `json:"system,omitempty"    yaml:"system,omitempty"`
	Framework bool   `json:"framework,omitempty" yaml:"framework,omitempty"`
}

// LinkType returns the kind of link: system, framework, or library.
func (l ExtensionLink) LinkType() string {
	switch {
	case l.System:
		return "system"
	case l.Framework:
		return "framework"
	default:
		return "library"
	}
}

// ExtensionVariant is one build flavor of an extension module.
type ExtensionVariant struct {
	Variant             string          `json:"variant"                         yaml:"variant"`
	Required            bool            `json:"required"                        yaml:"required"`
	BuiltinDefault      bool            `json:"in_core"                         yaml:"builtin_default"`
	Licenses            []string        `json:"licenses,omitempty"              yaml:"licenses,omitempty"`
	LicensePublicDomain bool            `json:"license_public_domain,omitempty" yaml:"license_public_domain,omitempty"`
	Links               []ExtensionLink `json:"links,omitempty"                 yaml:"links,omitempty"`
}

// DisplayName returns the module name qualified by its variant unless it is the default one.
func (v ExtensionVariant) DisplayName(module string) string {
	if v.Variant == "" || v.Variant == "default" {
		return module
	}
	return module + " (" + v.Variant + ")"
}

// ExtensionModule groups the variants available for one extension module.
type ExtensionModule struct {
	Name     string             `yaml:"name"`
	Variants []ExtensionVariant `yaml:"variants"`
}

// ResourceFile is a non-module file shipped inside a Python package.
type ResourceFile struct {
	Package string `yaml:"package"`
	Name    string `yaml:"name"`
}

// DistributionInfo describes an analyzed Python distribution.
// Modules, resources and extension modules are sorted by name.
type DistributionInfo struct {
	Flavor           string            `yaml:"flavor"`
	Version          string            `yaml:"version"`
	OS               string            `yaml:"os"`
	Arch             string            `yaml:"arch"`
	Licenses         []string          `yaml:"licenses,omitempty"`
	InterpreterPath  string            `yaml:"interpreter"`
	ExtensionModules []ExtensionModule `yaml:"extension_modules,omitempty"`
	PyModules        []string          `yaml:"py_modules,omitempty"`
	Resources        []ResourceFile    `yaml:"resources,omitempty"`
}

// ArchiveStem strips known distribution archive suffixes from a file name.
// It returns false when the name is not an archive.
func ArchiveStem(name string) (string, bool) {
	for _, ext := range []string{".tar.zst", ".tar.xz", ".tar"} {
		if stem, ok := strings.CutSuffix(name, ext); ok {
			return stem, true
		}
	}
	return name, false
}
