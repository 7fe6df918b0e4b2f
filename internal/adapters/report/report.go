// Package report renders distribution analyses for humans and machines.
package report

import (
	"fmt"
	"io"
	"strings"

	"go.trai.ch/pyembed/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Format selects the report encoding.
type Format string

const (
	// FormatText is the human-readable report.
	FormatText Format = "text"
	// FormatYAML emits the analysis as a YAML document.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatYAML:
		return Format(s), nil
	case "":
		return FormatText, nil
	default:
		return "", zerr.With(zerr.New("unknown report format"), "format", s)
	}
}

// Printer writes distribution reports to an output stream.
type Printer struct {
	out    io.Writer
	format Format
}

// NewPrinter creates a Printer.
func NewPrinter(out io.Writer, format Format) *Printer {
	return &Printer{out: out, format: format}
}

// Info writes the metadata, extension modules, Python modules and resources of a distribution.
func (p *Printer) Info(info *domain.DistributionInfo) error {
	if p.format == FormatYAML {
		return p.yaml(info)
	}

	var b strings.Builder
	heading(&b, "High-Level Metadata", "=")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Flavor:       %s\n", info.Flavor)
	fmt.Fprintf(&b, "Version:      %s\n", info.Version)
	fmt.Fprintf(&b, "OS:           %s\n", info.OS)
	fmt.Fprintf(&b, "Architecture: %s\n", info.Arch)
	b.WriteString("\n")

	heading(&b, "Extension Modules", "=")
	for _, em := range info.ExtensionModules {
		heading(&b, em.Name, "-")
		b.WriteString("\n")
		for _, v := range em.Variants {
			heading(&b, v.Variant, "^")
			b.WriteString("\n")
			fmt.Fprintf(&b, "Required: %t\n", v.Required)
			fmt.Fprintf(&b, "Built-in Default: %t\n", v.BuiltinDefault)
			if len(v.Licenses) > 0 {
				fmt.Fprintf(&b, "Licenses: %s\n", strings.Join(v.Licenses, ", "))
			}
			if len(v.Links) > 0 {
				names := make([]string, 0, len(v.Links))
				for _, l := range v.Links {
					names = append(names, l.Name)
				}
				fmt.Fprintf(&b, "Links: %s\n", strings.Join(names, ", "))
			}
			b.WriteString("\n")
		}
	}

	heading(&b, "Python Modules", "=")
	b.WriteString("\n")
	for _, name := range info.PyModules {
		b.WriteString(name + "\n")
	}
	b.WriteString("\n")

	heading(&b, "Python Resources", "=")
	b.WriteString("\n")
	for _, r := range info.Resources {
		fmt.Fprintf(&b, "[%s].%s\n", r.Package, r.Name)
	}

	return p.write(b.String())
}

type licenseLink struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type licenseEntry struct {
	Extension    string        `yaml:"extension"`
	Links        []licenseLink `yaml:"links"`
	Licenses     []string      `yaml:"licenses,omitempty"`
	PublicDomain bool          `yaml:"public_domain,omitempty"`
}

type licenseReport struct {
	Licenses   []string       `yaml:"licenses"`
	Extensions []licenseEntry `yaml:"extensions"`
}

// Licenses writes the distribution license and the license requirements of
// every extension variant that links external libraries.
func (p *Printer) Licenses(info *domain.DistributionInfo) error {
	r := licenseReport{Licenses: info.Licenses}
	for _, em := range info.ExtensionModules {
		for _, v := range em.Variants {
			if len(v.Links) == 0 {
				continue
			}
			entry := licenseEntry{
				Extension:    v.DisplayName(em.Name),
				Licenses:     v.Licenses,
				PublicDomain: v.LicensePublicDomain,
			}
			for _, l := range v.Links {
				entry.Links = append(entry.Links, licenseLink{Name: l.Name, Type: l.LinkType()})
			}
			r.Extensions = append(r.Extensions, entry)
		}
	}

	if p.format == FormatYAML {
		return p.yaml(r)
	}

	var b strings.Builder
	dist := "NO LICENSE FOUND"
	if len(r.Licenses) > 0 {
		dist = strings.Join(r.Licenses, ", ")
	}
	fmt.Fprintf(&b, "Python Distribution Licenses: %s\n\n", dist)
	heading(&b, "Extension Libraries and License Requirements", "=")
	b.WriteString("\n")

	for _, e := range r.Extensions {
		heading(&b, e.Extension, "-")
		b.WriteString("\n")
		for _, l := range e.Links {
			fmt.Fprintf(&b, "Dependency: %s\nLink Type: %s\n\n", l.Name, l.Type)
		}

		switch {
		case e.PublicDomain:
			b.WriteString("Licenses: Public Domain\n")
		case len(e.Licenses) > 0:
			fmt.Fprintf(&b, "Licenses: %s\n", strings.Join(e.Licenses, ", "))
			for _, l := range e.Licenses {
				fmt.Fprintf(&b, "License Info: https://spdx.org/licenses/%s.html\n", l)
			}
		default:
			b.WriteString("Licenses: UNKNOWN\n")
		}
		b.WriteString("\n")
	}

	return p.write(b.String())
}

func heading(b *strings.Builder, title, underline string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat(underline, len(title)) + "\n")
}

func (p *Printer) yaml(v any) error {
	enc := yaml.NewEncoder(p.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return zerr.Wrap(err, "failed to encode report")
	}
	if err := enc.Close(); err != nil {
		return zerr.Wrap(err, "failed to flush report")
	}
	return nil
}

func (p *Printer) write(s string) error {
	if _, err := io.WriteString(p.out, s); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}
	return nil
}
