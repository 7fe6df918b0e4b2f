package distribution

// pythonJSON is the subset of PYTHON.json read from a standalone distribution.
type pythonJSON struct {
	Version       string   `json:"version"`
	PythonFlavor  string   `json:"python_flavor"`
	PythonVersion string   `json:"python_version"`
	OS            string   `json:"os"`
	Arch          string   `json:"arch"`
	PythonExe     string   `json:"python_exe"`
	PythonStdlib  string   `json:"python_stdlib"`
	Licenses      []string `json:"licenses"`
	BuildInfo     struct {
		Extensions map[string][]extensionJSON `json:"extensions"`
	} `json:"build_info"`
}

type extensionJSON struct {
	Variant             string     `json:"variant"`
	Required            bool       `json:"required"`
	InCore              bool       `json:"in_core"`
	Licenses            []string   `json:"licenses"`
	LicensePublicDomain bool       `json:"license_public_domain"`
	Links               []linkJSON `json:"links"`
}

type linkJSON struct {
	Name      string `json:"name"`
	System    bool   `json:"system"`
	Framework bool   `json:"framework"`
}
