package app

import (
	"strconv"
	"strings"
	"text/template"
)

// projectTemplate holds the data rendered into new project files.
type projectTemplate struct {
	Name       string
	Code       string
	PipInstall []string
}

var templateFuncs = template.FuncMap{
	"hcl": hclString,
}

var configTemplate = template.Must(template.New("pyembed.hcl").Funcs(templateFuncs).Parse(`build {
  application_name = {{ hcl .Name }}
}

# python_distribution {
#   local_path = "cpython-linux64.tar.zst"
# }

embedded_python {
  raw_allocator  = target == "x86_64-pc-windows-msvc" ? "system" : "jemalloc"
  optimize_level = 0
{{- if .PipInstall }}
  pip_install    = [{{ range $i, $p := .PipInstall }}{{ if $i }}, {{ end }}{{ hcl $p }}{{ end }}]
{{- end }}
}

run {
{{- if .Code }}
  mode = "eval"
  code = {{ hcl .Code }}
{{- else }}
  mode = "repl"
{{- end }}
}
`))

var buildScriptTemplate = template.Must(template.New("build.rs").Parse(`use std::process::Command;

fn main() {
    let status = Command::new("pyembed")
        .arg("run-build-script")
        .arg("build.rs")
        .status()
        .expect("unable to run pyembed");

    if !status.success() {
        panic!("pyembed run-build-script failed");
    }
}
`))

var mainTemplate = template.Must(template.New("main.rs").Parse(`// Generated by pyembed init for {{ .Name }}.

const EMBEDDED_CONFIG: &str = include_str!(env!("PYEMBED_EMBEDDED_CONFIG"));

fn main() {
    if std::env::var_os("PYEMBED_PRINT_CONFIG").is_some() {
        println!("{}", EMBEDDED_CONFIG);
    }
}
`))

// cargoFeatures is appended to the generated Cargo.toml so allocator
// selection can toggle the jemalloc feature.
const cargoFeatures = `
[features]
default = []
jemalloc = []
`

// hclString quotes s as an HCL string literal. Template sequences are
// escaped so the value is taken literally.
func hclString(s string) string {
	q := strconv.Quote(s)
	q = strings.ReplaceAll(q, "${", "$${")
	return strings.ReplaceAll(q, "%{", "%%{")
}
