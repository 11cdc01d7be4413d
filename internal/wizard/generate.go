package wizard

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/ThomasCrouzet/snapmatrix/internal/model"
)

// Relation presets offered by the wizard.
const (
	RelationReference = "reference" // the reference allow-list, restricted to the selection
	RelationNone      = "none"      // in-place kernel upgrades only
)

// WizardAnswers holds all user responses from the wizard.
type WizardAnswers struct {
	Instances   []string
	Relation    string
	KernelOrder string
	CatalogFile string // use this file instead of an inline catalog

	Output string
	Format string
	Theme  string
	Upload bool
}

type templateData struct {
	WizardAnswers
	Families      []model.FamilySpec
	Compatibility []model.CompatibilitySpec
}

const configTemplate = `# snapmatrix configuration
# Generated by "snapmatrix init". Run "snapmatrix validate" after editing.

output: {{ .Output | quote }}
format: {{ .Format }}
{{- if eq .Format "d2" }}
theme: {{ .Theme | quote }}
{{- end }}

catalog:
  kernel_order: {{ .KernelOrder }}
{{- if .CatalogFile }}
  file: {{ .CatalogFile | quote }}
{{- else }}
  families:
{{- range .Families }}
    - name: {{ .Name }}
      instances: [{{ join ", " .Instances }}]
      platforms:
{{- range .Platforms }}
        - {os: {{ .OS }}, kernel: {{ .Kernel }}}
{{- end }}
{{- end }}
{{- if .Compatibility }}
  compatibility:
{{- range .Compatibility }}
    - source: {{ .Source }}
      destinations: [{{ join ", " .Destinations }}]
{{- end }}
{{- end }}
{{- end }}

pipeline:
  timeout: 30
  upload:
    enabled: {{ .Upload }}
`

// SelectCatalog restricts the reference catalog to the selected instances.
// Families left without instances are dropped. With RelationNone the
// compatibility relation is empty.
func SelectCatalog(instances []string, relation string) ([]model.FamilySpec, []model.CompatibilitySpec) {
	ref := model.ReferenceSpec()

	var families []model.FamilySpec
	for _, f := range ref.Families {
		var kept []string
		for _, inst := range f.Instances {
			if contains(instances, inst) {
				kept = append(kept, inst)
			}
		}
		if len(kept) == 0 {
			continue
		}
		f.Instances = kept
		families = append(families, f)
	}

	if relation == RelationNone {
		return families, nil
	}

	var compat []model.CompatibilitySpec
	for _, c := range ref.Compatibility {
		if !contains(instances, c.Source) {
			continue
		}
		var dsts []string
		for _, d := range c.Destinations {
			if contains(instances, d) {
				dsts = append(dsts, d)
			}
		}
		if len(dsts) > 0 {
			compat = append(compat, model.CompatibilitySpec{Source: c.Source, Destinations: dsts})
		}
	}
	return families, compat
}

// GenerateConfig renders the YAML config from wizard answers.
func GenerateConfig(answers WizardAnswers) (string, error) {
	if answers.Output == "" {
		answers.Output = "pipeline.json"
	}
	if answers.Format == "" {
		answers.Format = "buildkite-json"
	}
	if answers.Theme == "" {
		answers.Theme = "default"
	}
	if answers.KernelOrder == "" {
		answers.KernelOrder = model.KernelOrderLexical
	}
	if answers.Relation == "" {
		answers.Relation = RelationReference
	}

	data := templateData{WizardAnswers: answers}
	if answers.CatalogFile == "" {
		data.Families, data.Compatibility = SelectCatalog(answers.Instances, answers.Relation)
	}

	tmpl, err := template.New("config").Funcs(sprig.TxtFuncMap()).Parse(configTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
