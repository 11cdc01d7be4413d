package pipeline

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/ThomasCrouzet/snapmatrix/internal/config"
	"github.com/ThomasCrouzet/snapmatrix/internal/model"
)

var multiSpace = regexp.MustCompile(` {2,}`)

// CreateData is the template context of a snapshot-creation step.
type CreateData struct {
	Family   string
	Instance string
	OS       string
	Kernel   string
}

// RestoreData is the template context of a restore step.
type RestoreData struct {
	model.TestPair
	TestFilter string
}

// Builder renders steps from the pipeline settings. Templates are parsed
// once in NewBuilder so a bad template is reported before any output.
type Builder struct {
	settings       config.PipelineConfig
	filterFor      func(instance string) string
	createLabel    *template.Template
	restoreLabel   *template.Template
	createCommands []*template.Template
	restoreCmds    []*template.Template
}

// NewBuilder parses every command and label template of cfg.
func NewBuilder(cfg *config.Config) (*Builder, error) {
	p := cfg.Pipeline
	b := &Builder{settings: p, filterFor: cfg.TestFilterFor}

	var err error
	if b.createLabel, err = parse("pipeline.create_step_label", p.CreateStepLabel); err != nil {
		return nil, err
	}
	if b.restoreLabel, err = parse("pipeline.restore_step_label", p.RestoreStepLabel); err != nil {
		return nil, err
	}
	for i, c := range p.CreateCommands {
		t, err := parse(fmt.Sprintf("pipeline.create_commands[%d]", i), c)
		if err != nil {
			return nil, err
		}
		b.createCommands = append(b.createCommands, t)
	}
	for i, c := range p.RestoreCommands {
		t, err := parse(fmt.Sprintf("pipeline.restore_commands[%d]", i), c)
		if err != nil {
			return nil, err
		}
		b.restoreCmds = append(b.restoreCmds, t)
	}
	return b, nil
}

func parse(field, text string) (*template.Template, error) {
	t, err := template.New(field).Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, &model.ConfigError{
			Field:      field,
			Message:    err.Error(),
			Suggestion: "templates use Go text/template syntax, e.g. {{ .SourceInstance }}",
		}
	}
	return t, nil
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", &model.ConfigError{
			Field:      t.Name(),
			Message:    err.Error(),
			Suggestion: "check the field names used in the template",
		}
	}
	return strings.TrimSpace(multiSpace.ReplaceAllString(buf.String(), " ")), nil
}

func executeAll(ts []*template.Template, data any) ([]string, error) {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		s, err := execute(t, data)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// RestoreStep renders the restore step of one test pair. The step runs on
// the destination agent.
func (b *Builder) RestoreStep(p model.TestPair) (CommandStep, error) {
	data := RestoreData{TestPair: p, TestFilter: b.filterFor(p.DestinationInstance)}

	label, err := execute(b.restoreLabel, data)
	if err != nil {
		return CommandStep{}, err
	}
	cmds, err := executeAll(b.restoreCmds, data)
	if err != nil {
		return CommandStep{}, err
	}
	return CommandStep{
		Label:   label,
		Command: cmds,
		Timeout: b.settings.Timeout,
		Agents: Agents{
			Instance: p.DestinationInstance,
			KV:       p.DestinationKernel,
			OS:       p.DestinationOS,
		},
	}, nil
}

// CreateStep renders the snapshot-creation step of one instance and platform.
func (b *Builder) CreateStep(family string, inst model.InstanceType, p model.Platform) (CommandStep, error) {
	data := CreateData{Family: family, Instance: string(inst), OS: p.OS, Kernel: p.Kernel}

	label, err := execute(b.createLabel, data)
	if err != nil {
		return CommandStep{}, err
	}
	cmds, err := executeAll(b.createCommands, data)
	if err != nil {
		return CommandStep{}, err
	}
	return CommandStep{
		Label:         label,
		Command:       cmds,
		Timeout:       b.settings.Timeout,
		Agents:        Agents{Instance: string(inst), KV: p.Kernel, OS: p.OS},
		ArtifactPaths: b.settings.ArtifactPaths,
	}, nil
}

// CreateSteps renders the creation phase for the given pairs. Families
// without pairs get no creation steps. With the "all" scope every instance
// and platform of the remaining families gets a step; with "sources" only
// the (instance, kernel) combinations some pair restores from do, on the
// first platform of the family carrying that kernel.
func (b *Builder) CreateSteps(cat *model.Catalog, pairs []model.TestPair) ([]CommandStep, error) {
	used := make(map[string]bool)
	sourceFamilies := make(map[string]bool)
	for _, p := range pairs {
		used[p.SourceInstance+"\x00"+p.SourceKernel] = true
		if fam, ok := cat.FamilyOf(model.InstanceType(p.SourceInstance)); ok {
			sourceFamilies[fam] = true
		}
	}

	steps := []CommandStep{}
	for _, fam := range cat.Families() {
		if !sourceFamilies[fam.Name] {
			continue
		}
		for _, inst := range fam.Instances {
			seenKernel := make(map[string]bool)
			for _, p := range fam.Platforms {
				if b.settings.CreateScope == "sources" {
					if seenKernel[p.Kernel] || !used[string(inst)+"\x00"+p.Kernel] {
						continue
					}
					seenKernel[p.Kernel] = true
				}
				step, err := b.CreateStep(fam.Name, inst, p)
				if err != nil {
					return nil, err
				}
				steps = append(steps, step)
			}
		}
	}
	return steps, nil
}

// Build assembles the full document: create group, wait, restore group.
// Without pairs there is nothing to create or restore and the document has
// no steps.
func (b *Builder) Build(cat *model.Catalog, pairs []model.TestPair) (*Pipeline, error) {
	if len(pairs) == 0 {
		return &Pipeline{Steps: []any{}}, nil
	}

	create, err := b.CreateSteps(cat, pairs)
	if err != nil {
		return nil, err
	}

	restore := make([]CommandStep, 0, len(pairs))
	for _, p := range pairs {
		step, err := b.RestoreStep(p)
		if err != nil {
			return nil, err
		}
		restore = append(restore, step)
	}

	return &Pipeline{
		Steps: []any{
			&GroupStep{Group: b.settings.CreateLabel, Steps: create},
			Wait,
			&GroupStep{Group: b.settings.RestoreLabel, Steps: restore},
		},
	}, nil
}
