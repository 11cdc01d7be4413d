package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ThomasCrouzet/snapmatrix/internal/model"
	"github.com/ThomasCrouzet/snapmatrix/internal/render"
	"github.com/charmbracelet/huh"
)

// Run executes the interactive wizard and returns the user's answers.
func Run(detection DetectionResult) (*WizardAnswers, error) {
	answers := &WizardAnswers{
		Relation:    RelationReference,
		KernelOrder: model.KernelOrderLexical,
		Output:      detection.DefaultOutput(),
		Format:      "buildkite-json",
		Theme:       "default",
		Upload:      detection.AgentPath != "",
	}

	var hints []string
	if detection.BuildkiteDir {
		hints = append(hints, ".buildkite/ found")
	}
	if detection.AgentPath != "" {
		hints = append(hints, fmt.Sprintf("buildkite-agent found: %s", detection.AgentPath))
	}
	if len(detection.PipelineFiles) > 0 {
		hints = append(hints, fmt.Sprintf("Pipelines found: %s", strings.Join(detection.PipelineFiles, ", ")))
	}

	// Step 1: catalog
	useCatalogFile := false
	var groups []*huh.Group

	if len(detection.CatalogFiles) > 0 {
		answers.CatalogFile = detection.CatalogFiles[0]
		groups = append(groups, huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Use the catalog in %s?", answers.CatalogFile)).
				Description("Otherwise pick instances from the reference catalog.").
				Value(&useCatalogFile),
		))
		if err := huh.NewForm(groups...).Run(); err != nil {
			return nil, err
		}
		if !useCatalogFile {
			answers.CatalogFile = ""
		}
		groups = nil
	}

	if !useCatalogFile {
		desc := "Instances whose snapshots are created and restored."
		if len(hints) > 0 {
			desc += "\n\nAuto-detected:\n  " + strings.Join(hints, "\n  ")
		}

		var options []huh.Option[string]
		for _, f := range model.ReferenceSpec().Families {
			for _, inst := range f.Instances {
				options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", inst, f.Name), inst).Selected(true))
			}
		}

		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which instance types do you test on?").
				Description(desc).
				Options(options...).
				Validate(func(v []string) error {
					if len(v) == 0 {
						return errors.New("select at least one instance type")
					}
					return nil
				}).
				Value(&answers.Instances),
			huh.NewSelect[string]().
				Title("Cross-instance compatibility").
				Options(
					huh.NewOption("Reference allow-list", RelationReference),
					huh.NewOption("None: in-place kernel upgrades only", RelationNone),
				).
				Value(&answers.Relation),
			huh.NewSelect[string]().
				Title("Kernel ordering").
				Options(
					huh.NewOption("Lexical (linux_5.10 < linux_6.1)", model.KernelOrderLexical),
					huh.NewOption("Semantic version (handles linux_10.0)", model.KernelOrderSemver),
				).
				Value(&answers.KernelOrder),
		))
	}

	// Step 2: output
	var formats []huh.Option[string]
	for _, name := range render.Names() {
		formats = append(formats, huh.NewOption(name, name))
	}
	output := []huh.Field{
		huh.NewSelect[string]().
			Title("Output format").
			Options(formats...).
			Value(&answers.Format),
		huh.NewInput().
			Title("Output file").
			Description(`Use "-" for stdout`).
			Value(&answers.Output),
	}
	if detection.AgentPath != "" {
		output = append(output, huh.NewConfirm().
			Title("Upload the pipeline with buildkite-agent after generating?").
			Value(&answers.Upload))
	}
	groups = append(groups, huh.NewGroup(output...))

	if err := huh.NewForm(groups...).Run(); err != nil {
		return nil, err
	}

	return answers, nil
}

func contains(s []string, v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}
