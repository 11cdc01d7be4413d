package cmd

import (
	"fmt"

	"github.com/ThomasCrouzet/snapmatrix/internal/config"
	"github.com/ThomasCrouzet/snapmatrix/internal/model"
	"github.com/ThomasCrouzet/snapmatrix/internal/pipeline"
	"github.com/ThomasCrouzet/snapmatrix/internal/source"
	"github.com/ThomasCrouzet/snapmatrix/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate your snapmatrix.yml configuration",
	Long: `Check that the configuration is well formed, every catalog source
loads, the merged catalog is consistent and every pipeline template parses.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

type checkCounter struct {
	passed, failed int
}

func (c *checkCounter) ok(field, detail string) {
	ui.ValidationOK(field, detail)
	c.passed++
}

func (c *checkCounter) fail(err error) {
	for _, ce := range model.ConfigErrors(err) {
		c.failOne(ce)
	}
}

func (c *checkCounter) failOne(ce *model.ConfigError) {
	field := ce.Field
	if field == "" {
		field = "error"
	}
	ui.ValidationErr(field, ce.Message, ce.Suggestion)
	c.failed++
}

func runValidate(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(ui.Out, ui.Bold("Validating snapmatrix.yml..."))

	var checks checkCounter
	defer func() {
		fmt.Fprintln(ui.Out)
		if checks.failed == 0 {
			ui.Success(fmt.Sprintf("%d checks passed, 0 errors", checks.passed))
		} else {
			fmt.Fprintf(ui.Out, "%d checks passed, %d errors\n", checks.passed, checks.failed)
		}
	}()

	if configReadErr != nil {
		checks.fail(configReadErr)
		return fmt.Errorf("%d validation errors", checks.failed)
	}
	cfg, err := config.Load()
	if err != nil {
		checks.fail(err)
		return fmt.Errorf("%d validation errors", checks.failed)
	}
	checks.ok("config", "fields valid")

	sourcesOK := true
	for _, s := range source.All() {
		meta := s.Metadata()
		if !s.Enabled(cfg) {
			continue
		}
		if err := s.Configure(cfg); err != nil {
			checks.fail(err)
			sourcesOK = false
			continue
		}
		errs := s.Validate()
		if len(errs) == 0 {
			checks.ok(meta.DisplayName, "source valid")
			continue
		}
		sourcesOK = false
		for _, ve := range errs {
			checks.failOne(ve)
		}
	}

	if sourcesOK {
		cat, _, err := source.Build(cfg)
		if err != nil {
			checks.fail(err)
		} else {
			instances := 0
			for _, f := range cat.Families() {
				instances += len(f.Instances)
			}
			checks.ok("catalog", fmt.Sprintf("%d families, %d instances, %s kernel order",
				len(cat.Families()), instances, cat.KernelOrder().Name()))
		}
	}

	if _, err := pipeline.NewBuilder(cfg); err != nil {
		checks.fail(err)
	} else {
		checks.ok("pipeline", "templates parse")
	}

	if cfg.Pipeline.Upload.Enabled {
		if path, err := findExecutable(cfg.Pipeline.Upload.Agent); err != nil {
			checks.failOne(&model.ConfigError{
				Field:      "pipeline.upload.agent",
				Message:    fmt.Sprintf("%s not found in PATH", cfg.Pipeline.Upload.Agent),
				Suggestion: "install buildkite-agent or disable pipeline.upload.enabled",
			})
		} else {
			checks.ok("pipeline.upload.agent", path)
		}
	}

	if checks.failed > 0 {
		return fmt.Errorf("%d validation errors", checks.failed)
	}
	return nil
}
