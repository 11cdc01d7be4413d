package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ThomasCrouzet/snapmatrix/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Output    string         `mapstructure:"output"`
	Format    string         `mapstructure:"format" validate:"oneof=buildkite-json buildkite-yaml table d2"`
	Theme     string         `mapstructure:"theme" validate:"oneof=default dark monochrome ocean"`
	Direction string         `mapstructure:"direction" validate:"oneof=right down left up"`
	Family    string         `mapstructure:"family"`
	Catalog   CatalogConfig  `mapstructure:"catalog"`
	Pipeline  PipelineConfig `mapstructure:"pipeline"`
}

type CatalogConfig struct {
	KernelOrder   string                    `mapstructure:"kernel_order" validate:"omitempty,oneof=lexical semver"`
	File          string                    `mapstructure:"file"`
	Builtin       bool                      `mapstructure:"builtin"`
	Families      []model.FamilySpec        `mapstructure:"families"`
	Compatibility []model.CompatibilitySpec `mapstructure:"compatibility"`
}

type PipelineConfig struct {
	Timeout          int            `mapstructure:"timeout" validate:"min=1"`
	ArtifactPaths    string         `mapstructure:"artifact_paths" validate:"required"`
	CreateLabel      string         `mapstructure:"create_label" validate:"required"`
	RestoreLabel     string         `mapstructure:"restore_label" validate:"required"`
	CreateStepLabel  string         `mapstructure:"create_step_label" validate:"required"`
	RestoreStepLabel string         `mapstructure:"restore_step_label" validate:"required"`
	CreateScope      string         `mapstructure:"create_scope" validate:"oneof=all sources"`
	CreateCommands   []string       `mapstructure:"create_commands" validate:"required,min=1,dive,required"`
	RestoreCommands  []string       `mapstructure:"restore_commands" validate:"required,min=1,dive,required"`
	TestFilters      []TestFilter   `mapstructure:"test_filters" validate:"dive"`
	Upload           UploadSettings `mapstructure:"upload"`
}

// TestFilter is the test-selection argument passed to the restore harness
// when restoring on Instance.
type TestFilter struct {
	Instance string `mapstructure:"instance" validate:"required"`
	Filter   string `mapstructure:"filter"`
}

type UploadSettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Agent   string `mapstructure:"agent" validate:"required"`
}

var validate = validator.New()

// Default returns the configuration used when no config file overrides it.
func Default() *Config {
	return &Config{
		Output:    "pipeline.json",
		Format:    "buildkite-json",
		Theme:     "default",
		Direction: "right",
		Catalog: CatalogConfig{
			Builtin: true,
		},
		Pipeline: PipelineConfig{
			Timeout:          30,
			ArtifactPaths:    "snapshots/**/*",
			CreateLabel:      "📸 create snapshots",
			RestoreLabel:     "🎬 restore across instances and kernels",
			CreateStepLabel:  "📸 {{ .Instance }} {{ .OS }} {{ .Kernel }}",
			RestoreStepLabel: "🎬 {{ .SourceInstance }} {{ .SourceKernel }} ➡️ {{ .DestinationInstance }} {{ .DestinationKernel }}",
			CreateScope:      "all",
			CreateCommands:   DefaultCreateCommands(),
			RestoreCommands:  DefaultRestoreCommands(),
			TestFilters:      DefaultTestFilters(),
			Upload:           UploadSettings{Agent: "buildkite-agent"},
		},
	}
}

// DefaultCreateCommands builds the VMM, takes a snapshot and stores it under
// snapshots/<instance>_<kernel> for the restore steps to download.
func DefaultCreateCommands() []string {
	return []string{
		"./tools/devtool -y build --release",
		"./tools/devtool -y sh ./tools/create_snapshot_artifact/main.py",
		"mkdir -pv snapshots/{{ .Instance }}_{{ .Kernel }}",
		"sudo chown -Rc $USER: snapshot_artifacts",
		"mv -v snapshot_artifacts/* snapshots/{{ .Instance }}_{{ .Kernel }}",
	}
}

// DefaultRestoreCommands fetches a snapshot created on the source and runs
// the cross-kernel restore test against it.
func DefaultRestoreCommands() []string {
	return []string{
		"buildkite-agent artifact download snapshots/{{ .SourceInstance }}_{{ .SourceKernel }}/* .",
		"mv -v snapshots/{{ .SourceInstance }}_{{ .SourceKernel }} snapshot_artifacts",
		"./tools/devtool -y test -- -m nonci {{ .TestFilter }} integration_tests/functional/test_snapshot_restore_cross_kernel.py",
	}
}

func DefaultTestFilters() []TestFilter {
	return []TestFilter{
		{Instance: "c5n.metal", Filter: "-k 'not None'"},
		{Instance: "m5n.metal", Filter: "-k 'not None'"},
		{Instance: "m6i.metal", Filter: "-k 'not None'"},
		{Instance: "m6a.metal", Filter: ""},
	}
}

// Load reads the active viper configuration on top of Default and checks it.
func Load() (*Config, error) {
	cfg := Default()

	// Lists replace defaults instead of merging into them.
	for key, list := range map[string]*[]string{
		"pipeline.create_commands":  &cfg.Pipeline.CreateCommands,
		"pipeline.restore_commands": &cfg.Pipeline.RestoreCommands,
	} {
		if viper.IsSet(key) {
			*list = nil
		}
	}
	if viper.IsSet("pipeline.test_filters") {
		cfg.Pipeline.TestFilters = nil
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// An explicit catalog turns the built-in one off unless asked for.
	if !viper.IsSet("catalog.builtin") && (len(cfg.Catalog.Families) > 0 || cfg.Catalog.File != "") {
		cfg.Catalog.Builtin = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and returns them as model.ConfigErrors.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var errs []error
	for _, fe := range verrs {
		errs = append(errs, &model.ConfigError{
			Field:      fieldPath(fe.Namespace()),
			Message:    fmt.Sprintf("failed %q check (value %v)", fe.Tag(), fe.Value()),
			Suggestion: suggestionFor(fe),
		})
	}
	return errors.Join(errs...)
}

// TestFilterFor returns the configured test filter for a destination
// instance, or "" when none is configured.
func (c *Config) TestFilterFor(instance string) string {
	for _, tf := range c.Pipeline.TestFilters {
		if tf.Instance == instance {
			return tf.Filter
		}
	}
	return ""
}

// fieldPath turns "Config.Pipeline.TestFilters[0].Instance" into
// "pipeline.test_filters[0].instance".
func fieldPath(ns string) string {
	ns = strings.TrimPrefix(ns, "Config.")
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		parts[i] = snake(p)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] != '[' {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func suggestionFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return "use one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must be at least " + fe.Param()
	case "required":
		return "set a value or remove the key to use the default"
	}
	return ""
}
