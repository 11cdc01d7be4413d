package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ThomasCrouzet/snapmatrix/internal/logging"
	"github.com/ThomasCrouzet/snapmatrix/internal/model"
	"github.com/ThomasCrouzet/snapmatrix/internal/ui"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup loads content as the active config, resets command flags and
// captures status output.
func setup(t *testing.T, content string) *bytes.Buffer {
	t.Helper()
	viper.Reset()
	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(strings.NewReader(content)))

	cfgFile, configReadErr = "", nil
	outputFile, outputFormat, familyName, themeName, upload = "", "", "", "", false
	listFamily, listExplain = "", false

	var buf bytes.Buffer
	prevOut, prevFind, prevExec := ui.Out, findExecutable, execCommand
	ui.Out = &buf
	t.Cleanup(func() {
		viper.Reset()
		ui.Out, findExecutable, execCommand = prevOut, prevFind, prevExec
	})
	return &buf
}

func TestRunGenerateWritesPipeline(t *testing.T) {
	status := setup(t, "format: buildkite-json\n")
	outputFile = filepath.Join(t.TempDir(), "pipeline.json")

	require.NoError(t, runGenerate(generateCmd, nil))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var doc struct {
		Steps []json.RawMessage `json:"steps"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Steps, 3)

	assert.Contains(t, status.String(), "Reference catalog")
	assert.Contains(t, status.String(), "22 test pairs")
}

func TestRunGenerateFamilyFlag(t *testing.T) {
	setup(t, "format: d2\n")
	outputFile = filepath.Join(t.TempDir(), "graph.d2")
	familyName = "aarch64"

	require.NoError(t, runGenerate(generateCmd, nil))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "m7g-metal")
	assert.NotContains(t, string(data), "x86_64")
}

func TestRunGenerateUnknownFamily(t *testing.T) {
	setup(t, "")
	outputFile = filepath.Join(t.TempDir(), "pipeline.json")
	familyName = "riscv64"

	err := runGenerate(generateCmd, nil)
	require.Error(t, err)

	var ce *model.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "family", ce.Field)
	assert.NoFileExists(t, outputFile)
}

func TestRunGenerateRejectsBadFormatFlag(t *testing.T) {
	setup(t, "")
	outputFormat = "svg"

	err := runGenerate(generateCmd, nil)
	require.Error(t, err)
	assert.Equal(t, "format", model.ConfigErrors(err)[0].Field)
}

func TestRunGenerateUploadNeedsBuildkiteFormat(t *testing.T) {
	setup(t, "format: table\n")
	upload = true

	err := runGenerate(generateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot upload table output")
}

func TestUploadPipeline(t *testing.T) {
	status := setup(t, "")
	findExecutable = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	var gotArgs []string
	execCommand = func(name string, args ...string) *exec.Cmd {
		gotArgs = append([]string{name}, args...)
		return exec.Command("cat")
	}

	require.NoError(t, uploadPipeline("buildkite-agent", []byte(`{"steps":[]}`)))

	assert.Equal(t, []string{"/usr/bin/buildkite-agent", "pipeline", "upload"}, gotArgs)
	assert.Contains(t, status.String(), `{"steps":[]}`)
	assert.Contains(t, status.String(), "Pipeline uploaded")
}

func TestUploadPipelineMissingAgent(t *testing.T) {
	setup(t, "")
	findExecutable = func(string) (string, error) { return "", errors.New("not found") }

	err := uploadPipeline("buildkite-agent", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "buildkite-agent not found in PATH")
}

func TestRunValidate(t *testing.T) {
	status := setup(t, "")
	require.NoError(t, runValidate(validateCmd, nil))
	assert.Contains(t, status.String(), "0 errors")
	assert.Contains(t, status.String(), "2 families, 5 instances, lexical kernel order")
}

func TestRunValidateReportsCatalogErrors(t *testing.T) {
	status := setup(t, `catalog:
  compatibility:
    - source: m7g.metal
      destinations: [c5n.metal]
pipeline:
  restore_commands: ["{{ .SourceInstance"]
`)
	err := runValidate(validateCmd, nil)
	require.Error(t, err)
	assert.Equal(t, "2 validation errors", err.Error())
	assert.Contains(t, status.String(), "different families")
	assert.Contains(t, status.String(), "pipeline.restore_commands[0]")
}

func TestRunList(t *testing.T) {
	setup(t, "")
	listExplain = true
	require.NoError(t, runList(listCmd, nil))
}

func TestMalformedConfigFileFailsCommands(t *testing.T) {
	setup(t, "")
	dir := t.TempDir()
	cfgFile = filepath.Join(dir, "snapmatrix.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("format: [buildkite-json\noutput: -\n"), 0o644))
	outputFile = filepath.Join(dir, "pipeline.json")

	initConfig()
	require.Error(t, configReadErr)

	err := runGenerate(generateCmd, nil)
	require.Error(t, err)
	var ce *model.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "config", ce.Field)
	assert.Contains(t, ce.Suggestion, cfgFile)
	assert.NoFileExists(t, outputFile)

	status := &bytes.Buffer{}
	ui.Out = status
	err = runValidate(validateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, status.String(), "config")
	assert.Contains(t, status.String(), "0 checks passed, 1 errors")
}

func TestMissingDefaultConfigFileIsFine(t *testing.T) {
	setup(t, "")
	t.Chdir(t.TempDir())

	initConfig()
	assert.NoError(t, configReadErr)
}

func TestInitConfigVerboseLogsLoadedFile(t *testing.T) {
	setup(t, "")
	cfgFile = filepath.Join(t.TempDir(), "snapmatrix.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("format: table\n"), 0o644))

	var logs bytes.Buffer
	logging.SetOutput(&logs)
	verbose = true
	t.Cleanup(func() {
		verbose = false
		logging.SetVerbose(false)
		logging.SetOutput(os.Stderr)
	})

	initConfig()
	require.NoError(t, configReadErr)
	assert.Contains(t, logs.String(), "config loaded")
	assert.Contains(t, logs.String(), "snapmatrix.yml")
}

func TestRunGenerateFormatFlagNamesOutput(t *testing.T) {
	tests := []struct {
		format string
		file   string
	}{
		{"d2", "pipeline.d2"},
		{"table", "pipeline.txt"},
		{"buildkite-yaml", "pipeline.yml"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			setup(t, "")
			t.Chdir(t.TempDir())
			outputFormat = tt.format

			require.NoError(t, runGenerate(generateCmd, nil))
			assert.FileExists(t, tt.file)
			assert.NoFileExists(t, "pipeline.json")
		})
	}
}

func TestRunGenerateFormatFlagKeepsConfiguredOutput(t *testing.T) {
	setup(t, "output: matrix.out\n")
	t.Chdir(t.TempDir())
	outputFormat = "table"

	require.NoError(t, runGenerate(generateCmd, nil))
	assert.FileExists(t, "matrix.out")
	assert.NoFileExists(t, "pipeline.txt")
}

func TestRunGenerateWarnsOnThemeForPipeline(t *testing.T) {
	status := setup(t, "")
	outputFile = filepath.Join(t.TempDir(), "pipeline.json")
	themeName = "dark"

	require.NoError(t, runGenerate(generateCmd, nil))
	assert.Contains(t, status.String(), "--theme only applies to d2 output")
}
