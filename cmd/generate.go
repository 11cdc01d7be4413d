package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ThomasCrouzet/snapmatrix/internal/config"
	"github.com/ThomasCrouzet/snapmatrix/internal/render"
	"github.com/ThomasCrouzet/snapmatrix/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outputFile   string
	outputFormat string
	familyName   string
	themeName    string
	upload       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the snapshot-restore pipeline",
	Long: `Build the capability catalog, generate the test matrix and render it.

By default the result is a Buildkite pipeline written to pipeline.json;
with --format alone the file is named after the format, e.g. pipeline.d2.
Use -o - to write to stdout, and --upload to hand it to
'buildkite-agent pipeline upload'.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", `output file path, "-" for stdout`)
	generateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format: "+strings.Join(render.Names(), ", "))
	generateCmd.Flags().StringVar(&familyName, "family", "", "only generate pairs for this architecture family")
	generateCmd.Flags().StringVar(&themeName, "theme", "", "d2 color theme: "+strings.Join(render.ThemeNames(), ", "))
	generateCmd.Flags().BoolVar(&upload, "upload", false, "upload the pipeline with buildkite-agent")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		printConfigError("Invalid flags", err)
		return err
	}

	if themeName != "" && cfg.Format != "d2" {
		ui.Warn(fmt.Sprintf("--theme only applies to d2 output, ignored for %s", cfg.Format))
	}

	if cfg.Output == "-" {
		ui.Out = os.Stderr
		defer func() { ui.Out = os.Stdout }()
	}
	if cfg.Pipeline.Upload.Enabled && !strings.HasPrefix(cfg.Format, "buildkite-") {
		err := fmt.Errorf("cannot upload %s output", cfg.Format)
		fmt.Fprint(os.Stderr, ui.FormatError("Upload failed", err.Error(), "use --format buildkite-json or buildkite-yaml"))
		return err
	}

	fmt.Fprintln(ui.Out, ui.Bold("Loading catalog..."))
	cat, err := loadCatalog(cfg, true)
	if err != nil {
		return err
	}

	reports, err := explain(cat, cfg.Family)
	if err != nil {
		printConfigError("Unknown family", err)
		return err
	}
	for _, rep := range reports {
		fmt.Fprintln(ui.Out, "  "+ui.Summary(rep.Family, rep.Kept()))
	}
	pairs := pairsOf(reports)

	out, err := render.Render(&render.Input{Catalog: cat, Pairs: pairs}, cfg)
	if err != nil {
		printConfigError("Render failed", err)
		return err
	}

	if err := writeOutput(cfg.Output, out); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to write output", err.Error(), ""))
		return err
	}
	if cfg.Output != "-" {
		ui.Success(fmt.Sprintf("Generated %s (%d test pairs)", cfg.Output, len(pairs)))
	}

	if cfg.Pipeline.Upload.Enabled {
		if err := uploadPipeline(cfg.Pipeline.Upload.Agent, out); err != nil {
			fmt.Fprint(os.Stderr, ui.FormatError("Upload failed", err.Error(), "check that buildkite-agent runs inside a Buildkite job"))
			return err
		}
	}

	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if outputFile != "" {
		cfg.Output = outputFile
	}
	if outputFormat != "" {
		cfg.Format = outputFormat
		// The built-in output name follows the format it was asked for.
		if outputFile == "" && !viper.IsSet("output") {
			if r, err := render.Get(outputFormat); err == nil {
				cfg.Output = "pipeline" + r.Metadata().Extension
			}
		}
	}
	if familyName != "" {
		cfg.Family = familyName
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if upload {
		cfg.Pipeline.Upload.Enabled = true
	}
}

func writeOutput(path string, content []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(content)
		return err
	}
	return os.WriteFile(path, content, 0644)
}

// uploadPipeline pipes the rendered document into
// `buildkite-agent pipeline upload`.
func uploadPipeline(agent string, doc []byte) error {
	agentPath, err := findExecutable(agent)
	if err != nil {
		return fmt.Errorf("%s not found in PATH", agent)
	}

	cmd := execCommand(agentPath, "pipeline", "upload")
	cmd.Stdin = bytes.NewReader(doc)
	cmd.Stdout = ui.Out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pipeline upload failed: %w", err)
	}

	ui.Success("Pipeline uploaded")
	return nil
}
