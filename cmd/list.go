package cmd

import (
	"fmt"
	"os"

	"github.com/ThomasCrouzet/snapmatrix/internal/render"
	"github.com/spf13/cobra"
)

var (
	listFamily  string
	listExplain bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the test pairs as a table",
	Long: `Print every test pair the configured catalog produces, grouped by
family. With --explain, also show how many candidates each filter dropped.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listFamily, "family", "", "only list pairs for this architecture family")
	listCmd.Flags().BoolVar(&listExplain, "explain", false, "show per-filter rejection counts")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if listFamily != "" {
		cfg.Family = listFamily
	}

	cat, err := loadCatalog(cfg, false)
	if err != nil {
		return err
	}

	reports, err := explain(cat, cfg.Family)
	if err != nil {
		printConfigError("Unknown family", err)
		return err
	}

	in := &render.Input{Catalog: cat, Pairs: pairsOf(reports)}
	if listExplain {
		in.Reports = reports
	}

	r, err := render.Get("table")
	if err != nil {
		return err
	}
	out, err := r.Render(in, cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, string(out))
	return err
}
