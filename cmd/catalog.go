package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ThomasCrouzet/snapmatrix/internal/config"
	"github.com/ThomasCrouzet/snapmatrix/internal/logging"
	"github.com/ThomasCrouzet/snapmatrix/internal/matrix"
	"github.com/ThomasCrouzet/snapmatrix/internal/model"
	"github.com/ThomasCrouzet/snapmatrix/internal/source"
	"github.com/ThomasCrouzet/snapmatrix/internal/ui"
	"github.com/sirupsen/logrus"
)

// printConfigError writes err to stderr, one block per ConfigError.
func printConfigError(title string, err error) {
	for _, ce := range model.ConfigErrors(err) {
		detail := ce.Message
		if ce.Field != "" {
			detail = ce.Field + ": " + ce.Message
		}
		fmt.Fprint(os.Stderr, ui.FormatError(title, detail, ce.Suggestion))
	}
}

func loadConfig() (*config.Config, error) {
	if configReadErr != nil {
		printConfigError("Invalid configuration", configReadErr)
		return nil, configReadErr
	}
	cfg, err := config.Load()
	if err != nil {
		printConfigError("Invalid configuration", err)
		return nil, err
	}
	return cfg, nil
}

// loadCatalog builds the catalog and prints one status line per source
// when report is set.
func loadCatalog(cfg *config.Config, report bool) (*model.Catalog, error) {
	cat, results, err := source.Build(cfg)
	if report {
		for _, r := range results {
			switch {
			case r.Skipped:
				ui.SourceSkipped(r.Name)
			case r.Err != nil:
				ui.SourceFailed(r.Name, r.Err)
			default:
				ui.SourceDone(r.Name, r.Detail)
			}
		}
	}
	if err != nil {
		printConfigError("Invalid catalog", err)
		return nil, err
	}
	return cat, nil
}

// explain runs the matrix for one family, or all of them when family is
// empty, and logs what each filter dropped.
func explain(cat *model.Catalog, family string) ([]matrix.Report, error) {
	var reports []matrix.Report
	if family == "" {
		reports = matrix.ExplainAll(cat)
	} else {
		rep, err := matrix.Explain(cat, family)
		if err != nil {
			return nil, &model.ConfigError{
				Field:      "family",
				Message:    err.Error(),
				Suggestion: "use one of: " + strings.Join(cat.FamilyNames(), ", "),
			}
		}
		reports = []matrix.Report{rep}
	}

	for _, rep := range reports {
		fields := logrus.Fields{"family": rep.Family, "candidates": rep.Candidates, "pairs": rep.Kept()}
		for _, rej := range rep.Rejected {
			fields[rej.Filter] = rej.Count
		}
		logging.WithFields(fields).Debug("matrix generated")
	}
	return reports, nil
}

func pairsOf(reports []matrix.Report) []model.TestPair {
	var pairs []model.TestPair
	for _, rep := range reports {
		pairs = append(pairs, rep.Pairs...)
	}
	return pairs
}
