// Package source assembles the capability catalog from the configured
// catalog sources and validates it.
package source

import (
	"fmt"

	"github.com/ThomasCrouzet/snapmatrix/internal/config"
	"github.com/ThomasCrouzet/snapmatrix/internal/logging"
	"github.com/ThomasCrouzet/snapmatrix/internal/model"
	"github.com/sirupsen/logrus"
)

// LoadResult holds the result of a single source run.
type LoadResult struct {
	Name    string
	Skipped bool
	Detail  string
	Err     error
}

// Build runs all enabled sources in registration order, merges what they
// provide and validates the result into a Catalog.
func Build(cfg *config.Config) (*model.Catalog, []LoadResult, error) {
	spec := model.CatalogSpec{KernelOrder: cfg.Catalog.KernelOrder}

	var results []LoadResult

	for _, s := range All() {
		meta := s.Metadata()

		if !s.Enabled(cfg) {
			results = append(results, LoadResult{Name: meta.DisplayName, Skipped: true})
			continue
		}

		if err := s.Configure(cfg); err != nil {
			serr := &SourceError{Source: meta.DisplayName, Err: err}
			results = append(results, LoadResult{Name: meta.DisplayName, Err: serr})
			return nil, results, serr
		}

		famBefore, instBefore := countSpec(spec)
		if err := s.Load(&spec); err != nil {
			serr := &SourceError{Source: meta.DisplayName, Err: err}
			results = append(results, LoadResult{Name: meta.DisplayName, Err: serr})
			return nil, results, serr
		}
		famAfter, instAfter := countSpec(spec)

		logging.WithFields(logrus.Fields{
			"source":    meta.Name,
			"families":  famAfter - famBefore,
			"instances": instAfter - instBefore,
		}).Debug("catalog source loaded")

		results = append(results, LoadResult{
			Name:   meta.DisplayName,
			Detail: fmt.Sprintf("(+%d families, +%d instances)", famAfter-famBefore, instAfter-instBefore),
		})
	}

	cat, err := model.NewCatalog(spec)
	if err != nil {
		return nil, results, err
	}
	return cat, results, nil
}

func countSpec(spec model.CatalogSpec) (families, instances int) {
	for _, f := range spec.Families {
		instances += len(f.Instances)
	}
	return len(spec.Families), instances
}
