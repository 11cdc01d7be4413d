package source

import (
	"github.com/ThomasCrouzet/snapmatrix/internal/config"
	"github.com/ThomasCrouzet/snapmatrix/internal/model"
)

func init() {
	Register(func() RegisteredSource { return &InlineSource{} })
}

// InlineSource takes families and compatibility entries written directly
// under the catalog key of snapmatrix.yml.
type InlineSource struct {
	Families      []model.FamilySpec
	Compatibility []model.CompatibilitySpec

	// set when another source provides families to extend
	extends bool
}

func (is *InlineSource) Metadata() SourceMetadata {
	return SourceMetadata{
		Name:        "inline",
		DisplayName: "Inline catalog",
		Description: "Families and compatibility declared in snapmatrix.yml",
		ConfigKey:   "catalog.families",
	}
}

func (is *InlineSource) Enabled(cfg *config.Config) bool {
	return len(cfg.Catalog.Families) > 0 || len(cfg.Catalog.Compatibility) > 0
}

func (is *InlineSource) Configure(cfg *config.Config) error {
	is.Families = cfg.Catalog.Families
	is.Compatibility = cfg.Catalog.Compatibility
	is.extends = cfg.Catalog.Builtin || cfg.Catalog.File != ""
	return nil
}

func (is *InlineSource) Validate() []*model.ConfigError {
	var errs []*model.ConfigError
	if len(is.Families) == 0 && len(is.Compatibility) > 0 && !is.extends {
		errs = append(errs, &model.ConfigError{
			Field:      "catalog.compatibility",
			Message:    "compatibility entries without inline families",
			Suggestion: "declare catalog.families, set catalog.file, or enable catalog.builtin",
		})
	}
	return errs
}

func (is *InlineSource) Load(spec *model.CatalogSpec) error {
	return Merge(spec, model.CatalogSpec{
		Families:      is.Families,
		Compatibility: is.Compatibility,
	})
}
