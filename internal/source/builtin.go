package source

import (
	"github.com/ThomasCrouzet/snapmatrix/internal/config"
	"github.com/ThomasCrouzet/snapmatrix/internal/model"
)

func init() {
	Register(func() RegisteredSource { return &BuiltinSource{} })
}

// BuiltinSource provides the reference metal-instance catalog.
type BuiltinSource struct{}

func (bs *BuiltinSource) Metadata() SourceMetadata {
	return SourceMetadata{
		Name:        "builtin",
		DisplayName: "Reference catalog",
		Description: "Built-in x86_64 and aarch64 metal instances on Amazon Linux kernels",
		ConfigKey:   "catalog.builtin",
	}
}

func (bs *BuiltinSource) Enabled(cfg *config.Config) bool {
	return cfg.Catalog.Builtin
}

func (bs *BuiltinSource) Configure(cfg *config.Config) error {
	return nil
}

func (bs *BuiltinSource) Validate() []*model.ConfigError {
	return nil
}

func (bs *BuiltinSource) Load(spec *model.CatalogSpec) error {
	ref := model.ReferenceSpec()
	// The reference data sorts correctly under either order.
	ref.KernelOrder = ""
	return Merge(spec, ref)
}
