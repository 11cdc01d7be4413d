package source

import (
	"github.com/ThomasCrouzet/snapmatrix/internal/config"
	"github.com/ThomasCrouzet/snapmatrix/internal/model"
)

// RegisteredSource defines the interface for self-registering catalog sources.
type RegisteredSource interface {
	Metadata() SourceMetadata
	Enabled(cfg *config.Config) bool
	Configure(cfg *config.Config) error
	Validate() []*model.ConfigError
	Load(spec *model.CatalogSpec) error
}

// SourceMetadata describes a source for discovery and documentation.
type SourceMetadata struct {
	Name        string // internal key, e.g. "file"
	DisplayName string // human-readable, e.g. "Catalog file"
	Description string // one-line description
	ConfigKey   string // config key that enables it, e.g. "catalog.file"
	DetectHint  string // filesystem hint for auto-detection, e.g. "catalog.yml"
}

var registry []func() RegisteredSource

// Register adds a source factory to the global registry.
// Each source calls this in its init().
func Register(factory func() RegisteredSource) {
	registry = append(registry, factory)
}

// All returns fresh instances of every registered source.
func All() []RegisteredSource {
	out := make([]RegisteredSource, len(registry))
	for i, f := range registry {
		out[i] = f()
	}
	return out
}
