package source

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ThomasCrouzet/snapmatrix/internal/config"
	"github.com/ThomasCrouzet/snapmatrix/internal/model"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(func() RegisteredSource { return &FileSource{} })
}

// FileSource reads a standalone catalog YAML file:
//
//	kernel_order: lexical
//	families:
//	  - name: x86_64
//	    instances: [c5n.metal]
//	    platforms: [{os: al2023, kernel: linux_6.1}]
//	compatibility:
//	  - source: c5n.metal
//	    destinations: [m5n.metal]
type FileSource struct {
	Path string
}

func (fs *FileSource) Metadata() SourceMetadata {
	return SourceMetadata{
		Name:        "file",
		DisplayName: "Catalog file",
		Description: "Reads families and the compatibility relation from a YAML file",
		ConfigKey:   "catalog.file",
		DetectHint:  "catalog.yml",
	}
}

func (fs *FileSource) Enabled(cfg *config.Config) bool {
	return cfg.Catalog.File != ""
}

func (fs *FileSource) Configure(cfg *config.Config) error {
	fs.Path = cfg.Catalog.File
	return nil
}

func (fs *FileSource) Validate() []*model.ConfigError {
	var errs []*model.ConfigError
	if fs.Path == "" {
		return nil
	}
	if _, err := fs.parse(); err != nil {
		errs = append(errs, &model.ConfigError{
			Field:      "catalog.file",
			Message:    err.Error(),
			Suggestion: "check the path, or run 'snapmatrix init' to write a fresh catalog",
		})
	}
	return errs
}

func (fs *FileSource) Load(spec *model.CatalogSpec) error {
	if fs.Path == "" {
		return nil
	}
	loaded, err := fs.parse()
	if err != nil {
		return err
	}
	return Merge(spec, loaded)
}

func (fs *FileSource) parse() (model.CatalogSpec, error) {
	var spec model.CatalogSpec
	data, err := os.ReadFile(fs.Path)
	if err != nil {
		return spec, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return spec, fmt.Errorf("parsing %s: %w", fs.Path, err)
	}
	return spec, nil
}
