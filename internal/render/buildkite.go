package render

import (
	"bytes"
	"encoding/json"

	"github.com/ThomasCrouzet/snapmatrix/internal/config"
	"github.com/ThomasCrouzet/snapmatrix/internal/pipeline"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(func() Renderer { return &BuildkiteJSON{} })
	Register(func() Renderer { return &BuildkiteYAML{} })
}

func buildPipeline(in *Input, cfg *config.Config) (*pipeline.Pipeline, error) {
	b, err := pipeline.NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	return b.Build(in.Catalog, in.Pairs)
}

// BuildkiteJSON renders the pipeline as indented JSON, the format
// `buildkite-agent pipeline upload` reads from stdin.
type BuildkiteJSON struct{}

func (r *BuildkiteJSON) Metadata() Metadata {
	return Metadata{Name: "buildkite-json", DisplayName: "Buildkite pipeline (JSON)", Extension: ".json"}
}

func (r *BuildkiteJSON) Render(in *Input, cfg *config.Config) ([]byte, error) {
	p, err := buildPipeline(in, cfg)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildkiteYAML renders the same document as YAML.
type BuildkiteYAML struct{}

func (r *BuildkiteYAML) Metadata() Metadata {
	return Metadata{Name: "buildkite-yaml", DisplayName: "Buildkite pipeline (YAML)", Extension: ".yml"}
}

func (r *BuildkiteYAML) Render(in *Input, cfg *config.Config) ([]byte, error) {
	p, err := buildPipeline(in, cfg)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
