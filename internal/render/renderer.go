// Package render turns a generated test matrix into an output document.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ThomasCrouzet/snapmatrix/internal/config"
	"github.com/ThomasCrouzet/snapmatrix/internal/matrix"
	"github.com/ThomasCrouzet/snapmatrix/internal/model"
)

// Input is what every renderer works from.
type Input struct {
	Catalog *model.Catalog
	Pairs   []model.TestPair
	// Reports is set when filter rejection counts should be shown.
	Reports []matrix.Report
}

// Renderer defines the interface for output generators.
type Renderer interface {
	Metadata() Metadata
	Render(in *Input, cfg *config.Config) ([]byte, error)
}

// Metadata describes a renderer for lookup and help text.
type Metadata struct {
	Name        string // format key, e.g. "buildkite-json"
	DisplayName string
	Extension   string // default output file extension
}

// RenderError wraps an error with the name of the renderer that caused it.
type RenderError struct {
	Renderer string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Renderer, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

var registry = map[string]func() Renderer{}

// Register adds a renderer factory under its format name.
func Register(factory func() Renderer) {
	registry[factory().Metadata().Name] = factory
}

// Get returns a fresh renderer for the format name.
func Get(name string) (Renderer, error) {
	f, ok := registry[name]
	if !ok {
		return nil, &model.ConfigError{
			Field:      "format",
			Message:    fmt.Sprintf("unknown format %q", name),
			Suggestion: "use one of: " + strings.Join(Names(), ", "),
		}
	}
	return f(), nil
}

// Names returns every registered format name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render looks up the configured format and renders in with it.
func Render(in *Input, cfg *config.Config) ([]byte, error) {
	r, err := Get(cfg.Format)
	if err != nil {
		return nil, err
	}
	out, err := r.Render(in, cfg)
	if err != nil {
		return nil, &RenderError{Renderer: r.Metadata().DisplayName, Err: err}
	}
	return out, nil
}
