package wizard

import (
	"os"
	"os/exec"
	"path/filepath"
)

// DetectionResult holds what was auto-detected in the working directory.
type DetectionResult struct {
	BuildkiteDir  bool   // .buildkite/ exists
	AgentPath     string // buildkite-agent binary, empty when not on PATH
	CatalogFiles  []string
	PipelineFiles []string
}

// Detector abstracts filesystem and path lookups for testing.
type Detector interface {
	LookPath(name string) (string, error)
	Stat(path string) (os.FileInfo, error)
	Glob(pattern string) ([]string, error)
}

// OSDetector uses the real OS for detection.
type OSDetector struct{}

func (OSDetector) LookPath(name string) (string, error) { return exec.LookPath(name) }
func (OSDetector) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }
func (OSDetector) Glob(pattern string) ([]string, error) { return filepath.Glob(pattern) }

var catalogPaths = []string{
	"catalog.yml",
	"catalog.yaml",
	".buildkite/catalog.yml",
	".buildkite/catalog.yaml",
}

// Detect scans the environment for an existing Buildkite setup.
func Detect(d Detector) DetectionResult {
	if d == nil {
		d = OSDetector{}
	}

	result := DetectionResult{}

	if info, err := d.Stat(".buildkite"); err == nil && info.IsDir() {
		result.BuildkiteDir = true
	}

	if p, err := d.LookPath("buildkite-agent"); err == nil {
		result.AgentPath = p
	}

	for _, p := range catalogPaths {
		if info, err := d.Stat(p); err == nil && !info.IsDir() {
			result.CatalogFiles = append(result.CatalogFiles, p)
		}
	}

	if result.BuildkiteDir {
		for _, pattern := range []string{".buildkite/*.yml", ".buildkite/*.yaml", ".buildkite/*.json"} {
			matches, err := d.Glob(pattern)
			if err != nil {
				continue
			}
			for _, m := range matches {
				if !contains(result.CatalogFiles, m) {
					result.PipelineFiles = append(result.PipelineFiles, m)
				}
			}
		}
	}

	return result
}

// DefaultOutput is where the pipeline goes when the user does not say.
func (d DetectionResult) DefaultOutput() string {
	if d.BuildkiteDir {
		return ".buildkite/snapshot-restore.json"
	}
	return "pipeline.json"
}
