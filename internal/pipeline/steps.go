// Package pipeline turns a generated test matrix into a CI pipeline
// document: a group of snapshot-creation steps, a wait barrier, then a group
// of restore steps. No restore step may start before every creation step
// has finished, and the wait step is what asks the CI scheduler for that.
package pipeline

// Wait is the barrier step between the create and restore groups.
const Wait = "wait"

// Pipeline is the document uploaded to the CI orchestrator. Steps holds
// *GroupStep values and the Wait string.
type Pipeline struct {
	Steps []any `json:"steps" yaml:"steps"`
}

// GroupStep is a labeled group of command steps.
type GroupStep struct {
	Group string        `json:"group" yaml:"group"`
	Steps []CommandStep `json:"steps" yaml:"steps"`
}

// CommandStep is one executable unit scheduled on an agent.
type CommandStep struct {
	Label         string   `json:"label" yaml:"label"`
	Command       []string `json:"command" yaml:"command"`
	Timeout       int      `json:"timeout_in_minutes" yaml:"timeout_in_minutes"`
	Agents        Agents   `json:"agents" yaml:"agents"`
	ArtifactPaths string   `json:"artifact_paths,omitempty" yaml:"artifact_paths,omitempty"`
}

// Agents selects the CI agent by instance type, kernel and OS.
type Agents struct {
	Instance string `json:"instance" yaml:"instance"`
	KV       string `json:"kv" yaml:"kv"`
	OS       string `json:"os" yaml:"os"`
}

// Groups returns the group steps of the pipeline in order.
func (p *Pipeline) Groups() []*GroupStep {
	var out []*GroupStep
	for _, s := range p.Steps {
		if g, ok := s.(*GroupStep); ok {
			out = append(out, g)
		}
	}
	return out
}

// StepCount returns the number of command steps across all groups.
func (p *Pipeline) StepCount() int {
	n := 0
	for _, g := range p.Groups() {
		n += len(g.Steps)
	}
	return n
}
