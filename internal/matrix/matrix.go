// Package matrix generates the snapshot-restore test matrix from a catalog.
//
// The matrix is the Cartesian product of (source instance, source platform,
// destination instance, destination platform) within one architecture
// family, passed through an ordered list of filters. Output order follows
// the product: source-instance-major, then source platform, then
// destination instance, then destination platform. Rendered pipelines are
// reviewed by humans, so that order is part of the contract.
package matrix

import (
	"fmt"

	"github.com/ThomasCrouzet/snapmatrix/internal/model"
)

// Candidate is one element of a family's Cartesian product.
type Candidate struct {
	Source              model.InstanceType
	SourcePlatform      model.Platform
	Destination         model.InstanceType
	DestinationPlatform model.Platform
}

// Pair converts the candidate to the TestPair handed to renderers.
func (c Candidate) Pair() model.TestPair {
	return model.TestPair{
		SourceInstance:      string(c.Source),
		SourceKernel:        c.SourcePlatform.Kernel,
		DestinationInstance: string(c.Destination),
		DestinationOS:       c.DestinationPlatform.OS,
		DestinationKernel:   c.DestinationPlatform.Kernel,
	}
}

// Candidates enumerates the family's product in contract order.
func Candidates(f model.Family) []Candidate {
	out := make([]Candidate, 0, len(f.Instances)*len(f.Platforms)*len(f.Instances)*len(f.Platforms))
	for _, src := range f.Instances {
		for _, sp := range f.Platforms {
			for _, dst := range f.Instances {
				for _, dp := range f.Platforms {
					out = append(out, Candidate{
						Source:              src,
						SourcePlatform:      sp,
						Destination:         dst,
						DestinationPlatform: dp,
					})
				}
			}
		}
	}
	return out
}

// Generate returns the test pairs of one family.
func Generate(cat *model.Catalog, family string) ([]model.TestPair, error) {
	f, ok := cat.Family(family)
	if !ok {
		return nil, fmt.Errorf("unknown family %q", family)
	}
	return run(Candidates(f), DefaultFilters(cat)).Pairs, nil
}

// GenerateAll concatenates the pairs of every family in catalog order.
func GenerateAll(cat *model.Catalog) []model.TestPair {
	var out []model.TestPair
	filters := DefaultFilters(cat)
	for _, f := range cat.Families() {
		out = append(out, run(Candidates(f), filters).Pairs...)
	}
	return out
}
