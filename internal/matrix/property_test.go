package matrix

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/ThomasCrouzet/snapmatrix/internal/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const maxInstances = 4

var platformPool = []model.Platform{
	{OS: "al2", Kernel: "linux_4.14"},
	{OS: "al2", Kernel: "linux_5.10"},
	{OS: "al2023", Kernel: "linux_6.1"},
	{OS: "ubuntu", Kernel: "linux_5.10"},
}

// randomCatalog builds a one-family catalog from generator output. edges is
// indexed src*maxInstances+dst.
func randomCatalog(nInst, nPlat int, edges []bool) (*model.Catalog, error) {
	spec := model.CatalogSpec{
		Families: []model.FamilySpec{{Name: "fam", Platforms: platformPool[:nPlat]}},
	}
	for i := 0; i < nInst; i++ {
		spec.Families[0].Instances = append(spec.Families[0].Instances, fmt.Sprintf("i%d.metal", i))
	}
	for s := 0; s < nInst; s++ {
		cs := model.CompatibilitySpec{Source: fmt.Sprintf("i%d.metal", s)}
		for d := 0; d < nInst; d++ {
			if s != d && edges[s*maxInstances+d] {
				cs.Destinations = append(cs.Destinations, fmt.Sprintf("i%d.metal", d))
			}
		}
		spec.Compatibility = append(spec.Compatibility, cs)
	}
	return model.NewCatalog(spec)
}

// admissible restates the three predicates directly, independent of the
// filter pipeline.
func admissible(cat *model.Catalog, c Candidate) bool {
	if c.Source == c.Destination && c.SourcePlatform.Kernel == c.DestinationPlatform.Kernel {
		return false
	}
	if cat.KernelOrder().Compare(c.SourcePlatform.Kernel, c.DestinationPlatform.Kernel) > 0 {
		return false
	}
	if c.Source == c.Destination {
		return true
	}
	for _, d := range cat.CompatibleDestinations(c.Source) {
		if d == c.Destination {
			return true
		}
	}
	return false
}

func TestMatrixInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	instGen := gen.IntRange(1, maxInstances)
	platGen := gen.IntRange(1, len(platformPool))
	edgeGen := gen.SliceOfN(maxInstances*maxInstances, gen.Bool())

	generate := func(nInst, nPlat int, edges []bool) (*model.Catalog, []model.TestPair, bool) {
		cat, err := randomCatalog(nInst, nPlat, edges)
		if err != nil {
			return nil, nil, false
		}
		pairs, err := Generate(cat, "fam")
		return cat, pairs, err == nil
	}

	properties.Property("no self pairs", prop.ForAll(
		func(nInst, nPlat int, edges []bool) bool {
			_, pairs, ok := generate(nInst, nPlat, edges)
			if !ok {
				return false
			}
			for _, p := range pairs {
				if p.SameInstance() && p.SourceKernel == p.DestinationKernel {
					return false
				}
			}
			return true
		},
		instGen, platGen, edgeGen,
	))

	properties.Property("kernel direction is monotonic", prop.ForAll(
		func(nInst, nPlat int, edges []bool) bool {
			cat, pairs, ok := generate(nInst, nPlat, edges)
			if !ok {
				return false
			}
			for _, p := range pairs {
				if cat.KernelOrder().Compare(p.SourceKernel, p.DestinationKernel) > 0 {
					return false
				}
			}
			return true
		},
		instGen, platGen, edgeGen,
	))

	properties.Property("relation is respected", prop.ForAll(
		func(nInst, nPlat int, edges []bool) bool {
			cat, pairs, ok := generate(nInst, nPlat, edges)
			if !ok {
				return false
			}
			for _, p := range pairs {
				if !p.SameInstance() && !cat.IsCompatible(model.InstanceType(p.SourceInstance), model.InstanceType(p.DestinationInstance)) {
					return false
				}
			}
			return true
		},
		instGen, platGen, edgeGen,
	))

	properties.Property("every admissible candidate appears exactly once", prop.ForAll(
		func(nInst, nPlat int, edges []bool) bool {
			cat, pairs, ok := generate(nInst, nPlat, edges)
			if !ok {
				return false
			}
			fam, _ := cat.Family("fam")

			var want []model.TestPair
			for _, c := range Candidates(fam) {
				if admissible(cat, c) {
					want = append(want, c.Pair())
				}
			}

			seen := make(map[model.TestPair]int)
			for _, p := range pairs {
				seen[p]++
			}
			for _, n := range seen {
				if n != 1 {
					return false
				}
			}
			return reflect.DeepEqual(want, pairs)
		},
		instGen, platGen, edgeGen,
	))

	properties.Property("generation is idempotent", prop.ForAll(
		func(nInst, nPlat int, edges []bool) bool {
			cat, pairs, ok := generate(nInst, nPlat, edges)
			if !ok {
				return false
			}
			again, err := Generate(cat, "fam")
			return err == nil && reflect.DeepEqual(pairs, again)
		},
		instGen, platGen, edgeGen,
	))

	properties.Property("empty relation yields only in-place upgrades", prop.ForAll(
		func(nInst, nPlat int) bool {
			cat, pairs, ok := generate(nInst, nPlat, make([]bool, maxInstances*maxInstances))
			if !ok {
				return false
			}
			for _, p := range pairs {
				if !p.SameInstance() || cat.KernelOrder().Compare(p.SourceKernel, p.DestinationKernel) >= 0 {
					return false
				}
			}
			return true
		},
		instGen, platGen,
	))

	properties.TestingRun(t)
}
