package matrix

import "github.com/ThomasCrouzet/snapmatrix/internal/model"

// Filter drops candidates for which Exclude returns true.
type Filter struct {
	Name    string
	Reason  string
	Exclude func(Candidate) bool
}

const (
	FilterSelfPair              = "self-pair"
	FilterKernelDirection       = "kernel-direction"
	FilterInstanceCompatibility = "instance-compatibility"
)

// SelfPair drops identical source and destination configurations; the
// non-cross snapshot suite already covers them.
func SelfPair() Filter {
	return Filter{
		Name:   FilterSelfPair,
		Reason: "same instance and kernel",
		Exclude: func(c Candidate) bool {
			return c.Source == c.Destination && c.SourcePlatform.Kernel == c.DestinationPlatform.Kernel
		},
	}
}

// KernelDirection drops restores onto an older kernel than the snapshot
// was taken on.
func KernelDirection(order model.KernelOrder) Filter {
	return Filter{
		Name:   FilterKernelDirection,
		Reason: "newer to older kernel",
		Exclude: func(c Candidate) bool {
			return order.Compare(c.SourcePlatform.Kernel, c.DestinationPlatform.Kernel) > 0
		},
	}
}

// InstanceCompatibility drops cross-instance candidates whose destination
// is not allow-listed for the source.
func InstanceCompatibility(cat *model.Catalog) Filter {
	return Filter{
		Name:   FilterInstanceCompatibility,
		Reason: "destination not allow-listed for source",
		Exclude: func(c Candidate) bool {
			return c.Source != c.Destination && !cat.IsCompatible(c.Source, c.Destination)
		},
	}
}

// DefaultFilters returns the three matrix filters in evaluation order.
func DefaultFilters(cat *model.Catalog) []Filter {
	return []Filter{
		SelfPair(),
		KernelDirection(cat.KernelOrder()),
		InstanceCompatibility(cat),
	}
}
