package model

import "fmt"

// InstanceType identifies a hardware flavor under test, e.g. "c5n.metal".
type InstanceType string

// Platform is an (operating system, kernel version) pair an instance can run.
type Platform struct {
	OS     string `yaml:"os" mapstructure:"os" json:"os"`
	Kernel string `yaml:"kernel" mapstructure:"kernel" json:"kernel"`
}

// String returns "os/kernel".
func (p Platform) String() string {
	return fmt.Sprintf("%s/%s", p.OS, p.Kernel)
}

// Family is an architecture partition of the catalog. Every instance of a
// family runs every platform of that family. Pairs never cross families.
type Family struct {
	Name      string
	Instances []InstanceType
	Platforms []Platform
}

// Kernels returns the distinct kernel identifiers of the family in
// declaration order.
func (f Family) Kernels() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range f.Platforms {
		if !seen[p.Kernel] {
			seen[p.Kernel] = true
			out = append(out, p.Kernel)
		}
	}
	return out
}

// HasInstance reports whether inst belongs to the family.
func (f Family) HasInstance(inst InstanceType) bool {
	for _, i := range f.Instances {
		if i == inst {
			return true
		}
	}
	return false
}

func (f Family) clone() Family {
	return Family{
		Name:      f.Name,
		Instances: append([]InstanceType(nil), f.Instances...),
		Platforms: append([]Platform(nil), f.Platforms...),
	}
}
