package model

import (
	"errors"
	"fmt"
)

// CatalogSpec is the unvalidated catalog description read from config or a
// catalog file. NewCatalog turns it into a Catalog.
type CatalogSpec struct {
	KernelOrder   string              `yaml:"kernel_order" mapstructure:"kernel_order"`
	Families      []FamilySpec        `yaml:"families" mapstructure:"families"`
	Compatibility []CompatibilitySpec `yaml:"compatibility" mapstructure:"compatibility"`
}

// FamilySpec describes one architecture family.
type FamilySpec struct {
	Name      string     `yaml:"name" mapstructure:"name"`
	Instances []string   `yaml:"instances" mapstructure:"instances"`
	Platforms []Platform `yaml:"platforms" mapstructure:"platforms"`
}

// CompatibilitySpec allow-lists the instance types a source instance may
// additionally restore onto. The source itself is always implied.
type CompatibilitySpec struct {
	Source       string   `yaml:"source" mapstructure:"source"`
	Destinations []string `yaml:"destinations" mapstructure:"destinations"`
}

// Catalog is the validated, immutable capability catalog. Build it with
// NewCatalog; accessors hand out copies.
type Catalog struct {
	families []Family
	familyOf map[InstanceType]string
	compat   map[InstanceType][]InstanceType
	order    KernelOrder
}

// NewCatalog validates spec and builds a Catalog. Every defect found is
// returned as a *ConfigError, joined with errors.Join.
func NewCatalog(spec CatalogSpec) (*Catalog, error) {
	var errs []error
	fail := func(field, suggestion, format string, args ...any) {
		errs = append(errs, &ConfigError{
			Field:      field,
			Message:    fmt.Sprintf(format, args...),
			Suggestion: suggestion,
		})
	}

	order, err := OrderByName(spec.KernelOrder)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{
		familyOf: make(map[InstanceType]string),
		compat:   make(map[InstanceType][]InstanceType),
		order:    order,
	}

	if len(spec.Families) == 0 {
		fail("catalog.families", "declare at least one architecture family", "no families defined")
	}

	familyNames := make(map[string]bool)
	for i, fs := range spec.Families {
		field := fmt.Sprintf("catalog.families[%d]", i)
		if fs.Name == "" {
			fail(field+".name", "name the family after its architecture, e.g. x86_64", "family name is empty")
		} else if familyNames[fs.Name] {
			fail(field+".name", "merge the two families or rename one", "duplicate family %q", fs.Name)
		}
		familyNames[fs.Name] = true

		fam := Family{Name: fs.Name}

		if len(fs.Instances) == 0 {
			fail(field+".instances", "list the instance types of this family", "family %q has no instances", fs.Name)
		}
		for j, name := range fs.Instances {
			inst := InstanceType(name)
			ifield := fmt.Sprintf("%s.instances[%d]", field, j)
			if name == "" {
				fail(ifield, "", "instance type is empty")
				continue
			}
			if owner, ok := cat.familyOf[inst]; ok {
				if owner == fs.Name {
					fail(ifield, "remove the duplicate entry", "instance %q listed twice", name)
				} else {
					fail(ifield, "an instance type belongs to exactly one family", "instance %q already belongs to family %q", name, owner)
				}
				continue
			}
			cat.familyOf[inst] = fs.Name
			fam.Instances = append(fam.Instances, inst)
		}

		if len(fs.Platforms) == 0 {
			fail(field+".platforms", "list the (os, kernel) pairs this family runs", "family %q has no platforms", fs.Name)
		}
		seenPlatform := make(map[Platform]bool)
		for j, p := range fs.Platforms {
			pfield := fmt.Sprintf("%s.platforms[%d]", field, j)
			if p.OS == "" {
				fail(pfield+".os", "", "platform os is empty")
				continue
			}
			if err := order.Parse(p.Kernel); err != nil {
				fail(pfield+".kernel", "use identifiers like linux_6.1", "%v", err)
				continue
			}
			if seenPlatform[p] {
				fail(pfield, "remove the duplicate entry", "platform %s listed twice", p)
				continue
			}
			if other, ok := sameRank(order, fam.Platforms, p.Kernel); ok {
				fail(pfield+".kernel", "use one spelling per kernel release",
					"kernel %q ranks equal to %q under %s order", p.Kernel, other, order.Name())
				continue
			}
			seenPlatform[p] = true
			fam.Platforms = append(fam.Platforms, p)
		}

		if a, b, ok := checkOrderAgreement(order, fam.Kernels()); !ok {
			fail(field+".platforms",
				"set catalog.kernel_order to "+KernelOrderSemver,
				"%s order places %q and %q out of release order", order.Name(), a, b)
		}

		cat.families = append(cat.families, fam)
	}

	seenSource := make(map[InstanceType]bool)
	for i, cs := range spec.Compatibility {
		field := fmt.Sprintf("catalog.compatibility[%d]", i)
		src := InstanceType(cs.Source)
		srcFamily, ok := cat.familyOf[src]
		if !ok {
			fail(field+".source", "add the instance to a family or drop this entry", "instance %q is not in the catalog", cs.Source)
			continue
		}
		if seenSource[src] {
			fail(field+".source", "merge the destinations into one entry", "source %q configured twice", cs.Source)
			continue
		}
		seenSource[src] = true

		var dests []InstanceType
		seenDest := make(map[InstanceType]bool)
		for j, name := range cs.Destinations {
			dfield := fmt.Sprintf("%s.destinations[%d]", field, j)
			dst := InstanceType(name)
			dstFamily, ok := cat.familyOf[dst]
			switch {
			case !ok:
				fail(dfield, "add the instance to a family or drop it from the list", "instance %q is not in the catalog", name)
			case dst == src:
				fail(dfield, "drop it; restoring on the same instance type is always tested", "source %q lists itself", name)
			case dstFamily != srcFamily:
				fail(dfield, "pairs never cross architecture families", "%q (%s) and %q (%s) are in different families", cs.Source, srcFamily, name, dstFamily)
			case seenDest[dst]:
				fail(dfield, "remove the duplicate entry", "destination %q listed twice", name)
			default:
				seenDest[dst] = true
				dests = append(dests, dst)
			}
		}
		cat.compat[src] = dests
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cat, nil
}

// Families returns the families in declaration order.
func (c *Catalog) Families() []Family {
	out := make([]Family, len(c.families))
	for i, f := range c.families {
		out[i] = f.clone()
	}
	return out
}

// FamilyNames returns the family names in declaration order.
func (c *Catalog) FamilyNames() []string {
	names := make([]string, len(c.families))
	for i, f := range c.families {
		names[i] = f.Name
	}
	return names
}

// Family looks up a family by name.
func (c *Catalog) Family(name string) (Family, bool) {
	for _, f := range c.families {
		if f.Name == name {
			return f.clone(), true
		}
	}
	return Family{}, false
}

// FamilyOf returns the family an instance type belongs to.
func (c *Catalog) FamilyOf(inst InstanceType) (string, bool) {
	name, ok := c.familyOf[inst]
	return name, ok
}

// CompatibleDestinations returns the configured allow-list for src, or nil
// when src has none.
func (c *Catalog) CompatibleDestinations(src InstanceType) []InstanceType {
	return append([]InstanceType(nil), c.compat[src]...)
}

// IsCompatible reports whether dst is allow-listed for src. It does not
// treat src as compatible with itself.
func (c *Catalog) IsCompatible(src, dst InstanceType) bool {
	for _, d := range c.compat[src] {
		if d == dst {
			return true
		}
	}
	return false
}

// KernelOrder returns the order used to compare kernel identifiers.
func (c *Catalog) KernelOrder() KernelOrder {
	return c.order
}
