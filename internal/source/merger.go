package source

import (
	"fmt"

	"github.com/ThomasCrouzet/snapmatrix/internal/model"
)

// Merge folds src into dst. Families with the same name are extended with
// the instances and platforms dst does not have yet, and compatibility
// entries for the same source are unioned. Order of first appearance is
// kept, since it drives the matrix order.
func Merge(dst *model.CatalogSpec, src model.CatalogSpec) error {
	if src.KernelOrder != "" {
		if dst.KernelOrder != "" && dst.KernelOrder != src.KernelOrder {
			return &model.ConfigError{
				Field:      "catalog.kernel_order",
				Message:    fmt.Sprintf("sources disagree on kernel order: %q and %q", dst.KernelOrder, src.KernelOrder),
				Suggestion: "set the same kernel_order everywhere, or only in snapmatrix.yml",
			}
		}
		dst.KernelOrder = src.KernelOrder
	}

	for _, f := range src.Families {
		i := familyIndex(dst.Families, f.Name)
		if i < 0 {
			dst.Families = append(dst.Families, model.FamilySpec{
				Name:      f.Name,
				Instances: append([]string(nil), f.Instances...),
				Platforms: append([]model.Platform(nil), f.Platforms...),
			})
			continue
		}
		existing := &dst.Families[i]
		existing.Instances = appendMissing(existing.Instances, f.Instances)
		for _, p := range f.Platforms {
			if !containsPlatform(existing.Platforms, p) {
				existing.Platforms = append(existing.Platforms, p)
			}
		}
	}

	for _, c := range src.Compatibility {
		i := compatIndex(dst.Compatibility, c.Source)
		if i < 0 {
			dst.Compatibility = append(dst.Compatibility, model.CompatibilitySpec{
				Source:       c.Source,
				Destinations: append([]string(nil), c.Destinations...),
			})
			continue
		}
		dst.Compatibility[i].Destinations = appendMissing(dst.Compatibility[i].Destinations, c.Destinations)
	}

	return nil
}

func familyIndex(fams []model.FamilySpec, name string) int {
	if name == "" {
		return -1
	}
	for i, f := range fams {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func compatIndex(entries []model.CompatibilitySpec, src string) int {
	for i, c := range entries {
		if c.Source == src {
			return i
		}
	}
	return -1
}

func appendMissing(dst, src []string) []string {
	for _, s := range src {
		if !contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}

func containsPlatform(ps []model.Platform, p model.Platform) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}

func contains(s []string, v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}
