package model

// ReferenceSpec returns the built-in catalog: four x86_64 metal instances on
// both Amazon Linux platforms, and one aarch64 instance with experimental
// cross-kernel support on al2023 only.
func ReferenceSpec() CatalogSpec {
	return CatalogSpec{
		KernelOrder: KernelOrderLexical,
		Families: []FamilySpec{
			{
				Name:      "x86_64",
				Instances: []string{"c5n.metal", "m5n.metal", "m6i.metal", "m6a.metal"},
				Platforms: []Platform{
					{OS: "al2", Kernel: "linux_5.10"},
					{OS: "al2023", Kernel: "linux_6.1"},
				},
			},
			{
				Name:      "aarch64",
				Instances: []string{"m7g.metal"},
				Platforms: []Platform{
					{OS: "al2023", Kernel: "linux_6.1"},
				},
			},
		},
		Compatibility: []CompatibilitySpec{
			{Source: "c5n.metal", Destinations: []string{"m5n.metal", "m6i.metal"}},
			{Source: "m5n.metal", Destinations: []string{"c5n.metal", "m6i.metal"}},
			{Source: "m6i.metal", Destinations: []string{"c5n.metal", "m5n.metal"}},
		},
	}
}

// ReferenceCatalog returns the validated built-in catalog.
func ReferenceCatalog() *Catalog {
	cat, err := NewCatalog(ReferenceSpec())
	if err != nil {
		panic("reference catalog is invalid: " + err.Error())
	}
	return cat
}
