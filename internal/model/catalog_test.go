package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoInstanceSpec() CatalogSpec {
	return CatalogSpec{
		Families: []FamilySpec{{
			Name:      "x86_64",
			Instances: []string{"X", "Y"},
			Platforms: []Platform{
				{OS: "al2", Kernel: "linux_5.10"},
				{OS: "al2023", Kernel: "linux_6.1"},
			},
		}},
		Compatibility: []CompatibilitySpec{
			{Source: "X", Destinations: []string{"Y"}},
		},
	}
}

func TestReferenceCatalog(t *testing.T) {
	cat := ReferenceCatalog()

	assert.Equal(t, []string{"x86_64", "aarch64"}, cat.FamilyNames())

	x86, ok := cat.Family("x86_64")
	require.True(t, ok)
	assert.Len(t, x86.Instances, 4)
	assert.Equal(t, []string{"linux_5.10", "linux_6.1"}, x86.Kernels())

	arm, ok := cat.Family("aarch64")
	require.True(t, ok)
	assert.Equal(t, []InstanceType{"m7g.metal"}, arm.Instances)
	assert.Equal(t, []Platform{{OS: "al2023", Kernel: "linux_6.1"}}, arm.Platforms)

	assert.Equal(t, []InstanceType{"m5n.metal", "m6i.metal"}, cat.CompatibleDestinations("c5n.metal"))
	assert.Empty(t, cat.CompatibleDestinations("m6a.metal"))
	assert.Empty(t, cat.CompatibleDestinations("m7g.metal"))
	assert.Equal(t, KernelOrderLexical, cat.KernelOrder().Name())

	fam, ok := cat.FamilyOf("m7g.metal")
	assert.True(t, ok)
	assert.Equal(t, "aarch64", fam)
}

func TestCatalogCompatibilityIsDirected(t *testing.T) {
	cat, err := NewCatalog(twoInstanceSpec())
	require.NoError(t, err)

	assert.True(t, cat.IsCompatible("X", "Y"))
	assert.False(t, cat.IsCompatible("Y", "X"))
	assert.False(t, cat.IsCompatible("X", "X"))
	assert.Empty(t, cat.CompatibleDestinations("Y"))
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	cat, err := NewCatalog(twoInstanceSpec())
	require.NoError(t, err)

	fams := cat.Families()
	fams[0].Instances[0] = "Z"
	fams[0].Platforms[0].Kernel = "linux_9.9"

	dests := cat.CompatibleDestinations("X")
	dests[0] = "Z"

	fam, _ := cat.Family("x86_64")
	assert.Equal(t, InstanceType("X"), fam.Instances[0])
	assert.Equal(t, "linux_5.10", fam.Platforms[0].Kernel)
	assert.Equal(t, []InstanceType{"Y"}, cat.CompatibleDestinations("X"))
}

func TestNewCatalogRejectsDefects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CatalogSpec)
		field  string
	}{
		{
			name:   "no families",
			mutate: func(s *CatalogSpec) { s.Families = nil; s.Compatibility = nil },
			field:  "catalog.families",
		},
		{
			name:   "unknown relation source",
			mutate: func(s *CatalogSpec) { s.Compatibility[0].Source = "W" },
			field:  "catalog.compatibility[0].source",
		},
		{
			name:   "unknown relation destination",
			mutate: func(s *CatalogSpec) { s.Compatibility[0].Destinations = []string{"W"} },
			field:  "catalog.compatibility[0].destinations[0]",
		},
		{
			name:   "self in relation",
			mutate: func(s *CatalogSpec) { s.Compatibility[0].Destinations = []string{"X"} },
			field:  "catalog.compatibility[0].destinations[0]",
		},
		{
			name: "duplicate relation source",
			mutate: func(s *CatalogSpec) {
				s.Compatibility = append(s.Compatibility, CompatibilitySpec{Source: "X"})
			},
			field: "catalog.compatibility[1].source",
		},
		{
			name:   "duplicate instance",
			mutate: func(s *CatalogSpec) { s.Families[0].Instances = []string{"X", "Y", "X"} },
			field:  "catalog.families[0].instances[2]",
		},
		{
			name: "duplicate platform",
			mutate: func(s *CatalogSpec) {
				s.Families[0].Platforms = append(s.Families[0].Platforms, Platform{OS: "al2", Kernel: "linux_5.10"})
			},
			field: "catalog.families[0].platforms[2]",
		},
		{
			name:   "unparseable kernel",
			mutate: func(s *CatalogSpec) { s.Families[0].Platforms[1].Kernel = "latest" },
			field:  "catalog.families[0].platforms[1].kernel",
		},
		{
			name:   "empty family name",
			mutate: func(s *CatalogSpec) { s.Families[0].Name = "" },
			field:  "catalog.families[0].name",
		},
		{
			name:   "no platforms",
			mutate: func(s *CatalogSpec) { s.Families[0].Platforms = nil },
			field:  "catalog.families[0].platforms",
		},
		{
			name: "lexical order disagrees with release order",
			mutate: func(s *CatalogSpec) {
				s.Families[0].Platforms = []Platform{
					{OS: "al2023", Kernel: "linux_9.0"},
					{OS: "al2023", Kernel: "linux_10.0"},
				}
			},
			field: "catalog.families[0].platforms",
		},
		{
			name: "semver kernels of equal rank",
			mutate: func(s *CatalogSpec) {
				s.KernelOrder = KernelOrderSemver
				s.Families[0].Platforms = []Platform{
					{OS: "al2023", Kernel: "linux_6.1"},
					{OS: "al2023", Kernel: "linux_6.1.0"},
				}
			},
			field: "catalog.families[0].platforms[1].kernel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := twoInstanceSpec()
			tt.mutate(&spec)

			cat, err := NewCatalog(spec)
			require.Error(t, err)
			assert.Nil(t, cat)

			var fields []string
			for _, ce := range ConfigErrors(err) {
				fields = append(fields, ce.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestNewCatalogCrossFamilyRelation(t *testing.T) {
	spec := ReferenceSpec()
	spec.Compatibility = append(spec.Compatibility, CompatibilitySpec{
		Source:       "m7g.metal",
		Destinations: []string{"c5n.metal"},
	})

	_, err := NewCatalog(spec)
	require.Error(t, err)

	errs := ConfigErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "catalog.compatibility[3].destinations[0]", errs[0].Field)
	assert.Contains(t, errs[0].Message, "different families")
}

func TestNewCatalogInstanceInTwoFamilies(t *testing.T) {
	spec := ReferenceSpec()
	spec.Families[1].Instances = append(spec.Families[1].Instances, "c5n.metal")

	_, err := NewCatalog(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `already belongs to family "x86_64"`)
}

func TestNewCatalogReportsEveryDefect(t *testing.T) {
	spec := twoInstanceSpec()
	spec.Families[0].Platforms[0].Kernel = "bogus"
	spec.Compatibility[0].Destinations = []string{"W", "V"}

	_, err := NewCatalog(spec)
	require.Error(t, err)
	assert.Len(t, ConfigErrors(err), 3)
}

func TestNewCatalogSemverOrderAcceptsTwoDigitMajor(t *testing.T) {
	spec := twoInstanceSpec()
	spec.KernelOrder = KernelOrderSemver
	spec.Families[0].Platforms = []Platform{
		{OS: "al2023", Kernel: "linux_9.0"},
		{OS: "al2023", Kernel: "linux_10.0"},
	}

	cat, err := NewCatalog(spec)
	require.NoError(t, err)
	assert.Equal(t, KernelOrderSemver, cat.KernelOrder().Name())
}

func TestNewCatalogUnknownKernelOrder(t *testing.T) {
	spec := twoInstanceSpec()
	spec.KernelOrder = "chronological"

	_, err := NewCatalog(spec)
	require.Error(t, err)

	errs := ConfigErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "catalog.kernel_order", errs[0].Field)
	assert.Contains(t, errs[0].Suggestion, KernelOrderSemver)
}
