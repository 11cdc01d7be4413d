package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// KernelOrder is the total order over kernel identifiers used by the
// kernel-direction filter. Parse rejects identifiers the order cannot place.
type KernelOrder interface {
	Name() string
	Parse(kv string) error
	Compare(a, b string) int
}

const (
	KernelOrderLexical = "lexical"
	KernelOrderSemver  = "semver"
)

// KernelOrderNames returns the names accepted by OrderByName.
func KernelOrderNames() []string {
	return []string{KernelOrderLexical, KernelOrderSemver}
}

// OrderByName resolves a configured order name. An empty name selects the
// lexical order.
func OrderByName(name string) (KernelOrder, error) {
	switch name {
	case "", KernelOrderLexical:
		return LexicalOrder{}, nil
	case KernelOrderSemver:
		return SemverOrder{}, nil
	}
	return nil, &ConfigError{
		Field:      "catalog.kernel_order",
		Message:    fmt.Sprintf("unknown kernel order %q", name),
		Suggestion: "use one of: " + strings.Join(KernelOrderNames(), ", "),
	}
}

// LexicalOrder compares identifiers byte-wise. It is only correct while
// every identifier sorts by release, which NewCatalog checks.
type LexicalOrder struct{}

func (LexicalOrder) Name() string { return KernelOrderLexical }

func (LexicalOrder) Parse(kv string) error {
	_, _, err := splitKernel(kv)
	return err
}

func (LexicalOrder) Compare(a, b string) int {
	return strings.Compare(a, b)
}

// SemverOrder compares the name prefix first, then the version suffix as a
// semantic version, so "linux_10.0" sorts after "linux_9.0".
type SemverOrder struct{}

func (SemverOrder) Name() string { return KernelOrderSemver }

func (SemverOrder) Parse(kv string) error {
	_, _, err := splitKernel(kv)
	return err
}

// Compare falls back to byte-wise comparison for identifiers that do not
// parse; NewCatalog never lets those through.
func (SemverOrder) Compare(a, b string) int {
	pa, va, errA := splitKernel(a)
	pb, vb, errB := splitKernel(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	if c := strings.Compare(pa, pb); c != 0 {
		return c
	}
	return va.Compare(vb)
}

// splitKernel splits "linux_6.1" into ("linux", 6.1.0).
func splitKernel(kv string) (string, *semver.Version, error) {
	idx := strings.LastIndex(kv, "_")
	if idx <= 0 || idx == len(kv)-1 {
		return "", nil, fmt.Errorf("kernel %q is not of the form <name>_<version>", kv)
	}
	v, err := semver.NewVersion(kv[idx+1:])
	if err != nil {
		return "", nil, fmt.Errorf("kernel %q: %w", kv, err)
	}
	return kv[:idx], v, nil
}

// checkOrderAgreement returns the first pair of kernels the given order
// places differently than their release order.
func checkOrderAgreement(order KernelOrder, kernels []string) (string, string, bool) {
	sorted := append([]string(nil), kernels...)
	sort.Slice(sorted, func(i, j int) bool { return SemverOrder{}.Compare(sorted[i], sorted[j]) < 0 })
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sign(order.Compare(sorted[i], sorted[j])) != sign(SemverOrder{}.Compare(sorted[i], sorted[j])) {
				return sorted[i], sorted[j], false
			}
		}
	}
	return "", "", true
}

// sameRank returns an already accepted kernel that differs from kv but
// compares equal to it. Distinct kernels must be strictly ordered.
func sameRank(order KernelOrder, platforms []Platform, kv string) (string, bool) {
	for _, p := range platforms {
		if p.Kernel != kv && order.Compare(p.Kernel, kv) == 0 {
			return p.Kernel, true
		}
	}
	return "", false
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
