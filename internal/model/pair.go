package model

import "fmt"

// TestPair is one cross-instance or cross-kernel restore scenario: a snapshot
// taken on SourceInstance running SourceKernel, restored on
// DestinationInstance running DestinationOS/DestinationKernel.
type TestPair struct {
	SourceInstance      string `json:"source_instance" yaml:"source_instance"`
	SourceKernel        string `json:"source_kernel" yaml:"source_kernel"`
	DestinationInstance string `json:"destination_instance" yaml:"destination_instance"`
	DestinationOS       string `json:"destination_os" yaml:"destination_os"`
	DestinationKernel   string `json:"destination_kernel" yaml:"destination_kernel"`
}

// SameInstance reports whether the pair restores on the instance type that
// took the snapshot.
func (p TestPair) SameInstance() bool {
	return p.SourceInstance == p.DestinationInstance
}

// String returns a compact "src kv -> dst os/kv" form used in logs.
func (p TestPair) String() string {
	return fmt.Sprintf("%s %s -> %s %s/%s",
		p.SourceInstance, p.SourceKernel,
		p.DestinationInstance, p.DestinationOS, p.DestinationKernel)
}
