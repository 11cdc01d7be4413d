package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKernelOrderCompare(t *testing.T) {
	tests := []struct {
		a, b    string
		lexical int
		semver  int
	}{
		{"linux_5.10", "linux_6.1", -1, -1},
		{"linux_6.1", "linux_5.10", 1, 1},
		{"linux_6.1", "linux_6.1", 0, 0},
		{"linux_4.14", "linux_5.10", -1, -1},
		{"linux_9.0", "linux_10.0", 1, -1},
		{"linux_5.9", "linux_5.10", 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.lexical, sign(LexicalOrder{}.Compare(tt.a, tt.b)))
			assert.Equal(t, tt.semver, sign(SemverOrder{}.Compare(tt.a, tt.b)))
		})
	}
}

func TestKernelOrderParse(t *testing.T) {
	tests := []struct {
		kv    string
		valid bool
	}{
		{"linux_5.10", true},
		{"linux_6.1", true},
		{"linux_6.1.0", true},
		{"guest_kernel_6.1", true},
		{"linux", false},
		{"linux_", false},
		{"_6.1", false},
		{"linux_latest", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.kv, func(t *testing.T) {
			for _, order := range []KernelOrder{LexicalOrder{}, SemverOrder{}} {
				err := order.Parse(tt.kv)
				if tt.valid {
					assert.NoError(t, err, order.Name())
				} else {
					assert.Error(t, err, order.Name())
				}
			}
		})
	}
}

func TestOrderByName(t *testing.T) {
	o, err := OrderByName("")
	require.NoError(t, err)
	assert.Equal(t, KernelOrderLexical, o.Name())

	o, err = OrderByName("semver")
	require.NoError(t, err)
	assert.Equal(t, KernelOrderSemver, o.Name())

	_, err = OrderByName("random")
	assert.Error(t, err)
}

func TestCheckOrderAgreement(t *testing.T) {
	_, _, ok := checkOrderAgreement(LexicalOrder{}, []string{"linux_5.10", "linux_6.1", "linux_4.14"})
	assert.True(t, ok)

	a, b, ok := checkOrderAgreement(LexicalOrder{}, []string{"linux_5.10", "linux_5.4"})
	assert.False(t, ok)
	assert.Equal(t, "linux_5.4", a)
	assert.Equal(t, "linux_5.10", b)

	_, _, ok = checkOrderAgreement(SemverOrder{}, []string{"linux_5.10", "linux_5.4"})
	assert.True(t, ok)
}
