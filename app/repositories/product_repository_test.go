package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/stockly/app/repositories"
)

// Both writers of a duplicate SKU normalize to the same stored form, so the
// unique index catches case-only variants.
func TestNormalizeSKU(t *testing.T) {
	cases := []struct{ in, want string }{
		{"abc-123", "ABC-123"},
		{"  sku-01  ", "SKU-01"},
		{"ALREADY-UP", "ALREADY-UP"},
		{"MiXeD-CaSe", "MIXED-CASE"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, repositories.NormalizeSKU(tc.in), "input %q", tc.in)
	}

	assert.Equal(t, repositories.NormalizeSKU("widget-1"), repositories.NormalizeSKU("WIDGET-1"))
}
