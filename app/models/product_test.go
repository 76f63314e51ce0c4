package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/stockly/app/models"
)

func TestDeriveStatusBoundaries(t *testing.T) {
	cases := []struct {
		quantity int64
		want     string
	}{
		{0, models.StatusStockOut},
		{1, models.StatusStockLow},
		{20, models.StatusStockLow},
		{21, models.StatusAvailable},
		{1000, models.StatusAvailable},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, models.DeriveStatus(tc.quantity), "quantity %d", tc.quantity)
	}
}

func TestProductValue(t *testing.T) {
	p := models.Product{Price: 12.5, Quantity: 4}
	assert.Equal(t, 50.0, p.Value())

	empty := models.Product{Price: 99, Quantity: 0}
	assert.Equal(t, 0.0, empty.Value())
}
