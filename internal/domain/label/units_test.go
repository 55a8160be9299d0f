package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPxToPt(t *testing.T) {
	tests := []struct {
		name     string
		px       float64
		expected float64
	}{
		{"zero", 0, 0},
		{"unit pixel", 1, 0.75},
		{"label width", 384, 288},
		{"narrow label", 192, 144},
		{"fractional", 10.5, 7.875},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PxToPt(tt.px))
		})
	}
}

func TestPtToPx_RoundTrips(t *testing.T) {
	for _, px := range []float64{0, 1, 96, 192, 384, 576} {
		assert.Equal(t, px, PtToPx(PxToPt(px)))
	}
}

func TestPtToInches(t *testing.T) {
	assert.Equal(t, 4.0, PtToInches(288))
	assert.Equal(t, 2.0, PtToInches(144))
}
