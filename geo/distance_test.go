package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_ZeroForSamePoint(t *testing.T) {
	point := Coordinate{Lat: -1.286389, Lng: 36.817223}
	assert.Equal(t, 0.0, Distance(point, point))
}

func TestDistance_Symmetric(t *testing.T) {
	nairobi := Coordinate{Lat: -1.286389, Lng: 36.817223}
	mombasa := Coordinate{Lat: -4.043477, Lng: 39.668206}

	assert.InDelta(t, Distance(nairobi, mombasa), Distance(mombasa, nairobi), 1e-9)
}

func TestDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name       string
		a, b       Coordinate
		expectedKm float64
		deltaKm    float64
	}{
		{
			name:       "one degree of longitude on the equator",
			a:          Coordinate{Lat: 0, Lng: 0},
			b:          Coordinate{Lat: 0, Lng: 1},
			expectedKm: 111.19,
			deltaKm:    0.1,
		},
		{
			name:       "nairobi to mombasa",
			a:          Coordinate{Lat: -1.286389, Lng: 36.817223},
			b:          Coordinate{Lat: -4.043477, Lng: 39.668206},
			expectedKm: 440.0,
			deltaKm:    5.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expectedKm, Distance(tt.a, tt.b), tt.deltaKm)
		})
	}
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 5.0, RoundKm(5.0038))
	assert.Equal(t, 5.1, RoundKm(5.05))
	assert.Equal(t, 0.0, RoundKm(0.04))
}

func TestCoordinateValid(t *testing.T) {
	assert.True(t, Coordinate{Lat: 90, Lng: -180}.Valid())
	assert.True(t, Coordinate{Lat: -1.28, Lng: 36.81}.Valid())
	assert.False(t, Coordinate{Lat: 90.1, Lng: 0}.Valid())
	assert.False(t, Coordinate{Lat: 0, Lng: 180.5}.Valid())
}
