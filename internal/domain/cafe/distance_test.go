package cafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	phnomPenh := Point{Lat: 11.5564, Lng: 104.9282}
	siemReap := Point{Lat: 13.3633, Lng: 103.8564}

	assert.Equal(t, 0.0, HaversineKm(phnomPenh, phnomPenh))
	assert.InDelta(t, HaversineKm(phnomPenh, siemReap), HaversineKm(siemReap, phnomPenh), 1e-9)
	assert.InDelta(t, 232, HaversineKm(phnomPenh, siemReap), 5)
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "0 m", FormatDistance(0))
	assert.Equal(t, "350 m", FormatDistance(0.3504))
	assert.Equal(t, "999 m", FormatDistance(0.999))
	assert.Equal(t, "999 m", FormatDistance(0.9994))
	assert.Equal(t, "1.0 km", FormatDistance(0.9996))
	assert.Equal(t, "1.0 km", FormatDistance(0.9999))
	assert.Equal(t, "1.0 km", FormatDistance(1))
	assert.Equal(t, "12.3 km", FormatDistance(12.34))
}
