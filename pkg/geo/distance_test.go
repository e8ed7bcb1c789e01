package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/WM-BookingService/pkg/geo"
)

func TestDistance_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, geo.Distance(55.75, 37.61, 55.75, 37.61, geo.UnitKilometers))
}

func TestDistance_Symmetry(t *testing.T) {
	d1 := geo.Distance(55.7558, 37.6173, 59.9343, 30.3351, geo.UnitKilometers)
	d2 := geo.Distance(59.9343, 30.3351, 55.7558, 37.6173, geo.UnitKilometers)
	assert.Equal(t, d1, d2)
	assert.Greater(t, d1, 0.0)
}

func TestDistance_OneDegreeAtEquator(t *testing.T) {
	// Градус долготы на экваторе - около 111.2 км
	assert.InDelta(t, 111.2, geo.Distance(0, 0, 0, 1, geo.UnitKilometers), 0.1)
	assert.InDelta(t, 69.1, geo.Distance(0, 0, 0, 1, geo.UnitMiles), 0.1)
}

func TestDistance_Rounding(t *testing.T) {
	d := geo.Distance(55.7558, 37.6173, 55.7602, 37.6185, geo.UnitKilometers)
	// Округление до одного знака
	assert.Equal(t, math.Round(d*10)/10, d)
}
