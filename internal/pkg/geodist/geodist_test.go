package geodist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetersZeroDistance(t *testing.T) {
	assert.Zero(t, Meters(31.9539, 35.9106, 31.9539, 35.9106))
}

func TestMetersNearStore(t *testing.T) {
	// A point one street over from the store: roughly 13m, which is outside
	// the default 10m radius.
	d := Meters(31.9540, 35.9107, 31.9539, 35.9106)

	assert.InDelta(t, 14.5, d, 2.0)
	assert.Greater(t, d, 10.0)
}

func TestMetersKnownCity(t *testing.T) {
	// Amman to Zarqa city centers, about 20km.
	d := Meters(31.9539, 35.9106, 32.0728, 36.0880)

	assert.InDelta(t, 21000, d, 2500)
}

func TestMetersSymmetry(t *testing.T) {
	a := Meters(31.95, 35.91, 32.07, 36.08)
	b := Meters(32.07, 36.08, 31.95, 35.91)

	assert.InDelta(t, a, b, 1e-9)
}
