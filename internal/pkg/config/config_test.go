package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()

	assert.Equal(t, "Asia/Amman", r.Timezone)
	assert.Equal(t, 15, r.LateGraceMinutes)
	assert.Equal(t, 30, r.NoShowGraceMinutes)
	assert.Equal(t, 60, r.AutoClockOutMinutes)
	assert.Equal(t, 2, r.LateWarningCount)
	assert.Equal(t, 0.5, r.LatePenaltyFactor)
	assert.Equal(t, 2.0, r.NoShowPenaltyFactor)
	assert.Equal(t, 10.0, r.DefaultStoreRadius)
	assert.Equal(t, 50, r.MaxStores)
}

func TestWithDefaultsKeepsExplicitValues(t *testing.T) {
	r := Rules{LateGraceMinutes: 5, MaxStores: 3}.withDefaults()

	assert.Equal(t, 5, r.LateGraceMinutes)
	assert.Equal(t, 3, r.MaxStores)
	assert.Equal(t, 30, r.NoShowGraceMinutes)
}

func TestGraceDurations(t *testing.T) {
	r := DefaultRules()

	assert.Equal(t, 15*time.Minute, r.LateGrace())
	assert.Equal(t, 30*time.Minute, r.NoShowGrace())
	assert.Equal(t, time.Hour, r.AutoClockOutGrace())
}

func TestLocationFallsBackToUTC(t *testing.T) {
	r := Rules{Timezone: "Not/AZone"}

	assert.Equal(t, time.UTC, r.Location())
}
