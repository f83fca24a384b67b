package astral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDayTime(t *testing.T) {
	assert.False(t, IsDayTime(5))
	assert.True(t, IsDayTime(6))
	assert.True(t, IsDayTime(17))
	assert.False(t, IsDayTime(18))
	// Wraps with the day counter.
	assert.True(t, IsDayTime(24+12))
}

func TestIsMidDay(t *testing.T) {
	assert.True(t, IsMidDay(12))
	assert.True(t, IsMidDay(84))
	assert.False(t, IsMidDay(13))
}

func TestPhaseIndex(t *testing.T) {
	assert.Equal(t, 0, PhaseIndex(0))
	assert.Equal(t, 0, PhaseIndex(41))
	assert.Equal(t, 1, PhaseIndex(42))
	assert.Equal(t, 2, PhaseIndex(84))
	assert.Equal(t, 3, PhaseIndex(126))
	// Wraps at the lunar cycle.
	assert.Equal(t, 0, PhaseIndex(168))
}

func TestSignIndex(t *testing.T) {
	assert.Equal(t, 0, SignIndex(0))
	assert.Equal(t, 0, SignIndex(671))
	assert.Equal(t, 1, SignIndex(672))
	assert.Equal(t, 11, SignIndex(11*672))
	// Wraps after the full zodiac.
	assert.Equal(t, 0, SignIndex(12*672))
}

func TestIsNewMoon(t *testing.T) {
	assert.False(t, IsNewMoon(0))
	assert.True(t, IsNewMoon(168))
	assert.True(t, IsNewMoon(336))
	assert.False(t, IsNewMoon(167))
}

func TestDaylightIntensity(t *testing.T) {
	assert.Equal(t, 0.0, DaylightIntensity(0))
	assert.Equal(t, 0.0, DaylightIntensity(5))
	assert.Equal(t, 1.0, DaylightIntensity(12))
	assert.Equal(t, 0.0, DaylightIntensity(18))
	assert.InDelta(t, 0.5, DaylightIntensity(9), 1e-9)
}

func TestBreakdown(t *testing.T) {
	s := Breakdown(170, 30000)

	assert.Equal(t, 2, s.Daily)
	assert.Equal(t, 2, s.Lunar)
	assert.Equal(t, 170, s.Sign)
	assert.Equal(t, 30000, s.CycleDuration)
	assert.False(t, s.DailyComplete)

	s = Breakdown(168, 30000)
	assert.True(t, s.DailyComplete)
	assert.True(t, s.LunarComplete)
	assert.False(t, s.SignComplete)
}
