package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClockReturnsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Real{}.Now().Location())
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2024, 1, 10, 8, 0, 0, 0, time.FixedZone("EAT", 3*3600))
	c := NewFixed(start)

	assert.True(t, c.Now().Equal(start))
	assert.Equal(t, time.UTC, c.Now().Location())

	c.Advance(90 * time.Minute)
	assert.Equal(t, time.Date(2024, 1, 10, 6, 30, 0, 0, time.UTC), c.Now())

	c.Set(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2025, c.Now().Year())
}
