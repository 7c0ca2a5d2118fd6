package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	c := RealClock{}

	before := time.Now()
	got := c.Now()
	after := time.Now()

	assert.False(t, got.Before(before), "Now should not be earlier than the surrounding reads")
	assert.False(t, got.After(after), "Now should not be later than the surrounding reads")
}

func TestFixed_Now(t *testing.T) {
	instant := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	c := Fixed(instant)

	assert.True(t, instant.Equal(c.Now()))
	assert.True(t, c.Now().Equal(c.Now()), "repeated calls return the same instant")
}
