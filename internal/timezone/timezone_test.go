package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBack(t *testing.T) {
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))

	assert.Equal(t, time.UTC, Location("UTC"))
	assert.NotNil(t, Location("Mars/Olympus"))
}

func TestFormat(t *testing.T) {
	ts := time.Date(2025, 3, 9, 17, 5, 0, 0, time.UTC)

	assert.Equal(t, "9 Mar 2025, 17:05", Format(ts, time.UTC))
	assert.Equal(t, "", Format(time.Time{}, time.UTC))
}
