package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestGetWindowMax(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(3)
	window.Append(1)
	window.Append(2)
	window.Append(3)

	// WHEN
	maximum := GetWindowMax(window)

	// THEN
	assert.Equal(t, 3.0, maximum)
}

func TestGetWindowMinAndAvg(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(4)
	FillWindow(window, 4, 50)
	window.Append(58)
	window.Append(42)

	// WHEN
	minimum := GetWindowMin(window)
	avg := GetWindowAvg(window)

	// THEN
	assert.Equal(t, 42.0, minimum)
	assert.Equal(t, 50.0, avg)
}

func TestWindowDropsOldestValue(t *testing.T) {
	// GIVEN
	window := CreateRollingWindow(2)
	window.Append(90)
	window.Append(40)

	// WHEN
	window.Append(45)

	// THEN
	assert.Equal(t, 45.0, GetWindowMax(window))
	assert.Equal(t, 40.0, GetWindowMin(window))
}
