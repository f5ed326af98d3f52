package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestRatio(t *testing.T) {
	// GIVEN
	a := 0.0
	b := 100.0
	c := 50.0

	expected := 0.5

	// WHEN
	result := Ratio(c, a, b)

	// THEN
	assert.Equal(t, expected, result)
}

func TestCoerce(t *testing.T) {
	// GIVEN
	expectedInputOutput := map[float64]float64{
		-0.5: 0.0,
		0.0:  0.0,
		0.25: 0.25,
		1.0:  1.0,
		7.0:  1.0,
	}

	for input, output := range expectedInputOutput {
		// WHEN
		result := Coerce(input, 0.0, 1.0)

		// THEN
		assert.Equal(t, output, result)
	}
}

func TestCoerceInt(t *testing.T) {
	assert.Equal(t, 100, Coerce(255, 0, 100))
	assert.Equal(t, 4, Coerce(-1, 4, 100))
	assert.Equal(t, 33, Coerce(33, 4, 100))
}
