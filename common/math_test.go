package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	assert.Equal(t, 0.0, Lerp(0, 10, 0))
	assert.Equal(t, 10.0, Lerp(0, 10, 1))
	assert.Equal(t, 2.5, Lerp(5, 0, 0.5))
	assert.Equal(t, -1.0, Lerp(-2, 0, 0.5))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(-3, 1, 4))
	assert.Equal(t, 4.0, Clamp(9, 1, 4))
	assert.Equal(t, 2.0, Clamp(2, 1, 4))
	assert.Equal(t, 0.0, Clamp(5, 0, 0))
	assert.Equal(t, 3.0, Clamp(0, 3, -3), "inverted range returns lo")
}
