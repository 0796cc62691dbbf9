package play

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstant(t *testing.T) {
	s := Constant(1.4)
	assert.Equal(t, float32(1.4), s(0))
	assert.Equal(t, float32(1.4), s(1000))
}

func TestRamp(t *testing.T) {
	s := Ramp(0, 10, 11)
	assert.Equal(t, float32(0), s(0))
	assert.Equal(t, float32(5), s(5))
	assert.Equal(t, float32(10), s(10))
	assert.Equal(t, float32(10), s(999), "holds past the ramp")
	assert.Equal(t, float32(0), s(-3), "clamps below")

	down := Ramp(8, 2, 4)
	assert.Equal(t, float32(8), down(0))
	assert.Equal(t, float32(2), down(3))

	assert.Equal(t, float32(7), Ramp(1, 7, 1)(0), "degenerate ramp is constant")
}

func TestStep(t *testing.T) {
	s := Step(3, 100, 50, 25)
	assert.Equal(t, float32(100), s(0))
	assert.Equal(t, float32(100), s(2))
	assert.Equal(t, float32(50), s(3))
	assert.Equal(t, float32(25), s(6))
	assert.Equal(t, float32(25), s(42), "holds the last value")
	assert.Equal(t, float32(100), s(-1))

	assert.Equal(t, float32(9), Step(0, 9)(5), "width clamps to 1")
	assert.Equal(t, float32(0), Step(2)(0), "no values means zero")
}
