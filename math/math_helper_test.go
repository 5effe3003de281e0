package math_test

import (
	stdmath "math"
	"testing"

	"github.com/wenlabs/wenrestart/math"
	"github.com/wenlabs/wenrestart/testing/assert"
)

func TestSaturateAdd(t *testing.T) {
	assert.Equal(t, uint64(100), math.SaturateAdd(60, 40))
	assert.Equal(t, uint64(stdmath.MaxUint64), math.SaturateAdd(stdmath.MaxUint64, 1))
	assert.Equal(t, uint64(stdmath.MaxUint64), math.SaturateAdd(1, stdmath.MaxUint64))
	assert.Equal(t, uint64(0), math.SaturateAdd(0, 0))
}
